// Package builder packages a validated ADX project into a .adc or .adp
// archive.
//
// Build always re-runs the schema and auto-test stages, whatever the caller
// asked for, then writes the filtered project tree to
// <project>/bin/<name>.<adc|adp>. Only config.xml, readme* and changelog* files
// at the root and the dynamic, static, statics and share resource directories
// are packaged; bin and tests directories and empty directories never are.
package builder
