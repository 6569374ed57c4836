// Package validator checks an ADX project before it is built or shown.
//
// A run is a fixed sequence of named stages (see StageName) driven by the
// sequence package. Each stage either passes, records warnings, or aborts the
// run with a fatal error. The stage list is trimmed up front by the skip
// options and again by schema-init once the project type is known: ADC
// projects have no master page to check and ADP projects carry no
// constraints.
//
// Every run re-reads config.xml and re-indexes the resources directory, so a
// Validator may be reused across runs while files change on disk.
package validator
