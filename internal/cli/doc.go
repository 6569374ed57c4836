// Package cli defines the Cobra command tree for the adxutil CLI. Each file
// in this package registers one top-level command (validate, build, show,
// etc.) with the root command. Commands delegate to internal packages for the
// work and only handle flags, settings and output.
package cli
