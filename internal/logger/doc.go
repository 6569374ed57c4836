// Package logger defines the four-sink Logger capability (message, success,
// warning, error) that the validator, builder and shell sessions report
// through. Components receive a Logger explicitly; Default provides a
// process-wide stderr logger for callers that do not supply one.
package logger
