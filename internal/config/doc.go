// Package config manages user-level settings stored at ~/.adxutil/config.yaml.
// It resolves the helper executable, the schema linter and its schema
// directory, the author identity used when generating projects, and the
// publish endpoint. Settings files are checked against an embedded JSON Schema.
package config
