// Package adx models an ADX project on disk: the config.xml manifest of an
// ADC (component) or ADP (page), the resources tree indexed case-insensitively
// per area, and the file-name policies (ignorable, denied and allowed
// extensions) shared by the validator and the builder.
package adx
