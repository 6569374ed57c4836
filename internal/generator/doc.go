// Package generator creates new ADC and ADP projects from embedded template
// sets. Files ending in .tmpl are rendered with text/template and lose the
// suffix; other files are copied as they are, since AskiaScript uses {% %}
// delimiters that must reach the output untouched.
package generator
