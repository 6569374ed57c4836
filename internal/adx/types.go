package adx

import (
	"encoding/xml"
	"strings"
)

// ConfigFileName is the manifest file at the project root.
const ConfigFileName = "config.xml"

// LegacyNamespace is the root namespace of pre-versioned ADC manifests.
const LegacyNamespace = "http://www.askia.com/ADCSchema"

// DefaultSchemaVersion applies when the root element has no version.
const DefaultSchemaVersion = "2.0.0"

// Manifest is the parsed config.xml.
type Manifest struct {
	XMLName    xml.Name
	Version    string     `xml:"version,attr"`
	Info       Info       `xml:"info"`
	Outputs    Outputs    `xml:"outputs"`
	Properties Properties `xml:"properties"`
}

// Info is the <info> block.
type Info struct {
	Name        string       `xml:"name"`
	GUID        string       `xml:"guid"`
	Version     string       `xml:"version"`
	Date        string       `xml:"date"`
	Description string       `xml:"description"`
	Company     string       `xml:"company"`
	Author      string       `xml:"author"`
	Site        string       `xml:"site"`
	HelpURL     string       `xml:"helpURL"`
	Categories  *Categories  `xml:"categories"`
	Style       *Style       `xml:"style"`
	Constraints []Constraint `xml:"constraints>constraint"`
}

// Categories is the deprecated <info><categories> block.
type Categories struct {
	Items []string `xml:"category"`
}

// Style is the deprecated <info><style> element.
type Style struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

// Constraint restricts where an ADC can be used. On names the target
// (questions, responses or controls); Attrs holds the rules.
type Constraint struct {
	On    string     `xml:"on,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
}

// Attr returns the value of a rule attribute.
func (c Constraint) Attr(name string) (string, bool) {
	for _, a := range c.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Outputs is the <outputs> block.
type Outputs struct {
	DefaultOutput string   `xml:"defaultOutput,attr"`
	Items         []Output `xml:"output"`
}

// Output is one generation target.
type Output struct {
	ID                string    `xml:"id,attr"`
	DefaultGeneration *string   `xml:"defaultGeneration,attr"`
	MasterPage        *string   `xml:"masterPage,attr"`
	Description       string    `xml:"description"`
	Condition         string    `xml:"condition"`
	Contents          []Content `xml:"content"`
}

// IsDefaultGeneration reports whether the output is flagged as generated by
// default.
func (o Output) IsDefaultGeneration() bool {
	return o.DefaultGeneration != nil && IsTrue(*o.DefaultGeneration)
}

// ConditionText returns the trimmed condition.
func (o Output) ConditionText() string {
	return strings.TrimSpace(o.Condition)
}

// Content binds one resource file into an output.
type Content struct {
	FileName   string              `xml:"fileName,attr"`
	Type       string              `xml:"type,attr"`
	Mode       string              `xml:"mode,attr"`
	Position   string              `xml:"position,attr"`
	Yield      *string             `xml:"yield"`
	Attributes []AttributeOverride `xml:"attribute"`
}

// HasYield reports whether a non-blank <yield> is declared.
func (c Content) HasYield() bool {
	return c.Yield != nil && strings.TrimSpace(*c.Yield) != ""
}

// AttributeOverride overrides one attribute of the generated HTML tag.
type AttributeOverride struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

// Properties is the <properties> block.
type Properties struct {
	Categories []PropertyCategory `xml:"category"`
	Items      []Property         `xml:"property"`
}

// Count returns the number of top-level categories and properties.
func (p Properties) Count() int {
	return len(p.Categories) + len(p.Items)
}

// PropertyCategory groups properties.
type PropertyCategory struct {
	ID         string     `xml:"id,attr"`
	Name       string     `xml:"name,attr"`
	Properties []Property `xml:"property"`
}

// Property is one designer-editable setting.
type Property struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// Content modes.
const (
	ModeDynamic = "dynamic"
	ModeStatic  = "static"
	ModeShare   = "share"
)

// Content types.
const (
	TypeText       = "text"
	TypeBinary     = "binary"
	TypeHTML       = "html"
	TypeJavascript = "javascript"
	TypeCSS        = "css"
	TypeImage      = "image"
	TypeVideo      = "video"
	TypeAudio      = "audio"
	TypeFlash      = "flash"
)

// Content positions.
const (
	PositionNone        = "none"
	PositionHead        = "head"
	PositionPlaceholder = "placeholder"
	PositionFoot        = "foot"
)

// sealedAttributes lists, per content type, the attributes the generator
// owns and a manifest may not override.
var sealedAttributes = map[string]map[string]bool{
	TypeCSS:        {"href": true, "rel": true},
	TypeJavascript: {"src": true},
	TypeImage:      {"src": true},
	TypeVideo:      {"src": true},
	TypeAudio:      {"src": true},
}

// IsSealedAttribute reports whether attr cannot be overridden for contentType.
func IsSealedAttribute(contentType, attr string) bool {
	return sealedAttributes[strings.ToLower(contentType)][strings.ToLower(attr)]
}

// IsTrue interprets an XML boolean attribute value.
func IsTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
