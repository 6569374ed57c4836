package adx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ProjectType is the kind of ADX project, derived from the manifest root.
type ProjectType string

const (
	// TypeADC is a component project (root element <control>).
	TypeADC ProjectType = "adc"
	// TypeADP is a page project (root element <page>).
	TypeADP ProjectType = "adp"
)

// ErrUnknownProjectType is returned when the root element is neither
// <control> nor <page>.
var ErrUnknownProjectType = errors.New("unknown project type")

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes config.xml content.
func ParseManifest(data []byte) (*Manifest, error) {
	// A UTF-8 BOM is common in manifests saved by Windows editors.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var m Manifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Type returns the project type from the root element.
func (m *Manifest) Type() (ProjectType, error) {
	switch m.XMLName.Local {
	case "control":
		return TypeADC, nil
	case "page":
		return TypeADP, nil
	default:
		return "", fmt.Errorf("%w: root element <%s>", ErrUnknownProjectType, m.XMLName.Local)
	}
}

// SchemaVersion parses the root version attribute, defaulting to
// DefaultSchemaVersion when absent.
func (m *Manifest) SchemaVersion() (*semver.Version, error) {
	raw := strings.TrimSpace(m.Version)
	if raw == "" {
		raw = DefaultSchemaVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid schema version %q: %w", raw, err)
	}
	return v, nil
}

// IsLegacyNamespace reports whether the root uses the pre-versioned namespace.
func (m *Manifest) IsLegacyNamespace() bool {
	return m.XMLName.Space == LegacyNamespace
}

// Name returns the trimmed <info><name>.
func (m *Manifest) Name() string {
	return strings.TrimSpace(m.Info.Name)
}

// readFile reads a file and returns a descriptive error on failure.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest file not found: %s", path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return data, nil
}
