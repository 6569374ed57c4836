// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	ShellName   string `yaml:"shell_name"`
	LinterName  string `yaml:"linter_name"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or partial.
		defaults = brand{
			CLIName:     "adxutil",
			DisplayName: "ADXUtil",
			Description: "Validate, build and preview ADX components",
			HomeDir:     ".adxutil",
			EnvPrefix:   "ADXUTIL",
			GoModule:    "github.com/AskiaADX/ADXStudio-sub004",
			ShellName:   "ADXShell",
			LinterName:  "xmllint",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "adxutil").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "ADXUtil").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".adxutil").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ADXUTIL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// ShellName returns the default name of the helper executable ("ADXShell").
func ShellName() string { load(); return defaults.ShellName }

// LinterName returns the default name of the XML schema linter ("xmllint").
func LinterName() string { load(); return defaults.LinterName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "ADXUTIL_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
