package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyAuthorName    = "author.name"
	KeyAuthorEmail   = "author.email"
	KeyAuthorCompany = "author.company"
	KeyAuthorWebsite = "author.website"
	KeyShellPath     = "shell.path"
	KeyLinterPath    = "linter.path"
	KeySchemaDir     = "schema.dir"
	KeyOutputMode    = "output.mode"
	KeyPublishURL    = "publish.url"
	KeyPublishToken  = "publish.token"
)

// Keys lists every setting accepted by Set, in display order.
var Keys = []string{
	KeyAuthorName,
	KeyAuthorEmail,
	KeyAuthorCompany,
	KeyAuthorWebsite,
	KeyShellPath,
	KeyLinterPath,
	KeySchemaDir,
	KeyOutputMode,
	KeyPublishURL,
	KeyPublishToken,
}

// Settings is the typed view of the config file merged with environment
// overrides (ADXUTIL_SHELL_PATH, ADXUTIL_AUTHOR_NAME, ...).
type Settings struct {
	Author  Author  `mapstructure:"author"`
	Shell   Tool    `mapstructure:"shell"`
	Linter  Tool    `mapstructure:"linter"`
	Schema  Schema  `mapstructure:"schema"`
	Output  Output  `mapstructure:"output"`
	Publish Publish `mapstructure:"publish"`
}

// Author identifies who generates and publishes projects.
type Author struct {
	Name    string `mapstructure:"name"`
	Email   string `mapstructure:"email"`
	Company string `mapstructure:"company"`
	Website string `mapstructure:"website"`
}

// Tool locates an external executable.
type Tool struct {
	Path string `mapstructure:"path"`
}

// Schema locates the XSD files used by the schema linter.
type Schema struct {
	Dir string `mapstructure:"dir"`
}

// Output controls how log lines are printed ("text" or "html").
type Output struct {
	Mode string `mapstructure:"mode"`
}

// Publish configures the upload endpoint for built archives.
type Publish struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// Dir returns the path to the config directory (~/.adxutil/), or the value
// of ADXUTIL_HOME when set.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.adxutil/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from the config file and environment and returns the
// resulting settings. A missing config file is not an error.
func Load() (*Settings, error) {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", FilePath(), err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return &s, nil
}

func setDefaults() {
	viper.SetDefault(KeyAuthorName, "")
	viper.SetDefault(KeyAuthorEmail, "")
	viper.SetDefault(KeyAuthorCompany, "")
	viper.SetDefault(KeyAuthorWebsite, "")
	viper.SetDefault(KeyShellPath, branding.ShellName())
	viper.SetDefault(KeyLinterPath, branding.LinterName())
	viper.SetDefault(KeySchemaDir, filepath.Join(Dir(), "schemas"))
	viper.SetDefault(KeyOutputMode, "text")
	viper.SetDefault(KeyPublishURL, "")
	viper.SetDefault(KeyPublishToken, "")
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
