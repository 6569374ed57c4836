//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/config"
	"github.com/AskiaADX/ADXStudio-sub004/internal/generator"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/validator"
)

// testEnv holds paths to isolated test directories and fake tools.
type testEnv struct {
	HomeDir    string // ADXUTIL_HOME, holds schemas/
	ProjectDir string // parent of generated projects
	Shell      string // fake ADXShell
	Linter     string // fake xmllint
}

// setupTestEnv creates isolated temp directories, fake helper executables and
// an empty schema tree, and points ADXUTIL_HOME at them. The env vars are
// restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("ADXUTIL_HOME", env.HomeDir)

	for _, typ := range []string{"ADC", "ADP"} {
		writeFile(t, filepath.Join(env.HomeDir, "schemas", typ, "2.1.0", "config.xsd"), "<xs:schema/>\n")
	}

	bin := t.TempDir()
	env.Shell = filepath.Join(bin, "ADXShell")
	writeScript(t, env.Shell, `echo "$@" >> "$0.log"
case "$1" in
test)
  if [ -n "$FAKE_TEST_FAIL" ]; then
    echo "1 of 3 tests failed" >&2
    exit 1
  fi
  echo "3 tests passed"
  ;;
esac
`)
	env.Linter = filepath.Join(bin, "xmllint")
	writeScript(t, env.Linter, `echo "$@" >> "$0.log"
exit 0
`)
	return env
}

// generate scaffolds a project of the given type under env.ProjectDir.
func (env *testEnv) generate(t *testing.T, typ adx.ProjectType, name string) string {
	t.Helper()
	result, err := generator.Generate(generator.Options{
		Type:      typ,
		OutputDir: env.ProjectDir,
		Data:      generator.NewData(name, config.Author{Name: "Jane Doe", Email: "jane@example.com"}),
	})
	if err != nil {
		t.Fatalf("Generate(%s, %s): %v", typ, name, err)
	}
	if len(result.Warnings) > 0 {
		t.Fatalf("Generate warnings: %v", result.Warnings)
	}
	return result.ProjectDir
}

// validatorOptions returns options wired to the fake tools.
func (env *testEnv) validatorOptions(project string, log logger.Logger) validator.Options {
	return validator.Options{
		ProjectPath: project,
		Logger:      log,
		ShellPath:   env.Shell,
		LinterPath:  env.Linter,
		SchemaDir:   filepath.Join(env.HomeDir, "schemas"),
	}
}

// shellCalls returns the argument lines the fake shell received.
func (env *testEnv) shellCalls(t *testing.T) []string {
	t.Helper()
	return readLines(t, env.Shell+".log")
}

// linterCalls returns the argument lines the fake linter received.
func (env *testEnv) linterCalls(t *testing.T) []string {
	t.Helper()
	return readLines(t, env.Linter+".log")
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}
