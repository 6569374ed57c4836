package validator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/shell"
)

// TestHelperProcess plays ADXShell for the test stages.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}

	switch {
	case len(args) > 0 && args[0] == "test":
		if os.Getenv("FAKE_TEST_FAIL") == "1" {
			fmt.Fprintln(os.Stderr, "1 of 3 tests failed")
			os.Exit(1)
		}
		fmt.Println("3 tests passed")
		os.Exit(0)
	case len(args) > 0 && args[0] == "interactive":
		fmt.Println("ADXShell ready")
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			switch scanner.Text() {
			case "test --auto":
				fmt.Println("auto tests passed\n" + shell.Sentinel)
			default:
				fmt.Fprintln(os.Stderr, "unit test failed\n"+shell.Sentinel)
			}
		}
		os.Exit(0)
	}
	os.Exit(2)
}

func shellOptions(env ...string) Options {
	return Options{
		ShellPath: os.Args[0],
		ShellArgs: []string{"-test.run=TestHelperProcess", "--"},
		ShellEnv:  append([]string{"GO_WANT_HELPER_PROCESS=1"}, env...),
	}
}

// fakeLinter writes an executable that records its arguments next to
// itself and exits with code.
func fakeLinter(t *testing.T, code int, stderr string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake linter is a shell script")
	}
	path := filepath.Join(t.TempDir(), "xmllint")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > \"$0.args\"\n"
	if stderr != "" {
		script += fmt.Sprintf("echo %q >&2\n", stderr)
	}
	script += fmt.Sprintf("exit %d\n", code)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func linterArgs(t *testing.T, linter string) []string {
	t.Helper()
	data, err := os.ReadFile(linter + ".args")
	if err != nil {
		t.Fatalf("linter was not called: %v", err)
	}
	return strings.Fields(string(data))
}

// manifest renders a config.xml from parts.
type manifest struct {
	root        string
	namespace   string
	version     string
	info        string
	constraints string
	outputs     string
	properties  string
}

func (m manifest) String() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(&b, "<%s", m.root)
	if m.namespace != "" {
		fmt.Fprintf(&b, ` xmlns="%s"`, m.namespace)
	}
	if m.version != "" {
		fmt.Fprintf(&b, ` version="%s"`, m.version)
	}
	b.WriteString(">\n  <info>\n" + m.info + "\n")
	if m.constraints != "" {
		b.WriteString("    <constraints>\n" + m.constraints + "\n    </constraints>\n")
	}
	b.WriteString("  </info>\n  <outputs>\n" + m.outputs + "\n  </outputs>\n")
	if m.properties != "" {
		b.WriteString("  <properties>\n" + m.properties + "\n  </properties>\n")
	}
	fmt.Fprintf(&b, "</%s>\n", m.root)
	return b.String()
}

const (
	defaultConstraints = `      <constraint on="questions" single="true" multiple="true"/>
      <constraint on="controls" responseblock="true"/>`

	defaultOutputs = `    <output id="main">
      <condition><![CDATA[Browser.Support("Javascript")]]></condition>
      <content fileName="default.html" type="html" mode="dynamic" position="placeholder"/>
      <content fileName="demo.js" type="javascript" mode="static" position="foot"/>
    </output>
    <output id="fallback">
      <content fileName="fallback.html" type="html" mode="dynamic" position="placeholder"/>
    </output>`

	defaultProperties = `    <property id="color" name="Color" type="color"/>`

	validMasterPage = `<html><head><askia-head/></head>
<body>
<askia-form>
<askia-questions/>
</askia-form>
<askia-foot/>
</body></html>`
)

func validADC() manifest {
	return manifest{
		root:        "control",
		namespace:   "http://www.askia.com/2.1.0/ADCSchema",
		version:     "2.1.0",
		info:        "    <name>demo</name>",
		constraints: defaultConstraints,
		outputs:     defaultOutputs,
		properties:  defaultProperties,
	}
}

func validADP() manifest {
	return manifest{
		root:       "page",
		namespace:  "http://www.askia.com/2.0.0/ADPSchema",
		version:    "2.0.0",
		info:       "    <name>page</name>",
		outputs:    `    <output id="main" masterPage="Default.html"/>`,
		properties: defaultProperties,
	}
}

var defaultFiles = map[string]string{
	"resources/dynamic/default.html":  "<div/>",
	"resources/dynamic/fallback.html": "<div/>",
	"resources/static/demo.js":        "",
}

// newProject writes config.xml and files under a fresh directory. A file
// named with a trailing slash is created as a directory.
func newProject(t *testing.T, m manifest, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "demo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.xml"), []byte(m.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func withFiles(extra map[string]string) map[string]string {
	files := make(map[string]string, len(defaultFiles)+len(extra))
	for k, v := range defaultFiles {
		files[k] = v
	}
	for k, v := range extra {
		files[k] = v
	}
	return files
}

// newValidator wires a recorder logger and a passing fake linter.
func newValidator(t *testing.T, dir string, opts Options) (*Validator, *logger.Recorder) {
	t.Helper()
	rec := logger.NewRecorder()
	opts.ProjectPath = dir
	opts.Logger = rec
	if opts.LinterPath == "" {
		opts.LinterPath = fakeLinter(t, 0, "")
	}
	if opts.SchemaDir == "" {
		opts.SchemaDir = filepath.Join(t.TempDir(), "schemas")
	}
	return New(opts), rec
}
