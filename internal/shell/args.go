package shell

import (
	"strings"
)

// ShowOptions are the arguments of "ADXShell show".
type ShowOptions struct {
	Output     string
	Fixture    string
	MasterPage string
	Properties string
	Themes     string
}

// ShowArgs builds:
//
//	show -output:<o> -fixture:<f> [-masterPage:<p>] [-properties:<p>] [-themes:<t>] <path>
func ShowArgs(projectPath string, o ShowOptions) []string {
	args := []string{"show", "-output:" + o.Output, "-fixture:" + o.Fixture}
	args = appendToken(args, "masterPage", o.MasterPage)
	args = appendToken(args, "properties", o.Properties)
	args = appendToken(args, "themes", o.Themes)
	return append(args, projectPath)
}

// ImportOptions are the arguments of "ADXShell import".
type ImportOptions struct {
	SourcePath      string
	TargetName      string
	CurrentQuestion string
}

// ImportArgs builds:
//
//	import -sourcePath:<p> -targetName:<n> -currentQuestion:<q> <path>
func ImportArgs(projectPath string, o ImportOptions) []string {
	return []string{
		"import",
		"-sourcePath:" + o.SourcePath,
		"-targetName:" + o.TargetName,
		"-currentQuestion:" + o.CurrentQuestion,
		projectPath,
	}
}

// TestOptions are the flags of "ADXShell test".
type TestOptions struct {
	Auto bool
	HTML bool
}

// TestArgs builds the one-shot form: test [--auto] [--html] <path>
func TestArgs(projectPath string, o TestOptions) []string {
	return append(testTokens(o), projectPath)
}

// TestCommand builds the session form, where the project path is implied
// by the session: test [--auto] [--html]
func TestCommand(o TestOptions) string {
	return strings.Join(testTokens(o), " ")
}

func testTokens(o TestOptions) []string {
	args := []string{"test"}
	if o.Auto {
		args = append(args, "--auto")
	}
	if o.HTML {
		args = append(args, "--html")
	}
	return args
}

// InterviewOptions are the key/value tokens understood by startInterview and
// by subsequent interview commands.
type InterviewOptions struct {
	Fixture    string
	Emulation  string
	Properties string
	Parameters string
	Themes     string
}

// Command renders the options as a command line, quoting tokens that hold
// spaces so that SplitCommand restores them.
func (o InterviewOptions) Command() string {
	var args []string
	args = appendToken(args, "fixture", o.Fixture)
	args = appendToken(args, "emulation", o.Emulation)
	args = appendToken(args, "properties", o.Properties)
	args = appendToken(args, "parameters", o.Parameters)
	args = appendToken(args, "themes", o.Themes)
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			args[i] = `"` + a + `"`
		}
	}
	return strings.Join(args, " ")
}

func appendToken(args []string, key, value string) []string {
	if value == "" {
		return args
	}
	return append(args, "-"+key+":"+value)
}

// SplitCommand splits a command line on whitespace, keeping double-quoted
// runs together and dropping the quotes.
func SplitCommand(command string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range command {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case !quoted && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, cur.String())
	}
	return args
}
