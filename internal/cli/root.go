package cli

import (
	"errors"
	"path/filepath"

	"github.com/AskiaADX/ADXStudio-sub004/internal/branding"
	"github.com/AskiaADX/ADXStudio-sub004/internal/config"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/validator"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	htmlOutput bool
	settings   = &config.Settings{}
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` validates, builds and previews ADX projects (ADC controls and
ADP pages), driving the ` + branding.ShellName() + ` helper for tests and rendering.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load()
		if err != nil {
			return err
		}
		settings = s

		mode := logger.ParsePrintMode(s.Output.Mode)
		if htmlOutput {
			mode = logger.ModeHTML
		}
		logger.SetDefault(logger.New(cmd.ErrOrStderr(), logger.WithMode(mode)))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&htmlOutput, "html", false, "Print log lines as HTML")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !alreadyReported(err) {
		logger.Default().Error("%v", err)
	}
	return err
}

// alreadyReported reports whether err was logged by the validator.
func alreadyReported(err error) bool {
	var stageErr *validator.StageError
	return errors.As(err, &stageErr)
}

// projectPath resolves the optional [path] argument, defaulting to the
// working directory.
func projectPath(args []string) (string, error) {
	p := "."
	if len(args) > 0 {
		p = args[0]
	}
	return filepath.Abs(p)
}

// validatorOptions returns the validator options every command starts from.
func validatorOptions(path string) validator.Options {
	return validator.Options{
		ProjectPath: path,
		Logger:      logger.Default(),
		ShellPath:   settings.Shell.Path,
		LinterPath:  settings.Linter.Path,
		SchemaDir:   settings.Schema.Dir,
	}
}
