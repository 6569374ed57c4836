package cli

import (
	"fmt"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/shell"
	"github.com/spf13/cobra"
)

var showOpts shell.ShowOptions

func init() {
	showCmd.Flags().StringVar(&showOpts.Output, "output", "", "Output to render (required)")
	showCmd.Flags().StringVar(&showOpts.Fixture, "fixture", "", "Fixture file to render against (required)")
	showCmd.Flags().StringVar(&showOpts.MasterPage, "masterPage", "", "Master page to render the output into")
	showCmd.Flags().StringVar(&showOpts.Properties, "properties", "", "Property values, as key=value pairs joined by &")
	showCmd.Flags().StringVar(&showOpts.Themes, "themes", "", "Theme values, as key=value pairs joined by &")
	_ = showCmd.MarkFlagRequired("output")
	_ = showCmd.MarkFlagRequired("fixture")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Render an output of an ADX project",
	Long: `Show asks the shell helper to render one output of the project at path
(default: current directory) against a fixture and prints the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := projectPath(args)
		if err != nil {
			return err
		}
		return runShell(cmd, "show", shell.ShowArgs(path, showOpts))
	},
}

// runShell runs the helper once, streaming its output. Anything the helper
// writes to stderr, or a non-zero exit, fails the command.
func runShell(cmd *cobra.Command, name string, args []string) error {
	oneShot := &shell.OneShot{
		Executable: settings.Shell.Path,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	}
	out, err := oneShot.Run(cmd.Context(), args...)
	if err != nil {
		return err
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("%s failed: exit code %d", name, out.ExitCode)
	}
	if strings.TrimSpace(out.Stderr) != "" {
		return fmt.Errorf("%s failed", name)
	}
	return nil
}
