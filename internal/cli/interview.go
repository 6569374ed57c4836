package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/shell"
	"github.com/spf13/cobra"
)

var interviewOpts shell.InterviewOptions

func init() {
	interviewCmd.Flags().StringVar(&interviewOpts.Fixture, "fixture", "", "Fixture file the interview runs on")
	interviewCmd.Flags().StringVar(&interviewOpts.Emulation, "emulation", "", "Emulation file used to pre-fill answers")
	interviewCmd.Flags().StringVar(&interviewOpts.Properties, "properties", "", "Property values, as key=value pairs joined by &")
	interviewCmd.Flags().StringVar(&interviewOpts.Parameters, "parameters", "", "Interview parameters, as key=value pairs joined by &")
	interviewCmd.Flags().StringVar(&interviewOpts.Themes, "themes", "", "Theme values, as key=value pairs joined by &")
	rootCmd.AddCommand(interviewCmd)
}

var interviewCmd = &cobra.Command{
	Use:   "interview [path]",
	Short: "Run an interactive interview against an ADX project",
	Long: `Interview starts the shell helper in interview mode for the project at path
(default: current directory), then sends each line read from stdin as a
command and prints the response. Type "exit" or send EOF to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := projectPath(args)
		if err != nil {
			return err
		}

		session := shell.NewSession(path, shell.ModeInterview, shell.WithExecutable(settings.Shell.Path))
		defer session.Destroy()

		repl := &interviewREPL{cmd: cmd, session: session, log: logger.Default()}
		if err := repl.exec(interviewOpts.Command()); err != nil {
			return err
		}
		return repl.loop()
	},
}

type interviewREPL struct {
	cmd     *cobra.Command
	session *shell.Session
	log     logger.Logger
}

func (r *interviewREPL) loop() error {
	scanner := bufio.NewScanner(r.cmd.InOrStdin())
	for {
		fmt.Fprint(r.cmd.ErrOrStderr(), "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := r.exec(line); err != nil {
			return err
		}
	}
}

// exec sends one command. Failed commands are logged and the session goes
// on; only a broken session ends the loop.
func (r *interviewREPL) exec(command string) error {
	out, err := r.session.Exec(r.cmd.Context(), command)
	var respErr *shell.ResponseError
	switch {
	case errors.As(err, &respErr):
		r.log.Error("%s", respErr.Text)
		return nil
	case err != nil:
		return err
	}
	if out != "" {
		fmt.Fprintln(r.cmd.OutOrStdout(), out)
	}
	return nil
}
