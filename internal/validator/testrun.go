package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/sequence"
	"github.com/AskiaADX/ADXStudio-sub004/internal/shell"
)

func (r *run) autoTestRun(ctx context.Context, _ *sequence.Tail) error {
	return r.runTests(ctx, shell.TestOptions{Auto: true})
}

func (r *run) unitTestRun(ctx context.Context, _ *sequence.Tail) error {
	return r.runTests(ctx, shell.TestOptions{})
}

// runTests is a no-op without a unit tests directory. Failing tests are
// warnings; only a shell that cannot run is fatal.
func (r *run) runTests(ctx context.Context, opts shell.TestOptions) error {
	info, err := os.Stat(filepath.Join(r.opts.ProjectPath, UnitTestsDir))
	if err != nil || !info.IsDir() {
		return nil
	}

	kind := "Unit tests"
	if opts.Auto {
		kind = "Auto tests"
	}

	if r.opts.Session != nil {
		out, err := r.opts.Session.Exec(ctx, shell.TestCommand(opts))
		var respErr *shell.ResponseError
		switch {
		case errors.As(err, &respErr):
			r.warn("%s failed: %s", kind, respErr.Text)
			return nil
		case err != nil:
			return fmt.Errorf("%w: %v", ErrTestRun, err)
		}
		r.testsPassed(kind, out)
		return nil
	}

	oneShot := &shell.OneShot{
		Executable: r.opts.ShellPath,
		PrefixArgs: r.opts.ShellArgs,
		Env:        r.opts.ShellEnv,
	}
	out, err := oneShot.Run(ctx, shell.TestArgs(r.opts.ProjectPath, opts)...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTestRun, err)
	}
	if stderr := strings.TrimSpace(out.Stderr); stderr != "" {
		r.warn("%s failed: %s", kind, stderr)
		return nil
	}
	if out.ExitCode != 0 {
		r.warn("%s failed: exit code %d", kind, out.ExitCode)
		return nil
	}
	r.testsPassed(kind, out.Stdout)
	return nil
}

func (r *run) testsPassed(kind, output string) {
	if output = strings.TrimSpace(output); output != "" {
		r.log.Message("%s", output)
	}
	r.success("%s ok", kind)
}
