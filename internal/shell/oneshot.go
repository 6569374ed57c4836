package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/AskiaADX/ADXStudio-sub004/internal/branding"
)

// Output captures the result of a one-shot helper run.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OneShot runs the helper executable once per call.
type OneShot struct {
	// Executable defaults to "ADXShell".
	Executable string
	// PrefixArgs are inserted before the command arguments.
	PrefixArgs []string
	// Env is appended to the current process environment.
	Env []string
	// Stdout and Stderr, when set, receive a live copy of the streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the helper with args and captures both streams. A non-zero
// exit is reported through Output.ExitCode, not as an error; errors mean the
// helper could not be started.
func (o *OneShot) Run(ctx context.Context, args ...string) (*Output, error) {
	executable := o.Executable
	if executable == "" {
		executable = branding.ShellName()
	}

	bin, err := exec.LookPath(executable)
	if err != nil {
		return nil, fmt.Errorf("helper executable %q not found: %w", executable, err)
	}

	cmd := exec.CommandContext(ctx, bin, append(append([]string{}, o.PrefixArgs...), args...)...)
	cmd.Env = append(os.Environ(), o.Env...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	if o.Stdout != nil {
		cmd.Stdout = io.MultiWriter(o.Stdout, &stdoutBuf)
	}
	if o.Stderr != nil {
		cmd.Stderr = io.MultiWriter(o.Stderr, &stderrBuf)
	}

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running %s: %w", executable, err)
	}

	return output, nil
}
