package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/AskiaADX/ADXStudio-sub004/internal/branding"
	"github.com/google/uuid"
)

// Mode selects how the helper process is started.
type Mode string

const (
	// ModeInteractive starts "ADXShell interactive <path>", which prints a
	// readiness banner and then reads commands from stdin.
	ModeInteractive Mode = "interactive"
	// ModeInterview starts "ADXShell startInterview <args...> <path>"; the
	// first command travels in the startup arguments.
	ModeInterview Mode = "interview"
)

// DefaultStallTimeout is how long stderr may stay silent without a sentinel
// before the response is completed as an error.
const DefaultStallTimeout = 500 * time.Millisecond

var (
	// ErrBusy is returned when a command is issued while another one is
	// still waiting for its sentinel.
	ErrBusy = errors.New("shell session is busy")
	// ErrDestroyed is returned by Exec after Destroy.
	ErrDestroyed = errors.New("shell session destroyed")
	// ErrProcessExited is returned when the helper exits mid-response.
	ErrProcessExited = errors.New("shell process exited")
)

// ResponseError carries the stderr text of a failed command.
type ResponseError struct {
	Text string
}

func (e *ResponseError) Error() string {
	if e.Text == "" {
		return "shell command failed"
	}
	return e.Text
}

// Option configures a Session.
type Option func(*Session)

// WithExecutable overrides the helper executable (default "ADXShell").
func WithExecutable(path string) Option {
	return func(s *Session) { s.executable = path }
}

// WithPrefixArgs inserts arguments before the mode arguments. Tests use it
// to re-execute the test binary as a fake helper.
func WithPrefixArgs(args ...string) Option {
	return func(s *Session) { s.prefixArgs = append(s.prefixArgs, args...) }
}

// WithEnv appends KEY=VALUE pairs to the helper's environment.
func WithEnv(env ...string) Option {
	return func(s *Session) { s.env = append(s.env, env...) }
}

// WithStallTimeout overrides DefaultStallTimeout.
func WithStallTimeout(d time.Duration) Option {
	return func(s *Session) { s.stallTimeout = d }
}

// WithMaxResponseSize overrides DefaultMaxResponseSize.
func WithMaxResponseSize(n int) Option {
	return func(s *Session) { s.maxResponse = n }
}

// Session owns one helper process for a project. The process is started by
// the first Exec and reused until Destroy. Only one command may be in flight.
type Session struct {
	ID          uuid.UUID
	ProjectPath string
	Mode        Mode

	executable   string
	prefixArgs   []string
	env          []string
	stallTimeout time.Duration
	maxResponse  int

	busy sync.Mutex

	mu        sync.Mutex
	proc      *process
	destroyed bool
}

// NewSession creates an unstarted session for projectPath.
func NewSession(projectPath string, mode Mode, opts ...Option) *Session {
	s := &Session{
		ID:           uuid.New(),
		ProjectPath:  projectPath,
		Mode:         mode,
		executable:   branding.ShellName(),
		stallTimeout: DefaultStallTimeout,
		maxResponse:  DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Started reports whether the helper process is running.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc != nil
}

// Pid returns the helper's process id, or 0 when not started.
func (s *Session) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return 0
	}
	return s.proc.cmd.Process.Pid
}

// Exec sends command to the helper and returns its stdout response. A
// response framed on stderr is returned as a *ResponseError.
func (s *Session) Exec(ctx context.Context, command string) (string, error) {
	if !s.busy.TryLock() {
		return "", ErrBusy
	}
	defer s.busy.Unlock()

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return "", ErrDestroyed
	}
	p := s.proc
	s.mu.Unlock()

	if p == nil {
		var err error
		p, err = s.start(ctx, command)
		if err != nil {
			return "", err
		}
	} else {
		p.drain()
		if err := p.send(command); err != nil {
			s.forget(p)
			return "", err
		}
	}

	return s.await(ctx, p)
}

// start spawns the helper for the first command. In interactive mode the
// banner chunk is consumed before the command is written.
func (s *Session) start(ctx context.Context, command string) (*process, error) {
	var args []string
	switch s.Mode {
	case ModeInterview:
		args = append([]string{"startInterview"}, SplitCommand(command)...)
		args = append(args, s.ProjectPath)
	default:
		args = []string{"interactive", s.ProjectPath}
	}

	p, err := spawn(s.executable, append(append([]string{}, s.prefixArgs...), args...), s.env)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.ID, err)
	}

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		_ = p.kill()
		return nil, ErrDestroyed
	}
	s.proc = p
	s.mu.Unlock()

	if s.Mode == ModeInterview {
		return p, nil
	}

	select {
	case <-ctx.Done():
		s.forget(p)
		return nil, ctx.Err()
	case _, ok := <-p.stdout:
		if !ok {
			s.forget(p)
			return nil, fmt.Errorf("%w before printing its banner", s.exited())
		}
	}

	p.drain()
	if err := p.send(command); err != nil {
		s.forget(p)
		return nil, err
	}
	return p, nil
}

// await collects stdout and stderr until one of them is framed. A response
// abandoned before its sentinel leaves the helper mid-frame, so the process is
// dropped and the next command starts a fresh one.
func (s *Session) await(ctx context.Context, p *process) (string, error) {
	out := newFrame(s.maxResponse)
	errOut := newFrame(s.maxResponse)

	stdout, stderr := p.stdout, p.stderr
	var stall *time.Timer
	var stallC <-chan time.Time
	defer func() {
		if stall != nil {
			stall.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.forget(p)
			return "", ctx.Err()

		case chunk, ok := <-stdout:
			if !ok {
				s.forget(p)
				if errOut.empty() {
					return "", s.exited()
				}
				return "", fmt.Errorf("%w: %s", s.exited(), errOut.text())
			}
			done, err := out.write(chunk)
			if err != nil {
				s.forget(p)
				return "", err
			}
			if done {
				return out.text(), nil
			}

		case chunk, ok := <-stderr:
			if !ok {
				stderr = nil
				continue
			}
			done, err := errOut.write(chunk)
			if err != nil {
				s.forget(p)
				return "", err
			}
			if done {
				return "", &ResponseError{Text: errOut.text()}
			}
			if stall == nil {
				stall = time.NewTimer(s.stallTimeout)
				stallC = stall.C
			} else {
				stall.Reset(s.stallTimeout)
			}

		case <-stallC:
			// The helper may still write its sentinel later.
			s.forget(p)
			errOut.close()
			return "", &ResponseError{Text: errOut.text()}
		}
	}
}

// exited wraps ErrProcessExited with the session id.
func (s *Session) exited() error {
	return fmt.Errorf("session %s: %w", s.ID, ErrProcessExited)
}

// forget clears the process handle after the helper died on its own.
func (s *Session) forget(p *process) {
	s.mu.Lock()
	if s.proc == p {
		s.proc = nil
	}
	s.mu.Unlock()
	_ = p.kill()
}

// Destroy kills the helper and clears the handle. It is safe to call on a
// session that never started and to call more than once.
func (s *Session) Destroy() error {
	s.mu.Lock()
	p := s.proc
	s.proc = nil
	s.destroyed = true
	s.mu.Unlock()

	if p == nil {
		return nil
	}
	return p.kill()
}

// process is a running helper with one pump goroutine per output stream.
type process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout chan []byte
	stderr chan []byte

	quit     chan struct{}
	done     chan struct{}
	killOnce sync.Once
	killErr  error
}

func spawn(executable string, args []string, env []string) (*process, error) {
	cmd := exec.Command(executable, args...)
	cmd.Env = append(os.Environ(), env...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening shell stdin: %w", err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening shell stdout: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("opening shell stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", executable, err)
	}

	p := &process{
		cmd:    cmd,
		stdin:  stdin,
		stdout: make(chan []byte, 64),
		stderr: make(chan []byte, 64),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	var pumps sync.WaitGroup
	pumps.Add(2)
	go func() { defer pumps.Done(); p.pump(stdoutPipe, p.stdout) }()
	go func() { defer pumps.Done(); p.pump(stderrPipe, p.stderr) }()
	go func() {
		// Wait closes the pipes, so it must follow the last read.
		pumps.Wait()
		_ = cmd.Wait()
		close(p.done)
	}()

	return p, nil
}

func (p *process) pump(r io.Reader, ch chan<- []byte) {
	defer close(ch)
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case ch <- bytes.Clone(buf[:n]):
			case <-p.quit:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// drain drops chunks left over from a previous frame.
func (p *process) drain() {
	for {
		select {
		case _, ok := <-p.stdout:
			if !ok {
				return
			}
		case _, ok := <-p.stderr:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (p *process) send(command string) error {
	if _, err := io.WriteString(p.stdin, command+"\n"); err != nil {
		return fmt.Errorf("writing to shell: %w", err)
	}
	return nil
}

func (p *process) kill() error {
	p.killOnce.Do(func() {
		close(p.quit)
		_ = p.stdin.Close()
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			p.killErr = fmt.Errorf("killing shell process: %w", err)
		}
		<-p.done
	})
	return p.killErr
}
