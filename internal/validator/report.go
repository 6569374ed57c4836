package validator

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fatal error classes. Stage errors wrap one of these.
var (
	ErrNoSuchDirectory  = errors.New("no such file or directory")
	ErrNoConfigFile     = errors.New("no config file")
	ErrDeniedExtension  = errors.New("forbidden file extension")
	ErrInvalidManifest  = errors.New("invalid manifest")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrConstraint       = errors.New("invalid constraint")
	ErrNoResources      = errors.New("no resources directory")
	ErrFileNotFound     = errors.New("cannot find file in directory")
	ErrNoDynamicFile    = errors.New("needs at least one dynamic file")
	ErrInvalidContent   = errors.New("invalid content")
	ErrInvalidOutput    = errors.New("invalid output")
	ErrMasterPage       = errors.New("invalid master page")
	ErrTestRun          = errors.New("cannot run tests")
)

// StageError is the fatal error that aborted a run.
type StageError struct {
	Stage StageName
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Report counts what happened during one run.
type Report struct {
	StartTime     time.Time
	EndTime       time.Time
	StagesPlanned int
	StagesRun     int
	Successes     int
	Warnings      int
	Errors        int
}

// Duration returns the elapsed time of the run.
func (r *Report) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

var printer = message.NewPrinter(language.English)

// Summary renders the counters on one line.
func (r *Report) Summary() string {
	return printer.Sprintf("%d/%d stages run, %d success(es), %d warning(s), %d error(s) in %v",
		r.StagesRun, r.StagesPlanned, r.Successes, r.Warnings, r.Errors,
		r.Duration().Round(time.Millisecond))
}
