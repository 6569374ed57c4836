package sequence

import (
	"context"
	"fmt"
)

// Step is one named unit of work. Run receives the not-yet-reached tail of
// the sequence so it can drop later steps before returning.
type Step struct {
	Name string
	Run  func(ctx context.Context, tail *Tail) error
}

// Runner executes steps in order. A Runner is single-use.
type Runner struct {
	steps      []Step
	cursor     int
	successes  int
	started    bool
	onStep     func(name string)
	onComplete func(error)
}

// New creates a Runner over a copy of steps.
func New(steps ...Step) *Runner {
	s := make([]Step, len(steps))
	copy(s, steps)
	return &Runner{steps: s, cursor: -1}
}

// OnStep registers a hook called with each step's name before it runs.
func (r *Runner) OnStep(fn func(name string)) { r.onStep = fn }

// OnComplete registers the completion callback. It fires exactly once per
// Run with the aborting error, or nil after the last step.
func (r *Runner) OnComplete(fn func(error)) { r.onComplete = fn }

// Remove drops steps by name before the run starts. Names that are not
// present are ignored. It returns the number of steps removed.
func (r *Runner) Remove(names ...string) int {
	if r.started {
		return 0
	}
	return r.removeAfter(-1, names)
}

// Run executes the steps. The first step error stops the sequence and is
// returned; context cancellation between steps stops it as well.
func (r *Runner) Run(ctx context.Context) (err error) {
	if r.started {
		return fmt.Errorf("sequence already run")
	}
	r.started = true

	defer func() {
		if r.onComplete != nil {
			r.onComplete(err)
		}
	}()

	for r.cursor = 0; r.cursor < len(r.steps); r.cursor++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := r.steps[r.cursor]
		if r.onStep != nil {
			r.onStep(step.Name)
		}
		if err := step.Run(ctx, &Tail{r: r}); err != nil {
			return err
		}
		r.successes++
	}
	return nil
}

// Successes returns the number of steps that completed without error.
func (r *Runner) Successes() int { return r.successes }

// Planned returns the current length of the sequence.
func (r *Runner) Planned() int { return len(r.steps) }

// Position returns the index of the step being run, or -1 before Run.
func (r *Runner) Position() int { return r.cursor }

// Names returns the current step names in order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.Name
	}
	return names
}

func (r *Runner) removeAfter(pos int, names []string) int {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	kept := r.steps[:pos+1]
	removed := 0
	for _, s := range r.steps[pos+1:] {
		if drop[s.Name] {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.steps = kept
	return removed
}

// Tail is the mutation capability handed to a running step.
type Tail struct {
	r *Runner
}

// Remove drops the named steps that come after the current one.
func (t *Tail) Remove(names ...string) int {
	return t.r.removeAfter(t.r.cursor, names)
}

// Planned returns the current length of the whole sequence.
func (t *Tail) Planned() int { return t.r.Planned() }

// Remaining returns the names of the steps after the current one.
func (t *Tail) Remaining() []string {
	return t.r.Names()[t.r.cursor+1:]
}
