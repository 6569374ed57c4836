package validator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/sequence"
)

type marker struct {
	label   string
	pattern *regexp.Regexp
}

var (
	markerHead      = marker{"<askia-head/>", regexp.MustCompile(`(?i)<askia-head\s*/>`)}
	markerFormOpen  = marker{"<askia-form>", regexp.MustCompile(`(?i)<askia-form\s*>`)}
	markerFormClose = marker{"</askia-form>", regexp.MustCompile(`(?i)</askia-form\s*>`)}
	markerQuestions = marker{"<askia-questions/>", regexp.MustCompile(`(?i)<askia-questions\s*/>`)}
	markerFoot      = marker{"<askia-foot/>", regexp.MustCompile(`(?i)<askia-foot\s*/>`)}

	masterPageMarkers = []marker{markerHead, markerFormOpen, markerFormClose, markerQuestions, markerFoot}
)

// masterPageCheck stops at the first invalid master page.
func (r *run) masterPageCheck(context.Context, *sequence.Tail) error {
	dir := filepath.Join(r.opts.ProjectPath, adx.ResourcesDir, string(adx.AreaDynamic))
	for _, page := range r.masterPages {
		data, err := os.ReadFile(filepath.Join(dir, page))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMasterPage, page, err)
		}
		if err := CheckMasterPage(data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMasterPage, page, err)
		}
	}
	r.success("Master pages ok")
	return nil
}

// CheckMasterPage requires each askia marker exactly once, with the
// questions marker inside the form.
func CheckMasterPage(data []byte) error {
	for _, m := range masterPageMarkers {
		switch n := len(m.pattern.FindAllIndex(data, -1)); n {
		case 1:
		case 0:
			return fmt.Errorf("missing %s", m.label)
		default:
			return fmt.Errorf("%s found %d times, expected once", m.label, n)
		}
	}

	open := markerFormOpen.pattern.FindIndex(data)[0]
	closing := markerFormClose.pattern.FindIndex(data)[0]
	questions := markerQuestions.pattern.FindIndex(data)[0]
	if questions < open || questions > closing {
		return fmt.Errorf("%s must be between %s and %s", markerQuestions.label, markerFormOpen.label, markerFormClose.label)
	}
	return nil
}
