package validator

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/sequence"
)

var (
	javascriptGuard = regexp.MustCompile(`(?i)browser\.support\(\s*"javascript"\s*\)`)
	flashGuard      = regexp.MustCompile(`(?i)browser\.support\(\s*"flash"\s*\)`)
)

// contentCounts tallies the contents of one output.
type contentCounts struct {
	dynamic    int
	javascript int
	flash      int
}

func (r *run) outputsCheck(context.Context, *sequence.Tail) error {
	byCondition := map[string]string{}
	emptyConditions := 0
	hasFallback := false
	seenMasterPages := map[string]bool{}
	r.masterPages = nil

	for _, out := range r.manifest.Outputs.Items {
		if r.projectType == adx.TypeADP {
			page, err := r.resolveMasterPage(out)
			if err != nil {
				return err
			}
			if !seenMasterPages[page] {
				seenMasterPages[page] = true
				r.masterPages = append(r.masterPages, page)
			}
		}

		if out.DefaultGeneration != nil && !r.version.Equal(baseSchemaVersion) {
			r.warn("The defaultGeneration attribute of output %q is deprecated", out.ID)
		}

		cond := out.ConditionText()
		if cond == "" {
			emptyConditions++
			if emptyConditions > 1 {
				return fmt.Errorf("%w: more than one output without condition (%q)", ErrInvalidOutput, out.ID)
			}
		} else {
			if prev, ok := byCondition[cond]; ok {
				r.warn("Outputs %q and %q have the same condition", prev, out.ID)
			}
			byCondition[cond] = out.ID
		}

		counts, err := r.checkContents(out)
		if err != nil {
			return err
		}

		if r.projectType != adx.TypeADP && !out.IsDefaultGeneration() && counts.dynamic == 0 {
			return fmt.Errorf("output %q %w", out.ID, ErrNoDynamicFile)
		}
		if counts.javascript > 0 && !javascriptGuard.MatchString(cond) {
			r.warn(`Output %q uses javascript without a Browser.Support("javascript") condition`, out.ID)
		}
		if counts.flash > 0 && !flashGuard.MatchString(cond) {
			r.warn(`Output %q uses flash without a Browser.Support("flash") condition`, out.ID)
		}

		if out.IsDefaultGeneration() || counts.javascript == 0 {
			hasFallback = true
		}
	}

	if !hasFallback {
		r.warn("No output can be used as an HTML fallback")
	}
	r.success("Outputs ok")
	return nil
}

func (r *run) resolveMasterPage(out adx.Output) (string, error) {
	if out.MasterPage == nil || strings.TrimSpace(*out.MasterPage) == "" {
		return "", fmt.Errorf("%w: output %q has no masterPage", ErrFileNotFound, out.ID)
	}
	name := strings.TrimSpace(*out.MasterPage)
	actual, ok := r.index.Lookup(adx.AreaDynamic, name)
	if !ok {
		return "", fmt.Errorf("%w: %s in %s", ErrFileNotFound, name, filepath.Join(adx.ResourcesDir, string(adx.AreaDynamic)))
	}
	return actual, nil
}

func (r *run) checkContents(out adx.Output) (contentCounts, error) {
	var counts contentCounts

	for _, c := range out.Contents {
		typ := strings.ToLower(c.Type)
		mode := strings.ToLower(c.Mode)

		if mode == adx.ModeDynamic {
			counts.dynamic++
		}
		switch typ {
		case adx.TypeJavascript:
			counts.javascript++
		case adx.TypeFlash:
			counts.flash++
		}

		if r.projectType == adx.TypeADP {
			continue
		}
		if err := r.checkContent(out, c, typ, mode); err != nil {
			return counts, err
		}
	}
	return counts, nil
}

func (r *run) checkContent(out adx.Output, c adx.Content, typ, mode string) error {
	if typ == adx.TypeBinary && mode == adx.ModeDynamic {
		return fmt.Errorf("%w: binary content %q of output %q cannot use the dynamic mode", ErrInvalidContent, c.FileName, out.ID)
	}
	if typ == adx.TypeBinary && strings.ToLower(c.Position) != adx.PositionNone && !c.HasYield() {
		return fmt.Errorf("%w: binary content %q of output %q needs a yield when its position is not none", ErrInvalidContent, c.FileName, out.ID)
	}

	if !r.index.Exists {
		return fmt.Errorf("%w: output %q declares contents", ErrNoResources, out.ID)
	}
	area, ok := adx.AreaForMode(mode)
	if !ok {
		return fmt.Errorf("%w: content %q of output %q has an unknown mode %q", ErrInvalidContent, c.FileName, out.ID, c.Mode)
	}
	if _, ok := r.index.Lookup(area, c.FileName); !ok {
		return fmt.Errorf("%w: %s in %s", ErrFileNotFound, c.FileName, filepath.Join(adx.ResourcesDir, string(area)))
	}

	return r.checkAttributes(out, c, typ, mode)
}

func (r *run) checkAttributes(out adx.Output, c adx.Content, typ, mode string) error {
	if len(c.Attributes) == 0 {
		return nil
	}

	switch {
	case typ == adx.TypeText || typ == adx.TypeBinary || typ == adx.TypeHTML || typ == adx.TypeFlash:
		r.warn("Attributes of %s content %q in output %q are ignored", typ, c.FileName, out.ID)
		return nil
	case mode == adx.ModeDynamic:
		r.warn("Attributes of dynamic content %q in output %q are ignored", c.FileName, out.ID)
		return nil
	case c.HasYield():
		r.warn("Attributes of content %q in output %q are ignored because it has a yield", c.FileName, out.ID)
		return nil
	}

	seen := map[string]bool{}
	for _, a := range c.Attributes {
		name := strings.ToLower(strings.TrimSpace(a.Name))
		if adx.IsSealedAttribute(typ, name) {
			return fmt.Errorf("%w: attribute %q of %s content %q cannot be overridden", ErrInvalidContent, a.Name, typ, c.FileName)
		}
		if seen[name] {
			return fmt.Errorf("%w: attribute %q is declared twice on content %q", ErrInvalidContent, a.Name, c.FileName)
		}
		seen[name] = true
	}
	return nil
}
