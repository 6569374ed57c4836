package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/sequence"
	"github.com/Masterminds/semver/v3"
)

var baseSchemaVersion = semver.MustParse(adx.DefaultSchemaVersion)

func (r *run) manifestInfoCheck(context.Context, *sequence.Tail) error {
	if r.manifest.Name() == "" {
		return fmt.Errorf("%w: the info name is required", ErrInvalidManifest)
	}

	if r.version.GreaterThan(baseSchemaVersion) {
		if r.manifest.Info.Style != nil {
			r.warn("The info style element is deprecated since schema %s", baseSchemaVersion)
		}
		if r.manifest.Info.Categories != nil {
			r.warn("The info categories element is deprecated since schema %s", baseSchemaVersion)
		}
	}
	r.success("Manifest info ok")
	return nil
}

// constraintRules lists, per target, the attributes a constraint may carry.
var constraintRules = map[string]map[string]bool{
	"questions": {
		"chapter":           true,
		"single":            true,
		"multiple":          true,
		"numeric":           true,
		"open":              true,
		"date":              true,
		"requireParentLoop": true,
	},
	"responses": {
		"min": true,
		"max": true,
	},
	"controls": {
		"label":         true,
		"textbox":       true,
		"listbox":       true,
		"checkbox":      true,
		"radiobutton":   true,
		"responseblock": true,
	},
}

func (r *run) constraintsCheck(context.Context, *sequence.Tail) error {
	constraints := r.manifest.Info.Constraints

	// Duplicates are reported first so the outcome does not depend on where
	// the second declaration appears.
	seen := map[string]bool{}
	for _, c := range constraints {
		on := strings.TrimSpace(c.On)
		if seen[on] {
			return fmt.Errorf("%w: duplicate constraint on %q", ErrConstraint, on)
		}
		seen[on] = true
	}

	for _, c := range constraints {
		on := strings.TrimSpace(c.On)
		allowed, ok := constraintRules[on]
		if !ok {
			return fmt.Errorf("%w: unknown constraint target %q (expected %s)", ErrConstraint, on, knownTargets())
		}

		enabled := false
		for _, a := range c.Attrs {
			name := a.Name.Local
			if !allowed[name] {
				return fmt.Errorf("%w: attribute %q is not allowed on %q", ErrConstraint, name, on)
			}
			if ruleEnabled(on, a.Value) {
				enabled = true
			}
		}
		if !enabled {
			return fmt.Errorf("%w: constraint on %q has no enabled rule", ErrConstraint, on)
		}
	}

	for _, required := range []string{"questions", "controls"} {
		if !seen[required] {
			return fmt.Errorf("%w: a constraint on %q is required", ErrConstraint, required)
		}
	}

	r.success("Constraints ok")
	return nil
}

// ruleEnabled reports whether a rule value turns the rule on. Response
// bounds are enabled by any value; other rules are booleans.
func ruleEnabled(target, value string) bool {
	if target == "responses" {
		return strings.TrimSpace(value) != ""
	}
	return adx.IsTrue(value)
}

func knownTargets() string {
	targets := make([]string, 0, len(constraintRules))
	for t := range constraintRules {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return strings.Join(targets, ", ")
}

func (r *run) propertiesCheck(context.Context, *sequence.Tail) error {
	if r.manifest.Properties.Count() == 0 {
		r.warn("No property or category defined")
		return nil
	}
	r.success("Properties ok")
	return nil
}
