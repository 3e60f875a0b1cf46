package prefabs

import (
	"sort"

	"github.com/milk9111/animevents/animevent"
)

// UnboundEvent is a frame event that no binding subscribes. At runtime it
// produces the registry's "not subscribed" warning on every fire.
type UnboundEvent struct {
	Clip  string
	Frame int
	Name  string
}

// LintReport compares the events clips fire with the events bindings handle.
// Names are compared case-insensitively, as the registry does.
type LintReport struct {
	Unbound []UnboundEvent
	// Unused lists bound event names that no clip fires.
	Unused []string
	// Duplicates lists binding names that collide after normalization;
	// only the first of them is ever subscribed.
	Duplicates []string
}

// OK reports whether the report has no findings.
func (r LintReport) OK() bool {
	return len(r.Unbound) == 0 && len(r.Unused) == 0 && len(r.Duplicates) == 0
}

// Lint checks clip specs against a binding spec. A nil binding spec treats
// every frame event as unbound.
func Lint(bindings *BindingSpec, clips ...*AnimationSpec) LintReport {
	var report LintReport

	bound := make(map[string]bool)
	if bindings != nil {
		for _, b := range bindings.Events {
			key := animevent.Key(b.Name)
			if _, seen := bound[key]; seen {
				report.Duplicates = append(report.Duplicates, b.Name)
				continue
			}
			bound[key] = false
		}
	}

	for _, spec := range clips {
		if spec == nil {
			continue
		}
		for clip, def := range spec.Defs {
			for frame, names := range def.Events {
				for _, n := range names {
					key := animevent.Key(n)
					if _, ok := bound[key]; ok {
						bound[key] = true
						continue
					}
					report.Unbound = append(report.Unbound, UnboundEvent{Clip: clip, Frame: frame, Name: n})
				}
			}
		}
	}

	for key, used := range bound {
		if !used {
			report.Unused = append(report.Unused, key)
		}
	}

	sort.Slice(report.Unbound, func(i, j int) bool {
		a, b := report.Unbound[i], report.Unbound[j]
		if a.Clip != b.Clip {
			return a.Clip < b.Clip
		}
		if a.Frame != b.Frame {
			return a.Frame < b.Frame
		}
		return a.Name < b.Name
	})
	sort.Strings(report.Unused)
	return report
}
