// Package corpus builds the indexed Corpus model from parsed AST roots
// and validates the structural invariants of spec.md section 4.5: name
// uniqueness, event/tag resolution, period sanity and duration-sum
// consistency.
package corpus

import (
	"fmt"
	"time"

	"github.com/frasasu/zenith/pkgs/ast"
)

// LawContext is the ancestor-chain view attached to each law at
// validation time, per the redesign note in spec.md section 9: "compute
// an ancestor-chain view at validation time and attach it (by index) to
// each law; avoids repeated tree walks during metric computation."
type LawContext struct {
	// TargetChain lists enclosing target names from outermost root down
	// to the law's immediate parent (empty for a root-level law).
	TargetChain []string

	// VisibleDict maps every dictionary local_key visible from this
	// law's position (declared by any enclosing target) to its entry.
	VisibleDict map[string]ast.DictEntry
}

// Built is the immutable snapshot produced by Build: the indexed Corpus
// plus derived per-law context, ready for simulation and resolution.
type Built struct {
	Corpus      *ast.Corpus
	LawContexts map[string]LawContext
	Diagnostics []Diagnostic
}

// Build walks the parsed roots, assigns target generations, builds the
// by-name indices, computes each law's ancestor-chain view, and runs
// structural validation. It never panics on a malformed tree; problems
// are reported as Diagnostics.
func Build(roots []ast.Node) *Built {
	b := &Built{
		Corpus:      ast.NewCorpus(),
		LawContexts: make(map[string]LawContext),
	}
	b.Corpus.Roots = roots

	for _, root := range roots {
		b.index(root, 1, nil, nil)
	}

	b.validate()
	return b
}

func (b *Built) index(n ast.Node, generation int, chain []string, visible map[string]ast.DictEntry) {
	switch v := n.(type) {
	case *ast.Law:
		if existing, dup := b.Corpus.ByLawName[v.Name]; dup {
			b.diag(StructuralError, v.Span, fmt.Sprintf("duplicate law name %q (also declared at %s)", v.Name, existing.Span.Start))
			return
		}
		b.Corpus.ByLawName[v.Name] = v

		chainCopy := append([]string(nil), chain...)
		visibleCopy := make(map[string]ast.DictEntry, len(visible))
		for k, e := range visible {
			visibleCopy[k] = e
		}
		b.LawContexts[v.Name] = LawContext{TargetChain: chainCopy, VisibleDict: visibleCopy}

	case *ast.Target:
		if existing, dup := b.Corpus.ByTargetName[v.Name]; dup {
			b.diag(StructuralError, v.Span, fmt.Sprintf("duplicate target name %q (also declared at %s)", v.Name, existing.Span.Start))
			return
		}
		v.Generation = generation
		b.Corpus.ByTargetName[v.Name] = v

		childChain := append(append([]string(nil), chain...), v.Name)
		childVisible := make(map[string]ast.DictEntry, len(visible)+len(v.Dictionary))
		for k, e := range visible {
			childVisible[k] = e
		}
		for _, entry := range v.Dictionary {
			childVisible[entry.LocalKey] = entry
		}

		for _, child := range v.Children {
			b.index(child, generation+1, childChain, childVisible)
		}
	}
}

func (b *Built) diag(kind DiagnosticKind, span ast.Span, message string) {
	b.Diagnostics = append(b.Diagnostics, Diagnostic{Kind: kind, Message: message, Span: span})
}

// validate runs the per-law structural checks of spec.md section 4.5
// over every successfully indexed law.
func (b *Built) validate() {
	for name, law := range b.Corpus.ByLawName {
		ctx := b.LawContexts[name]

		if law.Period <= 0 {
			b.diag(StructuralError, law.Span, fmt.Sprintf("law %q: period must be positive, got %d minutes", law.Name, law.Period))
		}

		if !validCalendarDateTime(law.StartDate, law.StartTime) {
			b.diag(StructuralError, law.Span, fmt.Sprintf("law %q: start_date/start_time is out of calendar range", law.Name))
		}

		// Duplicate event declarations within one law.
		seen := make(map[string]bool, len(law.Events))
		for _, e := range law.Events {
			if seen[e.Name] {
				b.diag(StructuralError, e.Span, fmt.Sprintf("law %q: duplicate event declaration %q", law.Name, e.Name))
			}
			seen[e.Name] = true

			if e.HasTag {
				if _, ok := ctx.VisibleDict[e.Tag]; !ok {
					b.diag(StructuralError, e.Span, fmt.Sprintf("law %q: event %q tag %q does not resolve to any ancestor dictionary entry", law.Name, e.Name, e.Tag))
				}
			}
		}

		var sum int64
		for _, term := range law.Group {
			if _, ok := law.EventByName(term.EventRef); !ok {
				b.diag(StructuralError, term.Span, fmt.Sprintf("law %q: GROUP references undeclared event %q", law.Name, term.EventRef))
			}
			sum += term.Coherence + term.Dispersal
		}
		if len(law.Group) > 0 && sum != law.Period {
			b.diag(ValidationWarn, law.Span, fmt.Sprintf("law %q: sum of group term durations (%d) does not equal period (%d)", law.Name, sum, law.Period))
		}
	}
}

func validCalendarDateTime(date, clock string) bool {
	const layoutDate = "2006-01-02"
	const layoutTimeShort = "15:04"
	const layoutTimeLong = "15:04:05"

	if _, err := time.Parse(layoutDate, date); err != nil {
		return false
	}
	if len(clock) == 5 {
		_, err := time.Parse(layoutTimeShort, clock)
		return err == nil
	}
	_, err := time.Parse(layoutTimeLong, clock)
	return err == nil
}

// StartDateTime parses a law's start_date/start_time into a single naive
// (location-less, UTC-anchored) time.Time, used by the simulator.
func StartDateTime(law *ast.Law) (time.Time, error) {
	layout := "2006-01-02 15:04"
	if len(law.StartTime) > 5 {
		layout = "2006-01-02 15:04:05"
	}
	return time.ParseInLocation(layout, law.StartDate+" "+law.StartTime, time.UTC)
}
