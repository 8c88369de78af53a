// Package simulate expands a law's GROUP expression into an ordered,
// time-stamped event sequence, per spec.md section 4.6. Simulation is a
// pure function of the law's AST and its enclosing target chain: no
// I/O, no clock access, fully deterministic.
package simulate

import (
	"fmt"
	"time"

	"github.com/frasasu/zenith/pkgs/ast"
	"github.com/frasasu/zenith/pkgs/corpus"
)

// Event is one concrete, time-stamped occurrence of a declared event.
type Event struct {
	EventName   string
	Tag         string
	HasTag      bool
	Description string

	Start time.Time
	End   time.Time

	DurationMinutes   int64
	CoherenceMinutes  int64
	DispersalMinutes  int64

	LawName     string
	TargetChain []string
}

// SemanticError reports that a law could not be simulated; per spec.md
// section 7 this aborts only that law's simulation, not the batch.
type SemanticError struct {
	LawName string
	Reason  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("law %q: %s", e.LawName, e.Reason)
}

// Law simulates a single law's GROUP expression into its ordered event
// list. targetChain is the enclosing target chain (outermost first),
// attached by name per the corpus's ancestor-chain view.
func Law(law *ast.Law, targetChain []string) ([]Event, error) {
	start, err := corpus.StartDateTime(law)
	if err != nil {
		return nil, &SemanticError{LawName: law.Name, Reason: "invalid start_date/start_time: " + err.Error()}
	}

	chain := append([]string(nil), targetChain...)

	events := make([]Event, 0, len(law.Group))
	cursor := start
	for _, term := range law.Group {
		decl, ok := law.EventByName(term.EventRef)
		if !ok {
			return nil, &SemanticError{LawName: law.Name, Reason: fmt.Sprintf("GROUP references undeclared event %q", term.EventRef)}
		}

		duration := term.Coherence + term.Dispersal
		end := cursor.Add(time.Duration(duration) * time.Minute)

		events = append(events, Event{
			EventName:        decl.Name,
			Tag:              decl.Tag,
			HasTag:           decl.HasTag,
			Description:      decl.Description,
			Start:            cursor,
			End:              end,
			DurationMinutes:  duration,
			CoherenceMinutes: term.Coherence,
			DispersalMinutes: term.Dispersal,
			LawName:          law.Name,
			TargetChain:      chain,
		})

		cursor = end
	}

	return events, nil
}

// Batch simulates every law in laws in order, collecting per-law errors
// instead of aborting: a failure in one law never blocks the others
// (spec.md section 7).
func Batch(laws []*ast.Law, targetChains map[string][]string) (events []Event, errs []error) {
	for _, law := range laws {
		evs, err := Law(law, targetChains[law.Name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, evs...)
	}
	return events, errs
}
