// Package pipeline orchestrates the core's state machine of spec.md
// section 4.10: Raw -> Tokenized -> Parsed -> Validated -> Simulated ->
// Analyzed. Each stage is a total function over successful input; a
// failure is terminal for its corpus and no downstream stage runs.
// Tokenizing and parsing run as one step (parser.Parse), so a Snapshot
// never reports StageTokenized: a lexical or syntax error leaves it at
// StageRaw, and success moves it straight to StageParsed. The
// package owns no state of its own and performs no I/O beyond the
// structured logging it's given: reading source text and writing
// results is the CLI driver's job.
package pipeline

import (
	"fmt"

	"github.com/frasasu/zenith/internal/config"
	"github.com/frasasu/zenith/internal/zlog"
	"github.com/frasasu/zenith/pkgs/corpus"
	"github.com/frasasu/zenith/pkgs/metrics"
	"github.com/frasasu/zenith/pkgs/parser"
	"github.com/frasasu/zenith/pkgs/pattern"
	"github.com/frasasu/zenith/pkgs/resolve"
	"github.com/frasasu/zenith/pkgs/simulate"
)

// Stage names the point the pipeline reached, per spec.md section 4.10.
type Stage string

const (
	StageRaw       Stage = "Raw"
	StageTokenized Stage = "Tokenized"
	StageParsed    Stage = "Parsed"
	StageValidated Stage = "Validated"
	StageSimulated Stage = "Simulated"
	StageAnalyzed  Stage = "Analyzed"
)

// PopulationAggregate is the per-population view described in spec.md
// section 9: a snapshot of every law visible at that population, the
// events they simulate to, and the metrics/motifs computed over them.
type PopulationAggregate struct {
	Population int
	Laws       []string
	Events     []simulate.Event
	Metrics    metrics.Report
	Motifs     pattern.Result
}

// Snapshot is the immutable result of running the full pipeline over
// one corpus, per spec.md section 9's redesign note: "compute an
// immutable snapshot once, instead of recomputing from the AST on
// every query."
type Snapshot struct {
	Stage Stage

	Built *corpus.Built

	LawErrors []error

	PerLawEvents map[string][]simulate.Event

	PerPopulation map[int]PopulationAggregate
}

// Run drives src through every stage up to Analyzed, stopping early
// (and reporting the stage reached) on the first terminal failure.
// populations selects which laws_for_population views to aggregate; if
// empty, only population 0 is computed.
func Run(src string, limits config.Limits, populations []int, log *zlog.Logger) (*Snapshot, error) {
	snap := &Snapshot{Stage: StageRaw}

	roots, err := parser.Parse(src, limits.ParserLimits())
	if err != nil {
		return snap, fmt.Errorf("parse: %w", err)
	}
	snap.Stage = StageParsed
	if log != nil {
		log.Debug("parsed corpus", "roots", len(roots))
	}

	built := corpus.Build(roots)
	snap.Built = built
	if corpus.HasErrors(built.Diagnostics, limits.StrictValidation) {
		snap.Stage = StageValidated
		return snap, fmt.Errorf("validation: %d diagnostic(s) rejected the corpus", len(built.Diagnostics))
	}
	snap.Stage = StageValidated
	if log != nil {
		log.Debug("validated corpus", "laws", len(built.Corpus.ByLawName), "targets", len(built.Corpus.ByTargetName), "diagnostics", len(built.Diagnostics))
	}

	snap.PerLawEvents = make(map[string][]simulate.Event, len(built.Corpus.ByLawName))
	for name, law := range built.Corpus.ByLawName {
		ctx := built.LawContexts[name]
		events, err := simulate.Law(law, ctx.TargetChain)
		if err != nil {
			snap.LawErrors = append(snap.LawErrors, err)
			if log != nil {
				log.Warn("law simulation failed", "law", name, "error", err.Error())
			}
			continue
		}
		snap.PerLawEvents[name] = events
	}
	snap.Stage = StageSimulated

	if len(populations) == 0 {
		populations = []int{0}
	}
	snap.PerPopulation = make(map[int]PopulationAggregate, len(populations))
	for _, p := range populations {
		laws := resolve.LawsForPopulation(built, p)
		var names []string
		var events []simulate.Event
		for _, law := range laws {
			names = append(names, law.Name)
			events = append(events, snap.PerLawEvents[law.Name]...)
		}
		snap.PerPopulation[p] = PopulationAggregate{
			Population: p,
			Laws:       names,
			Events:     events,
			Metrics:    metrics.Compute(events),
			Motifs:     pattern.Mine(events, limits.PatternOptions()),
		}
	}
	snap.Stage = StageAnalyzed
	if log != nil {
		log.Info("analysis complete", "populations", len(snap.PerPopulation), "failed_laws", len(snap.LawErrors))
	}

	return snap, nil
}

// EventsForTarget concatenates the already simulated events of every law
// reachable from the named target, in depth-first declaration order.
// Laws whose simulation failed contribute no events.
func EventsForTarget(snap *Snapshot, built *corpus.Built, targetName string) ([]simulate.Event, error) {
	laws, err := resolve.LawsForTarget(built, targetName)
	if err != nil {
		return nil, err
	}
	var events []simulate.Event
	for _, law := range laws {
		events = append(events, snap.PerLawEvents[law.Name]...)
	}
	return events, nil
}

// EventsForLaw looks up one law's simulated events from a completed
// snapshot.
func EventsForLaw(snap *Snapshot, lawName string) ([]simulate.Event, bool) {
	events, ok := snap.PerLawEvents[lawName]
	return events, ok
}
