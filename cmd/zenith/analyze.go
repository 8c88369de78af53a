package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/internal/config"
	"github.com/frasasu/zenith/internal/pipeline"
	"github.com/frasasu/zenith/pkgs/metrics"
	"github.com/frasasu/zenith/pkgs/pattern"
	"github.com/frasasu/zenith/pkgs/simulate"
)

var (
	analyzeLaw        string
	analyzeTarget      string
	analyzePopulation int
	analyzePretty     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Parse, validate, simulate; emit a JSON analysis report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLaw, "law", "", "restrict the report to one law")
	analyzeCmd.Flags().StringVar(&analyzeTarget, "target", "", "restrict the report to everything reachable from one target")
	analyzeCmd.Flags().IntVar(&analyzePopulation, "population", 0, "population depth to aggregate (-1 for the maximum observed generation)")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "pretty-print the JSON report")
}

type jsonEvent struct {
	EventName string    `json:"event_name"`
	Tag       string    `json:"tag,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Duration  int64     `json:"duration_minutes"`
	Coherence int64     `json:"coherence_minutes"`
	Dispersal int64     `json:"dispersal_minutes"`
	LawName   string    `json:"law_name"`
}

func eventsToJSON(events []simulate.Event) []jsonEvent {
	out := make([]jsonEvent, len(events))
	for i, e := range events {
		out[i] = jsonEvent{
			EventName: e.EventName,
			Tag:       e.Tag,
			Start:     e.Start,
			End:       e.End,
			Duration:  e.DurationMinutes,
			Coherence: e.CoherenceMinutes,
			Dispersal: e.DispersalMinutes,
			LawName:   e.LawName,
		}
	}
	return out
}

type analysisReport struct {
	Stage      string          `json:"stage"`
	Population int             `json:"population,omitempty"`
	Laws       []string        `json:"laws,omitempty"`
	Events     []jsonEvent     `json:"events"`
	FailedLaws []string        `json:"failed_laws,omitempty"`
	Metrics    metrics.Report  `json:"metrics"`
	Motifs     []pattern.Motif `json:"motifs,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	src, err := readCorpusFile(args[0])
	if err != nil {
		return ioError(err)
	}

	limits, err := config.Load()
	if err != nil {
		return ioError(err)
	}

	snap, err := pipeline.Run(src, limits, []int{analyzePopulation}, logger)
	if err != nil {
		switch snap.Stage {
		case pipeline.StageRaw:
			return parseError(err)
		case pipeline.StageValidated:
			return validationError(err)
		default:
			return runtimeError(err)
		}
	}

	var events []simulate.Event
	var laws []string

	switch {
	case analyzeLaw != "":
		evs, ok := pipeline.EventsForLaw(snap, analyzeLaw)
		if !ok {
			return runtimeError(fmt.Errorf("no such law: %q", analyzeLaw))
		}
		laws, events = []string{analyzeLaw}, evs
	case analyzeTarget != "":
		evs, err := pipeline.EventsForTarget(snap, snap.Built, analyzeTarget)
		if err != nil {
			return runtimeError(err)
		}
		laws, events = []string{analyzeTarget}, evs
	default:
		agg := snap.PerPopulation[analyzePopulation]
		laws, events = agg.Laws, agg.Events
	}

	report := analysisReport{
		Stage:      string(snap.Stage),
		Population: analyzePopulation,
		Laws:       laws,
		Events:     eventsToJSON(events),
		Metrics:    metrics.Compute(events),
		Motifs:     pattern.Mine(events, limits.PatternOptions()).Motifs,
	}
	for _, e := range snap.LawErrors {
		report.FailedLaws = append(report.FailedLaws, e.Error())
	}

	return printJSON(report, analyzePretty)
}

func printJSON(v interface{}, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return runtimeError(err)
	}
	fmt.Println(string(data))
	return nil
}
