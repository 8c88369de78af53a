package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/internal/config"
	"github.com/frasasu/zenith/internal/pipeline"
	"github.com/frasasu/zenith/pkgs/metrics"
	"github.com/frasasu/zenith/pkgs/pattern"
)

var (
	metricsType       string
	metricsLaw        string
	metricsPopulation int
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <file>",
	Short: "Parse, simulate and compute temporal metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsType, "type", "all", "metric family to report: all, temporal, rhythm, entropy, complexity, pattern")
	metricsCmd.Flags().StringVar(&metricsLaw, "law", "", "restrict the report to one law")
	metricsCmd.Flags().IntVar(&metricsPopulation, "population", 0, "population depth to aggregate (-1 for the maximum observed generation)")
}

type metricsReport struct {
	Temporal   *metrics.TemporalStats `json:"temporal,omitempty"`
	Rhythm     *metrics.Rhythm        `json:"rhythm,omitempty"`
	Entropy    *float64               `json:"entropy,omitempty"`
	Complexity *metrics.Complexity    `json:"complexity,omitempty"`
	Motifs     []pattern.Motif        `json:"motifs,omitempty"`
}

func runMetrics(cmd *cobra.Command, args []string) error {
	src, err := readCorpusFile(args[0])
	if err != nil {
		return ioError(err)
	}

	limits, err := config.Load()
	if err != nil {
		return ioError(err)
	}

	snap, err := pipeline.Run(src, limits, []int{metricsPopulation}, logger)
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

	events := snap.PerPopulation[metricsPopulation].Events
	if metricsLaw != "" {
		evs, ok := pipeline.EventsForLaw(snap, metricsLaw)
		if !ok {
			return runtimeError(fmt.Errorf("no such law: %q", metricsLaw))
		}
		events = evs
	}

	report := metrics.Compute(events)
	motifs := pattern.Mine(events, limits.PatternOptions())

	out := metricsReport{}
	switch metricsType {
	case "temporal":
		out.Temporal = &report.Temporal
	case "rhythm":
		out.Rhythm = &report.Rhythm
	case "entropy":
		out.Entropy = &report.Entropy
	case "complexity":
		out.Complexity = &report.Complexity
	case "pattern":
		out.Motifs = motifs.Motifs
	case "all", "":
		out.Temporal = &report.Temporal
		out.Rhythm = &report.Rhythm
		out.Entropy = &report.Entropy
		out.Complexity = &report.Complexity
		out.Motifs = motifs.Motifs
	default:
		return ioError(fmt.Errorf("unknown metric type %q", metricsType))
	}

	return printJSON(out, true)
}
