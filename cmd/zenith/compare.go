package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/internal/config"
	"github.com/frasasu/zenith/internal/pipeline"
	"github.com/frasasu/zenith/pkgs/metrics"
)

var (
	compareLabels string
	compareJSON   bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <files...>",
	Short: "Analyze several corpora and print their metrics side by side",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareLabels, "labels", "", "comma-separated labels, one per file (defaults to the file names)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print the comparison as JSON instead of a table")
}

type comparisonEntry struct {
	Label   string         `json:"label"`
	Metrics metrics.Report `json:"metrics"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	labels := strings.Split(compareLabels, ",")
	if compareLabels == "" || len(labels) != len(args) {
		labels = args
	}

	limits, err := config.Load()
	if err != nil {
		return ioError(err)
	}

	entries := make([]comparisonEntry, 0, len(args))
	for i, path := range args {
		src, err := readCorpusFile(path)
		if err != nil {
			return ioError(err)
		}
		snap, err := pipeline.Run(src, limits, []int{0}, logger)
		if err != nil {
			switch snap.Stage {
			case pipeline.StageRaw:
				return parseError(fmt.Errorf("%s: %w", path, err))
			case pipeline.StageValidated:
				return validationError(fmt.Errorf("%s: %w", path, err))
			default:
				return runtimeError(fmt.Errorf("%s: %w", path, err))
			}
		}
		entries = append(entries, comparisonEntry{
			Label:   labels[i],
			Metrics: snap.PerPopulation[0].Metrics,
		})
	}

	if compareJSON {
		return printJSON(entries, true)
	}
	renderComparisonTable(entries)
	return nil
}

// renderComparisonTable prints one metrics column per corpus, rows named
// after the metric. A row-per-corpus layout would paginate badly once a
// comparison exceeds a terminal width of three or four files; a metric per
// row scales with the number of corpora compared, not the number of metrics.
func renderComparisonTable(entries []comparisonEntry) {
	alignment := make([]tw.Align, len(entries)+1)
	alignment[0] = tw.AlignLeft
	for i := 1; i < len(alignment); i++ {
		alignment[i] = tw.AlignRight
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	headers := make([]string, len(entries)+1)
	headers[0] = "metric"
	for i, e := range entries {
		headers[i+1] = e.Label
	}
	table.Header(headers)

	type metricRow struct {
		name string
		get  func(metrics.Report) float64
	}
	rows := []metricRow{
		{"event count", func(r metrics.Report) float64 { return float64(r.Temporal.Count) }},
		{"total duration (min)", func(r metrics.Report) float64 { return r.Temporal.TotalDuration }},
		{"mean duration (min)", func(r metrics.Report) float64 { return r.Temporal.Mean }},
		{"std duration (min)", func(r metrics.Report) float64 { return r.Temporal.Std }},
		{"coherence ratio", func(r metrics.Report) float64 { return r.Temporal.CoherenceRatio }},
		{"events/hour", func(r metrics.Report) float64 { return r.EventsPerHour }},
		{"mean gap (min)", func(r metrics.Report) float64 { return r.Rhythm.MeanGap }},
		{"regularity", func(r metrics.Report) float64 { return r.Rhythm.Regularity }},
		{"entropy (bits)", func(r metrics.Report) float64 { return r.Entropy }},
		{"complexity score", func(r metrics.Report) float64 { return r.Complexity.Score }},
	}
	for _, mr := range rows {
		row := make([]string, len(entries)+1)
		row[0] = mr.name
		for i, e := range entries {
			row[i+1] = fmt.Sprintf("%.3f", mr.get(e.Metrics))
		}
		table.Append(row)
	}

	table.Render()
}
