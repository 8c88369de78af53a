// Package metrics computes the analytic measures of spec.md section 4.8
// over a simulated event sequence: temporal statistics, rhythm, density,
// event frequency, entropy and sequence complexity. All outputs are
// real-valued and default to 0 on empty input.
package metrics

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/frasasu/zenith/pkgs/simulate"
)

// TemporalStats holds the count/duration/coherence statistics of
// spec.md section 4.8.
type TemporalStats struct {
	Count            int
	TotalDuration    float64
	Mean             float64
	Median           float64
	Std              float64
	Min              float64
	Max              float64
	CoherenceTotal   float64
	DispersalTotal   float64
	CoherenceRatio   float64
}

// Rhythm holds the gap-regularity statistics of spec.md section 4.8.
type Rhythm struct {
	MeanGap    float64
	StdGap     float64
	Regularity float64
}

// Complexity holds the combined sequence-complexity score and its three
// constituent terms.
type Complexity struct {
	TransitionVariety float64
	UniqueRatio       float64
	EntropyNormalized float64
	Score             float64
}

// Report bundles every metric computed over one event sequence.
type Report struct {
	Temporal       TemporalStats
	Rhythm         Rhythm
	EventsPerHour  float64
	Frequency      map[string]int
	Complexity     Complexity
	Entropy        float64
}

// Compute derives every metric in Report from a (possibly empty)
// simulated event sequence. Events are assumed to already be in their
// declared/population order (spec.md section 4.7); Compute never
// re-sorts them.
func Compute(events []simulate.Event) Report {
	r := Report{Frequency: make(map[string]int)}
	n := len(events)
	if n == 0 {
		return r
	}

	durations := make([]float64, n)
	var coherenceTotal, dispersalTotal float64
	for i, e := range events {
		durations[i] = float64(e.DurationMinutes)
		coherenceTotal += float64(e.CoherenceMinutes)
		dispersalTotal += float64(e.DispersalMinutes)
		r.Frequency[e.EventName]++
	}

	r.Temporal = computeTemporalStats(durations, coherenceTotal, dispersalTotal)
	r.Rhythm = computeRhythm(events)
	r.EventsPerHour = computeDensity(events)
	r.Entropy = computeEntropy(r.Frequency, n)
	r.Complexity = computeComplexity(events, r.Frequency, r.Entropy, n)

	return r
}

func computeTemporalStats(durations []float64, coherenceTotal, dispersalTotal float64) TemporalStats {
	data := mstats.Float64Data(durations)

	mean, _ := mstats.Mean(data)
	median, _ := mstats.Median(data)
	std, _ := mstats.StandardDeviationPopulation(data)
	min, _ := mstats.Min(data)
	max, _ := mstats.Max(data)

	var total float64
	for _, d := range durations {
		total += d
	}

	ratio := 0.0
	if total != 0 {
		ratio = coherenceTotal / total
	}

	return TemporalStats{
		Count:          len(durations),
		TotalDuration:  total,
		Mean:           mean,
		Median:         median,
		Std:            std,
		Min:            min,
		Max:            max,
		CoherenceTotal: coherenceTotal,
		DispersalTotal: dispersalTotal,
		CoherenceRatio: ratio,
	}
}

func computeRhythm(events []simulate.Event) Rhythm {
	if len(events) < 2 {
		return Rhythm{}
	}

	gaps := make([]float64, 0, len(events)-1)
	for i := 1; i < len(events); i++ {
		gap := events[i].Start.Sub(events[i-1].Start).Minutes()
		gaps = append(gaps, gap)
	}

	data := mstats.Float64Data(gaps)
	meanGap, _ := mstats.Mean(data)
	stdGap, _ := mstats.StandardDeviationPopulation(data)

	regularity := 0.0
	if meanGap != 0 {
		regularity = 1 / (1 + stdGap/meanGap)
	}

	return Rhythm{MeanGap: meanGap, StdGap: stdGap, Regularity: regularity}
}

func computeDensity(events []simulate.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	span := events[len(events)-1].End.Sub(events[0].Start).Minutes()
	if span == 0 {
		return 0
	}
	hours := span / 60
	return float64(len(events)) / hours
}

// computeEntropy computes the base-2 Shannon entropy of the event-name
// distribution via gonum's natural-log Entropy, converted to bits.
func computeEntropy(freq map[string]int, n int) float64 {
	if len(freq) == 0 {
		return 0
	}
	probs := make([]float64, 0, len(freq))
	for _, count := range freq {
		probs = append(probs, float64(count)/float64(n))
	}
	nats := stat.Entropy(probs)
	return nats / math.Ln2
}

func computeComplexity(events []simulate.Event, freq map[string]int, entropy float64, n int) Complexity {
	if n == 0 {
		return Complexity{}
	}

	transitions := make(map[[2]string]bool)
	for i := 1; i < len(events); i++ {
		transitions[[2]string{events[i-1].EventName, events[i].EventName}] = true
	}
	transitionVariety := 0.0
	if n > 1 {
		transitionVariety = float64(len(transitions)) / float64(n-1)
	}

	uniqueRatio := float64(len(freq)) / float64(n)

	entropyNormalized := 0.0
	if len(freq) > 1 {
		entropyNormalized = entropy / math.Log2(float64(len(freq)))
	}

	score := 100 * (0.4*transitionVariety + 0.3*uniqueRatio + 0.3*entropyNormalized)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Complexity{
		TransitionVariety: transitionVariety,
		UniqueRatio:       uniqueRatio,
		EntropyNormalized: entropyNormalized,
		Score:             score,
	}
}
