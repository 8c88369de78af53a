// Package pattern mines repeated contiguous event-name motifs from a
// simulated sequence, per spec.md section 4.9: encode names to ranks,
// build a suffix array and LCP array over the rank sequence, then read
// off every maximal repeated substring and its occurrence count
// directly from LCP plateaus.
package pattern

import (
	"sort"

	"github.com/frasasu/zenith/pkgs/simulate"
)

// DefaultMinLength is the shortest motif considered, per spec.md
// section 4.9: single-event runs are never reported as motifs.
const DefaultMinLength = 2

// DefaultTopK is the number of motifs returned when the caller does
// not request a specific count.
const DefaultTopK = 10

// DefaultMaxSequenceLength bounds how many events are fed into mining
// before the input is truncated and Result.Truncated is set.
const DefaultMaxSequenceLength = 1 << 17

// Motif is one repeated contiguous run of event names, with its length
// (in events) and the number of positions at which it occurs.
type Motif struct {
	Names     []string
	Length    int
	Frequency int
}

// Options configures Mine. A zero Options uses the spec's defaults.
type Options struct {
	MinLength         int
	TopK              int
	MaxSequenceLength int
}

func (o Options) withDefaults() Options {
	if o.MinLength <= 0 {
		o.MinLength = DefaultMinLength
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.MaxSequenceLength <= 0 {
		o.MaxSequenceLength = DefaultMaxSequenceLength
	}
	return o
}

// Result is the output of Mine: the top motifs, and Truncated, which
// reports whether Mine had to cut the input sequence down to
// MaxSequenceLength before mining, per spec.md section 4.9's resource
// limit.
type Result struct {
	Motifs    []Motif
	Truncated bool
}

// Mine extracts the top motifs from an ordered event sequence.
func Mine(events []simulate.Event, opts Options) Result {
	opts = opts.withDefaults()

	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName
	}

	truncated := false
	if len(names) > opts.MaxSequenceLength {
		names = names[:opts.MaxSequenceLength]
		truncated = true
	}

	return Result{Motifs: MineNames(names, opts), Truncated: truncated}
}

// MineNames runs the suffix-array/LCP mining pipeline directly over a
// name sequence, bypassing simulate.Event. Exposed so callers (and
// tests) can exercise the algorithm without constructing events.
func MineNames(names []string, opts Options) []Motif {
	opts = opts.withDefaults()
	n := len(names)
	if n < opts.MinLength {
		return nil
	}

	ranks, _ := encodeRanks(names)
	sa := buildSuffixArray(ranks)
	lcp := buildLCP(ranks, sa)

	found := extractMotifs(names, sa, lcp, opts.MinLength)
	return topMotifs(found, opts.TopK)
}

// encodeRanks maps each distinct name to a small integer, ordered
// lexicographically so the mapping is deterministic across runs
// regardless of first-occurrence order.
func encodeRanks(names []string) ([]int, map[string]int) {
	distinct := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			distinct = append(distinct, name)
		}
	}
	sort.Strings(distinct)

	rankOf := make(map[string]int, len(distinct))
	for i, name := range distinct {
		rankOf[name] = i
	}

	ranks := make([]int, len(names))
	for i, name := range names {
		ranks[i] = rankOf[name]
	}
	return ranks, rankOf
}

// plateau is one maximal run in the LCP array where every adjacent
// pair of suffixes shares a common prefix of at least height names.
type plateau struct {
	height int
	start  int // index into sa of the left edge of the run
}

// extractMotifs sweeps the LCP array with a monotonic stack (the same
// technique used to enumerate every rectangle in a histogram) so that
// every LCP plateau, at every height, is reported exactly once in
// O(n) time: a plateau of height h spanning sa-indices [start, end]
// means the h-name prefix shared by those suffixes occurs end-start+1
// times in the sequence.
func extractMotifs(names []string, sa, lcp []int, minLen int) []Motif {
	n := len(lcp)
	var motifs []Motif

	type frame struct {
		height int
		start  int
	}
	var stack []frame

	emit := func(height, start, end int) {
		if height < minLen {
			return
		}
		begin := sa[start]
		if begin+height > len(names) {
			return
		}
		motifs = append(motifs, Motif{
			Names:     append([]string(nil), names[begin:begin+height]...),
			Length:    height,
			Frequency: end - start + 1,
		})
	}

	for i := 1; i <= n; i++ {
		h := 0
		if i < n {
			h = lcp[i]
		}
		start := i
		for len(stack) > 0 && stack[len(stack)-1].height > h {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			emit(top.height, top.start-1, i-1)
			start = top.start
		}
		if i < n {
			stack = append(stack, frame{height: h, start: start})
		}
	}

	return motifs
}

// topMotifs deduplicates motifs by their name sequence (keeping the
// highest observed frequency for each), then sorts by frequency
// descending with length descending as a tiebreak, and truncates to k.
//
// spec.md section 4.9 states the sort key as length-desc-then-
// frequency-desc, but its own worked example (the sequence
// A,B,A,B,A,B,C must rank the length-2 motif A,B, which occurs 3
// times, above the length-3 motif B,A,B, which occurs only twice) only
// holds under frequency-desc-then-length-desc. The worked example is
// taken as authoritative.
func topMotifs(motifs []Motif, k int) []Motif {
	best := make(map[string]Motif, len(motifs))
	order := make([]string, 0, len(motifs))
	for _, m := range motifs {
		key := motifKey(m.Names)
		existing, ok := best[key]
		if !ok {
			order = append(order, key)
			best[key] = m
			continue
		}
		if m.Frequency > existing.Frequency {
			best[key] = m
		}
	}

	deduped := make([]Motif, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, best[key])
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].Frequency != deduped[j].Frequency {
			return deduped[i].Frequency > deduped[j].Frequency
		}
		return deduped[i].Length > deduped[j].Length
	})

	if len(deduped) > k {
		deduped = deduped[:k]
	}
	return deduped
}

func motifKey(names []string) string {
	key := ""
	for i, n := range names {
		if i > 0 {
			key += "\x00"
		}
		key += n
	}
	return key
}
