package resolve

import (
	"testing"

	"github.com/frasasu/zenith/pkgs/corpus"
	"github.com/frasasu/zenith/pkgs/parser"
)

func buildCorpus(t *testing.T, src string) *corpus.Built {
	t.Helper()
	roots, err := parser.Parse(src, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return corpus.Build(roots)
}

const nestedTargets = `
target T1: key:"t1" dictionnary:
  target T2: key:"t2" dictionnary:
    law L: start_date:2025-01-01 at 00:00 period:30 Event: A:"x" GROUP:(A 30^0) end_law
  end_target
end_target
`

func TestPopulationResolutionExample(t *testing.T) {
	built := buildCorpus(t, nestedTargets)

	if got := LawsForPopulation(built, 1); len(got) != 0 {
		t.Fatalf("laws_for_population(1) = %d laws, want 0", len(got))
	}
	if got := LawsForPopulation(built, 2); len(got) != 1 || got[0].Name != "L" {
		t.Fatalf("laws_for_population(2) = %v, want [L]", got)
	}
}

func TestPopulationMonotonicity(t *testing.T) {
	built := buildCorpus(t, nestedTargets)
	max := MaxGeneration(built)
	prev := map[string]bool{}
	for p := 0; p <= max; p++ {
		cur := map[string]bool{}
		for _, l := range LawsForPopulation(built, p) {
			cur[l.Name] = true
		}
		for name := range prev {
			if !cur[name] {
				t.Fatalf("monotonicity violated: %q present at p=%d but missing at p=%d", name, p-1, p)
			}
		}
		prev = cur
	}
}

func TestLawsForTargetDepthFirst(t *testing.T) {
	src := `
target T1: key:"t1" dictionnary:
  law A: start_date:2025-01-01 at 00:00 period:30 Event: E:"e" GROUP:(E 30^0) end_law
  target T2: key:"t2" dictionnary:
    law B: start_date:2025-01-01 at 00:00 period:30 Event: E:"e" GROUP:(E 30^0) end_law
  end_target
  law C: start_date:2025-01-01 at 00:00 period:30 Event: E:"e" GROUP:(E 30^0) end_law
end_target
`
	built := buildCorpus(t, src)
	laws, err := LawsForTarget(built, "T1")
	if err != nil {
		t.Fatalf("LawsForTarget: %v", err)
	}
	var names []string
	for _, l := range laws {
		names = append(names, l.Name)
	}
	want := []string{"A", "B", "C"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestRootLevelLawsAlwaysInPopulation(t *testing.T) {
	src := `
law R: start_date:2025-01-01 at 00:00 period:30 Event: E:"e" GROUP:(E 30^0) end_law
target T1: key:"t1" dictionnary:
  law A: start_date:2025-01-01 at 00:00 period:30 Event: E:"e" GROUP:(E 30^0) end_law
end_target
`
	built := buildCorpus(t, src)
	for p := 0; p <= 2; p++ {
		laws := LawsForPopulation(built, p)
		foundRoot := false
		for _, l := range laws {
			if l.Name == "R" {
				foundRoot = true
			}
		}
		if !foundRoot {
			t.Fatalf("root-level law R missing from laws_for_population(%d)", p)
		}
	}
}
