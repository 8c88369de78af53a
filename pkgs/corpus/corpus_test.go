package corpus

import (
	"testing"

	"github.com/frasasu/zenith/pkgs/parser"
)

func build(t *testing.T, src string) *Built {
	t.Helper()
	roots, err := parser.Parse(src, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	return Build(roots)
}

func TestUndeclaredEventInGroupIsStructuralError(t *testing.T) {
	b := build(t, `law M: start_date:2025-01-01 at 00:00 period:1.0 Event: A:"x" GROUP:(B 1.0^0) end_law`)
	if !HasErrors(b.Diagnostics, false) {
		t.Fatal("expected a structural error for undeclared GROUP event reference")
	}
	found := false
	for _, d := range b.Diagnostics {
		if d.Kind == StructuralError {
			found = true
		}
	}
	if !found {
		t.Fatalf("no StructuralError diagnostic found: %+v", b.Diagnostics)
	}
}

func TestPeriodMismatchIsWarningNotError(t *testing.T) {
	b := build(t, `law M: start_date:2025-01-01 at 00:00 period:100 Event: A:"x" GROUP:(A 1.0^0) end_law`)
	if HasErrors(b.Diagnostics, false) {
		t.Fatal("period mismatch should be a warning, not an error, by default")
	}
	if !HasErrors(b.Diagnostics, true) {
		t.Fatal("period mismatch should become an error under strict mode")
	}
}

func TestDuplicateLawName(t *testing.T) {
	b := build(t, `
law M: start_date:2025-01-01 at 00:00 period:30 Event: A:"x" GROUP:(A 30^0) end_law
law M: start_date:2025-01-01 at 00:00 period:30 Event: A:"x" GROUP:(A 30^0) end_law
`)
	if !HasErrors(b.Diagnostics, false) {
		t.Fatal("expected a structural error for duplicate law name")
	}
}

func TestPeriodMustBePositive(t *testing.T) {
	b := build(t, `law M: start_date:2025-01-01 at 00:00 period:-10 Event: A:"x" GROUP:(A -30^20) end_law`)
	if !HasErrors(b.Diagnostics, false) {
		t.Fatal("expected a structural error for non-positive period")
	}
}

func TestEventTagResolvesThroughAncestorDictionary(t *testing.T) {
	b := build(t, `
target T1: key:"t1" dictionnary: work:"root dict"
  law L: start_date:2025-01-01 at 00:00 period:30 Event: A[work]:"x" GROUP:(A 30^0) end_law
end_target
`)
	if HasErrors(b.Diagnostics, false) {
		t.Fatalf("unexpected diagnostics: %+v", b.Diagnostics)
	}
	ctx := b.LawContexts["L"]
	if _, ok := ctx.VisibleDict["work"]; !ok {
		t.Fatal("expected dictionary entry 'work' visible to law L")
	}
}

func TestEventTagUnresolvedIsStructuralError(t *testing.T) {
	b := build(t, `law L: start_date:2025-01-01 at 00:00 period:30 Event: A[missing]:"x" GROUP:(A 30^0) end_law`)
	if !HasErrors(b.Diagnostics, false) {
		t.Fatal("expected a structural error for unresolved dictionary tag")
	}
}
