package parser

import (
	"testing"

	"github.com/frasasu/zenith/pkgs/ast"
)

const minimalLaw = `law M: start_date:2025-01-01 at 00:00 period:1.0 Event: A:"x" GROUP:(A 1.0^0) end_law`

func TestParseMinimalLaw(t *testing.T) {
	roots, err := Parse(minimalLaw, DefaultLimits())
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(roots))
	}
	law, ok := roots[0].(*ast.Law)
	if !ok {
		t.Fatalf("root is %T, want *ast.Law", roots[0])
	}
	if law.Name != "M" || law.StartDate != "2025-01-01" || law.StartTime != "00:00" {
		t.Fatalf("unexpected law header: %+v", law)
	}
	if law.Period != 60 {
		t.Fatalf("period = %d, want 60", law.Period)
	}
	if len(law.Group) != 1 || law.Group[0].EventRef != "A" || law.Group[0].Coherence != 60 || law.Group[0].Dispersal != 0 {
		t.Fatalf("unexpected group: %+v", law.Group)
	}
}

func TestParseTwoTermGroup(t *testing.T) {
	src := `law L: start_date:2025-12-25 at 15:45 period:1.15 Event: A:"a" B:"b" GROUP:(A 30^0 - B 45^15) end_law`
	roots, err := Parse(src, DefaultLimits())
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	law := roots[0].(*ast.Law)
	if len(law.Group) != 2 {
		t.Fatalf("got %d group terms, want 2", len(law.Group))
	}
	if law.Group[1].EventRef != "B" || law.Group[1].Coherence != 45 || law.Group[1].Dispersal != 15 {
		t.Fatalf("unexpected second term: %+v", law.Group[1])
	}
}

func TestParseTargetWithNestedTargetAndLaw(t *testing.T) {
	src := `
target T1: key:"t1" dictionnary: d1:"root dict"
  target T2: key:"t2" dictionnary: d2[d1]:"child dict"
    law L: start_date:2025-01-01 at 00:00 period:30 Event: A:"x" GROUP:(A 30^0) end_law
  end_target
end_target
`
	roots, err := Parse(src, DefaultLimits())
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(roots))
	}
	t1 := roots[0].(*ast.Target)
	if len(t1.Children) != 1 {
		t.Fatalf("T1 has %d children, want 1", len(t1.Children))
	}
	t2 := t1.Children[0].(*ast.Target)
	if t2.ParentName != "T1" {
		t.Fatalf("T2.ParentName = %q, want T1", t2.ParentName)
	}
	if len(t2.Children) != 1 {
		t.Fatalf("T2 has %d children, want 1", len(t2.Children))
	}
	law := t2.Children[0].(*ast.Law)
	if law.ParentTargetName != "T2" {
		t.Fatalf("law.ParentTargetName = %q, want T2", law.ParentTargetName)
	}
}

func TestParseUndeclaredEventInGroupIsSyntacticallyValid(t *testing.T) {
	// GROUP referencing an undeclared event is a *structural* error
	// (spec.md section 4.5), not a syntax error -- the parser must accept
	// it; package corpus is responsible for rejecting it.
	src := `law M: start_date:2025-01-01 at 00:00 period:1.0 Event: A:"x" GROUP:(B 1.0^0) end_law`
	_, err := Parse(src, DefaultLimits())
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
}

func TestParseErrorOnMissingEndLaw(t *testing.T) {
	src := `law M: start_date:2025-01-01 at 00:00 period:1.0 Event: A:"x" GROUP:(A 1.0^0)`
	_, err := Parse(src, DefaultLimits())
	if err == nil {
		t.Fatal("expected syntax error, got none")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}

func TestParseRespectsMaxDepth(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxDepth = 1
	src := `
target T1: key:"t1" dictionnary:
  target T2: key:"t2" dictionnary:
  end_target
end_target
`
	_, err := Parse(src, limits)
	if err == nil {
		t.Fatal("expected resource limit error, got none")
	}
	if _, ok := err.(*ResourceLimitError); !ok {
		t.Fatalf("expected *ResourceLimitError, got %T", err)
	}
}
