package unparser

import (
	"testing"

	"github.com/frasasu/zenith/pkgs/ast"
	"github.com/frasasu/zenith/pkgs/parser"
	"github.com/google/go-cmp/cmp"
)

const sample = `
target T1: key:"t1" dictionnary: d1:"root dict"
  law L: start_date:2025-12-25 at 15:45 period:1.30 Event: A:"first" B[d1]:"second" GROUP:(A 30^0 - B 45^15) end_law
end_target
`

func TestRoundTrip(t *testing.T) {
	roots1, err := parser.Parse(sample, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}

	rendered := Unparse(roots1)

	roots2, err := parser.Parse(rendered, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("re-parse of unparsed output failed: %v\n---\n%s", err, rendered)
	}

	rendered2 := Unparse(roots2)
	if diff := cmp.Diff(rendered, rendered2); diff != "" {
		t.Fatalf("unparse(parse(unparse(parse(s)))) != unparse(parse(s)):\n%s", diff)
	}

	opts := cmp.Comparer(func(a, b ast.Span) bool { return true })
	if diff := cmp.Diff(roots1, roots2, opts); diff != "" {
		t.Fatalf("re-parsed AST differs from original (ignoring spans):\n%s", diff)
	}
}
