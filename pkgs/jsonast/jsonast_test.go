package jsonast

import (
	"testing"

	"github.com/frasasu/zenith/pkgs/parser"
	"github.com/frasasu/zenith/pkgs/unparser"
)

const sample = `
target T1: key:"t1" dictionnary:
  E1[e]: "desc"
  law L: start_date:2025-01-01 at 00:00 period:30 Event: A:"x" GROUP:(A 30^0) end_law
end_target
`

func TestEncodeDecodeRoundTrip(t *testing.T) {
	roots, err := parser.Parse(sample, parser.DefaultLimits())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	data, err := Encode(roots)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := unparser.Unparse(roots)
	got := unparser.Unparse(decoded)
	if got != want {
		t.Fatalf("unparse mismatch after round-trip:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDecodeRejectsWrongTopLevelKind(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"law"}`))
	if err == nil {
		t.Fatal("expected error for non-corpus top-level kind")
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
