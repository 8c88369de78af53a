package corpus

import (
	"fmt"

	"github.com/frasasu/zenith/pkgs/ast"
)

// DiagnosticKind is one of the structural error kinds named in spec.md
// section 7. Unlike the parser's SyntaxError (which aborts the parse),
// these are accumulated and returned as a list.
type DiagnosticKind string

const (
	StructuralError DiagnosticKind = "StructuralError"
	ValidationWarn  DiagnosticKind = "ValidationWarning"
	ResourceLimit   DiagnosticKind = "ResourceLimit"
)

// Diagnostic is one validation finding.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Span    ast.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s:%s", d.Kind, d.Span.Start, d.Message)
}

// IsError reports whether this diagnostic should be treated as fatal to
// validation under the given strict flag (spec.md section 4.5: "a strict
// mode treats warnings as errors").
func (d Diagnostic) IsError(strict bool) bool {
	if d.Kind == StructuralError {
		return true
	}
	if d.Kind == ValidationWarn && strict {
		return true
	}
	return false
}

// HasErrors reports whether any diagnostic in the list is fatal under the
// given strict flag.
func HasErrors(diags []Diagnostic, strict bool) bool {
	for _, d := range diags {
		if d.IsError(strict) {
			return true
		}
	}
	return false
}
