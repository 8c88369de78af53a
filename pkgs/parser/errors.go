package parser

import (
	"fmt"
	"strings"

	"github.com/frasasu/zenith/pkgs/lexer"
)

// SyntaxError is returned the moment the parser encounters a grammar
// violation. The parser is strict (spec.md section 4.3): the first
// SyntaxError aborts the parse and no partial AST is returned.
type SyntaxError struct {
	Token    lexer.Token
	Expected []string
	Message  string
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: %s", e.Token.Position(), e.Message)
	}
	return fmt.Sprintf("%s: %s (expected %s, got %s)",
		e.Token.Position(), e.Message, strings.Join(e.Expected, " or "), e.Token.Kind)
}

// ResourceLimitError reports that a configured parser resource bound
// (max AST depth, max token count) was exceeded, per spec.md section 5.
type ResourceLimitError struct {
	Limit    string
	Bound    int
	Observed int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("resource limit %q exceeded: bound %d, observed %d", e.Limit, e.Bound, e.Observed)
}
