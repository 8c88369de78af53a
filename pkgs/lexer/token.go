// Package lexer turns Zenith corpus source text into a stream of typed
// tokens, following the single-pass character-stream design of spec.md
// section 4.2.
package lexer

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	IDENTIFIER
	STRING
	DATE
	TIME
	NUMBER
	DOTTED_NUMBER
	KEYWORD

	COLON // :
	CARET // ^
	MINUS // -
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
)

var kindNames = [...]string{
	EOF:           "EOF",
	ILLEGAL:       "ILLEGAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	DATE:          "DATE",
	TIME:          "TIME",
	NUMBER:        "NUMBER",
	DOTTED_NUMBER: "DOTTED_NUMBER",
	KEYWORD:       "KEYWORD",
	COLON:         "COLON",
	CARET:         "CARET",
	MINUS:         "MINUS",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	LBRACKET:      "LBRACKET",
	RBRACKET:      "RBRACKET",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords reserves the identifiers named by spec.md section 3.
var keywords = map[string]bool{
	"law":         true,
	"target":      true,
	"end_law":     true,
	"end_target":  true,
	"Event":       true,
	"GROUP":       true,
	"start_date":  true,
	"period":      true,
	"key":         true,
	"dictionnary": true,
	"at":          true,
}

// Token is a single lexical unit with its source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

// Position formats the token's location for diagnostics.
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Position())
}
