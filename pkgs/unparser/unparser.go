// Package unparser renders a Zenith AST back to canonical source text,
// per spec.md section 4.4: one declaration per line, four-space indents
// per nesting level, GROUP on a single parenthesized line joined by
// " - ". It is grounded on the teacher's builder-style text-rendering
// idiom (devcmd's pkgs/generator uses a strings.Builder-driven writer
// over AST nodes) adapted from Go-source generation to Zenith-source
// generation.
package unparser

import (
	"fmt"
	"strings"

	"github.com/frasasu/zenith/pkgs/ast"
	"github.com/frasasu/zenith/pkgs/point"
)

const indentUnit = "    "

// Unparse renders an ordered list of top-level Law/Target nodes (a
// parsed corpus's Roots) as canonical Zenith source text.
func Unparse(roots []ast.Node) string {
	var b strings.Builder
	for i, n := range roots {
		if i > 0 {
			b.WriteString("\n")
		}
		writeNode(&b, n, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n ast.Node, level int) {
	switch v := n.(type) {
	case *ast.Law:
		writeLaw(b, v, level)
	case *ast.Target:
		writeTarget(b, v, level)
	}
}

func indent(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat(indentUnit, level))
}

func writeLaw(b *strings.Builder, l *ast.Law, level int) {
	indent(b, level)
	fmt.Fprintf(b, "law %s:\n", l.Name)

	indent(b, level+1)
	fmt.Fprintf(b, "start_date: %s at %s\n", l.StartDate, l.StartTime)

	indent(b, level+1)
	fmt.Fprintf(b, "period: %s\n", point.FromMinutes(l.Period))

	indent(b, level+1)
	b.WriteString("Event:\n")
	for _, e := range l.Events {
		indent(b, level+2)
		writeEventDecl(b, e)
	}

	indent(b, level+1)
	b.WriteString("GROUP: (")
	for i, term := range l.Group {
		if i > 0 {
			b.WriteString(" - ")
		}
		fmt.Fprintf(b, "%s %s^%s", term.EventRef, point.FromMinutes(term.Coherence), point.FromMinutes(term.Dispersal))
	}
	b.WriteString(")\n")

	indent(b, level)
	b.WriteString("end_law\n")
}

// quote wraps s in double quotes, escaping only the quote character
// itself -- the only escape the lexer understands (spec.md section 4.2).
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func writeEventDecl(b *strings.Builder, e ast.EventDecl) {
	if e.HasTag {
		fmt.Fprintf(b, "%s[%s]: %s\n", e.Name, e.Tag, quote(e.Description))
	} else {
		fmt.Fprintf(b, "%s: %s\n", e.Name, quote(e.Description))
	}
}

func writeDictEntry(b *strings.Builder, d ast.DictEntry) {
	if d.HasParent {
		fmt.Fprintf(b, "%s[%s]: %s\n", d.LocalKey, d.ParentRef, quote(d.Description))
	} else {
		fmt.Fprintf(b, "%s: %s\n", d.LocalKey, quote(d.Description))
	}
}

func writeTarget(b *strings.Builder, t *ast.Target, level int) {
	indent(b, level)
	fmt.Fprintf(b, "target %s:\n", t.Name)

	indent(b, level+1)
	fmt.Fprintf(b, "key: %s\n", quote(t.Key))

	indent(b, level+1)
	b.WriteString("dictionnary:\n")
	for _, d := range t.Dictionary {
		indent(b, level+2)
		writeDictEntry(b, d)
	}

	for _, child := range t.Children {
		writeNode(b, child, level+1)
	}

	indent(b, level)
	b.WriteString("end_target\n")
}
