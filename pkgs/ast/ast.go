// Package ast defines the Zenith syntax tree: one tagged Go type per node
// kind (Law, Target, Event, GroupTerm, DictEntry), following spec.md
// section 3's data model and the "Ad-hoc per-node attribute bag -> tagged
// sum type" redesign point of section 9.
package ast

import "fmt"

// Position is a single point in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the source range covered by a node, used for error reporting
// and for the unparser's round-trip tests.
type Span struct {
	Start Position
	End   Position
}

// Node is implemented by every AST node kind.
type Node interface {
	fmt.Stringer
	SourceSpan() Span
}

// EventDecl is one named entry declared inside a law's Event: block.
type EventDecl struct {
	Name        string
	Tag         string // empty when absent
	HasTag      bool
	Description string
	Span        Span
}

func (e *EventDecl) String() string {
	if e.HasTag {
		return fmt.Sprintf("%s[%s]: %q", e.Name, e.Tag, e.Description)
	}
	return fmt.Sprintf("%s: %q", e.Name, e.Description)
}

func (e *EventDecl) SourceSpan() Span { return e.Span }

// GroupTerm is one slot in a law's GROUP: expression.
type GroupTerm struct {
	EventRef  string
	Coherence int64 // minutes
	Dispersal int64 // minutes
	Span      Span
}

func (g *GroupTerm) String() string {
	return fmt.Sprintf("%s %d^%d", g.EventRef, g.Coherence, g.Dispersal)
}

func (g *GroupTerm) SourceSpan() Span { return g.Span }

// Law is a planned temporal session.
type Law struct {
	Name      string
	StartDate string // YYYY-MM-DD
	StartTime string // HH:MM or HH:MM:SS
	Period    int64  // minutes

	// Events preserves declaration order; EventIndex allows O(1) lookup
	// by name without repeated linear scans during validation.
	Events     []EventDecl
	EventIndex map[string]int

	Group []GroupTerm

	Span Span

	// ParentTargetName is the name of the enclosing Target, or "" for a
	// root-level law. Name-based, not a pointer, per spec.md section 9.
	ParentTargetName string
}

func (l *Law) String() string {
	return fmt.Sprintf("law %s", l.Name)
}

func (l *Law) SourceSpan() Span { return l.Span }

// EventByName looks up a declared event by name.
func (l *Law) EventByName(name string) (*EventDecl, bool) {
	idx, ok := l.EventIndex[name]
	if !ok {
		return nil, false
	}
	return &l.Events[idx], true
}

// DictEntry is one local dictionary mapping inside a target.
type DictEntry struct {
	LocalKey    string
	ParentRef   string // empty when absent
	HasParent   bool
	Description string
	Span        Span
}

func (d *DictEntry) String() string {
	if d.HasParent {
		return fmt.Sprintf("%s[%s]: %q", d.LocalKey, d.ParentRef, d.Description)
	}
	return fmt.Sprintf("%s: %q", d.LocalKey, d.Description)
}

func (d *DictEntry) SourceSpan() Span { return d.Span }

// Target is a named objective that may hold a dictionary, child targets
// and laws.
type Target struct {
	Name       string
	Key        string
	Dictionary []DictEntry
	DictIndex  map[string]int

	// Children preserves declaration order; each entry is a *Law or
	// *Target.
	Children []Node

	Generation int // depth from outermost root; roots are generation 1
	ParentName string

	Span Span
}

func (t *Target) String() string {
	return fmt.Sprintf("target %s", t.Name)
}

func (t *Target) SourceSpan() Span { return t.Span }

// DictEntryByKey looks up a local dictionary entry by key.
func (t *Target) DictEntryByKey(key string) (*DictEntry, bool) {
	idx, ok := t.DictIndex[key]
	if !ok {
		return nil, false
	}
	return &t.Dictionary[idx], true
}

// Corpus is the fully parsed, indexed collection of top-level laws and
// targets.
type Corpus struct {
	Roots []Node // each *Law or *Target

	ByLawName    map[string]*Law
	ByTargetName map[string]*Target
}

// NewCorpus builds an empty Corpus ready for population by the corpus
// builder.
func NewCorpus() *Corpus {
	return &Corpus{
		ByLawName:    make(map[string]*Law),
		ByTargetName: make(map[string]*Target),
	}
}
