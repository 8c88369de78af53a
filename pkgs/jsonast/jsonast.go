// Package jsonast implements the structural, tagged JSON encoding of
// spec.md section 6: every node carries a "kind" field, a "name" where
// applicable, and typed child arrays. It is the wire format behind the
// CLI's convert and export commands.
package jsonast

import (
	"encoding/json"
	"fmt"

	"github.com/frasasu/zenith/pkgs/ast"
)

// Node is the tagged-union JSON shape shared by every AST node kind.
// Unused fields are omitted on encode and ignored on decode.
type Node struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`

	// law fields
	StartDate string      `json:"start_date,omitempty"`
	StartTime string      `json:"start_time,omitempty"`
	Period    int64       `json:"period,omitempty"`
	Events    []Node      `json:"events,omitempty"`
	Group     []Node      `json:"group,omitempty"`

	// event fields
	Tag         string `json:"tag,omitempty"`
	HasTag      bool   `json:"has_tag,omitempty"`
	Description string `json:"description,omitempty"`

	// group_term fields
	EventRef  string `json:"event_ref,omitempty"`
	Coherence int64  `json:"coherence,omitempty"`
	Dispersal int64  `json:"dispersal,omitempty"`

	// target fields
	Key        string `json:"key,omitempty"`
	Dictionary []Node `json:"dictionary,omitempty"`
	Children   []Node `json:"children,omitempty"`

	// dict_entry fields
	LocalKey  string `json:"local_key,omitempty"`
	ParentRef string `json:"parent_ref,omitempty"`
	HasParent bool   `json:"has_parent,omitempty"`

	// corpus fields
	Roots []Node `json:"roots,omitempty"`
}

// Encode marshals a parsed root list (as produced by parser.Parse) to
// pretty-printed JSON.
func Encode(roots []ast.Node) ([]byte, error) {
	doc := Node{Kind: "corpus", Roots: encodeNodes(roots)}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeNodes(nodes []ast.Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, encodeNode(n))
	}
	return out
}

func encodeNode(n ast.Node) Node {
	switch v := n.(type) {
	case *ast.Law:
		return encodeLaw(v)
	case *ast.Target:
		return encodeTarget(v)
	default:
		panic(fmt.Sprintf("jsonast: unencodable node type %T", n))
	}
}

func encodeLaw(l *ast.Law) Node {
	events := make([]Node, len(l.Events))
	for i, e := range l.Events {
		events[i] = Node{
			Kind:        "event",
			Name:        e.Name,
			Tag:         e.Tag,
			HasTag:      e.HasTag,
			Description: e.Description,
		}
	}
	group := make([]Node, len(l.Group))
	for i, g := range l.Group {
		group[i] = Node{
			Kind:      "group_term",
			EventRef:  g.EventRef,
			Coherence: g.Coherence,
			Dispersal: g.Dispersal,
		}
	}
	return Node{
		Kind:      "law",
		Name:      l.Name,
		StartDate: l.StartDate,
		StartTime: l.StartTime,
		Period:    l.Period,
		Events:    events,
		Group:     group,
	}
}

func encodeTarget(t *ast.Target) Node {
	dict := make([]Node, len(t.Dictionary))
	for i, d := range t.Dictionary {
		dict[i] = Node{
			Kind:        "dict_entry",
			LocalKey:    d.LocalKey,
			ParentRef:   d.ParentRef,
			HasParent:   d.HasParent,
			Description: d.Description,
		}
	}
	return Node{
		Kind:       "target",
		Name:       t.Name,
		Key:        t.Key,
		Dictionary: dict,
		Children:   encodeNodes(t.Children),
	}
}

// Decode parses the tagged JSON encoding back into AST nodes. It
// rebuilds indices (EventIndex, DictIndex) the same way the parser
// does, so the result is ready for corpus.Build without a re-parse.
func Decode(data []byte) ([]ast.Node, error) {
	var doc Node
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonast: invalid JSON: %w", err)
	}
	if doc.Kind != "corpus" {
		return nil, fmt.Errorf("jsonast: expected top-level kind %q, got %q", "corpus", doc.Kind)
	}
	return decodeNodes(doc.Roots)
}

func decodeNodes(nodes []Node) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		decoded, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

func decodeNode(n Node) (ast.Node, error) {
	switch n.Kind {
	case "law":
		return decodeLaw(n), nil
	case "target":
		return decodeTarget(n)
	default:
		return nil, fmt.Errorf("jsonast: unknown node kind %q", n.Kind)
	}
}

func decodeLaw(n Node) *ast.Law {
	events := make([]ast.EventDecl, len(n.Events))
	index := make(map[string]int, len(n.Events))
	for i, e := range n.Events {
		events[i] = ast.EventDecl{
			Name:        e.Name,
			Tag:         e.Tag,
			HasTag:      e.HasTag,
			Description: e.Description,
		}
		index[e.Name] = i
	}
	group := make([]ast.GroupTerm, len(n.Group))
	for i, g := range n.Group {
		group[i] = ast.GroupTerm{
			EventRef:  g.EventRef,
			Coherence: g.Coherence,
			Dispersal: g.Dispersal,
		}
	}
	return &ast.Law{
		Name:       n.Name,
		StartDate:  n.StartDate,
		StartTime:  n.StartTime,
		Period:     n.Period,
		Events:     events,
		EventIndex: index,
		Group:      group,
	}
}

func decodeTarget(n Node) (*ast.Target, error) {
	dict := make([]ast.DictEntry, len(n.Dictionary))
	index := make(map[string]int, len(n.Dictionary))
	for i, d := range n.Dictionary {
		dict[i] = ast.DictEntry{
			LocalKey:    d.LocalKey,
			ParentRef:   d.ParentRef,
			HasParent:   d.HasParent,
			Description: d.Description,
		}
		index[d.LocalKey] = i
	}
	children, err := decodeNodes(n.Children)
	if err != nil {
		return nil, err
	}
	return &ast.Target{
		Name:       n.Name,
		Key:        n.Key,
		Dictionary: dict,
		DictIndex:  index,
		Children:   children,
	}, nil
}
