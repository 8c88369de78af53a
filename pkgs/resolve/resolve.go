// Package resolve walks the target tree to answer two distinct
// questions named in spec.md section 4.7: generation (structural depth)
// and population (contextual reach, laws_for_population). Ordering is
// always depth-first, pre-order, declaration order among siblings.
package resolve

import (
	"fmt"

	"github.com/frasasu/zenith/pkgs/ast"
	"github.com/frasasu/zenith/pkgs/corpus"
)

// MaxGeneration returns the deepest target generation observed anywhere
// in the corpus, or 0 if there are no targets.
func MaxGeneration(built *corpus.Built) int {
	max := 0
	for _, t := range built.Corpus.ByTargetName {
		if t.Generation > max {
			max = t.Generation
		}
	}
	return max
}

// LawsForTarget returns every law reachable by descending from the
// named target, depth-first, preserving declaration order.
func LawsForTarget(built *corpus.Built, name string) ([]*ast.Law, error) {
	target, ok := built.Corpus.ByTargetName[name]
	if !ok {
		return nil, fmt.Errorf("no such target: %q", name)
	}
	var laws []*ast.Law
	collectUnder(target, &laws)
	return laws, nil
}

func collectUnder(n ast.Node, out *[]*ast.Law) {
	switch v := n.(type) {
	case *ast.Law:
		*out = append(*out, v)
	case *ast.Target:
		for _, child := range v.Children {
			collectUnder(child, out)
		}
	}
}

// LawsForPopulation returns the union of laws declared at the corpus
// root (always included, the p == 0 base case) and laws belonging to
// targets with generation <= p (for p >= 1); p == -1 means the
// maximum observed generation. This formula keeps the population
// monotonicity property of spec.md section 8 (laws_for_population(p) is
// a subset of laws_for_population(p+1) for every p >= 0) by construction:
// root-level laws are never excluded, and raising p only admits more
// target subtrees.
//
// Traversal is depth-first, pre-order, declaration order among siblings
// (spec.md section 4.7): simulated-event aggregation over the result
// must never re-sort by start time.
func LawsForPopulation(built *corpus.Built, p int) []*ast.Law {
	if p == -1 {
		p = MaxGeneration(built)
	}

	var laws []*ast.Law
	for _, root := range built.Corpus.Roots {
		walkPopulation(root, 0, p, &laws)
	}
	return laws
}

// walkPopulation descends the tree; parentGeneration is the generation
// of the enclosing target (0 meaning "no enclosing target", i.e. this
// node sits directly at the corpus root).
func walkPopulation(n ast.Node, parentGeneration, p int, out *[]*ast.Law) {
	switch v := n.(type) {
	case *ast.Law:
		if parentGeneration == 0 || parentGeneration <= p {
			*out = append(*out, v)
		}
	case *ast.Target:
		if parentGeneration != 0 && v.Generation > p {
			return
		}
		for _, child := range v.Children {
			walkPopulation(child, v.Generation, p, out)
		}
	}
}
