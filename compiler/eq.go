package compiler

import (
	"github.com/dice-lang/dice/bdd"
	"github.com/dice-lang/dice/direrr"
	"github.com/dice-lang/dice/symtree"
)

// pointwiseEq computes the single BDD node for "a and b are structurally
// equal", per §4.3's Eq rule generalized from scalars to arbitrary matching
// shapes: BoolLeaf pairs contribute a biconditional, IntLeaf pairs
// contribute the conjunction of their pointwise biconditionals (the
// one-hot-vector equality rule), and the whole tree of per-leaf results is
// conjoined into one node. It is also the "iff" construction used to
// eliminate a lazy-let or function-call placeholder (§4.3), which is
// exactly this same structural-equality test between an actual value and
// its placeholder.
func pointwiseEq(ctx *Context, a, b symtree.Tree) (bdd.Node, error) {
	zipped, err := symtree.ZipLeaves(a, b, func(x, y symtree.LeafValue) (symtree.LeafValue, error) {
		switch x := x.(type) {
		case symtree.BoolLeaf:
			y, ok := y.(symtree.BoolLeaf)
			if !ok {
				return nil, direrr.New(direrr.ShapeMismatch, "cannot equate a Boolean with a non-Boolean value")
			}
			return symtree.BoolLeaf{Node: ctx.Manager.Equiv(x.Node, y.Node)}, nil
		case symtree.IntLeaf:
			y, ok := y.(symtree.IntLeaf)
			if !ok {
				return nil, direrr.New(direrr.ShapeMismatch, "cannot equate an integer with a non-integer value")
			}
			acc := ctx.Manager.True()
			for i := range x.Vars {
				acc = ctx.Manager.And(acc, ctx.Manager.Equiv(x.Vars[i], y.Vars[i]))
			}
			return symtree.BoolLeaf{Node: acc}, nil
		default:
			return nil, direrr.New(direrr.ShapeMismatch, "unrecognized leaf value")
		}
	})
	if err != nil {
		return nil, err
	}
	return symtree.FoldBool(zipped, ctx.Manager.True(), ctx.Manager.And), nil
}
