package compiler

import (
	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/bdd"
	"github.com/dice-lang/dice/symtree"
)

// Placeholder is the result of gen_sym_type (§4.2): a fresh symbolic tree of
// the given shape, together with the flat list of raw variable ids that
// compose it and the mutex-encoded tree actually usable as an environment
// value.
//
// Keeping Raw and Mutex separate is, per the design notes, "the subtlest
// invariant in the system": substitution (existand) must always use the raw
// form, while any expression that reads the placeholder's value (an Ident
// lookup, an Eq, a guard) must see the mutex-encoded form, or equality and
// guards over an IntLeaf could behave inconsistently when more than one
// vector entry is simultaneously true.
type Placeholder struct {
	Raw   symtree.Tree
	Mutex symtree.Tree
	Vars  []int
}

// genSymType implements gen_sym_type: allocate one fresh placeholder
// variable per Boolean position and n fresh variables per TInt(n) position,
// labeling them for debugging.
func (c *Context) genSymType(t ast.Type, label string) (Placeholder, error) {
	var ids []int
	var allocErr error
	freshBool := func() bdd.Node {
		id, node, err := c.newPlaceholder(label)
		if err != nil {
			allocErr = err
			return nil
		}
		ids = append(ids, id)
		return node
	}
	freshVec := func(n int) []bdd.Node {
		vars := make([]bdd.Node, n)
		for i := range vars {
			vars[i] = freshBool()
		}
		return vars
	}
	raw := symtree.FromType(t, freshBool, freshVec)
	if allocErr != nil {
		return Placeholder{}, allocErr
	}
	return Placeholder{Raw: raw, Mutex: mutexEncode(c, raw), Vars: ids}, nil
}

// mutexEncode rewrites every IntLeaf vector [v0..v(n-1)] of t by replacing
// entry i with vi ∧ ⋀(j≠i) ¬vj, symbolically enforcing that exactly one
// entry is true (§4.2). Boolean leaves pass through unchanged.
func mutexEncode(c *Context, t symtree.Tree) symtree.Tree {
	return symtree.MapLeaves(t, func(v symtree.LeafValue) symtree.LeafValue {
		iv, ok := v.(symtree.IntLeaf)
		if !ok {
			return v
		}
		out := make([]bdd.Node, len(iv.Vars))
		for i := range iv.Vars {
			node := iv.Vars[i]
			for j := range iv.Vars {
				if j == i {
					continue
				}
				node = c.Manager.And(node, c.Manager.Not(iv.Vars[j]))
			}
			out[i] = node
		}
		return symtree.IntLeaf{Vars: out}
	})
}
