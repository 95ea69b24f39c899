// Package symtree implements the symbolic tree (§3, §4.1): a binary tree
// whose leaves carry either a single BDD node (a Boolean value) or a vector
// of BDD nodes (a one-hot-encoded finite integer). It provides the generic
// map, zip, and fold operations the expression compiler builds on, and
// nothing else — symtree never touches the weight table, the function
// table, or any notion of "compiling an expression"; those live in package
// compiler.
package symtree

import (
	"bytes"
	"fmt"

	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/bdd"
)

// Tree is a symbolic value: a Leaf, or a Branch of two symbolic sub-values
// (the encoding of a Tup).
type Tree interface {
	String() string
	tree()
}

// Branch is the symbolic encoding of a tuple.
type Branch struct {
	Left, Right Tree
}

func (Branch) tree() {}

func (b Branch) String() string {
	return fmt.Sprintf("(%s, %s)", b.Left, b.Right)
}

// Leaf wraps a single LeafValue.
type Leaf struct {
	Value LeafValue
}

func (Leaf) tree() {}

func (l Leaf) String() string { return l.Value.String() }

// LeafValue is either a BoolLeaf or an IntLeaf.
type LeafValue interface {
	String() string
	leafValue()
}

// BoolLeaf is a symbolic Boolean: a single BDD node.
type BoolLeaf struct {
	Node bdd.Node
}

func (BoolLeaf) leafValue() {}

func (l BoolLeaf) String() string { return "<bdd>" }

// IntLeaf is a symbolic finite integer: a one-hot vector of BDD nodes, one
// per value in the domain. Invariant 2 (§3) requires len(Vars) to equal the
// domain size of the leaf's TInt(n) type; that invariant is maintained by
// the constructors in this package and in package compiler, never checked
// here (shape errors are the caller's responsibility, per §4.1).
type IntLeaf struct {
	Vars []bdd.Node
}

func (IntLeaf) leafValue() {}

func (l IntLeaf) String() string {
	return fmt.Sprintf("<one-hot[%d]>", len(l.Vars))
}

// FromType builds a fresh symbolic tree matching the shape of t, allocating
// one fresh BDD variable per Boolean position via freshBool and n fresh
// variables per TInt(n) position via freshVec. This is gen_sym_type (§4.2).
func FromType(t ast.Type, freshBool func() bdd.Node, freshVec func(n int) []bdd.Node) Tree {
	switch t := t.(type) {
	case ast.TBool:
		return Leaf{BoolLeaf{freshBool()}}
	case ast.TInt:
		return Leaf{IntLeaf{freshVec(t.N)}}
	case ast.TTuple:
		return Branch{
			Left:  FromType(t.Fst, freshBool, freshVec),
			Right: FromType(t.Snd, freshBool, freshVec),
		}
	default:
		panic(fmt.Sprintf("symtree.FromType: unhandled type %T", t))
	}
}

// TypeOf reconstructs the ast.Type matching the shape of t: a symbolic
// tree's shape and its IntLeaf vector lengths fully determine its type, so
// this never needs a separate type environment.
func TypeOf(t Tree) ast.Type {
	switch t := t.(type) {
	case Branch:
		return ast.TTuple{Fst: TypeOf(t.Left), Snd: TypeOf(t.Right)}
	case Leaf:
		switch v := t.Value.(type) {
		case BoolLeaf:
			return ast.TBool{}
		case IntLeaf:
			return ast.TInt{N: len(v.Vars)}
		}
	}
	panic(fmt.Sprintf("symtree.TypeOf: unhandled tree %T", t))
}

// ExtractBDD requires t to be a Leaf(BoolLeaf); anything else is a type
// error (§4.1), since only Boolean-shaped symbolic trees have a single BDD
// node to extract (used to pull out the guard of an Ite, for example).
func ExtractBDD(t Tree) (bdd.Node, error) {
	leaf, ok := t.(Leaf)
	if !ok {
		return nil, fmt.Errorf("type error: expected a Boolean value, got %s", t)
	}
	b, ok := leaf.Value.(BoolLeaf)
	if !ok {
		return nil, fmt.Errorf("type error: expected a Boolean value, got %s", t)
	}
	return b.Node, nil
}

// MapLeaves applies f at every leaf of t, producing a new tree of identical
// shape.
func MapLeaves(t Tree, f func(LeafValue) LeafValue) Tree {
	switch t := t.(type) {
	case Branch:
		return Branch{MapLeaves(t.Left, f), MapLeaves(t.Right, f)}
	case Leaf:
		return Leaf{f(t.Value)}
	default:
		panic(fmt.Sprintf("symtree.MapLeaves: unhandled tree %T", t))
	}
}

// ZipLeaves walks a and b in lockstep, combining matched leaves with f. It
// fails with a shape error if a and b are not isomorphic, if a Boolean leaf
// is matched with an IntLeaf, or if matched IntLeaf vectors have different
// lengths (all are fatal, upstream type-checker bugs per §4.1).
func ZipLeaves(a, b Tree, f func(x, y LeafValue) (LeafValue, error)) (Tree, error) {
	switch a := a.(type) {
	case Branch:
		bb, ok := b.(Branch)
		if !ok {
			return nil, fmt.Errorf("shape mismatch: %s vs %s", a, b)
		}
		left, err := ZipLeaves(a.Left, bb.Left, f)
		if err != nil {
			return nil, err
		}
		right, err := ZipLeaves(a.Right, bb.Right, f)
		if err != nil {
			return nil, err
		}
		return Branch{left, right}, nil
	case Leaf:
		bl, ok := b.(Leaf)
		if !ok {
			return nil, fmt.Errorf("shape mismatch: %s vs %s", a, b)
		}
		_, aInt := a.Value.(IntLeaf)
		_, bInt := bl.Value.(IntLeaf)
		if aInt != bInt {
			return nil, fmt.Errorf("shape mismatch: %s vs %s", a, b)
		}
		if av, ok := a.Value.(IntLeaf); ok {
			if bv, ok := bl.Value.(IntLeaf); ok && len(av.Vars) != len(bv.Vars) {
				return nil, fmt.Errorf("shape mismatch: integer vectors of length %d and %d", len(av.Vars), len(bv.Vars))
			}
		}
		v, err := f(a.Value, bl.Value)
		if err != nil {
			return nil, err
		}
		return Leaf{v}, nil
	default:
		panic(fmt.Sprintf("symtree.ZipLeaves: unhandled tree %T", a))
	}
}

// FoldBool accumulates init across every Boolean leaf of t using combine,
// left to right. It panics if t contains an IntLeaf, per §4.1 ("fold_bddtree
// accumulates over Boolean leaves only; on IntLeaf the caller chooses how to
// fold") — callers that may encounter IntLeaf values must flatten them to
// Boolean leaves first, e.g. with FlattenInt.
func FoldBool(t Tree, init bdd.Node, combine func(acc, n bdd.Node) bdd.Node) bdd.Node {
	switch t := t.(type) {
	case Branch:
		init = FoldBool(t.Left, init, combine)
		return FoldBool(t.Right, init, combine)
	case Leaf:
		b, ok := t.Value.(BoolLeaf)
		if !ok {
			panic(fmt.Sprintf("symtree.FoldBool: fold over non-Boolean leaf %s", t.Value))
		}
		return combine(init, b.Node)
	default:
		panic(fmt.Sprintf("symtree.FoldBool: unhandled tree %T", t))
	}
}

// FlattenInt replaces every IntLeaf in t with a single BoolLeaf holding
// onInt's reduction of that vector to one BDD node (typically: conjoin the
// whole vector into a cube); Boolean leaves and t's Branch structure are left
// as they are. It is how "the caller chooses how to fold" for IntLeaf (§4.1).
func FlattenInt(t Tree, onInt func(vars []bdd.Node) bdd.Node) Tree {
	return MapLeaves(t, func(v LeafValue) LeafValue {
		if iv, ok := v.(IntLeaf); ok {
			return BoolLeaf{onInt(iv.Vars)}
		}
		return v
	})
}

// MapNodes applies f to every individual BDD node in t — one call per
// BoolLeaf, one call per entry of an IntLeaf vector — preserving shape. It
// is how a tree-wide BDD operation (existential quantification, variable
// substitution) gets threaded through a value that might be an integer
// one-hot vector rather than a single Boolean.
func MapNodes(t Tree, f func(bdd.Node) bdd.Node) Tree {
	return MapLeaves(t, func(v LeafValue) LeafValue {
		switch v := v.(type) {
		case BoolLeaf:
			return BoolLeaf{f(v.Node)}
		case IntLeaf:
			out := make([]bdd.Node, len(v.Vars))
			for i, n := range v.Vars {
				out[i] = f(n)
			}
			return IntLeaf{out}
		default:
			panic(fmt.Sprintf("symtree.MapNodes: unhandled leaf %T", v))
		}
	})
}

// MapNodesE is MapNodes for an f that can fail (e.g. Manager.Swap, which can
// error if the underlying engine rejects the substitution).
func MapNodesE(t Tree, f func(bdd.Node) (bdd.Node, error)) (Tree, error) {
	var firstErr error
	out := MapNodes(t, func(n bdd.Node) bdd.Node {
		if firstErr != nil {
			return n
		}
		r, err := f(n)
		if err != nil {
			firstErr = err
			return n
		}
		return r
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// CollectVars returns every BDD node appearing in a leaf of t, in a stable
// left-to-right, depth-first order: one node per BoolLeaf, all of a
// vector's nodes (in order) per IntLeaf. The compiler does not call it: its
// argument cubes are built from Placeholder.Vars, the variable ids recorded
// when a placeholder tree is allocated.
func CollectVars(t Tree) []bdd.Node {
	var out []bdd.Node
	var walk func(Tree)
	walk = func(t Tree) {
		switch t := t.(type) {
		case Branch:
			walk(t.Left)
			walk(t.Right)
		case Leaf:
			switch v := t.Value.(type) {
			case BoolLeaf:
				out = append(out, v.Node)
			case IntLeaf:
				out = append(out, v.Vars...)
			}
		}
	}
	walk(t)
	return out
}

// Pretty renders t using a depth-first traversal, primarily for error
// messages and tests; it does not attempt to print the underlying BDD.
func Pretty(t Tree) string {
	var b bytes.Buffer
	fmt.Fprint(&b, t)
	return b.String()
}
