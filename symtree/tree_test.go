package symtree

import (
	"testing"

	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/bdd"
	"github.com/google/go-cmp/cmp"
)

func TestFromTypeShapeAndTypeOfRoundtrip(t *testing.T) {
	m, err := bdd.NewManager()
	if err != nil {
		t.Fatal(err)
	}
	freshBool := func() bdd.Node {
		_, n, err := m.NewVar()
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	freshVec := func(n int) []bdd.Node {
		vars := make([]bdd.Node, n)
		for i := range vars {
			vars[i] = freshBool()
		}
		return vars
	}

	typ := ast.TTuple{Fst: ast.TBool{}, Snd: ast.TInt{N: 3}}
	tree := FromType(typ, freshBool, freshVec)

	branch, ok := tree.(Branch)
	if !ok {
		t.Fatalf("expected Branch, got %T", tree)
	}
	if _, ok := branch.Left.(Leaf); !ok {
		t.Fatalf("expected Leaf for bool side, got %T", branch.Left)
	}
	intLeaf, ok := branch.Right.(Leaf)
	if !ok {
		t.Fatalf("expected Leaf for int side, got %T", branch.Right)
	}
	if iv, ok := intLeaf.Value.(IntLeaf); !ok || len(iv.Vars) != 3 {
		t.Fatalf("expected IntLeaf with 3 vars, got %#v", intLeaf.Value)
	}

	if got := TypeOf(tree); !ast.Equal(got, typ) {
		t.Fatalf("TypeOf roundtrip = %s, want %s", got, typ)
	}
}

func TestZipLeavesShapeMismatch(t *testing.T) {
	m, _ := bdd.NewManager()
	_, v0, _ := m.NewVar()
	_, v1, _ := m.NewVar()

	a := Leaf{BoolLeaf{v0}}
	b := Leaf{IntLeaf{[]bdd.Node{v1}}}

	_, err := ZipLeaves(a, b, func(x, y LeafValue) (LeafValue, error) { return x, nil })
	if err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestZipLeavesIntVectorLengthMismatch(t *testing.T) {
	m, _ := bdd.NewManager()
	_, v0, _ := m.NewVar()
	_, v1, _ := m.NewVar()

	a := Leaf{IntLeaf{[]bdd.Node{v0}}}
	b := Leaf{IntLeaf{[]bdd.Node{v0, v1}}}

	_, err := ZipLeaves(a, b, func(x, y LeafValue) (LeafValue, error) { return x, nil })
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCollectVarsOrder(t *testing.T) {
	m, _ := bdd.NewManager()
	_, v0, _ := m.NewVar()
	_, v1, _ := m.NewVar()
	_, v2, _ := m.NewVar()

	tree := Branch{Leaf{BoolLeaf{v0}}, Leaf{IntLeaf{[]bdd.Node{v1, v2}}}}
	got := CollectVars(tree)
	want := []bdd.Node{v0, v1, v2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CollectVars mismatch (-want +got):\n%s", diff)
	}
}
