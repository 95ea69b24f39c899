package wmc

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/bdd"
	"github.com/dice-lang/dice/compiler"
	"github.com/dice-lang/dice/direrr"
)

func TestCountSingleFlip(t *testing.T) {
	mgr, err := bdd.NewManager()
	if err != nil {
		t.Fatal(err)
	}
	id, node, err := mgr.NewVar()
	if err != nil {
		t.Fatal(err)
	}
	weights := map[int]compiler.Weight{id: {W0: big.NewRat(7, 10), W1: big.NewRat(3, 10)}}

	if got, err := Count(mgr, node, weights); err != nil || got.Cmp(big.NewRat(3, 10)) != 0 {
		t.Fatalf("Count(var) = %v, %v; want 3/10", got, err)
	}
	if got, err := Count(mgr, mgr.Not(node), weights); err != nil || got.Cmp(big.NewRat(7, 10)) != 0 {
		t.Fatalf("Count(!var) = %v, %v; want 7/10", got, err)
	}
	if got, err := Count(mgr, mgr.True(), weights); err != nil || got.Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf("Count(true) = %v, %v; want 1", got, err)
	}
	if got, err := Count(mgr, mgr.False(), weights); err != nil || got.Cmp(big.NewRat(0, 1)) != 0 {
		t.Fatalf("Count(false) = %v, %v; want 0", got, err)
	}
}

func TestCountConjunction(t *testing.T) {
	mgr, err := bdd.NewManager()
	if err != nil {
		t.Fatal(err)
	}
	id0, n0, err := mgr.NewVar()
	if err != nil {
		t.Fatal(err)
	}
	id1, n1, err := mgr.NewVar()
	if err != nil {
		t.Fatal(err)
	}
	weights := map[int]compiler.Weight{
		id0: {W0: big.NewRat(1, 2), W1: big.NewRat(1, 2)},
		id1: {W0: big.NewRat(1, 2), W1: big.NewRat(1, 2)},
	}

	got, err := Count(mgr, mgr.And(n0, n1), weights)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(big.NewRat(1, 4)) != 0 {
		t.Fatalf("Count(n0 && n1) = %s, want 1/4", got.RatString())
	}
}

// TestCountDeterministic covers §8 Property 3: two invocations of Count on
// the same BDD and weight table must produce bitwise-identical results.
func TestCountDeterministic(t *testing.T) {
	mgr, err := bdd.NewManager()
	if err != nil {
		t.Fatal(err)
	}
	id0, n0, _ := mgr.NewVar()
	id1, n1, _ := mgr.NewVar()
	weights := map[int]compiler.Weight{
		id0: {W0: big.NewRat(3, 10), W1: big.NewRat(7, 10)},
		id1: {W0: big.NewRat(2, 5), W1: big.NewRat(3, 5)},
	}
	n := mgr.Or(n0, n1)

	first, err := Count(mgr, n, weights)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Count(mgr, n, weights)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.RatString(), second.RatString()); diff != "" {
		t.Fatalf("Count is not deterministic (-first +second):\n%s", diff)
	}
}

func compileBody(t *testing.T, e ast.Expr) (*compiler.Context, *compiler.CompiledExpr) {
	t.Helper()
	ctx, err := compiler.NewContext()
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	result, err := compiler.CompileExpr(ctx, compiler.TypeEnv{}, compiler.ValEnv{}, e)
	if err != nil {
		t.Fatalf("CompileExpr: %v", err)
	}
	return ctx, result
}

func TestProbabilitySimpleFlip(t *testing.T) {
	ctx, result := compileBody(t, ast.Flip{Theta: big.NewRat(3, 10)})
	got, err := Probability(ctx, result)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(big.NewRat(3, 10)) != 0 {
		t.Fatalf("Probability(flip 0.3) = %s, want 3/10", got.RatString())
	}
}

func TestProbabilityZeroEvidence(t *testing.T) {
	ctx, result := compileBody(t, ast.Let{
		Name:  "x",
		Value: ast.Flip{Theta: big.NewRat(0, 1)},
		Body: ast.Let{
			Name:  "_",
			Value: ast.Observe{X: ast.Ident{Name: "x"}},
			Body:  ast.Ident{Name: "x"},
		},
	})
	_, err := Probability(ctx, result)
	if !direrr.Is(err, direrr.ZeroEvidence) {
		t.Fatalf("want ZeroEvidence, got %v", err)
	}
}

// TestProbabilityShapeMismatchTuple covers wmc.go's non-Boolean-body branch:
// a program whose main body is tuple-shaped has no single BDD node to read a
// probability from, and Probability must report that as a ShapeMismatch
// rather than panicking or silently picking a component.
func TestProbabilityShapeMismatchTuple(t *testing.T) {
	ctx, result := compileBody(t, ast.Tup{Fst: ast.True{}, Snd: ast.False{}})
	_, err := Probability(ctx, result)
	if !direrr.Is(err, direrr.ShapeMismatch) {
		t.Fatalf("want ShapeMismatch for a tuple-shaped body, got %v", err)
	}
}
