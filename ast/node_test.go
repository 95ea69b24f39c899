package ast

import (
	"math/big"
	"testing"

	"github.com/andreyvit/diff"
)

func TestExprString(t *testing.T) {
	half := big.NewRat(1, 2)
	tests := []struct {
		expr Expr
		want string
	}{
		{True{}, "true"},
		{False{}, "false"},
		{Ident{"x"}, "x"},
		{Not{Ident{"x"}}, "!x"},
		{And{Ident{"x"}, Ident{"y"}}, "(x && y)"},
		{Flip{half}, "flip(1/2)"},
		{Ite{Ident{"g"}, True{}, False{}}, "if g then true else false"},
		{Let{"x", Flip{half}, Ident{"x"}}, "let x = flip(1/2) in x"},
		{Observe{Ident{"x"}}, "observe(x)"},
		{FuncCall{"f", []Expr{Ident{"x"}, True{}}}, "f(x, true)"},
	}
	for _, test := range tests {
		if got := test.expr.String(); got != test.want {
			t.Errorf("String() mismatch:\n%s", diff.LineDiff(test.want, got))
		}
	}
}

func TestTypeEqual(t *testing.T) {
	if !Equal(TInt{N: 3}, TInt{N: 3}) {
		t.Error("expected TInt(3) == TInt(3)")
	}
	if Equal(TInt{N: 3}, TInt{N: 4}) {
		t.Error("expected TInt(3) != TInt(4)")
	}
	if !Equal(TTuple{TBool{}, TInt{N: 2}}, TTuple{TBool{}, TInt{N: 2}}) {
		t.Error("expected equal tuple types to compare equal")
	}
	if Equal(TBool{}, TInt{N: 2}) {
		t.Error("expected TBool != TInt")
	}
}
