package direrr

import (
	"testing"

	"github.com/dice-lang/dice/ast"
)

func TestIs(t *testing.T) {
	err := Newf(UnknownIdent, ast.Ident{Name: "x"}, "not bound in this scope")
	if !Is(err, UnknownIdent) {
		t.Fatal("expected Is(err, UnknownIdent) to be true")
	}
	if Is(err, ZeroEvidence) {
		t.Fatal("expected Is(err, ZeroEvidence) to be false")
	}
	want := "unknown identifier: not bound in this scope (in x)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
