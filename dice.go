package dice

import (
	"math/big"

	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/compiler"
	"github.com/dice-lang/dice/wmc"
)

// Option configures the compile context used by Compile and Infer.
type Option = compiler.Option

// WithLazyEval and WithDebugNames are re-exported so callers can tune
// compilation without importing package compiler directly.
var (
	WithLazyEval   = compiler.WithLazyEval
	WithDebugNames = compiler.WithDebugNames
)

// Compile runs the program driver (§4.5) over prog: every function is
// compiled in declaration order, then the main body. It returns the
// context that owns the resulting BDDs and the compiled main body; most
// callers want Infer instead, which goes on to compute a probability.
func Compile(prog *ast.Program, opts ...Option) (*compiler.Context, *compiler.CompiledExpr, error) {
	ctx, err := compiler.NewContext(opts...)
	if err != nil {
		return nil, nil, err
	}
	result, err := compiler.CompileProgram(ctx, prog)
	if err != nil {
		return nil, nil, err
	}
	return ctx, result, nil
}

// InferRat compiles prog and computes Pr[body is true | every observation
// holds] as an exact rational. It returns the "evidence has probability
// zero" error (see package direrr) if the program's observations rule out
// every possible world.
func InferRat(prog *ast.Program, opts ...Option) (*big.Rat, error) {
	ctx, result, err := Compile(prog, opts...)
	if err != nil {
		return nil, err
	}
	return wmc.Probability(ctx, result)
}

// Infer is InferRat rounded to a float64, for callers that don't need exact
// rational arithmetic.
func Infer(prog *ast.Program, opts ...Option) (float64, error) {
	r, err := InferRat(prog, opts...)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}
