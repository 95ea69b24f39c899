package compiler

import (
	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/bdd"
	"github.com/dice-lang/dice/symtree"
)

// compileLet implements both Let strategies of §4.3. Eager binds x to the
// compiled value of e1 directly; lazy instead binds x to a placeholder and
// eliminates the placeholder afterwards by existential quantification, so
// that repeated uses of x inside e2 share the BDD work of computing e1
// rather than re-deriving it.
func compileLet(ctx *Context, tenv TypeEnv, env ValEnv, e ast.Let) (*CompiledExpr, error) {
	c1, err := CompileExpr(ctx, tenv, env, e.Value)
	if err != nil {
		return nil, err
	}

	if !ctx.lazyEval {
		t1 := symtree.TypeOf(c1.State)
		tenv2 := extendType(tenv, e.Name, t1)
		env2 := extendVal(env, e.Name, c1.State)
		c2, err := CompileExpr(ctx, tenv2, env2, e.Body)
		if err != nil {
			return nil, err
		}
		return &CompiledExpr{
			State: c2.State,
			Z:     ctx.Manager.And(c1.Z, c2.Z),
			Flips: append(append([]int{}, c1.Flips...), c2.Flips...),
		}, nil
	}

	t1 := symtree.TypeOf(c1.State)
	ph, err := ctx.genSymType(t1, "let$"+e.Name)
	if err != nil {
		return nil, err
	}
	tenv2 := extendType(tenv, e.Name, t1)
	env2 := extendVal(env, e.Name, ph.Mutex)
	c2, err := CompileExpr(ctx, tenv2, env2, e.Body)
	if err != nil {
		return nil, err
	}

	argcube := ctx.Manager.Cube(ph.Vars)
	iff, err := pointwiseEq(ctx, c1.State, ph.Raw)
	if err != nil {
		return nil, wrapShape(err, e)
	}

	state := symtree.MapNodes(c2.State, func(n bdd.Node) bdd.Node {
		return ctx.Manager.ExistAnd(argcube, iff, n)
	})
	z := ctx.Manager.And(c1.Z, ctx.Manager.ExistAnd(argcube, iff, c2.Z))

	return &CompiledExpr{
		State: state,
		Z:     z,
		Flips: append(append([]int{}, c1.Flips...), c2.Flips...),
	}, nil
}
