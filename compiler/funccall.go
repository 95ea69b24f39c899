package compiler

import (
	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/bdd"
	"github.com/dice-lang/dice/direrr"
	"github.com/dice-lang/dice/symtree"
)

// compileFuncCall implements §4.3's FuncCall rule: a function body is
// compiled exactly once (by the function compiler), and every call site
// refreshes its flip variables and substitutes the actual arguments via
// existential quantification rather than re-walking the function's source
// AST.
func compileFuncCall(ctx *Context, tenv TypeEnv, env ValEnv, e ast.FuncCall) (*CompiledExpr, error) {
	fn, ok := ctx.funcs[e.Name]
	if !ok {
		return nil, direrr.Newf(direrr.UnknownFunc, e, "function %q is not defined", e.Name)
	}
	if len(e.Args) != len(fn.Args) {
		return nil, direrr.Newf(direrr.ArityMismatch, e, "function %q expects %d argument(s), got %d", e.Name, len(fn.Args), len(e.Args))
	}

	actuals := make([]*CompiledExpr, len(e.Args))
	for i, a := range e.Args {
		c, err := CompileExpr(ctx, tenv, env, a)
		if err != nil {
			return nil, err
		}
		actuals[i] = c
	}

	// Step 4: refresh every flip variable in the function body so that
	// repeated calls to the same function get independent flips.
	oldIDs := fn.Body.Flips
	newIDs := make([]int, len(oldIDs))
	for i, old := range oldIDs {
		id, _, err := ctx.newPlaceholder("")
		if err != nil {
			return nil, err
		}
		ctx.inheritWeight(id, old)
		newIDs[i] = id
	}
	Logger.Printf("inlining %s with %d refreshed flip variable(s)", e.Name, len(newIDs))
	refreshedState, err := symtree.MapNodesE(fn.Body.State, func(n bdd.Node) (bdd.Node, error) {
		return ctx.Manager.Swap(n, oldIDs, newIDs)
	})
	if err != nil {
		return nil, err
	}
	refreshedZ, err := ctx.Manager.Swap(fn.Body.Z, oldIDs, newIDs)
	if err != nil {
		return nil, err
	}

	// Steps 5-6: build the combined argument cube and the iff relating each
	// actual argument to its placeholder.
	var argVarIDs []int
	argiff := ctx.Manager.True()
	for i, ph := range fn.Args {
		argVarIDs = append(argVarIDs, ph.Vars...)
		eq, err := pointwiseEq(ctx, actuals[i].State, ph.Raw)
		if err != nil {
			return nil, wrapShape(err, e)
		}
		argiff = ctx.Manager.And(argiff, eq)
	}
	argcube := ctx.Manager.Cube(argVarIDs)

	// Steps 7-8: substitute the actuals into the refreshed body.
	state := symtree.MapNodes(refreshedState, func(n bdd.Node) bdd.Node {
		return ctx.Manager.ExistAnd(argcube, argiff, n)
	})
	z := ctx.Manager.ExistAnd(argcube, argiff, refreshedZ)
	for _, a := range actuals {
		z = ctx.Manager.And(z, a.Z)
	}

	return &CompiledExpr{State: state, Z: z, Flips: append(append([]int{}, newIDs...), flattenActualFlips(actuals)...)}, nil
}

// flattenActualFlips collects every flip variable introduced while compiling
// the actual arguments of a FuncCall, in argument order. Without this, a
// Flip nested inside an actual argument (rather than inside the called
// function's own body) would never be refreshed at an enclosing function's
// own call sites, letting two otherwise-independent calls to that enclosing
// function silently share the same underlying BDD variable.
func flattenActualFlips(actuals []*CompiledExpr) []int {
	var out []int
	for _, a := range actuals {
		out = append(out, a.Flips...)
	}
	return out
}
