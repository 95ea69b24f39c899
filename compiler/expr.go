package compiler

import (
	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/bdd"
	"github.com/dice-lang/dice/direrr"
	"github.com/dice-lang/dice/symtree"
)

// TypeEnv maps a name to its static type. It is threaded through
// compilation alongside ValEnv (§3 "Environments"), extended at Let and at
// function entry; the symbolic tree of any compiled value already pins down
// its own type (symtree.TypeOf), so TypeEnv exists for the judgement form's
// sake and for reporting rather than out of operational necessity.
type TypeEnv map[string]ast.Type

// ValEnv maps a name to the symbolic tree currently bound to it.
type ValEnv map[string]symtree.Tree

// CompiledExpr is the result of compiling one ast.Expr: its symbolic value,
// the accumulated observation constraint, and the flip variables introduced
// while compiling it (§3 "CompiledExpr").
type CompiledExpr struct {
	State symtree.Tree
	Z     bdd.Node
	Flips []int
}

func extendType(tenv TypeEnv, name string, t ast.Type) TypeEnv {
	out := make(TypeEnv, len(tenv)+1)
	for k, v := range tenv {
		out[k] = v
	}
	out[name] = t
	return out
}

func extendVal(env ValEnv, name string, v symtree.Tree) ValEnv {
	out := make(ValEnv, len(env)+1)
	for k, val := range env {
		out[k] = val
	}
	out[name] = v
	return out
}

// CompileExpr translates e to a CompiledExpr against ctx, tenv, and env,
// implementing the rules of §4.3.
func CompileExpr(ctx *Context, tenv TypeEnv, env ValEnv, e ast.Expr) (*CompiledExpr, error) {
	switch e := e.(type) {
	case ast.True:
		return &CompiledExpr{
			State: symtree.Leaf{Value: symtree.BoolLeaf{Node: ctx.Manager.True()}},
			Z:     ctx.Manager.True(),
		}, nil

	case ast.False:
		return &CompiledExpr{
			State: symtree.Leaf{Value: symtree.BoolLeaf{Node: ctx.Manager.False()}},
			Z:     ctx.Manager.True(),
		}, nil

	case ast.Ident:
		v, ok := env[e.Name]
		if !ok {
			return nil, direrr.Newf(direrr.UnknownIdent, e, "%q is not bound in this scope", e.Name)
		}
		return &CompiledExpr{State: v, Z: ctx.Manager.True()}, nil

	case ast.Not:
		c, err := CompileExpr(ctx, tenv, env, e.X)
		if err != nil {
			return nil, err
		}
		b, err := symtree.ExtractBDD(c.State)
		if err != nil {
			return nil, wrapShape(err, e)
		}
		return &CompiledExpr{
			State: symtree.Leaf{Value: symtree.BoolLeaf{Node: ctx.Manager.Not(b)}},
			Z:     c.Z,
			Flips: c.Flips,
		}, nil

	case ast.And:
		return compileBinaryBool(ctx, tenv, env, e, e.L, e.R, ctx.Manager.And)

	case ast.Or:
		return compileBinaryBool(ctx, tenv, env, e, e.L, e.R, ctx.Manager.Or)

	case ast.Eq:
		cl, err := CompileExpr(ctx, tenv, env, e.L)
		if err != nil {
			return nil, err
		}
		cr, err := CompileExpr(ctx, tenv, env, e.R)
		if err != nil {
			return nil, err
		}
		node, err := pointwiseEq(ctx, cl.State, cr.State)
		if err != nil {
			return nil, wrapShape(err, e)
		}
		return &CompiledExpr{
			State: symtree.Leaf{Value: symtree.BoolLeaf{Node: node}},
			Z:     ctx.Manager.And(cl.Z, cr.Z),
			Flips: append(append([]int{}, cl.Flips...), cr.Flips...),
		}, nil

	case ast.Flip:
		id, node, err := ctx.newFlip(e.Theta)
		if err != nil {
			return nil, err
		}
		return &CompiledExpr{
			State: symtree.Leaf{Value: symtree.BoolLeaf{Node: node}},
			Z:     ctx.Manager.True(),
			Flips: []int{id},
		}, nil

	case ast.Observe:
		c, err := CompileExpr(ctx, tenv, env, e.X)
		if err != nil {
			return nil, err
		}
		b, err := symtree.ExtractBDD(c.State)
		if err != nil {
			return nil, wrapShape(err, e)
		}
		return &CompiledExpr{
			State: symtree.Leaf{Value: symtree.BoolLeaf{Node: ctx.Manager.True()}},
			Z:     ctx.Manager.And(c.Z, b),
			Flips: c.Flips,
		}, nil

	case ast.Ite:
		return compileIte(ctx, tenv, env, e)

	case ast.Tup:
		cl, err := CompileExpr(ctx, tenv, env, e.Fst)
		if err != nil {
			return nil, err
		}
		cr, err := CompileExpr(ctx, tenv, env, e.Snd)
		if err != nil {
			return nil, err
		}
		return &CompiledExpr{
			State: symtree.Branch{Left: cl.State, Right: cr.State},
			Z:     ctx.Manager.And(cl.Z, cr.Z),
			Flips: append(append([]int{}, cl.Flips...), cr.Flips...),
		}, nil

	case ast.Fst:
		c, err := CompileExpr(ctx, tenv, env, e.X)
		if err != nil {
			return nil, err
		}
		br, ok := c.State.(symtree.Branch)
		if !ok {
			return nil, direrr.Newf(direrr.NotATuple, e, "fst applied to a non-tuple value")
		}
		return &CompiledExpr{State: br.Left, Z: c.Z, Flips: c.Flips}, nil

	case ast.Snd:
		c, err := CompileExpr(ctx, tenv, env, e.X)
		if err != nil {
			return nil, err
		}
		br, ok := c.State.(symtree.Branch)
		if !ok {
			return nil, direrr.Newf(direrr.NotATuple, e, "snd applied to a non-tuple value")
		}
		return &CompiledExpr{State: br.Right, Z: c.Z, Flips: c.Flips}, nil

	case ast.Let:
		return compileLet(ctx, tenv, env, e)

	case ast.FuncCall:
		return compileFuncCall(ctx, tenv, env, e)

	default:
		return nil, direrr.New(direrr.ShapeMismatch, "unhandled expression node %T", e)
	}
}

func compileBinaryBool(ctx *Context, tenv TypeEnv, env ValEnv, e ast.Expr, l, r ast.Expr, op func(a, b bdd.Node) bdd.Node) (*CompiledExpr, error) {
	cl, err := CompileExpr(ctx, tenv, env, l)
	if err != nil {
		return nil, err
	}
	cr, err := CompileExpr(ctx, tenv, env, r)
	if err != nil {
		return nil, err
	}
	lb, err := symtree.ExtractBDD(cl.State)
	if err != nil {
		return nil, wrapShape(err, e)
	}
	rb, err := symtree.ExtractBDD(cr.State)
	if err != nil {
		return nil, wrapShape(err, e)
	}
	return &CompiledExpr{
		State: symtree.Leaf{Value: symtree.BoolLeaf{Node: op(lb, rb)}},
		Z:     ctx.Manager.And(cl.Z, cr.Z),
		Flips: append(append([]int{}, cl.Flips...), cr.Flips...),
	}, nil
}

func compileIte(ctx *Context, tenv TypeEnv, env ValEnv, e ast.Ite) (*CompiledExpr, error) {
	cg, err := CompileExpr(ctx, tenv, env, e.Cond)
	if err != nil {
		return nil, err
	}
	g, err := symtree.ExtractBDD(cg.State)
	if err != nil {
		return nil, wrapShape(err, e)
	}
	ct, err := CompileExpr(ctx, tenv, env, e.Then)
	if err != nil {
		return nil, err
	}
	ce, err := CompileExpr(ctx, tenv, env, e.Else)
	if err != nil {
		return nil, err
	}
	state, err := symtree.ZipLeaves(ct.State, ce.State, func(x, y symtree.LeafValue) (symtree.LeafValue, error) {
		switch x := x.(type) {
		case symtree.BoolLeaf:
			y := y.(symtree.BoolLeaf)
			return symtree.BoolLeaf{Node: ctx.Manager.Ite(g, x.Node, y.Node)}, nil
		case symtree.IntLeaf:
			y := y.(symtree.IntLeaf)
			out := make([]bdd.Node, len(x.Vars))
			for i := range x.Vars {
				out[i] = ctx.Manager.Ite(g, x.Vars[i], y.Vars[i])
			}
			return symtree.IntLeaf{Vars: out}, nil
		default:
			return nil, direrr.New(direrr.ShapeMismatch, "unrecognized leaf value")
		}
	})
	if err != nil {
		return nil, wrapShape(err, e)
	}
	// z(g) ∧ ((g ∧ z(t)) ∨ (¬g ∧ z(e)))
	notG := ctx.Manager.Not(g)
	branchZ := ctx.Manager.Or(
		ctx.Manager.And(g, ct.Z),
		ctx.Manager.And(notG, ce.Z),
	)
	z := ctx.Manager.And(cg.Z, branchZ)
	flips := append(append([]int{}, cg.Flips...), ct.Flips...)
	flips = append(flips, ce.Flips...)
	return &CompiledExpr{State: state, Z: z, Flips: flips}, nil
}

func wrapShape(err error, e ast.Expr) error {
	if _, ok := err.(*direrr.CompileError); ok {
		return err
	}
	return direrr.Newf(direrr.ShapeMismatch, e, "%s", err)
}
