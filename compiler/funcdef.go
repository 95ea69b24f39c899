package compiler

import (
	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/direrr"
)

// CompiledFunc is the result of compiling one function definition (§3): the
// placeholder argument trees the body was compiled against, and the
// compiled body itself. A FuncCall later substitutes the actual arguments
// into a refreshed copy (§4.3).
type CompiledFunc struct {
	Args []Placeholder
	Body *CompiledExpr
}

// compileFunction implements the function compiler (§4.4): extend tenv with
// every parameter's type, build a placeholder for each parameter, compile
// the body once against those placeholders, and return the result for
// storage in the function table.
func compileFunction(ctx *Context, tenv TypeEnv, def *ast.FuncDef) (*CompiledFunc, error) {
	seen := make(map[string]bool, len(def.Params))
	for _, p := range def.Params {
		if seen[p.Name] {
			return nil, direrr.New(direrr.DuplicateParam, "function %q declares parameter %q more than once", def.Name, p.Name)
		}
		seen[p.Name] = true
	}

	tenv2 := tenv
	env2 := ValEnv{}
	args := make([]Placeholder, len(def.Params))
	for i, p := range def.Params {
		tenv2 = extendType(tenv2, p.Name, p.Type)
		ph, err := ctx.genSymType(p.Type, "arg$"+def.Name+"$"+p.Name)
		if err != nil {
			return nil, err
		}
		args[i] = ph
		env2 = extendVal(env2, p.Name, ph.Mutex)
	}

	body, err := CompileExpr(ctx, tenv2, env2, def.Body)
	if err != nil {
		return nil, err
	}
	return &CompiledFunc{Args: args, Body: body}, nil
}
