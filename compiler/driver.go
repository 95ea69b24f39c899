package compiler

import (
	"github.com/dice-lang/dice/ast"
	"github.com/dice-lang/dice/direrr"
	"github.com/dice-lang/dice/symtree"
)

// CompileProgram implements the program driver (§4.5): compile every
// function in declaration order, registering each one's return type and
// compiled body before moving to the next, then compile the main body with
// an empty value environment and a type environment containing every
// function's signature.
//
// Function definitions are assumed topologically sorted by the excluded
// front-end (§9); this driver does not detect cycles, it only detects
// duplicate names.
func CompileProgram(ctx *Context, prog *ast.Program) (*CompiledExpr, error) {
	tenv := TypeEnv{}
	seen := make(map[string]bool, len(prog.Funcs))
	for _, def := range prog.Funcs {
		if seen[def.Name] {
			return nil, direrr.New(direrr.DuplicateFunc, "function %q is defined more than once", def.Name)
		}
		seen[def.Name] = true

		cf, err := compileFunction(ctx, tenv, def)
		if err != nil {
			return nil, err
		}
		ctx.funcs[def.Name] = cf
		tenv[def.Name] = symtree.TypeOf(cf.Body.State)
	}

	return CompileExpr(ctx, tenv, ValEnv{}, prog.Body)
}
