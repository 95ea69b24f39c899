// Package ast contains the in-memory representation of a core-language
// program: the typed expression tree produced by the (out-of-scope) lexer,
// parser, and desugarer. Everything downstream — the symbolic compiler in
// package compiler — consumes only these types.
package ast

import (
	"bytes"
	"fmt"
	"math/big"
)

// Expr is any node of the core expression language. String returns the
// node's surface form, used for error messages where no source text is
// available to quote.
type Expr interface {
	String() string
	expr()
}

// Param is a single function parameter: a name and its declared type.
type Param struct {
	Name string
	Type Type
}

// FuncDef is a user-defined function: a name, a typed parameter list, and a
// body expression evaluated in an environment that binds each parameter.
type FuncDef struct {
	Name   string
	Params []Param
	Body   Expr
}

// ParamTypes returns the parameter types in declaration order; used by the
// function compiler to extend the type environment before compiling Body.
func (f *FuncDef) ParamTypes() []Type {
	ts := make([]Type, len(f.Params))
	for i, p := range f.Params {
		ts[i] = p.Type
	}
	return ts
}

// Program is an ordered list of function definitions, assumed topologically
// sorted by the front-end, plus a main body expression.
type Program struct {
	Funcs []*FuncDef
	Body  Expr
}

// True is the Boolean literal `true`.
type True struct{}

// False is the Boolean literal `false`.
type False struct{}

// Ident references a name bound by a Let, a function parameter, or a
// lazy-let placeholder.
type Ident struct {
	Name string
}

// Not is Boolean negation.
type Not struct {
	X Expr
}

// And is Boolean conjunction.
type And struct {
	L, R Expr
}

// Or is Boolean disjunction.
type Or struct {
	L, R Expr
}

// Eq is structural equality, defined over Booleans and over one-hot-encoded
// finite integers; comparing trees of different shape is a compile error.
type Eq struct {
	L, R Expr
}

// Flip introduces a fresh random Boolean variable with head probability
// Theta (the probability the flip comes up true).
type Flip struct {
	Theta *big.Rat
}

// Ite is the conditional `if Cond then Then else Else`.
type Ite struct {
	Cond, Then, Else Expr
}

// Tup constructs a pair.
type Tup struct {
	Fst, Snd Expr
}

// Fst projects the first component of a tuple.
type Fst struct {
	X Expr
}

// Snd projects the second component of a tuple.
type Snd struct {
	X Expr
}

// Let binds the value of Value to Name within the scope of Body.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

// Observe conditions the program on X being true; it contributes a soft
// constraint to the accumulated evidence rather than a value.
type Observe struct {
	X Expr
}

// FuncCall invokes a previously-defined function by name with the given
// actual arguments.
type FuncCall struct {
	Name string
	Args []Expr
}

func (True) expr()     {}
func (False) expr()    {}
func (Ident) expr()    {}
func (Not) expr()      {}
func (And) expr()      {}
func (Or) expr()       {}
func (Eq) expr()       {}
func (Flip) expr()     {}
func (Ite) expr()      {}
func (Tup) expr()      {}
func (Fst) expr()      {}
func (Snd) expr()      {}
func (Let) expr()      {}
func (Observe) expr()  {}
func (FuncCall) expr() {}

func (True) String() string    { return "true" }
func (False) String() string   { return "false" }
func (n Ident) String() string { return n.Name }
func (n Not) String() string   { return fmt.Sprintf("!%s", n.X) }
func (n And) String() string   { return fmt.Sprintf("(%s && %s)", n.L, n.R) }
func (n Or) String() string    { return fmt.Sprintf("(%s || %s)", n.L, n.R) }
func (n Eq) String() string    { return fmt.Sprintf("(%s == %s)", n.L, n.R) }

func (n Flip) String() string {
	return fmt.Sprintf("flip(%s)", n.Theta.RatString())
}

func (n Ite) String() string {
	return fmt.Sprintf("if %s then %s else %s", n.Cond, n.Then, n.Else)
}

func (n Tup) String() string { return fmt.Sprintf("(%s, %s)", n.Fst, n.Snd) }
func (n Fst) String() string { return fmt.Sprintf("fst(%s)", n.X) }
func (n Snd) String() string { return fmt.Sprintf("snd(%s)", n.X) }

func (n Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", n.Name, n.Value, n.Body)
}

func (n Observe) String() string { return fmt.Sprintf("observe(%s)", n.X) }

func (n FuncCall) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s(", n.Name)
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, a)
	}
	b.WriteString(")")
	return b.String()
}
