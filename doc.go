/*
Package dice is a compiler and exact inference engine for a small discrete
probabilistic programming language: programs describe a distribution over
Boolean and finite-integer values using coin flips, Boolean combinators,
let-bindings, conditionals, tuples, user-defined functions, and observation
(soft conditioning), and this package computes the exact conditional
probability Pr[body is true | every observation holds].

Source lexing, parsing, and desugaring to the core ast.Program this package
consumes are out of scope; callers are expected to hand this package an
already-typed core AST (see package ast). Given one, Infer drives the
symbolic compiler (package compiler) — which lowers every expression to a
trio of Binary Decision Diagrams via github.com/dalzilio/rudd — and then
weighted model counting (package wmc) to produce the probability:

	prog := &ast.Program{
		Body: ast.Let{
			Name:  "x",
			Value: ast.Flip{Theta: big.NewRat(3, 10)},
			Body:  ast.Ident{Name: "x"},
		},
	}
	p, err := dice.Infer(prog)

Lazy let-compilation (placeholder variables eliminated by existential
quantification, §4.3/§4.2) is used by default and can be disabled with
WithLazyEval(false); eager and lazy compilation are required to agree on
every well-typed program (see the compiler package tests).
*/
package dice
