// Package direrr defines the fatal, user-visible compile errors described in
// §7 of the design. It is adapted from the teacher's errortypes package: in
// place of a source file/line/column (the lexer and parser that would supply
// one are out of scope, §1), each error carries the offending
// sub-expression's pretty-printed surface form, since that is the only
// context available to a compiler that starts from an already-parsed core
// AST.
package direrr

import "fmt"

// Kind classifies a compile error for programmatic handling (e.g. a test
// that wants to assert *which* fatal condition was hit, not just that one
// occurred).
type Kind int

const (
	// UnknownIdent: Ident(x) with x not bound in the environment.
	UnknownIdent Kind = iota
	// UnknownFunc: FuncCall(f, _) with f not in the function table.
	UnknownFunc
	// ArityMismatch: FuncCall argument count disagrees with function arity.
	ArityMismatch
	// ShapeMismatch: Ite/Eq/Let/FuncCall combined symbolic trees of
	// different shape, or integer vectors of different length.
	ShapeMismatch
	// NotATuple: Fst/Snd applied to a non-tuple value.
	NotATuple
	// DuplicateParam: two parameters of one function share a name.
	DuplicateParam
	// DuplicateFunc: two functions in one program share a name.
	DuplicateFunc
	// ZeroEvidence: wmc(z) = 0 — the program conditions on an impossible
	// event.
	ZeroEvidence
)

func (k Kind) String() string {
	switch k {
	case UnknownIdent:
		return "unknown identifier"
	case UnknownFunc:
		return "unknown function"
	case ArityMismatch:
		return "arity mismatch"
	case ShapeMismatch:
		return "shape mismatch"
	case NotATuple:
		return "not a tuple"
	case DuplicateParam:
		return "duplicate parameter"
	case DuplicateFunc:
		return "duplicate function"
	case ZeroEvidence:
		return "zero evidence"
	default:
		return "compile error"
	}
}

// CompileError is a fatal, non-recoverable error raised during the
// compilation of a single program. None of these are retried: compilation
// of the whole program is abandoned as soon as one occurs (§7).
type CompileError struct {
	Kind Kind
	// Expr is the pretty-printed form of the offending sub-expression, when
	// one is available.
	Expr string
	msg  string
}

func (e *CompileError) Error() string {
	if e.Expr == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
	return fmt.Sprintf("%s: %s (in %s)", e.Kind, e.msg, e.Expr)
}

// New constructs a CompileError with no associated expression.
func New(kind Kind, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Newf constructs a CompileError annotated with the offending expression's
// pretty-printed form.
func Newf(kind Kind, expr fmt.Stringer, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Expr: expr.String(), msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a CompileError of the given Kind, so callers can
// write `direrr.Is(err, direrr.ZeroEvidence)` instead of a type assertion.
func Is(err error, kind Kind) bool {
	ce, ok := err.(*CompileError)
	return ok && ce.Kind == kind
}
