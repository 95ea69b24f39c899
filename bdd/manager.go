// Package bdd wraps the third-party BDD engine (github.com/dalzilio/rudd)
// behind the small set of primitives the symbolic compiler needs: fresh
// variable allocation, the Boolean connectives, if-then-else, cube
// construction, existential-AND, and simultaneous variable substitution.
// Nothing outside this package imports rudd directly, mirroring the way the
// teacher's tofu package wraps template execution behind a narrow API.
package bdd

import (
	"math/big"

	"github.com/dalzilio/rudd"
)

// Node is a reference to a node in the underlying manager. Nodes are only
// valid for the lifetime of the Manager that produced them; see Manager's
// doc comment.
type Node = rudd.Node

// Manager owns a single rudd BDD instance and hands out fresh Boolean
// variables on demand, growing the variable count as the compiler needs
// more of them. It must not be shared across concurrent compilations (§5 of
// the design): all compilation and weighted model counting for one program
// happens on a single goroutine against a single Manager.
//
// Destroying a Manager (dropping the last reference) invalidates every Node
// it produced; callers must not retain Nodes past the Manager's lifetime.
type Manager struct {
	set   rudd.Set
	nvars int
}

// NewManager creates an empty manager with no variables allocated yet.
func NewManager() (*Manager, error) {
	set, err := rudd.New(1)
	if err != nil {
		return nil, err
	}
	return &Manager{set: set}, nil
}

// Varnum returns the number of Boolean variables allocated so far.
func (m *Manager) Varnum() int { return m.nvars }

// NewVar allocates a fresh Boolean variable, returning its id (stable for
// the life of the manager) and its BDD node.
func (m *Manager) NewVar() (int, Node, error) {
	id := m.nvars
	if err := m.set.SetVarnum(id + 1); err != nil {
		return 0, nil, err
	}
	m.nvars = id + 1
	return id, m.set.Ithvar(id), nil
}

// True is the constant-true BDD.
func (m *Manager) True() Node { return m.set.True() }

// False is the constant-false BDD.
func (m *Manager) False() Node { return m.set.False() }

// And returns the conjunction of a and b.
func (m *Manager) And(a, b Node) Node { return m.set.Apply(a, b, rudd.OPand) }

// Or returns the disjunction of a and b.
func (m *Manager) Or(a, b Node) Node { return m.set.Apply(a, b, rudd.OPor) }

// Not returns the negation of a.
func (m *Manager) Not(a Node) Node { return m.set.Not(a) }

// Equiv returns the biconditional a <=> b.
func (m *Manager) Equiv(a, b Node) Node { return m.set.Apply(a, b, rudd.OPbiimp) }

// Ite computes the BDD for (f && g) || (!f && h) directly, as the underlying
// engine can do this more efficiently than three separate operations.
func (m *Manager) Ite(f, g, h Node) Node { return m.set.Ite(f, g, h) }

// Cube conjoins the positive literal of every variable id in vars; this is
// the "varset" argument expected by ExistAnd.
func (m *Manager) Cube(vars []int) Node { return m.set.Makeset(vars) }

// ExistAnd computes ∃cube. (a ∧ b) — the spec's `existand` primitive, used
// both to eliminate lazy-let placeholders and to substitute actual
// arguments into an inlined function body.
func (m *Manager) ExistAnd(cube, a, b Node) Node {
	return m.set.AppEx(a, b, rudd.OPand, cube)
}

// Swap simultaneously substitutes, within n, each variable in from with the
// corresponding variable in to. It is used to refresh a function body's
// flip variables at each call site (§4.3, FuncCall step 4).
func (m *Manager) Swap(n Node, from, to []int) (Node, error) {
	renamer, err := rudd.NewRenamer(from, to)
	if err != nil {
		return nil, err
	}
	return m.set.Replace(n, renamer), nil
}

// AllNodes visits every BDD node reachable from n exactly once, calling f
// with its id, variable level (which coincides with the variable id for the
// identity variable ordering this package always uses), and the ids of its
// low/high children. The two constant nodes have id 0 (false) and 1 (true).
func (m *Manager) AllNodes(n Node, f func(id, level, low, high int) error) error {
	return m.set.Allnodes(f, n)
}

// Satcount returns the number of satisfying variable assignments of n, over
// the Varnum() variables currently allocated. Exposed mainly for tests that
// cross-check weighted model counting against unweighted model counting.
func (m *Manager) Satcount(n Node) *big.Int { return m.set.Satcount(n) }
