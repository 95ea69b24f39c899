// Package wmc implements weighted model counting over a compiled program's
// BDDs (§4.6) and the final probability computation Pr[state | z] =
// wmc(state ∧ z) / wmc(z).
package wmc

import (
	"fmt"
	"math/big"

	"github.com/dice-lang/dice/bdd"
	"github.com/dice-lang/dice/compiler"
	"github.com/dice-lang/dice/direrr"
	"github.com/dice-lang/dice/symtree"
)

type nodeInfo struct {
	level, low, high int
}

// Count computes the weighted model count of n: the sum, over every
// satisfying assignment of n, of the product of each assigned variable's
// weight (§4.6). It is a memoized post-order traversal of the BDD reachable
// from n; weights lists a per-variable (w0, w1) pair and must have an entry
// for every variable that traversal actually reaches (the well-typedness
// and Invariant-1 guarantees of the compiler ensure this for any BDD it
// produces).
func Count(mgr *bdd.Manager, n bdd.Node, weights map[int]compiler.Weight) (*big.Rat, error) {
	nodes := make(map[int]nodeInfo)
	if err := mgr.AllNodes(n, func(id, level, low, high int) error {
		nodes[id] = nodeInfo{level, low, high}
		return nil
	}); err != nil {
		return nil, err
	}

	memo := make(map[int]*big.Rat)
	var compute func(id int) (*big.Rat, error)
	compute = func(id int) (*big.Rat, error) {
		switch id {
		case falseID:
			return big.NewRat(0, 1), nil
		case trueID:
			return big.NewRat(1, 1), nil
		}
		if r, ok := memo[id]; ok {
			return r, nil
		}
		info, ok := nodes[id]
		if !ok {
			return nil, fmt.Errorf("wmc: node %d not reachable from the given root", id)
		}
		w, ok := weights[info.level]
		if !ok {
			return nil, fmt.Errorf("wmc: no weight recorded for variable %d", info.level)
		}
		lo, err := compute(info.low)
		if err != nil {
			return nil, err
		}
		hi, err := compute(info.high)
		if err != nil {
			return nil, err
		}
		res := new(big.Rat).Add(
			new(big.Rat).Mul(w.W0, lo),
			new(big.Rat).Mul(w.W1, hi),
		)
		memo[id] = res
		return res, nil
	}

	return compute(idOf(n))
}

const (
	falseID = 0
	trueID  = 1
)

// idOf recovers the node-table id of n. Node is defined (package bdd, from
// the underlying rudd engine) as a pointer to the id the manager assigned
// it, so dereferencing it is the id itself.
func idOf(n bdd.Node) int { return *n }

// Probability computes the conditional probability of a compiled program's
// main-body result: wmc(state ∧ z) / wmc(z). The main body must be
// Boolean-shaped (a program's observable outcome is always a yes/no
// question); anything else is a shape error. If the denominator is zero,
// the program conditions on an impossible event (§4.6, §7).
func Probability(ctx *compiler.Context, result *compiler.CompiledExpr) (*big.Rat, error) {
	state, err := symtree.ExtractBDD(result.State)
	if err != nil {
		return nil, direrr.New(direrr.ShapeMismatch, "program body must be Boolean-shaped to compute a probability: %s", err)
	}

	den, err := Count(ctx.Manager, result.Z, ctx.Weights())
	if err != nil {
		return nil, err
	}
	if den.Sign() == 0 {
		return nil, direrr.New(direrr.ZeroEvidence, "evidence has probability zero")
	}

	num, err := Count(ctx.Manager, ctx.Manager.And(state, result.Z), ctx.Weights())
	if err != nil {
		return nil, err
	}

	return new(big.Rat).Quo(num, den), nil
}
