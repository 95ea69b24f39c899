// Package compiler implements the symbolic compiler (§4 of the design): the
// compile context, the expression compiler, the function compiler, and the
// program driver. Its recursive descent over ast.Expr mirrors the shape of
// the teacher's tofu.state.walk, but where tofu produces rendered text
// against a data.Map, this package produces a {state, z, flips} triple
// against a *bdd.Manager.
package compiler

import (
	"fmt"
	"io"
	"log"
	"math/big"

	"github.com/dice-lang/dice/bdd"
)

// Logger collects debug tracing of flip-variable allocation and function
// inlining, in the style of the teacher's tofu.Logger. It is silent by
// default.
var Logger = log.New(io.Discard, "[dice] ", 0)

// Weight is a flip variable's (w0, w1) pair: the weight contributed when
// the variable is assigned false, and when it is assigned true.
type Weight struct {
	W0, W1 *big.Rat
}

// Context owns everything a single program compilation-plus-WMC pass needs:
// the BDD manager, the weight table, the debug-name table, the function
// table, and the lazy/eager flag (§3 "Context"). A Context is used for
// exactly one program; its BDD manager must not be shared across concurrent
// compilations (§5).
type Context struct {
	Manager *bdd.Manager

	weights map[int]Weight
	names   map[int]string
	funcs   map[string]*CompiledFunc

	lazyEval    bool
	debugNames  bool
	flipCounter int
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithLazyEval controls whether Let uses the lazy placeholder-and-existand
// strategy (§4.3 "Let — lazy") or the eager substitution strategy. The
// source this design is based on unconditionally enables lazy evaluation
// and takes no configuration for it (§9); we expose the flag anyway, per the
// design's own resolution of that open question, but default to lazy to
// match the original behavior.
func WithLazyEval(lazy bool) Option {
	return func(c *Context) { c.lazyEval = lazy }
}

// WithDebugNames controls whether fresh flip variables are assigned a
// human-readable debug name (flip$<n>) in the name table. Defaults to true;
// large programs that don't need it can disable the bookkeeping.
func WithDebugNames(enabled bool) Option {
	return func(c *Context) { c.debugNames = enabled }
}

// NewContext creates an empty compile context with a fresh BDD manager.
func NewContext(opts ...Option) (*Context, error) {
	mgr, err := bdd.NewManager()
	if err != nil {
		return nil, err
	}
	c := &Context{
		Manager:    mgr,
		weights:    make(map[int]Weight),
		names:      make(map[int]string),
		funcs:      make(map[string]*CompiledFunc),
		lazyEval:   true,
		debugNames: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LazyEval reports whether Let uses the lazy compilation strategy.
func (c *Context) LazyEval() bool { return c.lazyEval }

// Weights returns the compiled weight table: every flip variable's (w0, w1)
// pair, keyed by variable id. Variables that are placeholders rather than
// flips have no entry (Invariant 1, §3).
func (c *Context) Weights() map[int]Weight { return c.weights }

// Name returns the debug name of variable id, or its numeric id formatted as
// a fallback if none was recorded.
func (c *Context) Name(id int) string {
	if n, ok := c.names[id]; ok {
		return n
	}
	return fmt.Sprintf("v%d", id)
}

// newFlip allocates a fresh BDD variable for a Flip(theta) node, records its
// weight, and (if enabled) its debug name.
func (c *Context) newFlip(theta *big.Rat) (int, bdd.Node, error) {
	id, node, err := c.Manager.NewVar()
	if err != nil {
		return 0, nil, err
	}
	one := big.NewRat(1, 1)
	w1 := new(big.Rat).Set(theta)
	w0 := new(big.Rat).Sub(one, theta)
	c.weights[id] = Weight{W0: w0, W1: w1}
	if c.debugNames {
		name := fmt.Sprintf("flip$%d", c.flipCounter)
		c.flipCounter++
		c.names[id] = name
		Logger.Printf("allocated %s as variable %d with weight (%s, %s)", name, id, w0.RatString(), w1.RatString())
	}
	return id, node, nil
}

// newPlaceholder allocates a fresh BDD variable that is not a flip: it gets
// no weight table entry (Invariant 1 permits this — "weight entry may be
// absent or inherited on refresh") until it is either refreshed from a
// flip's weight (FuncCall step 4) or eliminated entirely by existential
// quantification (Let-lazy, FuncCall).
func (c *Context) newPlaceholder(label string) (int, bdd.Node, error) {
	id, node, err := c.Manager.NewVar()
	if err != nil {
		return 0, nil, err
	}
	if c.debugNames {
		c.names[id] = label
	}
	return id, node, nil
}

// inheritWeight copies the weight (and debug name, suffixed) of src onto
// dst, used when FuncCall refreshes a function body's flip variables
// (§4.3 step 4).
func (c *Context) inheritWeight(dst, src int) {
	if w, ok := c.weights[src]; ok {
		c.weights[dst] = w
	}
	if c.debugNames {
		c.names[dst] = fmt.Sprintf("%s'", c.Name(src))
	}
}
