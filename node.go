// node.go — expression tree data model for the quiz term engine.
//
// A Term owns a tree of Node values. A Node is exactly one of three kinds:
// a complex constant, a named variable, or an operator applied to a fixed
// number of operands. The set of operators is closed; the evaluator switches
// over it exhaustively and treats anything else as an internal error.
//
// The Paren flag records that the source text wrapped the subexpression in
// literal parentheses. It influences TeX rendering only; evaluation and
// comparison ignore it.
package term

import (
	"sort"
	"strings"
)

// Op identifies an operator or named function.
type Op string

// Binary operators (arity 2).
const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpPow Op = "^"
)

// Unary operators and named functions (arity 1).
const (
	OpNeg   Op = "neg"
	OpAbs   Op = "abs"
	OpSin   Op = "sin"
	OpCos   Op = "cos"
	OpTan   Op = "tan"
	OpCot   Op = "cot"
	OpSinc  Op = "sinc"
	OpExp   Op = "exp"
	OpLn    Op = "ln"
	OpLog2  Op = "log2"
	OpLog10 Op = "log10"
	OpSqrt  Op = "sqrt"
	OpSinh  Op = "sinh"
	OpCosh  Op = "cosh"
	OpTanh  Op = "tanh"
	OpASin  Op = "asin"
	OpACos  Op = "acos"
	OpATan  Op = "atan"
	OpASinh Op = "asinh"
	OpACosh Op = "acosh"
	OpATanh Op = "atanh"
	OpFloor Op = "floor"
	OpCeil  Op = "ceil"
	OpRound Op = "round"
)

// opArity maps every operator to its fixed operand count.
var opArity = map[Op]int{
	OpAdd: 2, OpSub: 2, OpMul: 2, OpDiv: 2, OpPow: 2,
	OpNeg: 1, OpAbs: 1,
	OpSin: 1, OpCos: 1, OpTan: 1, OpCot: 1, OpSinc: 1,
	OpExp: 1, OpLn: 1, OpLog2: 1, OpLog10: 1, OpSqrt: 1,
	OpSinh: 1, OpCosh: 1, OpTanh: 1,
	OpASin: 1, OpACos: 1, OpATan: 1,
	OpASinh: 1, OpACosh: 1, OpATanh: 1,
	OpFloor: 1, OpCeil: 1, OpRound: 1,
}

// functionNames lists the named functions the parser may match as a prefix of
// an identifier token, longest names first so that "sinh" wins over "sin".
// "log" is an alias for OpLn; the parser upgrades it to log2/log10 when an
// adjacent digit token follows (the lexer splits letters from digits, so
// "log10" can never be a single token).
var functionNames = []struct {
	name string
	op   Op
}{
	{"asinh", OpASinh}, {"acosh", OpACosh}, {"atanh", OpATanh},
	{"floor", OpFloor}, {"round", OpRound},
	{"sinh", OpSinh}, {"cosh", OpCosh}, {"tanh", OpTanh},
	{"asin", OpASin}, {"acos", OpACos}, {"atan", OpATan},
	{"sinc", OpSinc}, {"ceil", OpCeil},
	{"sqrt", OpSqrt},
	{"abs", OpAbs}, {"sin", OpSin}, {"cos", OpCos},
	{"tan", OpTan}, {"cot", OpCot}, {"exp", OpExp}, {"log", OpLn},
	{"ln", OpLn},
}

// NodeKind tags the variant stored in a Node.
type NodeKind int

const (
	KindConst NodeKind = iota
	KindVariable
	KindApply
)

// Node is one element of an expression tree.
type Node struct {
	Kind NodeKind

	Re, Im float64 // KindConst
	Name   string  // KindVariable
	Op     Op      // KindApply
	Args   []*Node // KindApply; length matches opArity[Op]

	Paren bool // source had explicit parentheses around this subtree
}

// NewConst returns a complex literal node.
func NewConst(re, im float64) *Node {
	return &Node{Kind: KindConst, Re: re, Im: im}
}

// NewVariable returns a free-identifier node. The reserved names pi, e, i,
// true and false are resolved by the evaluator, not here.
func NewVariable(name string) *Node {
	return &Node{Kind: KindVariable, Name: name}
}

// NewApply returns an operator application. The caller supplies exactly
// opArity[op] operands; the constructors are the only place trees are built,
// which keeps the arity invariant local.
func NewApply(op Op, args ...*Node) *Node {
	if len(args) != opArity[op] {
		panic("term: operator " + string(op) + " applied to wrong operand count")
	}
	return &Node{Kind: KindApply, Op: op, Args: args}
}

// Clone deep-copies the subtree. The ODE comparison rewrites copies
// destructively, so sharing is never safe there.
func (n *Node) Clone() *Node {
	c := &Node{Kind: n.Kind, Re: n.Re, Im: n.Im, Name: n.Name, Op: n.Op, Paren: n.Paren}
	if len(n.Args) > 0 {
		c.Args = make([]*Node, len(n.Args))
		for i, a := range n.Args {
			c.Args[i] = a.Clone()
		}
	}
	return c
}

// Term owns one expression tree. It is stateless after parsing.
type Term struct {
	Root *Node
}

// Clone deep-copies the term.
func (t *Term) Clone() *Term {
	return &Term{Root: t.Root.Clone()}
}

// reservedNames are resolved by the evaluator and never count as free
// variables.
var reservedNames = map[string]bool{
	"pi": true, "e": true, "i": true, "true": true, "false": true,
}

// isConstName reports whether a variable is an undetermined integration
// constant by the calling quiz logic's convention: any name starting with
// "C" (prefix match, not exact match).
func isConstName(name string) bool {
	return strings.HasPrefix(name, "C")
}

// FreeVars returns the sorted free variable names of the term, excluding the
// reserved names.
func (t *Term) FreeVars() []string {
	set := map[string]bool{}
	collectVars(t.Root, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectVars(n *Node, set map[string]bool) {
	switch n.Kind {
	case KindVariable:
		if !reservedNames[n.Name] {
			set[n.Name] = true
		}
	case KindApply:
		for _, a := range n.Args {
			collectVars(a, set)
		}
	}
}
