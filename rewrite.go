// rewrite.go — tree-rewriting passes used by the ODE comparison.
//
// All rewriters take an owned tree and return a new owned tree; nothing
// here mutates shared nodes, which keeps the permutation search free of
// aliasing surprises.
package term

// collapseConstants absorbs algebraic decoration around integration
// constants, bottom-up. An Apply node collapses to a constant-variable leaf
// when its operands are (constant-variable, plain numeric constant) in
// either order, (constant-variable, same constant-variable), or, for unary
// operators and functions, when its single operand is a constant-variable.
// "sin(exp(cos(C+3)))" collapses to plain "C", so the later numeric scale
// search is not confused by wrapping that an undetermined constant absorbs
// anyway.
func collapseConstants(n *Node) *Node {
	if n.Kind != KindApply {
		return n
	}
	args := make([]*Node, len(n.Args))
	for idx, a := range n.Args {
		args[idx] = collapseConstants(a)
	}
	switch len(args) {
	case 1:
		if isConstVar(args[0]) {
			return args[0]
		}
	case 2:
		a, b := args[0], args[1]
		switch {
		case isConstVar(a) && b.Kind == KindConst:
			return a
		case isConstVar(b) && a.Kind == KindConst:
			return b
		case isConstVar(a) && isConstVar(b) && a.Name == b.Name:
			return a
		}
	}
	return &Node{Kind: KindApply, Op: n.Op, Args: args, Paren: n.Paren}
}

func isConstVar(n *Node) bool {
	return n.Kind == KindVariable && isConstName(n.Name)
}

// renameVariable returns a copy of the tree in which every variable named
// from is renamed to to.
func renameVariable(n *Node, from, to string) *Node {
	switch n.Kind {
	case KindVariable:
		if n.Name == from {
			return &Node{Kind: KindVariable, Name: to, Paren: n.Paren}
		}
		return n.Clone()
	case KindApply:
		args := make([]*Node, len(n.Args))
		for idx, a := range n.Args {
			args[idx] = renameVariable(a, from, to)
		}
		return &Node{Kind: KindApply, Op: n.Op, Args: args, Paren: n.Paren}
	default:
		return n.Clone()
	}
}

// substituteVariable returns a copy of the tree with every variable named
// name replaced by a clone of repl.
func substituteVariable(n *Node, name string, repl *Node) *Node {
	switch n.Kind {
	case KindVariable:
		if n.Name == name {
			return repl.Clone()
		}
		return n.Clone()
	case KindApply:
		args := make([]*Node, len(n.Args))
		for idx, a := range n.Args {
			args[idx] = substituteVariable(a, name, repl)
		}
		return &Node{Kind: KindApply, Op: n.Op, Args: args, Paren: n.Paren}
	default:
		return n.Clone()
	}
}
