// eval.go — recursive complex evaluator over Node trees.
//
// Evaluation never mutates the tree. The arithmetic is ordinary complex128
// arithmetic; "^" is always routed through exp(v*ln(u)), the general complex
// power identity, so negative and complex bases behave correctly
// (sqrt(-1) == i). The inverse trig/hyperbolic functions are not closed
// formulas here: each builds its standard ln/sqrt identity as a fresh little
// sub-tree and evaluates that recursively, which pins their branch cuts to
// the exact conventions of the primitives they are defined from.
//
// Division by a zero-magnitude denominator, sinc at 0 and out-of-domain logs
// are not special-cased; the resulting NaN/Inf components propagate and are
// dealt with by the randomized comparison (see compare.go).
package term

import (
	"math"
	"math/cmplx"
)

// Bindings assigns values to free variables during evaluation.
type Bindings map[string]complex128

// Eval reduces the term to a single complex value under the given bindings.
// The reserved names pi, e, i, true and false resolve without a binding; any
// other unbound variable fails with an *EvalError.
func (t *Term) Eval(binds Bindings) (complex128, error) {
	return evalNode(t.Root, binds)
}

func evalNode(n *Node, binds Bindings) (complex128, error) {
	switch n.Kind {
	case KindConst:
		return complex(n.Re, n.Im), nil
	case KindVariable:
		return evalVariable(n.Name, binds)
	default:
		return evalApply(n, binds)
	}
}

func evalVariable(name string, binds Bindings) (complex128, error) {
	switch name {
	case "pi":
		return complex(math.Pi, 0), nil
	case "e":
		return complex(math.E, 0), nil
	case "i":
		return complex(0, 1), nil
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	if v, ok := binds[name]; ok {
		return v, nil
	}
	return 0, &EvalError{Kind: UnknownVariable, Name: name}
}

func evalApply(n *Node, binds Bindings) (complex128, error) {
	args := make([]complex128, len(n.Args))
	for idx, a := range n.Args {
		v, err := evalNode(a, binds)
		if err != nil {
			return 0, err
		}
		args[idx] = v
	}
	switch n.Op {
	case OpAdd:
		return args[0] + args[1], nil
	case OpSub:
		return args[0] - args[1], nil
	case OpMul:
		return args[0] * args[1], nil
	case OpDiv:
		return args[0] / args[1], nil
	case OpPow:
		return cpow(args[0], args[1]), nil
	case OpNeg:
		return -args[0], nil
	case OpAbs:
		return complex(cmplx.Abs(args[0]), 0), nil
	case OpSin:
		return cmplx.Sin(args[0]), nil
	case OpCos:
		return cmplx.Cos(args[0]), nil
	case OpTan:
		// ratio identity
		return cmplx.Sin(args[0]) / cmplx.Cos(args[0]), nil
	case OpCot:
		return cmplx.Cos(args[0]) / cmplx.Sin(args[0]), nil
	case OpSinc:
		// sin(u)/u; NaN at 0
		return cmplx.Sin(args[0]) / args[0], nil
	case OpExp:
		return cmplx.Exp(args[0]), nil
	case OpLn:
		return clog(args[0]), nil
	case OpLog2:
		return clog(args[0]) / complex(math.Ln2, 0), nil
	case OpLog10:
		return clog(args[0]) / complex(math.Log(10), 0), nil
	case OpSqrt:
		return cpow(args[0], complex(0.5, 0)), nil
	case OpSinh:
		return cmplx.Sinh(args[0]), nil
	case OpCosh:
		return cmplx.Cosh(args[0]), nil
	case OpTanh:
		return cmplx.Tanh(args[0]), nil
	case OpASin, OpACos, OpATan, OpASinh, OpACosh, OpATanh:
		return evalInverse(n.Op, args[0], binds)
	case OpFloor:
		return complex(math.Floor(real(args[0])), math.Floor(imag(args[0]))), nil
	case OpCeil:
		return complex(math.Ceil(real(args[0])), math.Ceil(imag(args[0]))), nil
	case OpRound:
		return complex(math.Round(real(args[0])), math.Round(imag(args[0]))), nil
	default:
		return 0, &EvalError{Kind: UnimplementedOperator, Name: string(n.Op)}
	}
}

// cpow is the general complex power identity. No special cases: 0^0 and
// friends come out as NaN and are handled downstream.
func cpow(u, v complex128) complex128 {
	return cmplx.Exp(v * clog(u))
}

// clog is the complex logarithm with an imaginary part below 1e-9 in
// magnitude clamped to +0 before the argument is taken. Arithmetic on real
// input routinely produces negative-zero or near-zero imaginary parts
// (-(1+0i) is -1-0i), and Atan2 honors the sign: arg(-1-0i) would be -pi,
// flipping sqrt(-1) to -i. The clamp pins such values to the principal
// branch, so sqrt(-1) is i and (-8)^(1/3) is the principal cube root.
func clog(u complex128) complex128 {
	im := imag(u)
	if math.Abs(im) < 1e-9 {
		im = 0
	}
	return complex(math.Log(cmplx.Abs(u)), math.Atan2(im, real(u)))
}

// evalInverse evaluates an inverse trig/hyperbolic function by constructing
// its ln/sqrt identity as a transient sub-tree and recursing, so the
// identity inherits the branch-cut and sign conventions of ln, sqrt and
// pow above.
func evalInverse(op Op, u complex128, binds Bindings) (complex128, error) {
	arg := func() *Node { return NewConst(real(u), imag(u)) }
	i := func() *Node { return NewVariable("i") }
	one := func() *Node { return NewConst(1, 0) }
	sq := func() *Node { return NewApply(OpPow, arg(), NewConst(2, 0)) }

	var root *Node
	switch op {
	case OpASin:
		// -i * ln(i*u + sqrt(1 - u^2))
		root = NewApply(OpMul,
			NewApply(OpNeg, i()),
			NewApply(OpLn, NewApply(OpAdd,
				NewApply(OpMul, i(), arg()),
				NewApply(OpSqrt, NewApply(OpSub, one(), sq())))))
	case OpACos:
		// -i * ln(u + i*sqrt(1 - u^2))
		root = NewApply(OpMul,
			NewApply(OpNeg, i()),
			NewApply(OpLn, NewApply(OpAdd,
				arg(),
				NewApply(OpMul, i(),
					NewApply(OpSqrt, NewApply(OpSub, one(), sq()))))))
	case OpATan:
		// -(i/2) * ln((1 + i*u) / (1 - i*u))
		root = NewApply(OpMul,
			NewApply(OpNeg, NewApply(OpDiv, i(), NewConst(2, 0))),
			NewApply(OpLn, NewApply(OpDiv,
				NewApply(OpAdd, one(), NewApply(OpMul, i(), arg())),
				NewApply(OpSub, one(), NewApply(OpMul, i(), arg())))))
	case OpASinh:
		// ln(u + sqrt(u^2 + 1))
		root = NewApply(OpLn, NewApply(OpAdd,
			arg(),
			NewApply(OpSqrt, NewApply(OpAdd, sq(), one()))))
	case OpACosh:
		// ln(u + sqrt(u^2 - 1))
		root = NewApply(OpLn, NewApply(OpAdd,
			arg(),
			NewApply(OpSqrt, NewApply(OpSub, sq(), one()))))
	case OpATanh:
		// (1/2) * ln((1 + u) / (1 - u))
		root = NewApply(OpMul,
			NewApply(OpDiv, one(), NewConst(2, 0)),
			NewApply(OpLn, NewApply(OpDiv,
				NewApply(OpAdd, one(), arg()),
				NewApply(OpSub, one(), arg()))))
	default:
		return 0, &EvalError{Kind: UnimplementedOperator, Name: string(op)}
	}
	return evalNode(root, binds)
}
