// printer.go — serialization of Node trees back to text and to TeX.
//
// DisplayString emits a fully-parenthesized form that parses back to an
// equivalent term; the UI uses it for previews and tests use it for the
// re-serialization property. TeXString emits standard TeX markup; it is the
// only consumer of the explicit-parentheses flag, so the rendered formula
// mirrors the parenthesization the student actually typed.
package term

import (
	"strconv"
	"strings"
)

// DisplayString serializes the term to a fully-parenthesized textual form.
func (t *Term) DisplayString() string {
	return displayNode(t.Root)
}

// TeXString serializes the term to TeX markup.
func (t *Term) TeXString() string {
	return texNode(t.Root)
}

func displayNode(n *Node) string {
	switch n.Kind {
	case KindConst:
		return displayConst(n.Re, n.Im)
	case KindVariable:
		return n.Name
	default:
		switch n.Op {
		case OpAdd, OpSub, OpMul, OpDiv, OpPow:
			return "(" + displayNode(n.Args[0]) + string(n.Op) + displayNode(n.Args[1]) + ")"
		case OpNeg:
			return "(-" + displayNode(n.Args[0]) + ")"
		default:
			return string(n.Op) + "(" + displayNode(n.Args[0]) + ")"
		}
	}
}

// displayConst renders a complex literal so that it re-parses: plain
// decimal notation (never exponent form, which would lex as the variable
// "e"), with complex values spelled out against the imaginary unit.
func displayConst(re, im float64) string {
	if im == 0 {
		return fmtFloat(re)
	}
	if re == 0 {
		return "(" + fmtFloat(im) + "*i)"
	}
	if im < 0 {
		return "(" + fmtFloat(re) + "-" + fmtFloat(-im) + "*i)"
	}
	return "(" + fmtFloat(re) + "+" + fmtFloat(im) + "*i)"
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func texNode(n *Node) string {
	var s string
	switch n.Kind {
	case KindConst:
		s = texConst(n.Re, n.Im)
	case KindVariable:
		s = texVariable(n.Name)
	default:
		s = texApply(n)
	}
	if n.Paren {
		s = `\left(` + s + `\right)`
	}
	return s
}

func texConst(re, im float64) string {
	if im == 0 {
		return fmtFloat(re)
	}
	var imPart string
	switch im {
	case 1:
		imPart = "i"
	case -1:
		imPart = "-i"
	default:
		imPart = fmtFloat(im) + "i"
	}
	if re == 0 {
		return imPart
	}
	if im > 0 {
		return `\left(` + fmtFloat(re) + "+" + imPart + `\right)`
	}
	return `\left(` + fmtFloat(re) + imPart + `\right)`
}

func texVariable(name string) string {
	switch name {
	case "pi":
		return `\pi`
	case "true", "false":
		return `\mathrm{` + name + `}`
	}
	// integration constants get a subscript: C1 -> C_{1}
	if len(name) > 1 && name[0] == 'C' && allDigits(name[1:]) {
		return "C_{" + name[1:] + "}"
	}
	return name
}

// texFnMacros maps named functions to native TeX macros; everything else
// goes through \operatorname.
var texFnMacros = map[Op]string{
	OpSin: `\sin`, OpCos: `\cos`, OpTan: `\tan`, OpCot: `\cot`,
	OpExp: `\exp`, OpLn: `\ln`,
	OpSinh: `\sinh`, OpCosh: `\cosh`, OpTanh: `\tanh`,
	OpASin: `\arcsin`, OpACos: `\arccos`, OpATan: `\arctan`,
	OpLog2: `\log_{2}`, OpLog10: `\log_{10}`,
}

func texApply(n *Node) string {
	switch n.Op {
	case OpAdd:
		return texNode(n.Args[0]) + "+" + texNode(n.Args[1])
	case OpSub:
		return texNode(n.Args[0]) + "-" + texNode(n.Args[1])
	case OpMul:
		return texNode(n.Args[0]) + `\cdot ` + texNode(n.Args[1])
	case OpDiv:
		return `\frac{` + texGroup(n.Args[0]) + "}{" + texGroup(n.Args[1]) + "}"
	case OpPow:
		return "{" + texNode(n.Args[0]) + "}^{" + texGroup(n.Args[1]) + "}"
	case OpNeg:
		return "-" + texNode(n.Args[0])
	case OpSqrt:
		return `\sqrt{` + texGroup(n.Args[0]) + "}"
	case OpAbs:
		return `\left|` + texGroup(n.Args[0]) + `\right|`
	case OpFloor:
		return `\left\lfloor ` + texGroup(n.Args[0]) + `\right\rfloor`
	case OpCeil:
		return `\left\lceil ` + texGroup(n.Args[0]) + `\right\rceil`
	default:
		arg := texNode(n.Args[0])
		macro, ok := texFnMacros[n.Op]
		if !ok {
			macro = `\operatorname{` + string(n.Op) + "}"
		}
		if strings.HasPrefix(arg, `\left(`) {
			return macro + arg
		}
		return macro + " " + arg
	}
}

// texGroup renders a child whose enclosing construct already provides its
// own fencing (braces, bars, radical); an explicit-parentheses flag on the
// child would only double it up.
func texGroup(n *Node) string {
	if !n.Paren {
		return texNode(n)
	}
	c := *n
	c.Paren = false
	return texNode(&c)
}
