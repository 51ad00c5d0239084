// parser.go — recursive-descent parser for ambiguity-tolerant math input.
//
// OVERVIEW
// --------
// This module turns quiz answers typed under very permissive shorthand into
// Node trees. It consumes the token stream of the *whitespace-sensitive*
// lexer (see lexer.go) and resolves the shorthand with a handful of rules
// that are the crux of the engine's usability:
//
//   - Implicit multiplication binds as tightly as "*" and is inserted
//     whenever two factors are adjacent: "2x", "xy", "x(y+1)".
//   - A named function may take its argument without parentheses. Parsing
//     then descends only to the mul level and stops at whitespace, so
//     "sin 2pi" means sin(2*pi) while "sin 2 pi" means sin(2)*pi. An
//     explicit "(...)" argument switches back to unrestricted parsing.
//   - Bare identifiers split greedily: "xy" is x*y, but "pi", "true",
//     "false" and integration constants like "C1" are kept whole. "I" is
//     canonicalized to "i", the imaginary unit.
//   - "|expr|" is absolute value.
//
// Every production takes a stopAtSpace flag propagated from the caller;
// when set, a production refuses to continue past an operator (explicit or
// implicit) that was preceded by whitespace. Only unparenthesized function
// arguments set it.
//
// Grammar:
//
//	expr   = add
//	add    = mul { ("+"|"-") mul }
//	mul    = pow { ("*"|"/"|ε) pow }         ε = implicit multiplication
//	pow    = unary { "^" unary }
//	unary  = "-" mul | infix
//	infix  = NUMBER | fn1 mul | fn1 "(" expr ")" | "(" expr ")"
//	       | "|" expr "|" | IDENT
//	fn1    = longest case-insensitive match from the function-name set,
//	         tried against the token prefix
//
// On completion any unconsumed token is a hard failure
// (UnexpectedTrailingInput).
//
// Dependencies: lexer.go, node.go, errors.go.
package term

import (
	"strconv"
	"strings"
)

// Parse builds a Term from a source string. It is the entry point for both
// sample solutions and student input; the caller decides whether a
// *ParseError on student input means "wrong" or merely "not finished yet".
func Parse(src string) (*Term, error) {
	p := &parser{lex: NewLexer(src)}
	root, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	if !p.lex.AtEnd() {
		return nil, &ParseError{
			Kind:  UnexpectedTrailingInput,
			Pos:   p.lex.TokenPos(),
			Token: p.lex.Token(),
		}
	}
	return &Term{Root: root}, nil
}

type parser struct {
	lex *Lexer
}

func (p *parser) errUnexpected() error {
	return &ParseError{
		Kind:  UnexpectedToken,
		Pos:   p.lex.TokenPos(),
		Token: p.lex.Token(),
	}
}

// stopped reports whether the current token must not continue the enclosing
// production: whitespace preceded it and the caller is scoping an
// unparenthesized function argument.
func (p *parser) stopped(stopAtSpace bool) bool {
	return stopAtSpace && p.lex.SkippedSpace()
}

func (p *parser) expr(stopAtSpace bool) (*Node, error) {
	return p.add(stopAtSpace)
}

func (p *parser) add(stopAtSpace bool) (*Node, error) {
	lhs, err := p.mul(stopAtSpace)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.lex.Token()
		if tok != "+" && tok != "-" || p.stopped(stopAtSpace) {
			return lhs, nil
		}
		op := OpAdd
		if tok == "-" {
			op = OpSub
		}
		p.lex.Next()
		rhs, err := p.mul(stopAtSpace)
		if err != nil {
			return nil, err
		}
		lhs = NewApply(op, lhs, rhs)
	}
}

func (p *parser) mul(stopAtSpace bool) (*Node, error) {
	lhs, err := p.pow(stopAtSpace)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.lex.Token()
		if tok == "" || p.stopped(stopAtSpace) {
			return lhs, nil
		}
		var op Op
		switch {
		case tok == "*" || tok == "/":
			op = OpMul
			if tok == "/" {
				op = OpDiv
			}
			p.lex.Next()
		case (tok == "(" && !stopAtSpace) || isLetterByte(tok[0]) || isDigitByte(tok[0]):
			// adjacency: implicit multiplication. A "(" does not continue a
			// bare function argument: "sin 2(x+1)" is sin(2)*(x+1).
			op = OpMul
		default:
			return lhs, nil
		}
		rhs, err := p.pow(stopAtSpace)
		if err != nil {
			return nil, err
		}
		lhs = NewApply(op, lhs, rhs)
	}
}

func (p *parser) pow(stopAtSpace bool) (*Node, error) {
	lhs, err := p.unary(stopAtSpace)
	if err != nil {
		return nil, err
	}
	for p.lex.Token() == "^" && !p.stopped(stopAtSpace) {
		p.lex.Next()
		rhs, err := p.unary(stopAtSpace)
		if err != nil {
			return nil, err
		}
		lhs = NewApply(OpPow, lhs, rhs)
	}
	return lhs, nil
}

func (p *parser) unary(stopAtSpace bool) (*Node, error) {
	if p.lex.Token() == "-" {
		p.lex.Next()
		arg, err := p.mul(stopAtSpace)
		if err != nil {
			return nil, err
		}
		return NewApply(OpNeg, arg), nil
	}
	return p.infix(stopAtSpace)
}

func (p *parser) infix(stopAtSpace bool) (*Node, error) {
	tok := p.lex.Token()
	switch {
	case tok == "":
		return nil, p.errUnexpected()
	case isDigitByte(tok[0]):
		return p.number()
	case tok == "(":
		p.lex.Next()
		inner, err := p.expr(false)
		if err != nil {
			return nil, err
		}
		if p.lex.Token() != ")" {
			return nil, &ParseError{Kind: UnterminatedGroup, Pos: p.lex.TokenPos(), Token: ")"}
		}
		p.lex.Next()
		inner.Paren = true
		return inner, nil
	case tok == "|":
		p.lex.Next()
		inner, err := p.expr(false)
		if err != nil {
			return nil, err
		}
		if p.lex.Token() != "|" {
			return nil, &ParseError{Kind: UnterminatedGroup, Pos: p.lex.TokenPos(), Token: "|"}
		}
		p.lex.Next()
		return NewApply(OpAbs, inner), nil
	case isLetterByte(tok[0]):
		if op, n := matchFunction(tok); n > 0 {
			matched := tok[:n]
			p.lex.Consume(n)
			// the lexer splits letters from digits, so "log2" and "log10"
			// arrive as two tokens and are reassembled here
			if strings.EqualFold(matched, "log") && !p.lex.SkippedSpace() {
				switch p.lex.Token() {
				case "2":
					op = OpLog2
					p.lex.Next()
				case "10":
					op = OpLog10
					p.lex.Next()
				}
			}
			return p.functionArg(op)
		}
		return p.identifier()
	default:
		return nil, p.errUnexpected()
	}
}

// functionArg parses the argument of a named function. A parenthesized
// argument is a full expression; a bare argument descends only to the mul
// level and stops at whitespace, which is what makes "sin 2 pi" differ from
// "sin 2pi".
func (p *parser) functionArg(op Op) (*Node, error) {
	if p.lex.Token() == "(" {
		p.lex.Next()
		arg, err := p.expr(false)
		if err != nil {
			return nil, err
		}
		if p.lex.Token() != ")" {
			return nil, &ParseError{Kind: UnterminatedGroup, Pos: p.lex.TokenPos(), Token: ")"}
		}
		p.lex.Next()
		arg.Paren = true
		return NewApply(op, arg), nil
	}
	arg, err := p.mul(true)
	if err != nil {
		return nil, err
	}
	return NewApply(op, arg), nil
}

// number parses an integer token, optionally continued by "." and a fraction
// token. The lexer treats "." as a delimiter, so "3.14" arrives as three
// tokens and is reassembled here.
func (p *parser) number() (*Node, error) {
	text := p.lex.Token()
	p.lex.Next()
	if p.lex.Token() == "." {
		p.lex.Next()
		frac := p.lex.Token()
		if frac == "" || !isDigitByte(frac[0]) {
			return nil, p.errUnexpected()
		}
		text += "." + frac
		p.lex.Next()
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errUnexpected()
	}
	return NewConst(v, 0), nil
}

// identifier consumes one variable name off the current token. Multi-letter
// tokens split into single-letter variables ("xy" is x then y) except for
// the greedy carve-outs: "pi", "true", "false", and integration constants
// ("C" plus digits, which the lexer already delivers as one token). A bare
// "I" is canonicalized to the imaginary unit "i".
func (p *parser) identifier() (*Node, error) {
	tok := p.lex.Token()
	for _, name := range [...]string{"pi", "true", "false"} {
		if strings.HasPrefix(tok, name) {
			p.lex.Consume(len(name))
			return NewVariable(name), nil
		}
	}
	if tok[0] == 'C' && len(tok) > 1 && allDigits(tok[1:]) {
		p.lex.Consume(len(tok))
		return NewVariable(tok), nil
	}
	name := tok[:1]
	if name == "I" {
		name = "i"
	}
	p.lex.Consume(1)
	return NewVariable(name), nil
}

// matchFunction tries the operator-name set against the token prefix,
// longest names first, case-insensitively. It returns the matched operator
// and the prefix length, or length 0.
func matchFunction(tok string) (Op, int) {
	for _, fn := range functionNames {
		if len(tok) >= len(fn.name) && strings.EqualFold(tok[:len(fn.name)], fn.name) {
			return fn.op, len(fn.name)
		}
	}
	return "", 0
}

func isLetterByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigitByte(s[i]) {
			return false
		}
	}
	return true
}
