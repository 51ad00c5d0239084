// errors.go — typed error values and caret-snippet rendering.
//
// The engine reports failures through two typed errors: *ParseError (from
// Parse) and *EvalError (from Term.Eval). Callers that want a readable,
// pointed-at diagnostic pass the error through WrapErrorWithSource, which
// renders the offending source with a caret under the failing position:
//
//	PARSE ERROR at 5: unexpected token ")"
//
//	  | sin()
//	  |     ^
//
// Anything that is not one of the engine's error types passes through
// unchanged. Numeric edge cases (division by near-zero, sinc at 0,
// out-of-domain logs) are not errors at all; they propagate as NaN/Inf
// through evaluation and fall out in the randomized comparison.
package term

import (
	"fmt"
	"strings"
)

// ParseErrKind classifies parse failures.
type ParseErrKind int

const (
	// UnexpectedToken is raised when a token cannot start or continue the
	// grammar production being parsed.
	UnexpectedToken ParseErrKind = iota
	// UnexpectedTrailingInput is raised when parsing completes with
	// unconsumed tokens left over.
	UnexpectedTrailingInput
	// UnterminatedGroup is raised for a missing ")" or "|".
	UnterminatedGroup
)

// ParseError reports a syntax failure with its byte position in the source.
type ParseError struct {
	Kind  ParseErrKind
	Pos   int
	Token string // the offending token ("" at end of input)
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedTrailingInput:
		return fmt.Sprintf("unexpected trailing input %q", e.Token)
	case UnterminatedGroup:
		return fmt.Sprintf("missing closing %q", e.Token)
	default:
		if e.Token == "" {
			return "unexpected end of input"
		}
		return fmt.Sprintf("unexpected token %q", e.Token)
	}
}

// EvalErrKind classifies evaluation failures.
type EvalErrKind int

const (
	// UnknownVariable is raised for a free variable with no binding.
	UnknownVariable EvalErrKind = iota
	// UnimplementedOperator guards against an operator the evaluator does
	// not cover. The operator set is closed, so this should be unreachable;
	// it exists to catch incomplete future additions.
	UnimplementedOperator
)

// EvalError reports an evaluation failure.
type EvalError struct {
	Kind EvalErrKind
	Name string // variable or operator name
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case UnimplementedOperator:
		return fmt.Sprintf("unimplemented operator %q", e.Name)
	default:
		return fmt.Sprintf("unknown variable %q", e.Name)
	}
}

// WrapErrorWithSource augments a *ParseError with a caret-annotated snippet
// of the source it came from. Other errors are returned unchanged.
//
// Positions are byte offsets; quiz input is a single line, but offsets past
// the end (end-of-input errors) are clamped so the caret always lands
// somewhere renderable.
func WrapErrorWithSource(err error, src string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	col := pe.Pos
	if col > len(src) {
		col = len(src)
	}
	if col < 0 {
		col = 0
	}
	var b strings.Builder
	fmt.Fprintf(&b, "PARSE ERROR at %d: %s\n\n", pe.Pos+1, pe.Error())
	fmt.Fprintf(&b, "  | %s\n", src)
	fmt.Fprintf(&b, "  | %s^", strings.Repeat(" ", col))
	return fmt.Errorf("%s", b.String())
}
