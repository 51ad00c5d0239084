// eval_test.go
package term

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

// evalSrc parses and evaluates in one step.
func evalSrc(t *testing.T, src string, binds Bindings) complex128 {
	t.Helper()
	tm, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	v, err := tm.Eval(binds)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v
}

func wantValue(t *testing.T, src string, binds Bindings, want complex128) {
	t.Helper()
	got := evalSrc(t, src, binds)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("eval %q: want %v, got %v", src, want, got)
	}
}

func Test_Eval_Arithmetic(t *testing.T) {
	wantValue(t, "1+2*3", nil, 7)
	wantValue(t, "(1+2)*3", nil, 9)
	wantValue(t, "7/2", nil, 3.5)
	wantValue(t, "2^10", nil, 1024)
	wantValue(t, "-3+1", nil, -2)
	wantValue(t, "2^3^2", nil, 64) // left-associative power chain
}

func Test_Eval_Reserved_Names(t *testing.T) {
	wantValue(t, "pi", nil, complex(math.Pi, 0))
	wantValue(t, "e", nil, complex(math.E, 0))
	wantValue(t, "i*i", nil, -1)
	wantValue(t, "true+false", nil, 1)
}

func Test_Eval_Complex_Power_Identity(t *testing.T) {
	wantValue(t, "sqrt(-1)", nil, complex(0, 1))
	wantValue(t, "e^(i*pi)", nil, -1)
	wantValue(t, "(-8)^(1/3)", nil, cmplx.Exp(complex(math.Log(8)/3, math.Pi/3)))
}

func Test_Eval_Log_Branch_Is_Principal_For_Real_Input(t *testing.T) {
	// -(1+0i) carries a negative-zero imaginary part; the argument must
	// still come out as +pi, not -pi
	wantValue(t, "ln(-1)", nil, complex(0, math.Pi))
	wantValue(t, "ln(-e)", nil, complex(1, math.Pi))
	wantValue(t, "sqrt(-4)", nil, complex(0, 2))
	wantValue(t, "(-1)^(1/2)", nil, complex(0, 1))
}

func Test_Eval_Elementary_Functions(t *testing.T) {
	wantValue(t, "sin(pi/2)", nil, 1)
	wantValue(t, "cos 0", nil, 1)
	wantValue(t, "tan(1)", nil, complex(math.Tan(1), 0))
	wantValue(t, "cot(1)", nil, complex(math.Cos(1)/math.Sin(1), 0))
	wantValue(t, "sinc(2)", nil, complex(math.Sin(2)/2, 0))
	wantValue(t, "exp(1)", nil, complex(math.E, 0))
	wantValue(t, "ln(e)", nil, 1)
	wantValue(t, "log(e)", nil, 1)
	wantValue(t, "log2(8)", nil, 3)
	wantValue(t, "log10(100)", nil, 2)
	wantValue(t, "sinh(1)", nil, complex(math.Sinh(1), 0))
	wantValue(t, "tanh(1)", nil, complex(math.Tanh(1), 0))
	wantValue(t, "floor(2.7)", nil, 2)
	wantValue(t, "ceil(2.1)", nil, 3)
	wantValue(t, "round(2.5)", nil, 3)
	wantValue(t, "abs(3-4i)", nil, 5)
}

func Test_Eval_Inverse_Functions_Share_Branch_Cuts(t *testing.T) {
	wantValue(t, "asin(0.5)", nil, complex(math.Asin(0.5), 0))
	wantValue(t, "acos(0.5)", nil, complex(math.Acos(0.5), 0))
	wantValue(t, "atan(1)", nil, complex(math.Pi/4, 0))
	wantValue(t, "asinh(1)", nil, complex(math.Asinh(1), 0))
	wantValue(t, "acosh(2)", nil, complex(math.Acosh(2), 0))
	wantValue(t, "atanh(0.5)", nil, complex(math.Atanh(0.5), 0))
	// out of the real domain, the identity continues into the plane:
	// acosh(0) = ln(0 + sqrt(-1)) = ln(i) = i*pi/2
	wantValue(t, "acosh(0)", nil, complex(0, math.Pi/2))
}

func Test_Eval_Bindings(t *testing.T) {
	wantValue(t, "x^2+y", Bindings{"x": 2, "y": 1}, 5)
	wantValue(t, "sin(w*t)", Bindings{"w": 2, "t": 3}, complex(math.Sin(6), 0))
	wantValue(t, "z", Bindings{"z": complex(1, 2)}, complex(1, 2))
}

func Test_Eval_Unknown_Variable(t *testing.T) {
	tm, err := Parse("q+1")
	if err != nil {
		t.Fatal(err)
	}
	_, err = tm.Eval(nil)
	var ee *EvalError
	if !errors.As(err, &ee) || ee.Kind != UnknownVariable || ee.Name != "q" {
		t.Fatalf("want UnknownVariable(q), got %v", err)
	}
}

func Test_Eval_Numeric_Edges_Are_Not_Errors(t *testing.T) {
	// sinc(0) is 0/0 by definition here, not a special case
	v := evalSrc(t, "sinc(0)", nil)
	if !math.IsNaN(real(v)) {
		t.Fatalf("sinc(0): want NaN, got %v", v)
	}
	// division by zero propagates silently
	v = evalSrc(t, "1/0", nil)
	if !math.IsInf(real(v), 0) && !math.IsNaN(real(v)) {
		t.Fatalf("1/0: want Inf or NaN, got %v", v)
	}
}

func Test_Eval_Does_Not_Mutate_The_Tree(t *testing.T) {
	tm, err := Parse("asin(x)+1")
	if err != nil {
		t.Fatal(err)
	}
	before := tm.DisplayString()
	if _, err := tm.Eval(Bindings{"x": 0.3}); err != nil {
		t.Fatal(err)
	}
	if after := tm.DisplayString(); after != before {
		t.Fatalf("tree changed: %s -> %s", before, after)
	}
}
