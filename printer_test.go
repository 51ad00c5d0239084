// printer_test.go
package term

import "testing"

func wantTeX(t *testing.T, src, want string) {
	t.Helper()
	if got := parseT(t, src).TeXString(); got != want {
		t.Errorf("tex %q:\nwant %s\ngot  %s", src, want, got)
	}
}

func Test_TeX_Operators(t *testing.T) {
	wantTeX(t, "x+y", `x+y`)
	wantTeX(t, "x-y", `x-y`)
	wantTeX(t, "2x", `2\cdot x`)
	wantTeX(t, "x/y", `\frac{x}{y}`)
	wantTeX(t, "x^2", `{x}^{2}`)
	wantTeX(t, "-x", `-x`)
	wantTeX(t, "|x|", `\left|x\right|`)
}

func Test_TeX_Explicit_Parentheses_Are_Preserved(t *testing.T) {
	// the flag mirrors what the student actually typed
	wantTeX(t, "(x+1)*2", `\left(x+1\right)\cdot 2`)
	wantTeX(t, "x+1*2", `x+1\cdot 2`)
	// ...but not inside constructs that already fence their argument
	wantTeX(t, "sqrt(x+1)", `\sqrt{x+1}`)
	wantTeX(t, "(x+1)/2", `\frac{x+1}{2}`)
	wantTeX(t, "2^(x+1)", `{2}^{x+1}`)
}

func Test_TeX_Functions(t *testing.T) {
	wantTeX(t, "sin(x)", `\sin\left(x\right)`)
	wantTeX(t, "sin x", `\sin x`)
	wantTeX(t, "ln(x)", `\ln\left(x\right)`)
	wantTeX(t, "sinc(x)", `\operatorname{sinc}\left(x\right)`)
	wantTeX(t, "asin x", `\arcsin x`)
	wantTeX(t, "asinh x", `\operatorname{asinh} x`)
	wantTeX(t, "floor(x)", `\left\lfloor x\right\rfloor`)
	wantTeX(t, "ceil(x)", `\left\lceil x\right\rceil`)
}

func Test_TeX_Names_And_Constants(t *testing.T) {
	wantTeX(t, "pi", `\pi`)
	wantTeX(t, "e", `e`)
	wantTeX(t, "true", `\mathrm{true}`)
	wantTeX(t, "C1", `C_{1}`)
	wantTeX(t, "C", `C`)
	wantTeX(t, "3.5", `3.5`)
}

func Test_TeX_Complex_Literals(t *testing.T) {
	a := &Term{Root: NewConst(0, 1)}
	if got := a.TeXString(); got != "i" {
		t.Errorf("0+1i: got %s", got)
	}
	b := &Term{Root: NewConst(3, -2)}
	if got := b.TeXString(); got != `\left(3-2i\right)` {
		t.Errorf("3-2i: got %s", got)
	}
}

func Test_Display_Is_Fully_Parenthesized(t *testing.T) {
	cases := []struct{ src, want string }{
		{"x+y*z", "(x+(y*z))"},
		{"sin x", "sin(x)"},
		{"-x", "(-x)"},
		{"x^2/2", "((x^2)/2)"},
	}
	for _, c := range cases {
		if got := parseT(t, c.src).DisplayString(); got != c.want {
			t.Errorf("display %q: want %s, got %s", c.src, c.want, got)
		}
	}
}

func Test_Display_Of_Complex_Constants_Reparses(t *testing.T) {
	for _, n := range []*Node{
		NewConst(2.5, 0),
		NewConst(0, 1.5),
		NewConst(3, -2),
		NewConst(-1, 4),
		NewConst(0.0000001, 0), // must not fall into exponent notation
	} {
		tm := &Term{Root: n}
		src := tm.DisplayString()
		back, err := Parse(src)
		if err != nil {
			t.Errorf("display %v -> %q does not reparse: %v", n, src, err)
			continue
		}
		if !CompareWith(testRand(), tm, back, nil) {
			t.Errorf("display %v -> %q reparses to a different value", n, src)
		}
	}
}
