// minimize_test.go
package term

import (
	"math"
	"testing"
)

func Test_LineSearch_Quadratic(t *testing.T) {
	for _, target := range []float64{0, 1.0 / 6, -2.5, 7, 0.125} {
		target := target
		got := LineSearch{}.Minimize(func(x float64) float64 {
			return (x - target) * (x - target)
		})
		if math.Abs(got-target) > 1e-4 {
			t.Errorf("quadratic min at %g: got %g", target, got)
		}
	}
}

func Test_LineSearch_VShape(t *testing.T) {
	got := LineSearch{}.Minimize(func(x float64) float64 {
		return math.Abs(x + 2)
	})
	if math.Abs(got+2) > 1e-4 {
		t.Errorf("V min at -2: got %g", got)
	}
}

func Test_LineSearch_Respects_Caps(t *testing.T) {
	calls := 0
	LineSearch{MaxIter: 10}.Minimize(func(x float64) float64 {
		calls++
		return x*x + 1 // never reaches the tolerance
	})
	if calls > 30 {
		t.Fatalf("expected at most 3 evaluations per iteration, got %d calls", calls)
	}
}

func Test_LineSearch_Already_At_Minimum(t *testing.T) {
	calls := 0
	got := LineSearch{}.Minimize(func(x float64) float64 {
		calls++
		return x * x
	})
	if got != 0 {
		t.Fatalf("min of x^2: got %g", got)
	}
	if calls > 3 {
		t.Fatalf("should stop on the first iteration, got %d calls", calls)
	}
}
