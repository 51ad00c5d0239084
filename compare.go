// compare.go — randomized structural-equivalence test.
//
// Two terms are judged to denote the same function by evaluating both under
// a fixed number of shared random variable assignments and demanding
// near-equal values every time. The test is one-sided: a "not equal" verdict
// is always right, while an "equal" verdict is wrong only if two
// algebraically different terms agree on all trial points, which for the
// supported operator set is astronomically unlikely. That trade-off is the
// whole design: no symbolic simplification, no exact proofs, just sampling.
package term

import (
	"math/cmplx"
	"math/rand"
)

const (
	compareTrials  = 10
	compareEpsilon = 1e-9
)

// Compare reports whether the two terms are numerically equivalent. It uses
// the process-wide random source; concurrent callers need no coordination.
func Compare(u, v *Term) bool {
	return CompareWith(nil, u, v, nil)
}

// CompareWith is Compare with an injectable random source (nil falls back to
// the process-wide source; tests pass a seeded one) and a set of fixed
// bindings that are held constant across all trials instead of being
// resampled. The ODE search uses fixed bindings to pin constants to zero.
func CompareWith(rng *rand.Rand, u, v *Term, fixed Bindings) bool {
	names := map[string]bool{}
	collectVars(u.Root, names)
	collectVars(v.Root, names)

	free := make([]string, 0, len(names))
	for name := range names {
		if _, ok := fixed[name]; !ok {
			free = append(free, name)
		}
	}

	for trial := 0; trial < compareTrials; trial++ {
		binds := make(Bindings, len(names))
		for name, val := range fixed {
			binds[name] = val
		}
		for _, name := range free {
			binds[name] = randComplex(rng)
		}
		a, err := u.Eval(binds)
		if err != nil {
			return false
		}
		b, err := v.Eval(binds)
		if err != nil {
			return false
		}
		// NaN differences do not fail the trial; rare NaN samples are
		// self-correcting because the remaining trials carry the verdict.
		if cmplx.Abs(a-b) > compareEpsilon {
			return false
		}
	}
	return true
}

// randComplex draws real and imaginary parts independently from [0,1).
func randComplex(rng *rand.Rand) complex128 {
	if rng == nil {
		return complex(rand.Float64(), rand.Float64())
	}
	return complex(rng.Float64(), rng.Float64())
}
