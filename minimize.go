// minimize.go — 1-D derivative-free minimization for the ODE constant search.
package term

// Minimizer finds an approximate minimizer of a one-dimensional function.
// It is an interface so the naive default below can be swapped for a
// stronger optimizer without touching the permutation-search logic.
type Minimizer interface {
	Minimize(f func(float64) float64) float64
}

// LineSearch is a three-point line search: starting at 0 with step 1, each
// iteration evaluates f at x-step, x, x+step, moves to the smallest, and
// halves the step whenever the move direction reverses or stalls. There is
// no derivative information anywhere in the engine, and the minimization
// problems arising from ODE-grade expressions are expected to be unimodal,
// so this converges well enough in practice.
type LineSearch struct {
	MaxIter int     // 0 means 1000
	Tol     float64 // 0 means 1e-11
}

func (s LineSearch) Minimize(f func(float64) float64) float64 {
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = 1000
	}
	tol := s.Tol
	if tol <= 0 {
		tol = 1e-11
	}

	x, step := 0.0, 1.0
	lastDir := 0
	for iter := 0; iter < maxIter; iter++ {
		fm, fc, fp := f(x-step), f(x), f(x+step)
		if fc < tol {
			break
		}
		dir := 0
		best := fc
		if fm < best {
			best, dir = fm, -1
		}
		if fp < best {
			dir = 1
		}
		if dir != 0 {
			x += float64(dir) * step
		}
		if dir == 0 || (lastDir != 0 && dir != lastDir) {
			step /= 2
		}
		lastDir = dir
	}
	return x
}
