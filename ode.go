// ode.go — equivalence up to renaming and rescaling of integration constants.
//
// OVERVIEW
// --------
// The general solution of a differential equation contains undetermined
// constants (variables named with the "C" prefix), and two correct student
// answers may write them in different order or absorb different scale
// factors into them: C1*exp(2x)+C2*exp(-4x) and C2*exp(2x)+C1*exp(-4x) are
// the same solution family, as are sqrt(C-12x^3)/3 and
// sqrt(2/3)*sqrt(C-2x^3). CompareODE accepts exactly these degrees of
// freedom and nothing else:
//
//  1. Fast path: if the plain randomized comparison already succeeds, done.
//  2. On clones, collapse algebraic decoration around constants
//     (rewrite.go), then canonically rename all constants to C0..C(N-1).
//  3. For every permutation of the constants (every possible correspondence
//     between the two answers' constants), isolate each constant in turn by
//     zeroing the others, substitute C_k -> C_k*K in the candidate, and let
//     a derivative-free line search (minimize.go) find the real scale K
//     that reconciles the two terms at a random sample point. Each found
//     scale is verified with the randomized comparison before moving on,
//     and a final comparison with nothing zeroed confirms the permutation.
//
// The permutation loop is factorial in the number of constants. That is
// acceptable because first/second-order ODE exercises have 1-3 constants;
// a hard cap bounds the worst case anyway, as does the iteration cap inside
// the line search.
package term

import (
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"strconv"
)

const (
	// odePermutationCap bounds the outer search (5! = 120); more constants
	// than that is far outside quiz territory.
	odePermutationCap = 120

	// Internal variable names. "_" is a delimiter, so parsed input can
	// never contain these and the rename passes cannot collide with user
	// variables.
	odeTempPrefix = "__c"
	odeScaleName  = "__scale"
)

// CompareODE reports whether the two terms are equivalent up to renaming,
// permutation and individual rescaling of their integration constants.
func CompareODE(u, v *Term) bool {
	return CompareODEWith(nil, LineSearch{}, u, v)
}

// CompareODEWith is CompareODE with an injectable random source and
// minimizer (tests pass a seeded source; nil and LineSearch{} are the
// defaults).
func CompareODEWith(rng *rand.Rand, opt Minimizer, u, v *Term) bool {
	if CompareWith(rng, u, v, nil) {
		return true
	}

	tu := &Term{Root: collapseConstants(u.Root.Clone())}
	tv := &Term{Root: collapseConstants(v.Root.Clone())}

	names := map[string]bool{}
	collectVars(tu.Root, names)
	collectVars(tv.Root, names)
	var consts, ordinary []string
	for name := range names {
		if isConstName(name) {
			consts = append(consts, name)
		} else {
			ordinary = append(ordinary, name)
		}
	}
	sort.Strings(consts)
	sort.Strings(ordinary)

	n := len(consts)
	tu.Root = canonicalConstants(tu.Root, consts)
	tv.Root = canonicalConstants(tv.Root, consts)

	for _, perm := range permutations(n, odePermutationCap) {
		pu := tu.Clone()
		pv := tv.Clone()
		// rename pv's C_i to C_perm(i), two-phase through the temp prefix
		for i, target := range perm {
			pv.Root = renameVariable(pv.Root, constName(i), odeTempPrefix+strconv.Itoa(target))
		}
		for i := range perm {
			pv.Root = renameVariable(pv.Root, odeTempPrefix+strconv.Itoa(i), constName(i))
		}
		if odeScalesMatch(rng, opt, pu, pv, n, ordinary) {
			return true
		}
	}
	return false
}

// canonicalConstants renames the given constants to C0..C(N-1). The rename
// goes through a disjoint temporary prefix so that an existing "C0" cannot
// be captured halfway through the loop.
func canonicalConstants(root *Node, consts []string) *Node {
	for i, name := range consts {
		root = renameVariable(root, name, odeTempPrefix+strconv.Itoa(i))
	}
	for i := range consts {
		root = renameVariable(root, odeTempPrefix+strconv.Itoa(i), constName(i))
	}
	return root
}

func constName(i int) string { return "C" + strconv.Itoa(i) }

// odeScalesMatch checks one constant correspondence. For each constant in
// turn it zeroes the others, lets the minimizer find the real scale K in
// tv's C_k*K that reconciles the terms at one random sample, bakes the
// found scale into tv, and verifies with the randomized comparison. A final
// full comparison (no constants zeroed) confirms the whole correspondence.
func odeScalesMatch(rng *rand.Rand, opt Minimizer, tu, tv *Term, n int, ordinary []string) bool {
	for k := 0; k < n; k++ {
		ck := constName(k)
		fixed := Bindings{}
		for j := 0; j < n; j++ {
			if j != k {
				fixed[constName(j)] = 0
			}
		}

		scaled := substituteVariable(tv.Root, ck,
			NewApply(OpMul, NewVariable(ck), NewVariable(odeScaleName)))

		sample := make(Bindings, n+len(ordinary)+1)
		for name, val := range fixed {
			sample[name] = val
		}
		sample[ck] = randComplex(rng)
		for _, name := range ordinary {
			sample[name] = randComplex(rng)
		}

		f := func(x float64) float64 {
			sample[odeScaleName] = complex(x, 0)
			a, errA := evalNode(tu.Root, sample)
			b, errB := evalNode(scaled, sample)
			if errA != nil || errB != nil {
				return math.Inf(1)
			}
			return cmplx.Abs(a - b)
		}
		scale := opt.Minimize(f)

		tv.Root = substituteVariable(scaled, odeScaleName, NewConst(scale, 0))
		if !CompareWith(rng, tu, tv, fixed) {
			return false
		}
	}
	return CompareWith(rng, tu, tv, nil)
}

// permutations enumerates permutations of {0..n-1} with Heap's algorithm,
// stopping at limit.
func permutations(n, limit int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	var rec func(k int)
	rec = func(k int) {
		if len(out) >= limit {
			return
		}
		if k <= 1 {
			out = append(out, append([]int(nil), idx...))
			return
		}
		for i := 0; i < k; i++ {
			rec(k - 1)
			if len(out) >= limit {
				return
			}
			if k%2 == 0 {
				idx[i], idx[k-1] = idx[k-1], idx[i]
			} else {
				idx[0], idx[k-1] = idx[k-1], idx[0]
			}
		}
	}
	rec(n)
	return out
}
