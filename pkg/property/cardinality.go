package property

import (
	"math/bits"
	"slices"

	"github.com/samber/lo"
)

// exactlyOne encodes that exactly one literal holds: one at-least-one clause plus pairwise
// at-most-one clauses. An empty literal set yields the empty clause.
func exactlyOne(literals []int64) [][]int64 {
	clauses := make([][]int64, 0, 1+len(literals)*(len(literals)-1)/2)
	clauses = append(clauses, slices.Clone(literals))
	for i := range literals {
		for j := i + 1; j < len(literals); j++ {
			clauses = append(clauses, []int64{-literals[i], -literals[j]})
		}
	}
	return clauses
}

// atLeast encodes that at least k of literals hold. For k <= 0 there is nothing to encode and
// for k beyond the number of literals the result is the empty clause. Otherwise the cheaper
// of the direct and the sequential counter encodings is used, see useDirect.
func (state *encodingState) atLeast(literals []int64, k int) [][]int64 {
	n := len(literals)
	switch {
	case k <= 0:
		return nil
	case k > n:
		return [][]int64{{}}
	case useDirect(n, k):
		return atLeastDirect(literals, k)
	}

	// At least k of l1..ln hold iff at most n-k of ¬l1..¬ln hold
	negated := lo.Map(literals, func(literal int64, _ int) int64 { return -literal })
	return state.atMostSequential(negated, n-k)
}

// useDirect reports whether the direct encoding of at-least-k over n literals produces no more
// clauses than the sequential counter
func useDirect(n, k int) bool {
	if k >= n {
		return true
	}
	direct, ok := directClauses(n, k)
	return ok && direct <= sequentialClauses(n, k)
}

// directClauses is C(n, n-k+1), the number of subsets of size n-k+1. The boolean is false on overflow.
func directClauses(n, k int) (uint64, bool) {
	return binomial(n, n-k+1)
}

// sequentialClauses is the clause count of the sequential counter for at-most-(n-k) over n
// literals: 2nm + n - 3m - 1 with m = n-k >= 1. It also uses (n-1)m auxiliary variables.
func sequentialClauses(n, k int) uint64 {
	m := uint64(n - k)
	return 2*uint64(n)*m + uint64(n) - 3*m - 1
}

func binomial(n, r int) (uint64, bool) {
	if r < 0 || r > n {
		return 0, true
	}
	r = min(r, n-r)

	var result uint64 = 1
	for i := 1; i <= r; i++ {
		// result*(n-r+i) is always divisible by i
		high, low := bits.Mul64(result, uint64(n-r+i))
		if high != 0 {
			return 0, false
		}
		result = low / uint64(i)
	}
	return result, true
}

// atLeastDirect emits one clause per subset of n-k+1 literals: every such subset must hold a true literal
func atLeastDirect(literals []int64, k int) [][]int64 {
	size := len(literals) - k + 1
	clauses := [][]int64{}

	subset := make([]int64, 0, size)
	var choose func(start int)
	choose = func(start int) {
		if len(subset) == size {
			clauses = append(clauses, slices.Clone(subset))
			return
		}
		// Leave room for the remaining picks
		for i := start; i <= len(literals)-(size-len(subset)); i++ {
			subset = append(subset, literals[i])
			choose(i + 1)
			subset = subset[:len(subset)-1]
		}
	}
	choose(0)

	return clauses
}

// atMostSequential is Sinz's sequential counter for at most m of x1..xn. The auxiliary
// variable s(i,j) holds when at least j of x1..xi hold, for i < n and j <= m.
func (state *encodingState) atMostSequential(x []int64, m int) [][]int64 {
	n := len(x)
	if m >= n {
		return nil
	}
	if m == 0 {
		return lo.Map(x, func(literal int64, _ int) []int64 { return []int64{-literal} })
	}

	counter := state.nextCounter()
	s := func(i, j int) int64 {
		return state.auxiliary(counter, int64((i-1)*m+(j-1)))
	}

	clauses := make([][]int64, 0, 2*n*m+n-3*m-1)
	clauses = append(clauses, []int64{-x[0], s(1, 1)})
	for j := 2; j <= m; j++ {
		clauses = append(clauses, []int64{-s(1, j)})
	}
	for i := 2; i < n; i++ {
		xi := x[i-1]
		clauses = append(clauses,
			[]int64{-xi, s(i, 1)},
			[]int64{-s(i-1, 1), s(i, 1)},
		)
		for j := 2; j <= m; j++ {
			clauses = append(clauses,
				[]int64{-xi, -s(i-1, j-1), s(i, j)},
				[]int64{-s(i-1, j), s(i, j)},
			)
		}
		clauses = append(clauses, []int64{-xi, -s(i-1, m)})
	}
	clauses = append(clauses, []int64{-x[n-1], -s(n-1, m)})

	return clauses
}
