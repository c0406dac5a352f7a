package sat

import "github.com/go-air/gini/gen"

// GenerateSATInstance builds a random 3-CNF over variables variables, at least 3 of them.
// Instances only depend on seed.
func GenerateSATInstance(seed int64, variables, clauses int) SAT {
	gen.Seed(seed)
	builder := &satBuilder{}
	gen.Rand3Cnf(builder, variables, clauses)
	return SAT{Variables: uint64(variables), Clauses: builder.clauses}
}

// GeneratePigeonhole encodes placing pigeons into holes with at most one pigeon per hole.
// It is unsatisfiable iff pigeons > holes.
func GeneratePigeonhole(pigeons, holes int) SAT {
	builder := &satBuilder{}
	gen.Php(builder, pigeons, holes)
	return SAT{Variables: builder.maxVariable, Clauses: builder.clauses}
}
