package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

type giniSolver struct{}

// NewGiniSolver returns an in-process solver backed by gini
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(Gini, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	g := gini.NewV(int(sat.Variables))
	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull)
	}

	switch g.Solve() {
	case -1:
		return nil, nil
	case 1:
	default:
		return nil, &OracleError{Solver: Gini, Err: errors.New("search was interrupted")}
	}

	// Gini only knows the variables that occur in some clause
	maxVar := int(g.MaxVar())
	solution := make(SATSolution, 0, maxVar)
	for variable := 1; variable <= maxVar; variable++ {
		literal := int64(variable)
		if !g.Value(z.Dimacs2Lit(variable)) {
			literal = -literal
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
