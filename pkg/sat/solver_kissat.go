package sat

import (
	"os/exec"
)

type kissatSolver struct {
	path string
}

func NewKissatSolver(path string) SATSolver {
	return &kissatSolver{path: path}
}

func (solver *kissatSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(Kissat, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	// Feed DIMACS into kissat's standard input
	cmd := exec.Command(solver.path, "-q", "--relaxed")
	output, satisfiable, err := runSolver(Kissat, cmd, sat.ToDIMACS())
	if err != nil || !satisfiable {
		return nil, err
	}

	solution, err := ParseSolution(output)
	if err != nil {
		return nil, &OracleError{Solver: Kissat, Err: err}
	}
	return solution, nil
}
