package sat

import (
	"os/exec"
)

type cadicalSolver struct {
	path string
}

func NewCadicalSolver(path string) SATSolver {
	return &cadicalSolver{path: path}
}

func (solver *cadicalSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(Cadical, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	cmd := exec.Command(solver.path, "-q")
	output, satisfiable, err := runSolver(Cadical, cmd, sat.ToDIMACS())
	if err != nil || !satisfiable {
		return nil, err
	}

	solution, err := ParseSolution(output)
	if err != nil {
		return nil, &OracleError{Solver: Cadical, Err: err}
	}
	return solution, nil
}
