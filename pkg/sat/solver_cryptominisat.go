package sat

import (
	"os/exec"
)

type cryptominisatSolver struct {
	path string
}

func NewCryptominisatSolver(path string) SATSolver {
	return &cryptominisatSolver{path: path}
}

func (solver *cryptominisatSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(Cryptominisat, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	// Feed DIMACS into cryptominisat's standard input
	cmd := exec.Command(solver.path, "--verb", "0")
	output, satisfiable, err := runSolver(Cryptominisat, cmd, sat.ToDIMACS())
	if err != nil || !satisfiable {
		return nil, err
	}

	solution, err := ParseSolution(output)
	if err != nil {
		return nil, &OracleError{Solver: Cryptominisat, Err: err}
	}
	return solution, nil
}
