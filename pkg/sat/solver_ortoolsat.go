package sat

import (
	"os/exec"
)

// ortoolsatSolver runs a DIMACS front-end of the OR-Tools CP-SAT solver
type ortoolsatSolver struct {
	path string
}

func NewOrtoolsatSolver(path string) SATSolver {
	return &ortoolsatSolver{path: path}
}

func (solver *ortoolsatSolver) Solve(sat SAT) (SATSolution, error) {
	return solveFromFile(Ortoolsat, exec.Command(solver.path), sat)
}
