package sat

import (
	"os/exec"
)

type slimeSolver struct {
	path string
}

func NewSlimeSolver(path string) SATSolver {
	return &slimeSolver{path: path}
}

func (solver *slimeSolver) Solve(sat SAT) (SATSolution, error) {
	return solveFromFile(Slime, exec.Command(solver.path), sat)
}
