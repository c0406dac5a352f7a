package sat

import (
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type minisatSolver struct {
	path string
}

func NewMinisatSolver(path string) SATSolver {
	return &minisatSolver{path: path}
}

func (solver *minisatSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(Minisat, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	// Minisat reads its input from a file and writes the model to another one
	input, err := writeTempDIMACS(Minisat, sat)
	if err != nil {
		return nil, err
	}
	defer os.Remove(input)

	outputTempFile, err := os.CreateTemp("", "minisat_output-*.txt")
	if err != nil {
		return nil, &OracleError{Solver: Minisat, Err: errors.Wrap(err, "failed to create temporary file")}
	}
	defer os.Remove(outputTempFile.Name())
	outputTempFile.Close()

	cmd := exec.Command(solver.path, "-verb=0", input, outputTempFile.Name())
	_, satisfiable, err := runSolver(Minisat, cmd, "")
	if err != nil || !satisfiable {
		return nil, err
	}

	output, err := os.ReadFile(outputTempFile.Name())
	if err != nil {
		return nil, &OracleError{Solver: Minisat, Err: errors.Wrap(err, "failed to read output file")}
	}
	solution, err := parseMinisatResult(string(output))
	if err != nil {
		return nil, &OracleError{Solver: Minisat, Err: err}
	}
	return solution, nil
}

// parseMinisatResult reads minisat's result file: a "SAT" header followed by the model line
func parseMinisatResult(result string) (SATSolution, error) {
	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "SAT" {
		return nil, errors.Errorf("unexpected minisat result header %q", lines[0])
	}
	if len(lines) < 2 {
		return SATSolution{}, nil
	}

	fields := strings.Fields(lines[1])
	solution := make(SATSolution, 0, len(fields))
	for _, field := range fields {
		literal, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid literal %q in minisat result", field)
		}
		if literal == 0 {
			break
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
