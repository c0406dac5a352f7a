package sat

import (
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type glucoseSimpSolver struct {
	path string
}

func NewGlucoseSimpSolver(path string) SATSolver {
	return &glucoseSimpSolver{path: path}
}

func (solver *glucoseSimpSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(GlucoseSimp, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	input, err := writeTempDIMACS(GlucoseSimp, sat)
	if err != nil {
		return nil, err
	}
	defer os.Remove(input)

	outputTempFile, err := os.CreateTemp("", "glucose_simp_output-*.txt")
	if err != nil {
		return nil, &OracleError{Solver: GlucoseSimp, Err: errors.Wrap(err, "failed to create temporary file")}
	}
	defer os.Remove(outputTempFile.Name())
	outputTempFile.Close()

	cmd := exec.Command(solver.path, "-verb=0", input, outputTempFile.Name())
	_, satisfiable, err := runSolver(GlucoseSimp, cmd, "")
	if err != nil || !satisfiable {
		return nil, err
	}

	output, err := os.ReadFile(outputTempFile.Name())
	if err != nil {
		return nil, &OracleError{Solver: GlucoseSimp, Err: errors.Wrap(err, "failed to read output file")}
	}
	solution, err := parseGlucoseResult(string(output))
	if err != nil {
		return nil, &OracleError{Solver: GlucoseSimp, Err: err}
	}
	return solution, nil
}

// parseGlucoseResult reads the model file of glucose. Depending on the version the literals
// are preceded by a "SAT" line or not.
func parseGlucoseResult(result string) (SATSolution, error) {
	fields := strings.Fields(result)
	if len(fields) > 0 && fields[0] == "SAT" {
		fields = fields[1:]
	}

	solution := make(SATSolution, 0, len(fields))
	for _, field := range fields {
		literal, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid literal %q in glucose result", field)
		}
		if literal == 0 {
			break
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
