package sat

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Exit codes of SAT-competition compliant solvers
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// validate rejects formulas that no solver can be handed safely
func validate(solver string, sat SAT) error {
	for i, clause := range sat.Clauses {
		for _, literal := range clause {
			if literal == 0 {
				return &OracleError{Solver: solver, Err: errors.Errorf("clause %d holds a zero literal", i)}
			}
			if uint64(abs(literal)) > sat.Variables {
				return &OracleError{Solver: solver, Err: errors.Errorf("clause %d references variable %d beyond %d", i, abs(literal), sat.Variables)}
			}
		}
	}
	return nil
}

// decideTrivially answers formulas without clauses or with an empty clause, which some
// solvers reject or mishandle. The boolean reports whether the formula was decided.
func decideTrivially(sat SAT) (SATSolution, bool) {
	if len(sat.Clauses) == 0 {
		return SATSolution{}, true
	}
	for _, clause := range sat.Clauses {
		if len(clause) == 0 {
			return nil, true
		}
	}
	return nil, false
}

// runSolver executes a SAT-competition compliant solver. It returns the standard output and
// whether the formula is satisfiable according to the exit code.
func runSolver(solver string, cmd *exec.Cmd, stdin string) (string, bool, error) {
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cmd.ProcessState == nil {
		// The process never started, e.g. the executable does not exist
		return "", false, &OracleError{Solver: solver, Err: errors.Wrapf(err, "cannot execute %s", cmd.Path)}
	}

	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	switch cmd.ProcessState.ExitCode() {
	case exitSatisfiable:
		return stdout.String(), true, nil
	case exitUnsatisfiable:
		return stdout.String(), false, nil
	default:
		if err == nil {
			err = errors.Errorf("unexpected exit code %d", cmd.ProcessState.ExitCode())
		}
		return "", false, &OracleError{Solver: solver, Err: errors.Wrapf(err, "execution failed: %s", strings.TrimSpace(stderr.String()))}
	}
}

// writeTempDIMACS writes sat into a new temporary file, for solvers that cannot read their
// standard input. The caller removes the file.
func writeTempDIMACS(solver string, sat SAT) (string, error) {
	file, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return "", &OracleError{Solver: solver, Err: errors.Wrap(err, "failed to create temporary file")}
	}

	err = sat.WriteDIMACS(file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(file.Name())
		return "", &OracleError{Solver: solver, Err: errors.Wrap(err, "failed to write DIMACS to temporary file")}
	}
	return file.Name(), nil
}

// solveFromFile runs a solver that takes the formula as a file argument and prints its model
// as "v" lines
func solveFromFile(solver string, cmd *exec.Cmd, sat SAT) (SATSolution, error) {
	if err := validate(solver, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	input, err := writeTempDIMACS(solver, sat)
	if err != nil {
		return nil, err
	}
	defer os.Remove(input)

	cmd.Args = append(cmd.Args, input)
	output, satisfiable, err := runSolver(solver, cmd, "")
	if err != nil || !satisfiable {
		return nil, err
	}

	solution, err := ParseSolution(output)
	if err != nil {
		return nil, &OracleError{Solver: solver, Err: err}
	}
	return solution, nil
}
