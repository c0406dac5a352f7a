package sat

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrOracle          = errors.New("oracle failure")
)

type UnknownVariableError struct {
	Variable uint64
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("variable %d is not bound to any proposition", e.Variable)
}

func (e *UnknownVariableError) Is(target error) bool {
	return target == ErrUnknownVariable
}

// OracleError reports a failure of the solver behind a SATSolver, not an UNSAT answer
type OracleError struct {
	Solver string
	Err    error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("%s oracle failed: %v", e.Solver, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

func (e *OracleError) Is(target error) bool {
	return target == ErrOracle
}
