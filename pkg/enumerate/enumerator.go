package enumerate

import (
	"context"
	"fmt"

	"github.com/limaJavier/graphsat/pkg/property"
	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/limaJavier/graphsat/pkg/tree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of an enumeration session. Tree is always finalized, also when the
// session failed or was cancelled.
type Result struct {
	Tree        *tree.Tree `json:"tree"`
	Status      Status     `json:"status"`
	OracleCalls int        `json:"oracleCalls"`
	Variables   uint64     `json:"variables"`
	// Clauses counts the base clauses plus the blocking clauses of the last formula
	Clauses int `json:"clauses"`
}

// Enumerator finds every solution of an encoding by querying the solver, blocking each model
// on its relevant variables and querying again until the formula becomes unsatisfiable.
// An enumerator runs once and is not safe for concurrent use.
type Enumerator struct {
	encoding *property.Encoding
	solver   sat.SATSolver
	limit    int
	observer Observer
	logger   logrus.FieldLogger
	state    State
}

func New(encoding *property.Encoding, solver sat.SATSolver, options ...Option) (*Enumerator, error) {
	if encoding == nil {
		return nil, errors.New("enumerator requires an encoding")
	}
	if solver == nil {
		return nil, errors.New("enumerator requires a solver")
	}

	enumerator := &Enumerator{
		encoding: encoding,
		solver:   solver,
		state:    Ready,
	}
	for _, option := range append(options, defaults...) {
		if err := option(enumerator); err != nil {
			return nil, err
		}
	}
	return enumerator, nil
}

func (enumerator *Enumerator) State() State {
	return enumerator.state
}

// Run enumerates solutions until the formula is exhausted, the limit is reached or ctx is
// done. Cancellation is checked between oracle calls and is not an error. On a failure the
// error is returned together with the solutions found so far.
func (enumerator *Enumerator) Run(ctx context.Context) (Result, error) {
	if enumerator.state != Ready {
		return Result{}, errors.Errorf("enumerator cannot run in state %v", enumerator.state)
	}

	base := enumerator.encoding.SAT()
	blocking := [][]int64{}
	builder := tree.NewBuilder()
	result := Result{Variables: base.Variables}
	logger := enumerator.logger.WithFields(logrus.Fields{
		"property":  enumerator.encoding.Spec.Kind,
		"variables": base.Variables,
		"clauses":   len(base.Clauses),
	})

	finish := func(status Status, err error) (Result, error) {
		enumerator.state = Done
		result.Status = status
		result.Clauses = len(base.Clauses) + len(blocking)
		result.Tree = builder.Finalize()
		enumerator.observer.Observe(Progress{
			Queried:     status == Exhausted || status == Failed,
			OracleCalls: result.OracleCalls,
			Solutions:   builder.Len(),
			Clauses:     result.Clauses,
			Done:        true,
			Status:      status,
		})

		entry := logger.WithFields(logrus.Fields{
			"calls":     result.OracleCalls,
			"solutions": builder.Len(),
			"status":    status,
		})
		if err != nil {
			entry.WithError(err).Error("enumeration failed")
		} else {
			entry.Info("enumeration finished")
		}
		return result, err
	}

	for iteration := 1; ; iteration++ {
		if ctx.Err() != nil {
			return finish(Cancelled, nil)
		}

		//** Query
		enumerator.state = Querying
		snapshot := base.Extend(blocking...)
		result.OracleCalls++
		solution, err := enumerator.solver.Solve(snapshot)
		if err != nil {
			var oracleErr *sat.OracleError
			if !errors.As(err, &oracleErr) {
				err = &sat.OracleError{Solver: fmt.Sprintf("%T", enumerator.solver), Err: err}
			}
			return finish(Failed, err)
		}
		if solution == nil {
			return finish(Exhausted, nil)
		}

		//** Extract
		enumerator.state = Extracting
		model := solution.Model()
		if model == nil || !snapshot.Satisfied(solution) {
			return finish(Failed, &sat.OracleError{
				Solver: fmt.Sprintf("%T", enumerator.solver),
				Err:    errors.Errorf("call %d returned an assignment that does not satisfy the formula", result.OracleCalls),
			})
		}

		decoded, err := enumerator.encoding.Decode(model)
		if err != nil {
			return finish(Failed, errors.Wrapf(err, "cannot decode model of call %d", result.OracleCalls))
		}

		clause := enumerator.encoding.BlockingClause(model)
		blocking = append(blocking, clause)
		if err := builder.Append(tree.Step{Call: result.OracleCalls, Solution: decoded, Blocking: clause}); err != nil {
			return finish(Failed, err)
		}

		enumerator.observer.Observe(Progress{
			Iteration:    iteration,
			Queried:      true,
			OracleCalls:  result.OracleCalls,
			Solutions:    builder.Len(),
			Clauses:      len(base.Clauses) + len(blocking),
			Solution:     &decoded,
			BlockingSize: len(clause),
		})
		logger.WithFields(logrus.Fields{
			"iteration": iteration,
			"calls":     result.OracleCalls,
			"solutions": builder.Len(),
		}).Debugf("found %v", decoded)

		if enumerator.limit > 0 && builder.Len() >= enumerator.limit {
			return finish(LimitReached, nil)
		}
		enumerator.state = Ready
	}
}
