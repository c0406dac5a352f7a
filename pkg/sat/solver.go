package sat

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// SATSolver decides a formula. A nil solution with a nil error means UNSAT, a satisfiable
// formula always yields a non-nil (possibly partial) solution. Implementations keep no
// state between calls.
type SATSolver interface {
	Solve(SAT) (SATSolution, error)
}

const (
	Gophersat  = "gophersat"
	Gini       = "gini"
	Bruteforce = "bruteforce"
	Kissat     = "kissat"
	Cadical    = "cadical"
	Minisat    = "minisat"
	// GlucoseSimp is named after its executable
	GlucoseSimp   = "glucose-simp"
	Slime         = "slime"
	Cryptominisat = "cryptominisat5"
	Ortoolsat     = "ortoolsat"
)

// DefaultBruteforceVariables bounds the search space of the brute-force solver built by NewSolver
const DefaultBruteforceVariables = 20

var solverFactories = map[string]func(path string) SATSolver{
	Gophersat:     func(string) SATSolver { return NewGophersatSolver() },
	Gini:          func(string) SATSolver { return NewGiniSolver() },
	Bruteforce:    func(string) SATSolver { return NewBruteforceSolver(DefaultBruteforceVariables) },
	Kissat:        func(path string) SATSolver { return NewKissatSolver(path) },
	Cadical:       func(path string) SATSolver { return NewCadicalSolver(path) },
	Minisat:       func(path string) SATSolver { return NewMinisatSolver(path) },
	GlucoseSimp:   func(path string) SATSolver { return NewGlucoseSimpSolver(path) },
	Slime:         func(path string) SATSolver { return NewSlimeSolver(path) },
	Cryptominisat: func(path string) SATSolver { return NewCryptominisatSolver(path) },
	Ortoolsat:     func(path string) SATSolver { return NewOrtoolsatSolver(path) },
}

// NewSolver builds the solver registered under name. External solvers take their executable
// from paths, falling back to the name itself so that it is resolved through PATH.
func NewSolver(name string, paths map[string]string) (SATSolver, error) {
	factory, ok := solverFactories[name]
	if !ok {
		return nil, errors.Errorf("unknown solver %q, expected one of %v", name, SolverNames())
	}

	path, ok := paths[name]
	if !ok || path == "" {
		path = name
	}
	return factory(path), nil
}

// SolverNames lists the registered solvers in alphabetical order
func SolverNames() []string {
	names := lo.Keys(solverFactories)
	slices.Sort(names)
	return names
}

// InProcess reports whether the named solver runs without an external executable
func InProcess(name string) bool {
	return name == Gophersat || name == Gini || name == Bruteforce
}
