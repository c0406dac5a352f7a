package property

import (
	"slices"

	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/samber/lo"
)

const (
	predicateColor   = "color"
	predicateSelect  = "select"
	predicateMap     = "map"
	predicateCounter = "counter"
)

// Encoding is the CNF form of a property over a graph together with the registry that gives
// its variables meaning. It belongs to a single enumeration session.
type Encoding struct {
	Spec     Spec
	Graph    *graph.Graph
	Registry *sat.Registry
	Clauses  [][]int64

	relevant []uint64
}

type encodingState struct {
	graph    *graph.Graph
	spec     Spec
	registry *sat.Registry
	relevant []uint64
	counters int64
}

// variable allocates a variable that takes part in decoded solutions
func (state *encodingState) variable(predicate string, subject, object int64) int64 {
	proposition := sat.Proposition{Predicate: predicate, Subject: subject, Object: object}
	if id, ok := state.registry.ID(proposition); ok {
		return int64(id)
	}
	id := state.registry.Allocate(proposition)
	state.relevant = append(state.relevant, id)
	return int64(id)
}

// auxiliary allocates a helper variable of a cardinality constraint
func (state *encodingState) auxiliary(counter, index int64) int64 {
	return int64(state.registry.Allocate(sat.Proposition{Predicate: predicateCounter, Subject: counter, Object: index}))
}

func (state *encodingState) nextCounter() int64 {
	state.counters++
	return state.counters
}

// Encode translates the property selected by spec over g into CNF. Errors are reported before
// any clause leaves this function: *InvalidGraphError for malformed inputs and
// *UnsupportedPropertyError for unknown kinds.
func Encode(g *graph.Graph, spec Spec) (*Encoding, error) {
	if err := g.Validate(); err != nil {
		return nil, &InvalidGraphError{Reason: "graph", Err: err}
	}

	// Constraint functions
	var constraints []func(state *encodingState) [][]int64
	switch spec.Kind {
	case Coloring:
		if spec.Colors < 0 || (spec.Colors == 0 && g.Order() > 0) {
			return nil, invalidGraph("cannot color %d nodes with %d colors", g.Order(), spec.Colors)
		}
		constraints = []func(state *encodingState) [][]int64{
			colorCompletenessConstraints,
			colorConflictConstraints,
		}
		if spec.BreakSymmetry {
			constraints = append(constraints, colorSymmetryConstraints)
		}
	case IndependentSet:
		if spec.Size < 0 {
			return nil, invalidGraph("negative independent set size %d", spec.Size)
		}
		constraints = []func(state *encodingState) [][]int64{
			independenceConstraints,
			selectionSizeConstraints,
		}
	case Clique:
		if spec.Size < 0 {
			return nil, invalidGraph("negative clique size %d", spec.Size)
		}
		constraints = []func(state *encodingState) [][]int64{
			cliqueConstraints,
			selectionSizeConstraints,
		}
	case Isomorphism:
		if err := validateIsomorphism(g, spec); err != nil {
			return nil, err
		}
		constraints = []func(state *encodingState) [][]int64{
			isomorphismConstraints,
		}
	default:
		return nil, &UnsupportedPropertyError{Kind: spec.Kind}
	}

	state := &encodingState{
		graph:    g,
		spec:     spec,
		registry: sat.NewRegistry(),
	}

	clauses := [][]int64{}
	for _, constraint := range constraints {
		clauses = append(clauses, constraint(state)...)
	}

	return &Encoding{
		Spec:     spec,
		Graph:    g,
		Registry: state.registry,
		Clauses:  clauses,
		relevant: state.relevant,
	}, nil
}

// SAT returns a fresh formula snapshot of the encoding
func (encoding *Encoding) SAT() sat.SAT {
	return sat.SAT{
		Variables: encoding.Registry.Len(),
		Clauses:   slices.Clone(encoding.Clauses),
	}
}

// Relevant returns the variables that determine a decoded solution, in ascending order.
// Auxiliary variables of cardinality constraints are never relevant.
func (encoding *Encoding) Relevant() []uint64 {
	relevant := slices.Clone(encoding.relevant)
	slices.Sort(relevant)
	return relevant
}

// BlockingClause returns the clause that excludes every model agreeing with model on the
// relevant variables. Relevant variables missing from the model count as false.
func (encoding *Encoding) BlockingClause(model sat.Model) []int64 {
	return lo.Map(encoding.Relevant(), func(variable uint64, _ int) int64 {
		if model.Value(variable) {
			return -int64(variable)
		}
		return int64(variable)
	})
}
