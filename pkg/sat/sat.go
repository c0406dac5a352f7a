package sat

// SATSolution is a model as signed literals. A nil solution stands for UNSAT, an empty one
// for a satisfiable formula without variables.
type SATSolution []int64

// Model is the lookup form of a solution. Variables absent from the model are false.
type Model map[uint64]bool

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

// Extend returns a new snapshot holding the clauses of s followed by clauses. The receiver is not modified.
func (s SAT) Extend(clauses ...[]int64) SAT {
	extended := SAT{
		Variables: s.Variables,
		Clauses:   make([][]int64, 0, len(s.Clauses)+len(clauses)),
	}
	extended.Clauses = append(extended.Clauses, s.Clauses...)
	extended.Clauses = append(extended.Clauses, clauses...)
	return extended
}

// Satisfied reports whether solution satisfies every clause of s
func (s SAT) Satisfied(solution SATSolution) bool {
	if solution == nil {
		return false
	}
	model := solution.Model()
	if model == nil {
		return false
	}

	for _, clause := range s.Clauses {
		satisfied := false
		for _, literal := range clause {
			if model.Holds(literal) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// Model converts the solution into its lookup form. It returns nil when the solution holds
// a literal and its negation or a zero literal.
func (solution SATSolution) Model() Model {
	model := make(Model, len(solution))
	for _, literal := range solution {
		if literal == 0 {
			return nil
		}
		variable, value := uint64(abs(literal)), literal > 0
		if current, ok := model[variable]; ok && current != value {
			return nil
		}
		model[variable] = value
	}
	return model
}

func (model Model) Value(variable uint64) bool {
	return model[variable]
}

// Holds reports whether the signed literal is true under model
func (model Model) Holds(literal int64) bool {
	value := model[uint64(abs(literal))]
	if literal < 0 {
		return !value
	}
	return value
}

func abs(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}
