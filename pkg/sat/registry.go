package sat

import "fmt"

// Proposition is the structured meaning of a variable, e.g. color(3,1) or map(2,5)
type Proposition struct {
	Predicate string
	Subject   int64
	Object    int64
}

func (proposition Proposition) String() string {
	return fmt.Sprintf("%s(%d,%d)", proposition.Predicate, proposition.Subject, proposition.Object)
}

// Registry is the bijection between propositions and variable ids of one encoding session.
// Ids start at 1, grow by one per new proposition and are never reused.
type Registry struct {
	ids          map[Proposition]uint64
	propositions []Proposition // id-1 -> proposition
}

func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[Proposition]uint64),
	}
}

// Allocate returns the id bound to proposition, binding the next free id on first use
func (registry *Registry) Allocate(proposition Proposition) uint64 {
	if id, ok := registry.ids[proposition]; ok {
		return id
	}
	registry.propositions = append(registry.propositions, proposition)
	id := uint64(len(registry.propositions))
	registry.ids[proposition] = id
	return id
}

func (registry *Registry) ID(proposition Proposition) (uint64, bool) {
	id, ok := registry.ids[proposition]
	return id, ok
}

func (registry *Registry) Lookup(id uint64) (Proposition, error) {
	if id == 0 || id > uint64(len(registry.propositions)) {
		return Proposition{}, &UnknownVariableError{Variable: id}
	}
	return registry.propositions[id-1], nil
}

// Len returns the number of allocated variables, which is also the highest id
func (registry *Registry) Len() uint64 {
	return uint64(len(registry.propositions))
}
