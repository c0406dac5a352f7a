package property

import (
	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Kind names a graph property. The set of kinds is closed.
type Kind string

const (
	Coloring       Kind = "coloring"
	IndependentSet Kind = "independent-set"
	Clique         Kind = "clique"
	Isomorphism    Kind = "isomorphism"
)

// Kinds lists every supported property kind
func Kinds() []Kind {
	return []Kind{Coloring, IndependentSet, Clique, Isomorphism}
}

// Spec selects a property and its parameters
type Spec struct {
	Kind Kind
	// Colors is the number of available colors of a coloring
	Colors int
	// Size is the minimum number of selected nodes of an independent set or clique
	Size int
	// Target is the graph an isomorphism maps onto
	Target *graph.Graph
	// Mapping pins nodes of the graph to nodes of Target
	Mapping map[graph.Node]graph.Node
	// BreakSymmetry keeps one coloring out of every class of colorings that only differ by a
	// permutation of colors
	BreakSymmetry bool
}

type specDocument struct {
	Kind          string          `mapstructure:"kind"`
	Colors        int             `mapstructure:"colors"`
	Size          int             `mapstructure:"size"`
	Target        [][]int64       `mapstructure:"target"`
	Mapping       map[int64]int64 `mapstructure:"mapping"`
	BreakSymmetry bool            `mapstructure:"breakSymmetry"`
}

// SpecFromMap decodes a spec from a generic document such as a parsed YAML or JSON object.
// The target graph is given as an edge list, see graph.FromEdges.
func SpecFromMap(input map[string]any) (Spec, error) {
	var document specDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &document,
	})
	if err != nil {
		return Spec{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return Spec{}, errors.Wrap(err, "cannot decode property")
	}

	spec := Spec{
		Kind:          Kind(document.Kind),
		Colors:        document.Colors,
		Size:          document.Size,
		BreakSymmetry: document.BreakSymmetry,
	}
	if document.Target != nil {
		target, err := graph.FromEdges(document.Target)
		if err != nil {
			return Spec{}, &InvalidGraphError{Reason: "target", Err: err}
		}
		spec.Target = target
	}
	if len(document.Mapping) > 0 {
		spec.Mapping = make(map[graph.Node]graph.Node, len(document.Mapping))
		for from, to := range document.Mapping {
			spec.Mapping[graph.Node(from)] = graph.Node(to)
		}
	}
	return spec, nil
}
