package property

import (
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/samber/lo"
)

// SymmetryClass is a grouping key under which equivalent solutions collide: colorings that
// only differ by a permutation of colors, selections of the same size and mappings with the
// same number of fixed points.
func SymmetryClass(solution Solution) string {
	switch solution.Kind {
	case Coloring:
		// Relabel colors in order of first appearance
		nodes := lo.Keys(solution.Coloring)
		slices.Sort(nodes)
		labels := make(map[int]int)
		parts := make([]string, 0, len(nodes))
		for _, node := range nodes {
			color := solution.Coloring[node]
			if _, ok := labels[color]; !ok {
				labels[color] = len(labels)
			}
			parts = append(parts, fmt.Sprintf("%d:%d", node, labels[color]))
		}
		return "coloring " + strings.Join(parts, " ")
	case IndependentSet, Clique:
		return fmt.Sprintf("%s size=%d", solution.Kind, len(solution.Nodes))
	case Isomorphism:
		fixed := lo.CountBy(lo.Entries(solution.Mapping), func(entry lo.Entry[graph.Node, graph.Node]) bool {
			return entry.Key == entry.Value
		})
		return fmt.Sprintf("isomorphism fixed=%d", fixed)
	default:
		return string(solution.Kind)
	}
}
