package tree

import (
	"encoding/json"
	"errors"
	"iter"
	"slices"

	"github.com/limaJavier/graphsat/pkg/property"
)

var ErrFinalized = errors.New("solution tree is finalized")

// Step records one solution found by an enumeration session
type Step struct {
	// Call is the 1-based oracle call that produced the solution
	Call     int
	Solution property.Solution
	// Blocking is the clause added to exclude the solution from later calls
	Blocking []int64
}

// NoStep marks nodes that carry no solution: the root and group nodes
const NoStep = -1

// Node is an arena entry. Nodes reference each other by index into the tree's arena.
type Node struct {
	Parent   int
	Children []int
	Depth    int
	Label    string
	Step     int
}

// Tree is a read-only hierarchy over recorded steps. Node 0 is the root.
type Tree struct {
	steps []Step
	nodes []Node
}

// Builder accumulates steps until it is finalized
type Builder struct {
	steps []Step
	tree  *Tree
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (builder *Builder) Append(step Step) error {
	if builder.tree != nil {
		return ErrFinalized
	}
	step.Blocking = slices.Clone(step.Blocking)
	builder.steps = append(builder.steps, step)
	return nil
}

func (builder *Builder) Len() int {
	return len(builder.steps)
}

// Finalize freezes the builder and returns the flat tree: one root with every step as a
// child, in append order. Later calls return the same tree.
func (builder *Builder) Finalize() *Tree {
	if builder.tree != nil {
		return builder.tree
	}

	tree := &Tree{
		steps: builder.steps,
		nodes: make([]Node, 0, len(builder.steps)+1),
	}
	root := tree.addNode(NoStep, "", NoStep)
	for i := range builder.steps {
		tree.addNode(root, "", i)
	}

	builder.tree = tree
	return tree
}

func (tree *Tree) addNode(parent int, label string, step int) int {
	index := len(tree.nodes)
	node := Node{Parent: parent, Label: label, Step: step}
	if parent != NoStep {
		node.Depth = tree.nodes[parent].Depth + 1
		tree.nodes[parent].Children = append(tree.nodes[parent].Children, index)
	}
	tree.nodes = append(tree.nodes, node)
	return index
}

// Len returns the number of recorded solutions
func (tree *Tree) Len() int {
	return len(tree.steps)
}

// Steps returns a copy of the recorded steps in enumeration order
func (tree *Tree) Steps() []Step {
	return slices.Clone(tree.steps)
}

// Nodes returns a copy of the arena in construction order
func (tree *Tree) Nodes() []Node {
	nodes := make([]Node, len(tree.nodes))
	for i, node := range tree.nodes {
		node.Children = slices.Clone(node.Children)
		nodes[i] = node
	}
	return nodes
}

// All yields (depth, solution) pairs of the solution nodes in construction order. The
// sequence is lazy and can be ranged over any number of times.
func (tree *Tree) All() iter.Seq2[int, property.Solution] {
	return func(yield func(int, property.Solution) bool) {
		if len(tree.nodes) == 0 {
			return
		}

		// Pre-order traversal with an explicit stack
		stack := []int{0}
		for len(stack) > 0 {
			index := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			node := tree.nodes[index]
			if node.Step != NoStep && !yield(node.Depth, tree.steps[node.Step].Solution) {
				return
			}
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, node.Children[i])
			}
		}
	}
}

// GroupBy returns a view of the tree where solutions sharing a key hang from a common group
// node, groups in order of first appearance. The receiver is left untouched.
func (tree *Tree) GroupBy(key func(property.Solution) string) *Tree {
	grouped := &Tree{
		steps: tree.steps,
		nodes: make([]Node, 0, len(tree.nodes)),
	}
	root := grouped.addNode(NoStep, "", NoStep)

	groups := make(map[string]int)
	for i, step := range tree.steps {
		label := key(step.Solution)
		group, ok := groups[label]
		if !ok {
			group = grouped.addNode(root, label, NoStep)
			groups[label] = group
		}
		grouped.addNode(group, "", i)
	}
	return grouped
}

type jsonNode struct {
	Label    string             `json:"label,omitempty"`
	Call     int                `json:"call,omitempty"`
	Solution *property.Solution `json:"solution,omitempty"`
	Children []jsonNode         `json:"children,omitempty"`
}

// MarshalJSON renders the tree as nested nodes starting at the root
func (tree *Tree) MarshalJSON() ([]byte, error) {
	if len(tree.nodes) == 0 {
		return json.Marshal(jsonNode{})
	}
	return json.Marshal(tree.jsonNode(0))
}

func (tree *Tree) jsonNode(index int) jsonNode {
	node := tree.nodes[index]
	result := jsonNode{Label: node.Label}
	if node.Step != NoStep {
		step := tree.steps[node.Step]
		result.Call = step.Call
		result.Solution = &step.Solution
	}
	for _, child := range node.Children {
		result.Children = append(result.Children, tree.jsonNode(child))
	}
	return result
}
