package graph

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	ErrInvalidNode = errors.New("nodes must be positive integers")
	ErrUnknownNode = errors.New("edge references a node that is not in the graph")
	ErrSelfLoop    = errors.New("self-loops are not allowed")
	ErrEmptyEdge   = errors.New("edges must be incident on at least one node")
	ErrHyperedge   = errors.New("edges must be incident on at most two nodes")
	ErrMixedEdge   = errors.New("a node cannot be both isolated and part of a node-pair edge")
)

// Node identifies a vertex of a Graph. Nodes are positive integers.
type Node int64

// Edge is an unordered pair of nodes, always stored with U < V.
type Edge struct {
	U, V Node
}

// NewEdge returns the normalized edge between u and v
func NewEdge(u, v Node) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

func (edge Edge) String() string {
	return fmt.Sprintf("(%d,%d)", edge.U, edge.V)
}

// Attributes attach arbitrary key-value data to nodes and edges
type Attributes map[string]any

// Graph is a simple undirected graph: no self-loops and no parallel edges.
// The zero value is not usable, build graphs with New or FromEdges.
type Graph struct {
	nodes     map[Node]Attributes
	edges     map[Edge]Attributes
	adjacency map[Node]map[Node]bool
}

func New() *Graph {
	return &Graph{
		nodes:     make(map[Node]Attributes),
		edges:     make(map[Edge]Attributes),
		adjacency: make(map[Node]map[Node]bool),
	}
}

// FromEdges builds a graph from a collection of edges. Each element holds either one node
// (an isolated vertex) or two nodes (a vertex-pair edge). Duplicated edges collapse into one.
func FromEdges(edgeList [][]int64) (*Graph, error) {
	graph := New()

	isolated := make(map[Node]bool)
	paired := make(map[Node]bool)
	for _, rawEdge := range edgeList {
		switch len(rawEdge) {
		case 0:
			return nil, ErrEmptyEdge
		case 1:
			isolated[Node(rawEdge[0])] = true
		case 2:
			paired[Node(rawEdge[0])] = true
			paired[Node(rawEdge[1])] = true
		default:
			return nil, errors.Wrapf(ErrHyperedge, "edge %v", rawEdge)
		}
	}

	// Verify that isolated vertices and vertex-pair edges are disjoint
	if mixed, ok := lo.Find(lo.Keys(isolated), func(node Node) bool { return paired[node] }); ok {
		return nil, errors.Wrapf(ErrMixedEdge, "node %d", mixed)
	}

	for _, rawEdge := range edgeList {
		for _, node := range rawEdge {
			if graph.HasNode(Node(node)) {
				continue
			}
			if err := graph.AddNode(Node(node), nil); err != nil {
				return nil, err
			}
		}
		if len(rawEdge) == 2 {
			if err := graph.AddEdge(Node(rawEdge[0]), Node(rawEdge[1]), nil); err != nil {
				return nil, err
			}
		}
	}

	return graph, nil
}

// AddNode inserts node, merging attributes if it already exists
func (graph *Graph) AddNode(node Node, attributes Attributes) error {
	if node <= 0 {
		return errors.Wrapf(ErrInvalidNode, "node %d", node)
	}

	current, ok := graph.nodes[node]
	if !ok {
		current = make(Attributes, len(attributes))
		graph.nodes[node] = current
		graph.adjacency[node] = make(map[Node]bool)
	}
	for key, value := range attributes {
		current[key] = value
	}
	return nil
}

// AddEdge inserts the undirected edge {u, v}. Both endpoints must already be present.
// Adding an existing edge merges its attributes.
func (graph *Graph) AddEdge(u, v Node, attributes Attributes) error {
	if u == v {
		return errors.Wrapf(ErrSelfLoop, "node %d", u)
	}
	if !graph.HasNode(u) {
		return errors.Wrapf(ErrUnknownNode, "node %d", u)
	}
	if !graph.HasNode(v) {
		return errors.Wrapf(ErrUnknownNode, "node %d", v)
	}

	edge := NewEdge(u, v)
	current, ok := graph.edges[edge]
	if !ok {
		current = make(Attributes, len(attributes))
		graph.edges[edge] = current
	}
	for key, value := range attributes {
		current[key] = value
	}

	graph.adjacency[u][v] = true
	graph.adjacency[v][u] = true
	return nil
}

func (graph *Graph) HasNode(node Node) bool {
	_, ok := graph.nodes[node]
	return ok
}

func (graph *Graph) HasEdge(u, v Node) bool {
	return graph.adjacency[u][v]
}

// Nodes returns the nodes in ascending order
func (graph *Graph) Nodes() []Node {
	nodes := lo.Keys(graph.nodes)
	slices.Sort(nodes)
	return nodes
}

// Edges returns the edges in lexicographic order
func (graph *Graph) Edges() []Edge {
	edges := lo.Keys(graph.edges)
	slices.SortFunc(edges, compareEdges)
	return edges
}

// Neighbors returns the neighbors of node in ascending order
func (graph *Graph) Neighbors(node Node) []Node {
	neighbors := lo.Keys(graph.adjacency[node])
	slices.Sort(neighbors)
	return neighbors
}

func (graph *Graph) Degree(node Node) int {
	return len(graph.adjacency[node])
}

// Order returns the number of nodes
func (graph *Graph) Order() int {
	return len(graph.nodes)
}

// Size returns the number of edges
func (graph *Graph) Size() int {
	return len(graph.edges)
}

// NodeAttributes returns a copy of the node's attributes, nil if the node is absent
func (graph *Graph) NodeAttributes(node Node) Attributes {
	attributes, ok := graph.nodes[node]
	if !ok {
		return nil
	}
	return copyAttributes(attributes)
}

// EdgeAttributes returns a copy of the edge's attributes, nil if the edge is absent
func (graph *Graph) EdgeAttributes(u, v Node) Attributes {
	attributes, ok := graph.edges[NewEdge(u, v)]
	if !ok {
		return nil
	}
	return copyAttributes(attributes)
}

// Complement returns the graph over the same nodes whose edges are exactly the non-edges of graph.
// Attributes of nodes are kept, edge attributes are not.
func (graph *Graph) Complement() *Graph {
	complement := New()
	nodes := graph.Nodes()
	for _, node := range nodes {
		_ = complement.AddNode(node, graph.nodes[node])
	}
	for i := range len(nodes) {
		for j := i + 1; j < len(nodes); j++ {
			if !graph.HasEdge(nodes[i], nodes[j]) {
				_ = complement.AddEdge(nodes[i], nodes[j], nil)
			}
		}
	}
	return complement
}

// Validate checks the structural invariants of the graph
func (graph *Graph) Validate() error {
	if graph == nil || graph.nodes == nil {
		return errors.New("graph is not initialized")
	}
	for node := range graph.nodes {
		if node <= 0 {
			return errors.Wrapf(ErrInvalidNode, "node %d", node)
		}
	}
	for edge := range graph.edges {
		if edge.U == edge.V {
			return errors.Wrapf(ErrSelfLoop, "node %d", edge.U)
		}
		if !graph.HasNode(edge.U) || !graph.HasNode(edge.V) {
			return errors.Wrapf(ErrUnknownNode, "edge %v", edge)
		}
		if !graph.adjacency[edge.U][edge.V] || !graph.adjacency[edge.V][edge.U] {
			return errors.Errorf("adjacency is inconsistent with edge %v", edge)
		}
	}
	return nil
}

// String prints the graph compactly, isolated vertices last: (1,2),(2,3),(4)
func (graph *Graph) String() string {
	parts := lo.Map(graph.Edges(), func(edge Edge, _ int) string { return edge.String() })
	for _, node := range graph.Nodes() {
		if graph.Degree(node) == 0 {
			parts = append(parts, fmt.Sprintf("(%d)", node))
		}
	}
	return strings.Join(parts, ",")
}

func compareEdges(a, b Edge) int {
	if a.U != b.U {
		return cmp.Compare(a.U, b.U)
	}
	return cmp.Compare(a.V, b.V)
}

func copyAttributes(attributes Attributes) Attributes {
	result := make(Attributes, len(attributes))
	for key, value := range attributes {
		result[key] = value
	}
	return result
}
