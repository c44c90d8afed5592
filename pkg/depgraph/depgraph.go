package depgraph

import (
	"container/heap"
	"fmt"
	"strings"
)

// Node represents a node in a Graph with
// 0 to many edges. Each edge points at a node
// which has to come before this one.
type Node struct {
	Name  string
	Edges []*Node
}

// Graph is a collection of nodes, kept in the
// order they were added
type Graph struct {
	nodes []*Node
}

func NewDepgraph() *Graph {
	return &Graph{
		nodes: []*Node{},
	}
}

// Nodes returns the nodes within the graph
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Contains returns true if the target Node is found
// in its list
func (g *Graph) Contains(target *Node) bool {
	for _, n := range g.nodes {
		if n == target {
			return true
		}
	}

	return false
}

// Add places a Node into the current Graph
func (g *Graph) Add(target *Node) {
	g.nodes = append(g.nodes, target)
}

// CycleError is returned when the graph can not be ordered.
// Cycle holds one cycle, each node depending on the next and
// the last depending on the first.
type CycleError struct {
	Cycle []*Node
}

func (e *CycleError) Error() string {
	names := make([]string, 0, len(e.Cycle)+1)
	for _, n := range e.Cycle {
		names = append(names, n.Name)
	}
	if len(e.Cycle) > 0 {
		names = append(names, e.Cycle[0].Name)
	}
	return fmt.Sprintf("circular dependency: %s", strings.Join(names, " -> "))
}

// UnknownNodeError is returned when an edge points at a node
// that was never added to the graph
type UnknownNodeError struct {
	From *Node
	To   *Node
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node %s has an edge to %s which is not in the graph", e.From.Name, e.To.Name)
}

// Resolve returns the nodes in order of their dependencies.
// A use case may be for determining the correct order to install
// software packages, or to start services.
//
// When more than one node is free to go next, the one added first
// wins, so the output keeps the insertion order wherever the edges
// allow it.
func (g *Graph) Resolve() ([]*Node, error) {
	s, err := g.newSorter()
	if err != nil {
		return nil, err
	}

	ready := &indexHeap{}
	for i, d := range s.inDegree {
		if d == 0 {
			*ready = append(*ready, i)
		}
	}
	heap.Init(ready)

	order := make([]*Node, 0, len(g.nodes))
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		order = append(order, g.nodes[i])

		for _, dependent := range s.dependents[i] {
			s.inDegree[dependent]--
			if s.inDegree[dependent] == 0 {
				heap.Push(ready, dependent)
			}
		}
	}

	if len(order) < len(g.nodes) {
		return nil, s.findCycle()
	}

	return order, nil
}

// Layers splits the graph into batches. Every node in a batch only
// depends on nodes in earlier batches, so a batch may be started
// in parallel once the previous one is up. Nodes within a batch
// keep their insertion order.
func (g *Graph) Layers() ([][]*Node, error) {
	s, err := g.newSorter()
	if err != nil {
		return nil, err
	}

	current := []int{}
	for i, d := range s.inDegree {
		if d == 0 {
			current = append(current, i)
		}
	}

	layers := [][]*Node{}
	seen := 0
	for len(current) > 0 {
		layer := make([]*Node, 0, len(current))
		next := &indexHeap{}

		for _, i := range current {
			layer = append(layer, g.nodes[i])

			for _, dependent := range s.dependents[i] {
				s.inDegree[dependent]--
				if s.inDegree[dependent] == 0 {
					heap.Push(next, dependent)
				}
			}
		}

		layers = append(layers, layer)
		seen += len(layer)

		current = make([]int, 0, next.Len())
		for next.Len() > 0 {
			current = append(current, heap.Pop(next).(int))
		}
	}

	if seen < len(g.nodes) {
		return nil, s.findCycle()
	}

	return layers, nil
}

// sorter holds the working state of one sort, indexed by the
// position of each node in the graph
type sorter struct {
	nodes      []*Node
	position   map[*Node]int
	inDegree   []int
	dependents [][]int
}

func (g *Graph) newSorter() (*sorter, error) {
	s := &sorter{
		nodes:      g.nodes,
		position:   make(map[*Node]int, len(g.nodes)),
		inDegree:   make([]int, len(g.nodes)),
		dependents: make([][]int, len(g.nodes)),
	}

	for i, n := range g.nodes {
		if _, ok := s.position[n]; !ok {
			s.position[n] = i
		}
	}

	for i, n := range g.nodes {
		for _, edge := range n.Edges {
			j, ok := s.position[edge]
			if !ok {
				return nil, &UnknownNodeError{From: n, To: edge}
			}

			s.dependents[j] = append(s.dependents[j], i)
			s.inDegree[i]++
		}
	}

	return s, nil
}

// findCycle walks the nodes left over once sorting stalls. Each of
// them still waits on at least one other left over node, so following
// the first such edge from the earliest node must revisit a node.
func (s *sorter) findCycle() error {
	start := -1
	for i, d := range s.inDegree {
		if d > 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return &CycleError{}
	}

	onPath := map[int]int{}
	path := []int{}

	current := start
	for {
		if at, ok := onPath[current]; ok {
			cycle := make([]*Node, 0, len(path)-at)
			for _, i := range path[at:] {
				cycle = append(cycle, s.nodes[i])
			}
			return &CycleError{Cycle: cycle}
		}

		onPath[current] = len(path)
		path = append(path, current)

		next := -1
		for _, edge := range s.nodes[current].Edges {
			j := s.position[edge]
			if s.inDegree[j] > 0 {
				next = j
				break
			}
		}

		if next < 0 {
			return &CycleError{Cycle: []*Node{s.nodes[start]}}
		}
		current = next
	}
}

// indexHeap is a min-heap of node positions
type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *indexHeap) Push(x interface{}) {
	*h = append(*h, x.(int))
}

func (h *indexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
