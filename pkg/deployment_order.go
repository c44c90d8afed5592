package pkg

import (
	"github.com/openfaas/startorder/pkg/depgraph"
	"github.com/openfaas/startorder/pkg/image"
)

// Resolvable is anything that can be placed in a start order: it has a
// name, an optional alias and a list of identifiers it has to wait for.
// *image.Descriptor is the main implementation.
type Resolvable interface {
	Identity() image.Identity
	DependencyIdentifiers() []string
}

// ResolveStartOrder returns items ordered so that every item comes after
// the items it depends on. Where the dependencies leave a choice the
// input order is kept. No partial order is returned on error.
func ResolveStartOrder[T Resolvable](items []T) ([]T, error) {
	graph, owners, err := buildDependencyGraph(items)
	if err != nil {
		return nil, err
	}

	nodes, err := graph.Resolve()
	if err != nil {
		return nil, convertGraphError(err, items, owners)
	}

	order := make([]T, 0, len(nodes))
	for _, n := range nodes {
		order = append(order, items[owners[n]])
	}

	return order, nil
}

// ResolveStartBatches groups items into batches which can be started one
// after the other, the members of a batch in parallel.
func ResolveStartBatches[T Resolvable](items []T) ([][]T, error) {
	graph, owners, err := buildDependencyGraph(items)
	if err != nil {
		return nil, err
	}

	layers, err := graph.Layers()
	if err != nil {
		return nil, convertGraphError(err, items, owners)
	}

	batches := make([][]T, 0, len(layers))
	for _, layer := range layers {
		batch := make([]T, 0, len(layer))
		for _, n := range layer {
			batch = append(batch, items[owners[n]])
		}
		batches = append(batches, batch)
	}

	return batches, nil
}

// ResolveStopOrder is the start order reversed, for shutting down
func ResolveStopOrder[T Resolvable](items []T) ([]T, error) {
	order, err := ResolveStartOrder(items)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}

// buildDependencyGraph indexes every name and alias, resolves each
// dependency identifier and adds one node per item in input order.
// owners maps a node back to the position of its item.
func buildDependencyGraph[T Resolvable](items []T) (*depgraph.Graph, map[*depgraph.Node]int, error) {
	index := map[string]int{}

	register := func(identifier string, owner int) error {
		if other, ok := index[identifier]; ok && other != owner {
			return &DuplicateIdentifierError{
				Identifier: identifier,
				First:      items[other].Identity(),
				Second:     items[owner].Identity(),
			}
		}
		index[identifier] = owner
		return nil
	}

	for i, item := range items {
		id := item.Identity()
		if len(id.Name) == 0 {
			return nil, nil, &InvalidDescriptorError{Index: i, Reason: "name is required"}
		}

		if err := register(id.Name, i); err != nil {
			return nil, nil, err
		}
		if len(id.Alias) > 0 {
			if err := register(id.Alias, i); err != nil {
				return nil, nil, err
			}
		}
	}

	graph := depgraph.NewDepgraph()
	nodes := make([]*depgraph.Node, len(items))
	owners := make(map[*depgraph.Node]int, len(items))

	for i, item := range items {
		n := &depgraph.Node{Name: item.Identity().Name}
		nodes[i] = n
		owners[n] = i
		graph.Add(n)
	}

	for i, item := range items {
		for _, identifier := range item.DependencyIdentifiers() {
			dep, ok := index[identifier]
			if !ok {
				return nil, nil, &UnresolvedReferenceError{
					Descriptor: item.Identity(),
					Identifier: identifier,
				}
			}
			nodes[i].Edges = append(nodes[i].Edges, nodes[dep])
		}
	}

	return graph, owners, nil
}

func convertGraphError[T Resolvable](err error, items []T, owners map[*depgraph.Node]int) error {
	cycleErr, ok := err.(*depgraph.CycleError)
	if !ok {
		return err
	}

	cycle := make([]image.Identity, 0, len(cycleErr.Cycle))
	for _, n := range cycleErr.Cycle {
		cycle = append(cycle, items[owners[n]].Identity())
	}

	return &CyclicDependencyError{Cycle: cycle}
}
