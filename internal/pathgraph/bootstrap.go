package pathgraph

import (
	"fmt"
	"sort"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Warning reports a part of a persisted path that could not be placed in the tree.
type Warning struct {
	Node    domain.NodeKey
	Option  *int
	Message string
}

func (w Warning) String() string {
	if w.Option != nil {
		return fmt.Sprintf("%s option %d: %s", w.Node, *w.Option, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Node, w.Message)
}

// FromPath rebuilds the ordered sequences of a stored path from its transitions.
//
// Transitions pointing at an option the decision node no longer offers are orphaned:
// their subtree is left out of the graph and reported as a Warning, so the next save
// drops it. A node reached twice, or a transition to a missing node, means the stored
// path is not a tree and aborts with domain.ErrCorruptPath.
func FromPath(p *domain.Path) (*Graph, []Warning, error) {
	g := New()
	if p == nil {
		return g, nil, nil
	}

	b := &bootstrapper{
		graph:   g,
		nodes:   p.NodeByID(),
		visited: make(map[int64]bool, len(p.Nodes)),
	}
	if p.StartNodeID != nil {
		if err := b.build(domain.Root, p.StartNodeID); err != nil {
			return nil, nil, err
		}
	}

	unreachable := make([]int64, 0)
	for id := range b.nodes {
		if !b.visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	sort.Slice(unreachable, func(i, j int) bool { return unreachable[i] < unreachable[j] })
	for _, id := range unreachable {
		b.warn(domain.PersistedKey(id), nil, "not reachable from the start node")
	}
	return g, b.warnings, nil
}

type bootstrapper struct {
	graph    *Graph
	nodes    map[int64]*domain.PersistedNode
	visited  map[int64]bool
	warnings []Warning
}

func (b *bootstrapper) warn(key domain.NodeKey, option *int, msg string) {
	b.warnings = append(b.warnings, Warning{Node: key, Option: option, Message: msg})
}

func (b *bootstrapper) build(bc domain.BranchContext, start *int64) error {
	for cur := start; cur != nil; {
		n, ok := b.nodes[*cur]
		if !ok {
			return domain.Invariant("FromPath", domain.ErrCorruptPath, "transition to missing node %d", *cur)
		}
		if b.visited[n.ID] {
			return domain.Invariant("FromPath", domain.ErrCorruptPath, "node %d reached twice", n.ID)
		}
		b.visited[n.ID] = true
		b.graph.sequences[bc] = append(b.graph.sequences[bc], n)

		if domain.IsDecision(n) {
			return b.buildBranches(n)
		}

		var next *int64
		for _, t := range n.Transitions {
			if t.IsConditional() {
				b.warn(n.Key(), t.Option, "conditional transition on a node that is not a decision node")
				continue
			}
			if next == nil {
				next = t.ToNodeID
			}
		}
		cur = next
	}
	return nil
}

func (b *bootstrapper) buildBranches(n *domain.PersistedNode) error {
	b.graph.addBranches(n)

	seen := make(map[int]bool)
	for _, t := range n.Transitions {
		if !t.IsConditional() {
			if t.ToNodeID != nil {
				b.warn(n.Key(), nil, "unconditional transition after a decision node ignored")
			}
			continue
		}
		opt := *t.Option
		switch {
		case opt < 0 || opt >= len(n.Options()):
			b.warn(n.Key(), t.Option, "option no longer offered by the question; branch orphaned")
			continue
		case seen[opt]:
			b.warn(n.Key(), t.Option, "duplicate transition for option ignored")
			continue
		}
		seen[opt] = true
		if err := b.build(domain.Branch(n.Key(), opt), t.ToNodeID); err != nil {
			return err
		}
	}
	return nil
}
