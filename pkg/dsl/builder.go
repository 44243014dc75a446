package dsl

import (
	"fmt"
	"sort"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Builder manages the path construction.
type Builder struct {
	meta  domain.PathMetadata
	start *int64
	nodes map[int64]*NodeBuilder
	order []int64
}

// New creates a new path builder.
func New(meta domain.PathMetadata) *Builder {
	return &Builder{
		meta:  meta,
		nodes: make(map[int64]*NodeBuilder),
	}
}

// Add creates a new node in the path. The first node added is the start node.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id int64) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.PersistedNode{ID: id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	if b.start == nil {
		start := id
		b.start = &start
	}
	return nb
}

// Start overrides the start node.
func (b *Builder) Start(id int64) *Builder {
	b.start = &id
	return b
}

// Build returns the path with the given id. Every transition target must be a node of the path.
func (b *Builder) Build(pathID int64) (*domain.Path, error) {
	path := &domain.Path{
		ID:       pathID,
		Metadata: b.meta,
		Nodes:    make([]*domain.PersistedNode, 0, len(b.nodes)),
	}
	if b.start != nil {
		if _, ok := b.nodes[*b.start]; !ok {
			return nil, fmt.Errorf("start node %d not defined", *b.start)
		}
		start := *b.start
		path.StartNodeID = &start
	}

	ids := append([]int64(nil), b.order...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		n := b.nodes[id].node
		for _, t := range n.Transitions {
			if t.ToNodeID == nil {
				continue
			}
			if _, ok := b.nodes[*t.ToNodeID]; !ok {
				return nil, fmt.Errorf("node %d: transition to undefined node %d", id, *t.ToNodeID)
			}
		}
		n.Transitions = append([]domain.Transition(nil), n.Transitions...)
		path.Nodes = append(path.Nodes, &n)
	}
	return path, nil
}

// MustBuild is Build for fixtures; it panics on error.
func (b *Builder) MustBuild(pathID int64) *domain.Path {
	p, err := b.Build(pathID)
	if err != nil {
		panic(err)
	}
	return p
}
