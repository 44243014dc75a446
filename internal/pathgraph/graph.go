// Package pathgraph assembles the branch contexts of a learning path into one tree.
//
// A Graph maps every BranchContext to its ordered sequence. The root context always exists;
// every other context hangs off a decision node found in an ancestor sequence and is created
// when that node enters the graph and discarded, recursively, when it leaves.
package pathgraph

import (
	"fmt"
	"sort"

	"github.com/SELab-2/Dwengo-4-sub000/internal/ordering"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Graph is the in-memory structure of the path being edited.
// It is owned by a single editing session and is not safe for concurrent use.
type Graph struct {
	sequences map[domain.BranchContext]domain.Sequence
}

// New returns a graph with an empty root sequence.
func New() *Graph {
	return &Graph{
		sequences: map[domain.BranchContext]domain.Sequence{domain.Root: nil},
	}
}

// HasBranch reports whether bc is part of the tree.
func (g *Graph) HasBranch(bc domain.BranchContext) bool {
	_, ok := g.sequences[bc]
	return ok
}

// SequenceFor returns a copy of the sequence of bc; empty if the context holds no nodes yet.
func (g *Graph) SequenceFor(bc domain.BranchContext) domain.Sequence {
	return g.sequences[bc].Clone()
}

// SetSequenceFor replaces the sequence of an existing context.
func (g *Graph) SetSequenceFor(bc domain.BranchContext, seq domain.Sequence) error {
	if !g.HasBranch(bc) {
		return domain.Invariant("SetSequenceFor", domain.ErrUnknownBranch, "branch %s", bc)
	}
	if d := ordering.DecisionIndex(seq); d >= 0 && d != len(seq)-1 {
		return domain.Invariant("SetSequenceFor", domain.ErrDecisionNotLast, "branch %s", bc)
	}
	previous := g.sequences[bc]
	g.sequences[bc] = seq.Clone()
	for _, n := range seq {
		if domain.IsDecision(n) {
			g.addBranches(n)
		}
	}
	for _, n := range previous {
		if _, _, still := g.Locate(n.Key()); !still {
			g.DiscardSubtree(n.Key())
		}
	}
	return nil
}

// DecisionNodeIndexOf returns the index of the decision node ending bc, if any.
func (g *Graph) DecisionNodeIndexOf(bc domain.BranchContext) (int, bool) {
	d := ordering.DecisionIndex(g.sequences[bc])
	return d, d >= 0
}

// IsLockedByDecision reports whether position index of bc lies after a decision node.
// The UI uses it to disable insert and drop targets instead of failing silently.
func (g *Graph) IsLockedByDecision(bc domain.BranchContext, index int) bool {
	d, ok := g.DecisionNodeIndexOf(bc)
	return ok && d <= index && index != d
}

// Branches lists every context in a stable order: root first, then by parent key and option.
func (g *Graph) Branches() []domain.BranchContext {
	out := make([]domain.BranchContext, 0, len(g.sequences))
	for bc := range g.sequences {
		out = append(out, bc)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsRoot() != b.IsRoot() {
			return a.IsRoot()
		}
		if a.Parent.Kind != b.Parent.Kind {
			return a.Parent.Kind < b.Parent.Kind
		}
		if a.Parent.ID != b.Parent.ID {
			return a.Parent.ID < b.Parent.ID
		}
		return a.Option < b.Option
	})
	return out
}

// BranchesOf lists the option contexts of a decision node in option order.
func (g *Graph) BranchesOf(parent domain.NodeKey) []domain.BranchContext {
	var out []domain.BranchContext
	for bc := range g.sequences {
		if !bc.IsRoot() && bc.Parent == parent {
			out = append(out, bc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Option < out[j].Option })
	return out
}

// Len counts the nodes of all sequences.
func (g *Graph) Len() int {
	total := 0
	for _, seq := range g.sequences {
		total += len(seq)
	}
	return total
}

// Locate finds the context and index holding key.
func (g *Graph) Locate(key domain.NodeKey) (domain.BranchContext, int, bool) {
	for bc, seq := range g.sequences {
		if i := ordering.IndexOf(seq, key); i >= 0 {
			return bc, i, true
		}
	}
	return domain.BranchContext{}, -1, false
}

// Node returns the node with the given key.
func (g *Graph) Node(key domain.NodeKey) (domain.Node, bool) {
	bc, i, ok := g.Locate(key)
	if !ok {
		return nil, false
	}
	return g.sequences[bc][i], true
}

// CheckIdentities verifies that no key appears twice across the whole structure.
func (g *Graph) CheckIdentities() error {
	seen := make(map[domain.NodeKey]domain.BranchContext, g.Len())
	for bc, seq := range g.sequences {
		for _, n := range seq {
			k := n.Key()
			if k.IsZero() {
				return domain.Invariant("CheckIdentities", domain.ErrIdentityCollision, "zero key in %s", bc)
			}
			if other, dup := seen[k]; dup {
				return domain.Invariant("CheckIdentities", domain.ErrIdentityCollision, "%s in %s and %s", k, other, bc)
			}
			seen[k] = bc
		}
	}
	return nil
}

// Insert places node after index in bc. A decision node also gets one empty context per option.
func (g *Graph) Insert(bc domain.BranchContext, index int, node domain.Node) error {
	seq, ok := g.sequences[bc]
	if !ok {
		return domain.Invariant("Insert", domain.ErrUnknownBranch, "branch %s", bc)
	}
	if _, _, exists := g.Locate(node.Key()); exists {
		return domain.Invariant("Insert", domain.ErrIdentityCollision, "node %s already in graph", node.Key())
	}

	out, err := ordering.InsertAfter(seq, index, node)
	if err != nil {
		return domain.Reject("insert", bc, err)
	}
	g.sequences[bc] = out
	if domain.IsDecision(node) {
		g.addBranches(node)
	}
	return nil
}

// Move reorders within bc.
func (g *Graph) Move(bc domain.BranchContext, from, to int) error {
	seq, ok := g.sequences[bc]
	if !ok {
		return domain.Invariant("Move", domain.ErrUnknownBranch, "branch %s", bc)
	}
	out, err := ordering.MoveWithinSequence(seq, from, to)
	if err != nil {
		return domain.Reject("move", bc, err)
	}
	g.sequences[bc] = out
	return nil
}

// Delete removes the node at index of bc together with every branch context under it.
// It returns the removed node and the number of discarded contexts.
func (g *Graph) Delete(bc domain.BranchContext, index int) (domain.Node, int, error) {
	seq, ok := g.sequences[bc]
	if !ok {
		return nil, 0, domain.Invariant("Delete", domain.ErrUnknownBranch, "branch %s", bc)
	}
	out, removed, err := ordering.DeleteAt(seq, index)
	if err != nil {
		return nil, 0, domain.Reject("delete", bc, err)
	}
	g.sequences[bc] = out
	return removed, g.DiscardSubtree(removed.Key()), nil
}

// DiscardSubtree removes every branch context whose ancestry passes through parent,
// whatever the option. It returns how many contexts were removed.
func (g *Graph) DiscardSubtree(parent domain.NodeKey) int {
	removed := 0
	for _, bc := range g.BranchesOf(parent) {
		for _, n := range g.sequences[bc] {
			removed += g.DiscardSubtree(n.Key())
		}
		delete(g.sequences, bc)
		removed++
	}
	return removed
}

// Clone deep-copies the branch map. Nodes are shared; they are treated as immutable.
func (g *Graph) Clone() *Graph {
	out := &Graph{sequences: make(map[domain.BranchContext]domain.Sequence, len(g.sequences))}
	for bc, seq := range g.sequences {
		out.sequences[bc] = seq.Clone()
	}
	return out
}

// Equal reports whether both graphs hold the same contexts with the same node order.
func (g *Graph) Equal(other *Graph) bool {
	if len(g.sequences) != len(other.sequences) {
		return false
	}
	for bc, seq := range g.sequences {
		o, ok := other.sequences[bc]
		if !ok || len(o) != len(seq) {
			return false
		}
		for i := range seq {
			if seq[i] != o[i] {
				return false
			}
		}
	}
	return true
}

func (g *Graph) addBranches(decision domain.Node) {
	for i := range decision.Options() {
		bc := domain.Branch(decision.Key(), i)
		if _, ok := g.sequences[bc]; !ok {
			g.sequences[bc] = nil
		}
	}
}

// Walk visits every context depth-first from the root: a sequence is visited before the
// branches of its decision node, and those in option order.
func (g *Graph) Walk(fn func(bc domain.BranchContext, seq domain.Sequence) error) error {
	return g.walk(domain.Root, fn, 0)
}

func (g *Graph) walk(bc domain.BranchContext, fn func(domain.BranchContext, domain.Sequence) error, depth int) error {
	if depth > len(g.sequences) {
		return domain.Invariant("Walk", domain.ErrCorruptPath, "branch nesting deeper than the number of contexts")
	}
	seq, ok := g.sequences[bc]
	if !ok {
		return domain.Invariant("Walk", domain.ErrUnknownBranch, "branch %s", bc)
	}
	if err := fn(bc, seq); err != nil {
		return err
	}
	if d := ordering.DecisionIndex(seq); d >= 0 {
		for _, child := range g.BranchesOf(seq[d].Key()) {
			if err := g.walk(child, fn, depth+1); err != nil {
				return fmt.Errorf("%s: %w", child, err)
			}
		}
	}
	return nil
}
