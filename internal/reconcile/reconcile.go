// Package reconcile turns an edited path graph into the single payload the persistence
// collaborator applies atomically, and back into persisted transitions once ids are known.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Validate performs the local checks that must pass before anything is sent.
func Validate(g *pathgraph.Graph) error {
	if len(g.SequenceFor(domain.Root)) == 0 {
		return domain.ErrEmptyPath
	}
	return g.Walk(func(bc domain.BranchContext, seq domain.Sequence) error {
		for i, n := range seq {
			// A title that was set must still say something once trimmed.
			if n.Title() != "" && strings.TrimSpace(n.Title()) == "" {
				return fmt.Errorf("node %d of %s: %w", i, bc, domain.ErrBlankTitle)
			}
		}
		return nil
	})
}

// Flatten walks the graph depth-first from the root and emits one entry per node.
func Flatten(g *pathgraph.Graph) (domain.SavePayload, error) {
	if err := Validate(g); err != nil {
		return domain.SavePayload{}, err
	}
	if err := g.CheckIdentities(); err != nil {
		return domain.SavePayload{}, err
	}

	payload := domain.SavePayload{
		Nodes: make([]domain.PayloadNode, 0, g.Len()),
	}
	err := g.Walk(func(bc domain.BranchContext, seq domain.Sequence) error {
		for i, n := range seq {
			entry := domain.PayloadNode{
				Ref:      n.Key().String(),
				Data:     dataOf(n),
				Position: i,
			}
			switch v := n.(type) {
			case *domain.PersistedNode:
				id := v.ID
				entry.ID = &id
			case *domain.DraftNode:
				entry.Draft = true
			}
			if !bc.IsRoot() {
				entry.Branch = &domain.BranchLink{ParentRef: bc.Parent.String(), Option: bc.Option}
			}
			if i+1 < len(seq) {
				entry.Next = seq[i+1].Key().String()
			}
			if domain.IsDecision(n) {
				entry.Options = optionLinks(g, n)
			}
			payload.Nodes = append(payload.Nodes, entry)
		}
		return nil
	})
	if err != nil {
		return domain.SavePayload{}, err
	}

	payload.Start = payload.Nodes[0].Ref
	return payload, nil
}

func dataOf(n domain.Node) domain.NodeData {
	return domain.NodeData{
		Content:      n.ContentRef(),
		DisplayTitle: strings.TrimSpace(n.Title()),
		ContentKind:  n.Kind(),
		AnswerLabels: append([]string(nil), n.Options()...),
	}
}

func optionLinks(g *pathgraph.Graph, decision domain.Node) []domain.OptionLink {
	labels := decision.Options()
	links := make([]domain.OptionLink, len(labels))
	for i, label := range labels {
		links[i] = domain.OptionLink{Option: i, Label: label}
		if seq := g.SequenceFor(domain.Branch(decision.Key(), i)); len(seq) > 0 {
			links[i].First = seq[0].Key().String()
		}
	}
	return links
}
