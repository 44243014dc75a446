package reconcile

import (
	"fmt"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// IDAllocator hands out server ids for draft nodes.
type IDAllocator func() (int64, error)

// Materialize assigns ids to the payload's drafts and rebuilds persisted nodes with
// their transitions. Decision nodes get one transition per option; other nodes get one
// unconditional transition, to the next node or to the terminus. It returns the nodes in
// payload order and the id of the start node.
//
// Every store adapter applies a save through Materialize so they agree on the mapping.
func Materialize(payload domain.SavePayload, alloc IDAllocator) ([]*domain.PersistedNode, *int64, error) {
	ids := make(map[string]int64, len(payload.Nodes))
	for _, entry := range payload.Nodes {
		if _, dup := ids[entry.Ref]; dup {
			return nil, nil, fmt.Errorf("payload ref %q appears twice", entry.Ref)
		}
		if entry.Draft || entry.ID == nil {
			id, err := alloc()
			if err != nil {
				return nil, nil, fmt.Errorf("allocating id for %s: %w", entry.Ref, err)
			}
			ids[entry.Ref] = id
			continue
		}
		ids[entry.Ref] = *entry.ID
	}

	resolve := func(ref string) (*int64, error) {
		if ref == "" {
			return nil, nil
		}
		id, ok := ids[ref]
		if !ok {
			return nil, fmt.Errorf("payload references unknown node %q", ref)
		}
		return &id, nil
	}

	nodes := make([]*domain.PersistedNode, 0, len(payload.Nodes))
	for _, entry := range payload.Nodes {
		if err := entry.Data.Content.Validate(); err != nil {
			return nil, nil, fmt.Errorf("node %s: %w", entry.Ref, err)
		}
		if entry.Branch != nil {
			if _, ok := ids[entry.Branch.ParentRef]; !ok {
				return nil, nil, fmt.Errorf("node %s: unknown branch parent %q", entry.Ref, entry.Branch.ParentRef)
			}
		}

		n := &domain.PersistedNode{ID: ids[entry.Ref], NodeData: entry.Data}
		if entry.Data.ContentKind == domain.ContentKindMultipleChoice {
			for _, link := range entry.Options {
				to, err := resolve(link.First)
				if err != nil {
					return nil, nil, err
				}
				opt := link.Option
				n.Transitions = append(n.Transitions, domain.Transition{FromNodeID: n.ID, Option: &opt, ToNodeID: to})
			}
		} else {
			to, err := resolve(entry.Next)
			if err != nil {
				return nil, nil, err
			}
			n.Transitions = []domain.Transition{{FromNodeID: n.ID, ToNodeID: to}}
		}
		nodes = append(nodes, n)
	}

	start, err := resolve(payload.Start)
	if err != nil {
		return nil, nil, err
	}
	return nodes, start, nil
}
