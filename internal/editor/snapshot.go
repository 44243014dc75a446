package editor

import (
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// NodeView is a node as the UI renders it.
type NodeView struct {
	Key      domain.NodeKey     `json:"key"`
	Title    string             `json:"title"`
	Kind     domain.ContentKind `json:"kind"`
	Content  domain.ContentRef  `json:"content"`
	Draft    bool               `json:"draft"`
	Decision bool               `json:"decision"`
	Options  []string           `json:"options,omitempty"`
}

// BranchView is one sequence with its legality flags.
// Locked[p] is true when inserting or dropping at position p would land after a decision node.
type BranchView struct {
	Branch domain.BranchContext `json:"branch"`
	Nodes  []NodeView           `json:"nodes"`
	Locked []bool               `json:"locked"`
}

// Snapshot is a read model of the whole session.
type Snapshot struct {
	SessionID string              `json:"session_id"`
	PathID    *int64              `json:"path_id,omitempty"`
	Metadata  domain.PathMetadata `json:"metadata"`
	Phase     Phase               `json:"phase"`
	Selection *Selection          `json:"selection,omitempty"`
	Viewing   *domain.NodeKey     `json:"viewing,omitempty"`
	Branches  []BranchView        `json:"branches"`
	NextDraft int64               `json:"next_draft"`
	Notice    *Notice             `json:"notice,omitempty"`
	Closed    bool                `json:"closed"`
	Warnings  []string            `json:"warnings,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID: s.id,
		Metadata:  s.meta,
		Phase:     s.phase,
		NextDraft: s.nextDraft,
		Closed:    s.closed,
	}
	if s.pathID != nil {
		id := *s.pathID
		snap.PathID = &id
	}
	switch s.phase {
	case PhaseSelecting:
		sel := s.selection
		snap.Selection = &sel
	case PhaseViewingBranches:
		key := s.viewing
		snap.Viewing = &key
	}
	if n, ok := s.activeNotice(); ok {
		snap.Notice = &n
	}
	for _, w := range s.warnings {
		snap.Warnings = append(snap.Warnings, w.String())
	}

	for _, bc := range s.graph.Branches() {
		seq := s.graph.SequenceFor(bc)
		view := BranchView{
			Branch: bc,
			Nodes:  make([]NodeView, len(seq)),
			Locked: make([]bool, len(seq)+1),
		}
		for i, n := range seq {
			view.Nodes[i] = NodeView{
				Key:      n.Key(),
				Title:    n.Title(),
				Kind:     n.Kind(),
				Content:  n.ContentRef(),
				Draft:    domain.IsDraft(n),
				Decision: domain.IsDecision(n),
				Options:  n.Options(),
			}
		}
		for p := range view.Locked {
			view.Locked[p] = s.graph.IsLockedByDecision(bc, p)
		}
		snap.Branches = append(snap.Branches, view)
	}
	return snap
}
