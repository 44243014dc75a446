package domain

import "time"

// PathMetadata is the path's own descriptive data. It is validated before any save.
type PathMetadata struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"notblank"`
	Language    string `json:"language" validate:"required,bcp47_language_tag"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
}

// Path is a learning path as stored by the persistence collaborator.
// StartNodeID is nil for a path without nodes.
type Path struct {
	ID          int64            `json:"id"`
	Metadata    PathMetadata     `json:"metadata"`
	StartNodeID *int64           `json:"start_node_id,omitempty"`
	Nodes       []*PersistedNode `json:"nodes"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NodeByID indexes the path's nodes.
func (p *Path) NodeByID() map[int64]*PersistedNode {
	idx := make(map[int64]*PersistedNode, len(p.Nodes))
	for _, n := range p.Nodes {
		idx[n.ID] = n
	}
	return idx
}

// BranchLink places a payload node under a decision node's option.
type BranchLink struct {
	ParentRef string `json:"parent_ref"`
	Option    int    `json:"option"`
}

// OptionLink is one answer edge of a decision node. An empty First marks a terminus.
type OptionLink struct {
	Option int    `json:"option"`
	Label  string `json:"label"`
	First  string `json:"first,omitempty"`
}

// PayloadNode is one entry of the flattened save payload.
// Ref is the node key string and is only meaningful inside the payload.
type PayloadNode struct {
	Ref      string       `json:"ref"`
	ID       *int64       `json:"id,omitempty"`
	Draft    bool         `json:"draft,omitempty"`
	Data     NodeData     `json:"data"`
	Branch   *BranchLink  `json:"branch,omitempty"`
	Position int          `json:"position"`
	Next     string       `json:"next,omitempty"`
	Options  []OptionLink `json:"options,omitempty"`
}

// SavePayload is the whole edited structure, depth-first from the root.
type SavePayload struct {
	Start string        `json:"start"`
	Nodes []PayloadNode `json:"nodes"`
}

// SaveRequest is what the editor submits to the persistence collaborator.
// PathID is nil when creating a new path.
type SaveRequest struct {
	PathID   *int64       `json:"path_id,omitempty"`
	Metadata PathMetadata `json:"metadata"`
	Payload  SavePayload  `json:"payload"`
}

// PathSummary is a listing entry of the path store.
type PathSummary struct {
	ID        int64        `json:"id"`
	Metadata  PathMetadata `json:"metadata"`
	Nodes     int          `json:"nodes"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Summary condenses the path for listings.
func (p *Path) Summary() PathSummary {
	return PathSummary{ID: p.ID, Metadata: p.Metadata, Nodes: len(p.Nodes), UpdatedAt: p.UpdatedAt}
}

// Clone deep-copies the path so stores never share nodes with callers.
func (p *Path) Clone() *Path {
	out := *p
	if p.StartNodeID != nil {
		start := *p.StartNodeID
		out.StartNodeID = &start
	}
	out.Nodes = make([]*PersistedNode, len(p.Nodes))
	for i, n := range p.Nodes {
		cp := *n
		cp.AnswerLabels = append([]string(nil), n.AnswerLabels...)
		cp.Transitions = make([]Transition, len(n.Transitions))
		for j, t := range n.Transitions {
			cp.Transitions[j] = t.Clone()
		}
		out.Nodes[i] = &cp
	}
	return &out
}
