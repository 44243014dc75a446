package domain

// Transition is the persisted edge from one node to the next.
// Option is nil for the unconditional "next" edge and set for a decision node's answer edge.
// A nil ToNodeID marks a branch terminus.
type Transition struct {
	FromNodeID int64  `json:"from_node_id"`
	Option     *int   `json:"option,omitempty"`
	ToNodeID   *int64 `json:"to_node_id"`
}

// IsConditional reports whether the transition belongs to a decision option.
func (t Transition) IsConditional() bool {
	return t.Option != nil
}

// Clone copies the pointer fields.
func (t Transition) Clone() Transition {
	out := Transition{FromNodeID: t.FromNodeID}
	if t.Option != nil {
		opt := *t.Option
		out.Option = &opt
	}
	if t.ToNodeID != nil {
		to := *t.ToNodeID
		out.ToNodeID = &to
	}
	return out
}
