package domain

import "fmt"

// BranchContext addresses one ordered sequence in the branching tree.
// The zero value is the root sequence.
type BranchContext struct {
	Parent NodeKey `json:"parent"`
	Option int     `json:"option"`
}

// Root is the path's top-level sequence.
var Root = BranchContext{}

// Branch addresses the sequence hanging off a decision node's answer option.
func Branch(parent NodeKey, option int) BranchContext {
	return BranchContext{Parent: parent, Option: option}
}

// IsRoot reports whether the context is the root sequence.
func (b BranchContext) IsRoot() bool { return b.Parent.IsZero() }

func (b BranchContext) String() string {
	if b.IsRoot() {
		return "root"
	}
	return fmt.Sprintf("%s#%d", b.Parent, b.Option)
}

// Sequence is the ordered list of nodes of one branch context.
type Sequence []Node

// Clone returns a shallow copy so callers can build a new sequence value.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Keys lists the identities in order.
func (s Sequence) Keys() []NodeKey {
	keys := make([]NodeKey, len(s))
	for i, n := range s {
		keys[i] = n.Key()
	}
	return keys
}
