// Package ordering maintains the ordered sequence of one branch context.
//
// Every function is pure: it returns a new sequence and leaves its input untouched,
// so callers can batch edits and publish them at once. A decision node always ends
// its sequence; edits that would put a node after it are rejected.
package ordering

import (
	"fmt"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// DecisionIndex returns the index of the decision node in seq, or -1.
func DecisionIndex(seq domain.Sequence) int {
	for i, n := range seq {
		if domain.IsDecision(n) {
			return i
		}
	}
	return -1
}

// InsertAfter inserts node at index+1. An index of -1 inserts at the head.
func InsertAfter(seq domain.Sequence, index int, node domain.Node) (domain.Sequence, error) {
	if index < -1 || index >= len(seq) {
		return seq, fmt.Errorf("insert after %d in sequence of %d: %w", index, len(seq), domain.ErrIndexOutOfRange)
	}

	pos := index + 1
	if d := DecisionIndex(seq); d >= 0 {
		// Only positions up to and including d keep the decision node last.
		if pos > d {
			return seq, domain.ErrPastDecision
		}
		if domain.IsDecision(node) {
			return seq, domain.ErrDecisionNotLast
		}
	} else if domain.IsDecision(node) && pos != len(seq) {
		return seq, domain.ErrDecisionNotLast
	}

	out := make(domain.Sequence, 0, len(seq)+1)
	out = append(out, seq[:pos]...)
	out = append(out, node)
	out = append(out, seq[pos:]...)
	return out, nil
}

// MoveWithinSequence relocates the node at from so that it ends up at to.
func MoveWithinSequence(seq domain.Sequence, from, to int) (domain.Sequence, error) {
	if d := DecisionIndex(seq); d >= 0 {
		if from == d && to != d {
			return seq, domain.ErrDecisionNotLast
		}
		if from != d && to >= d {
			return seq, domain.ErrPastDecision
		}
	}
	if from < 0 || from >= len(seq) || to < 0 || to >= len(seq) {
		return seq, fmt.Errorf("move %d -> %d in sequence of %d: %w", from, to, len(seq), domain.ErrIndexOutOfRange)
	}
	if from == to {
		return seq.Clone(), nil
	}

	out := seq.Clone()
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// DeleteAt removes the node at index and returns it so the caller can discard its branches.
func DeleteAt(seq domain.Sequence, index int) (domain.Sequence, domain.Node, error) {
	if index < 0 || index >= len(seq) {
		return seq, nil, fmt.Errorf("delete %d in sequence of %d: %w", index, len(seq), domain.ErrIndexOutOfRange)
	}
	removed := seq[index]
	out := make(domain.Sequence, 0, len(seq)-1)
	out = append(out, seq[:index]...)
	out = append(out, seq[index+1:]...)
	return out, removed, nil
}

// IndexOf returns the position of key in seq, or -1.
func IndexOf(seq domain.Sequence, key domain.NodeKey) int {
	for i, n := range seq {
		if n.Key() == key {
			return i
		}
	}
	return -1
}
