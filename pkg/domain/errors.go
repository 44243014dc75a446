package domain

import (
	"errors"
	"fmt"
)

// Structural rejections. They never mutate the structure.
var (
	// ErrPastDecision is returned when an edit would place a node after a decision node.
	ErrPastDecision = errors.New("nodes cannot follow a decision node; add them to one of its branches instead")
	// ErrDecisionNotLast is returned when a decision node would not end its sequence.
	ErrDecisionNotLast = errors.New("a decision node must be the last node of its sequence")
	// ErrIndexOutOfRange is returned for positions outside the sequence.
	ErrIndexOutOfRange = errors.New("position out of range")
	// ErrNotDecision is returned when branches are requested for a non-decision node.
	ErrNotDecision = errors.New("node is not a decision node")
)

// Validation failures, detected before any network call.
var (
	ErrEmptyPath  = errors.New("path has no nodes")
	ErrBlankTitle = errors.New("node title cannot be blank")
)

// Session state errors.
var (
	ErrInvalidTransition = errors.New("action not allowed in the current editor state")
	ErrSaveInProgress    = errors.New("a save is already in progress")
	ErrSessionClosed     = errors.New("editing session has ended")
	ErrSessionNotFound   = errors.New("session not found")
	ErrPathLocked        = errors.New("path is being edited in another session")
)

// Collaborator lookups.
var (
	ErrPathNotFound    = errors.New("path not found")
	ErrContentNotFound = errors.New("content not found")
	ErrNodeNotFound    = errors.New("node does not belong to the path")
)

// Fatal conditions. Reaching one of these means an invariant was broken.
var (
	ErrUnknownBranch     = errors.New("unknown branch context")
	ErrIdentityCollision = errors.New("node identity collision")
	ErrCorruptPath       = errors.New("persisted path is not a tree")
)

// RejectionError reports a structural edit that was refused.
type RejectionError struct {
	Op     string
	Branch BranchContext
	Reason error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s rejected in %s: %v", e.Op, e.Branch, e.Reason)
}

func (e *RejectionError) Unwrap() error { return e.Reason }

// Reject wraps a structural reason.
func Reject(op string, bc BranchContext, reason error) error {
	return &RejectionError{Op: op, Branch: bc, Reason: reason}
}

// IsRejection reports whether err is a structural rejection.
func IsRejection(err error) bool {
	var re *RejectionError
	return errors.As(err, &re)
}

// InvariantError reports a broken invariant. Operations abort instead of corrupting state.
type InvariantError struct {
	Op     string
	Detail string
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %v (%s)", e.Op, e.Err, e.Detail)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// Invariant builds an InvariantError.
func Invariant(op string, err error, format string, args ...any) error {
	return &InvariantError{Op: op, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether err signals a broken invariant.
func IsFatal(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
