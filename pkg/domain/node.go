package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyKind namespaces node identities so persisted ids and draft sequences never collide.
type KeyKind uint8

const (
	KeyNone KeyKind = iota
	KeyPersisted
	KeyDraft
)

// NodeKey is the uniform identity of a node within one editing session.
// It is comparable and safe to use as a map key.
type NodeKey struct {
	Kind KeyKind `json:"kind"`
	ID   int64   `json:"id"`
}

// PersistedKey returns the key of a node stored under the given server id.
func PersistedKey(id int64) NodeKey { return NodeKey{Kind: KeyPersisted, ID: id} }

// DraftKey returns the key of a draft node with the given session sequence.
func DraftKey(seq int64) NodeKey { return NodeKey{Kind: KeyDraft, ID: seq} }

// IsZero reports whether the key refers to no node.
func (k NodeKey) IsZero() bool { return k.Kind == KeyNone }

// String renders the key as "p:<id>" or "d:<seq>".
func (k NodeKey) String() string {
	switch k.Kind {
	case KeyPersisted:
		return "p:" + strconv.FormatInt(k.ID, 10)
	case KeyDraft:
		return "d:" + strconv.FormatInt(k.ID, 10)
	}
	return ""
}

// ParseNodeKey is the inverse of NodeKey.String.
func ParseNodeKey(s string) (NodeKey, error) {
	prefix, num, ok := strings.Cut(s, ":")
	if !ok {
		return NodeKey{}, fmt.Errorf("invalid node key %q", s)
	}
	id, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return NodeKey{}, fmt.Errorf("invalid node key %q: %w", s, err)
	}
	switch prefix {
	case "p":
		return PersistedKey(id), nil
	case "d":
		return DraftKey(id), nil
	}
	return NodeKey{}, fmt.Errorf("invalid node key %q: unknown kind %q", s, prefix)
}

// MarshalText lets NodeKey be used as a JSON object key.
func (k NodeKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKey) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = NodeKey{}
		return nil
	}
	parsed, err := ParseNodeKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Node is a position in the path graph. It is implemented only by *PersistedNode and *DraftNode.
type Node interface {
	Key() NodeKey
	ContentRef() ContentRef
	Title() string
	Kind() ContentKind
	// Options returns the answer labels of a decision node, nil otherwise.
	Options() []string
	sealed()
}

// NodeData holds the attributes shared by persisted and draft nodes.
// Title, Kind and Options are denormalized from the content catalog.
type NodeData struct {
	Content      ContentRef  `json:"content"`
	DisplayTitle string      `json:"title"`
	ContentKind  ContentKind `json:"kind"`
	AnswerLabels []string    `json:"options,omitempty"`
}

// NodeDataFrom copies the catalog summary into node attributes.
func NodeDataFrom(s ContentSummary) NodeData {
	return NodeData{
		Content:      s.Ref,
		DisplayTitle: s.Title,
		ContentKind:  s.Kind,
		AnswerLabels: append([]string(nil), s.Options...),
	}
}

func (d *NodeData) ContentRef() ContentRef { return d.Content }
func (d *NodeData) Title() string          { return d.DisplayTitle }
func (d *NodeData) Kind() ContentKind      { return d.ContentKind }
func (d *NodeData) Options() []string      { return d.AnswerLabels }

// PersistedNode exists in the backing store and may own outgoing transitions.
type PersistedNode struct {
	NodeData
	ID          int64        `json:"id"`
	Transitions []Transition `json:"transitions,omitempty"`
}

func (n *PersistedNode) Key() NodeKey { return PersistedKey(n.ID) }
func (n *PersistedNode) sealed()      {}

// DraftNode was added during this editing session and is not stored yet.
// Its position is implied by the in-memory ordering only.
type DraftNode struct {
	NodeData
	Seq int64 `json:"seq"`
}

func (n *DraftNode) Key() NodeKey { return DraftKey(n.Seq) }
func (n *DraftNode) sealed()      {}

// IdentityOf returns the session-unique key of a node.
func IdentityOf(n Node) NodeKey { return n.Key() }

// IsDraft reports whether the node has not been persisted yet.
func IsDraft(n Node) bool {
	_, ok := n.(*DraftNode)
	return ok
}

// IsDecision reports whether the node branches on its content's answer options.
func IsDecision(n Node) bool {
	return n != nil && n.Kind() == ContentKindMultipleChoice
}
