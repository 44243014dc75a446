package ordering_test

import (
	"math/rand"
	"testing"

	"github.com/SELab-2/Dwengo-4-sub000/internal/ordering"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lesson(id int64) domain.Node {
	return &domain.PersistedNode{ID: id, NodeData: domain.NodeData{
		Content:      domain.LocalRef("lo"),
		DisplayTitle: "lesson",
		ContentKind:  domain.ContentKindLearningObject,
	}}
}

func question(id int64, options ...string) domain.Node {
	return &domain.PersistedNode{ID: id, NodeData: domain.NodeData{
		Content:      domain.LocalRef("mc"),
		DisplayTitle: "question",
		ContentKind:  domain.ContentKindMultipleChoice,
		AnswerLabels: options,
	}}
}

func draft(seq int64) domain.Node {
	return &domain.DraftNode{Seq: seq, NodeData: domain.NodeData{ContentKind: domain.ContentKindLearningObject}}
}

func keys(seq domain.Sequence) []string {
	out := make([]string, len(seq))
	for i, k := range seq.Keys() {
		out[i] = k.String()
	}
	return out
}

func TestInsertAfter(t *testing.T) {
	a, b, q := lesson(1), lesson(2), question(3, "x", "y")

	tests := []struct {
		name    string
		seq     domain.Sequence
		index   int
		node    domain.Node
		want    []string
		wantErr error
	}{
		{name: "empty sequence at head", seq: nil, index: -1, node: a, want: []string{"p:1"}},
		{name: "append", seq: domain.Sequence{a}, index: 0, node: b, want: []string{"p:1", "p:2"}},
		{name: "head", seq: domain.Sequence{a}, index: -1, node: b, want: []string{"p:2", "p:1"}},
		{name: "before decision", seq: domain.Sequence{a, q}, index: 0, node: b, want: []string{"p:1", "p:2", "p:3"}},
		{name: "after decision", seq: domain.Sequence{a, q}, index: 1, node: b, wantErr: domain.ErrPastDecision},
		{name: "decision appended", seq: domain.Sequence{a}, index: 0, node: q, want: []string{"p:1", "p:3"}},
		{name: "decision in the middle", seq: domain.Sequence{a, b}, index: -1, node: q, wantErr: domain.ErrDecisionNotLast},
		{name: "second decision", seq: domain.Sequence{a, q}, index: 0, node: question(4), wantErr: domain.ErrDecisionNotLast},
		{name: "out of range", seq: domain.Sequence{a}, index: 3, node: b, wantErr: domain.ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := keys(tt.seq)
			got, err := ordering.InsertAfter(tt.seq, tt.index, tt.node)
			assert.Equal(t, before, keys(tt.seq), "input must not be mutated")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, keys(got))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestMoveWithinSequence(t *testing.T) {
	a, b, c, q := lesson(1), lesson(2), lesson(3), question(4, "x")

	tests := []struct {
		name     string
		seq      domain.Sequence
		from, to int
		want     []string
		wantErr  error
	}{
		{name: "down", seq: domain.Sequence{a, b, c}, from: 0, to: 2, want: []string{"p:2", "p:3", "p:1"}},
		{name: "up", seq: domain.Sequence{a, b, c}, from: 2, to: 0, want: []string{"p:3", "p:1", "p:2"}},
		{name: "noop", seq: domain.Sequence{a, b}, from: 1, to: 1, want: []string{"p:1", "p:2"}},
		{name: "reorder before decision", seq: domain.Sequence{a, b, q}, from: 1, to: 0, want: []string{"p:2", "p:1", "p:4"}},
		{name: "onto decision slot", seq: domain.Sequence{a, q}, from: 0, to: 1, wantErr: domain.ErrPastDecision},
		{name: "past decision", seq: domain.Sequence{a, q}, from: 0, to: 2, wantErr: domain.ErrPastDecision},
		{name: "decision earlier", seq: domain.Sequence{a, q}, from: 1, to: 0, wantErr: domain.ErrDecisionNotLast},
		{name: "out of range", seq: domain.Sequence{a, b}, from: 0, to: 5, wantErr: domain.ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := keys(tt.seq)
			got, err := ordering.MoveWithinSequence(tt.seq, tt.from, tt.to)
			assert.Equal(t, before, keys(tt.seq), "input must not be mutated")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, keys(got))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestDeleteAt(t *testing.T) {
	a, q := lesson(1), question(2, "x")
	seq := domain.Sequence{a, q}

	got, removed, err := ordering.DeleteAt(seq, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p:1"}, keys(got))
	assert.Equal(t, domain.PersistedKey(2), removed.Key())
	assert.Len(t, seq, 2)

	_, _, err = ordering.DeleteAt(seq, 2)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

// TestDecisionStaysLast applies random edits and checks that no node ever follows a decision node.
func TestDecisionStaysLast(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var seq domain.Sequence
	next := int64(0)

	for step := 0; step < 2000; step++ {
		var err error
		switch rng.Intn(3) {
		case 0:
			var n domain.Node = draft(next)
			if rng.Intn(5) == 0 {
				n = question(1000+next, "a", "b")
			}
			next++
			var out domain.Sequence
			out, err = ordering.InsertAfter(seq, rng.Intn(len(seq)+1)-1, n)
			if err == nil {
				seq = out
			}
		case 1:
			if len(seq) == 0 {
				continue
			}
			var out domain.Sequence
			out, err = ordering.MoveWithinSequence(seq, rng.Intn(len(seq)), rng.Intn(len(seq)+1))
			if err == nil {
				seq = out
			}
		case 2:
			if len(seq) == 0 {
				continue
			}
			seq, _, err = ordering.DeleteAt(seq, rng.Intn(len(seq)))
			require.NoError(t, err)
		}

		if d := ordering.DecisionIndex(seq); d >= 0 {
			require.Equal(t, len(seq)-1, d, "decision node must be last at step %d: %v", step, keys(seq))
		}
	}
}

func TestShouldCommitHover(t *testing.T) {
	// hovered item spans [100, 140], midpoint 120
	assert.False(t, ordering.ShouldCommitHover(0, 1, 110, 100, 140), "moving down before midpoint")
	assert.True(t, ordering.ShouldCommitHover(0, 1, 130, 100, 140), "moving down past midpoint")
	assert.False(t, ordering.ShouldCommitHover(2, 1, 130, 100, 140), "moving up below midpoint")
	assert.True(t, ordering.ShouldCommitHover(2, 1, 110, 100, 140), "moving up past midpoint")
	assert.False(t, ordering.ShouldCommitHover(1, 1, 0, 100, 140), "hovering itself")
}
