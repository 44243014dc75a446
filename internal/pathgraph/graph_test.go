package pathgraph_test

import (
	"testing"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lesson(id int64, title string) domain.Node {
	return &domain.PersistedNode{ID: id, NodeData: domain.NodeData{
		Content:      domain.LocalRef(title),
		DisplayTitle: title,
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

func titles(seq domain.Sequence) []string {
	out := make([]string, len(seq))
	for i, n := range seq {
		out[i] = n.Title()
	}
	return out
}

func TestGraph_InsertIntoBranchInsteadOfAfterDecision(t *testing.T) {
	g := pathgraph.New()
	a, b := lesson(1, "A"), question(2, "x", "y")
	require.NoError(t, g.Insert(domain.Root, -1, a))
	require.NoError(t, g.Insert(domain.Root, 0, b))

	c := lesson(3, "C")
	err := g.Insert(domain.Root, 1, c)
	require.Error(t, err)
	assert.True(t, domain.IsRejection(err))
	assert.ErrorIs(t, err, domain.ErrPastDecision)

	branchX := domain.Branch(b.Key(), 0)
	require.True(t, g.HasBranch(branchX))
	require.NoError(t, g.Insert(branchX, -1, c))

	assert.Equal(t, []string{"A", "question"}, titles(g.SequenceFor(domain.Root)))
	assert.Equal(t, []string{"C"}, titles(g.SequenceFor(branchX)))
	assert.Empty(t, g.SequenceFor(domain.Branch(b.Key(), 1)))
	assert.Equal(t, 3, g.Len())
}

func TestGraph_MovePastDecisionLeavesSequence(t *testing.T) {
	g := pathgraph.New()
	require.NoError(t, g.Insert(domain.Root, -1, lesson(1, "A")))
	require.NoError(t, g.Insert(domain.Root, 0, question(2, "x")))
	before := g.Clone()

	err := g.Move(domain.Root, 0, 2)
	assert.ErrorIs(t, err, domain.ErrPastDecision)
	assert.True(t, g.Equal(before))
	assert.Equal(t, []string{"A", "question"}, titles(g.SequenceFor(domain.Root)))
}

func TestGraph_DeleteDecisionDiscardsSubtree(t *testing.T) {
	g := pathgraph.New()
	b := question(2, "x", "y")
	nested := question(4, "p", "q")
	require.NoError(t, g.Insert(domain.Root, -1, lesson(1, "A")))
	require.NoError(t, g.Insert(domain.Root, 0, b))
	require.NoError(t, g.Insert(domain.Branch(b.Key(), 0), -1, lesson(3, "C")))
	require.NoError(t, g.Insert(domain.Branch(b.Key(), 0), 0, nested))
	require.NoError(t, g.Insert(domain.Branch(nested.Key(), 1), -1, lesson(5, "E")))
	require.Len(t, g.Branches(), 5)

	removed, discarded, err := g.Delete(domain.Root, 1)
	require.NoError(t, err)
	assert.Equal(t, b.Key(), removed.Key())
	assert.Equal(t, 4, discarded)

	assert.Equal(t, []domain.BranchContext{domain.Root}, g.Branches())
	assert.Equal(t, []string{"A"}, titles(g.SequenceFor(domain.Root)))
	assert.False(t, g.HasBranch(domain.Branch(b.Key(), 0)))
	assert.False(t, g.HasBranch(domain.Branch(b.Key(), 1)))
	assert.False(t, g.HasBranch(domain.Branch(nested.Key(), 1)))
	assert.Equal(t, 1, g.Len())
}

func TestGraph_IsLockedByDecision(t *testing.T) {
	g := pathgraph.New()
	require.NoError(t, g.Insert(domain.Root, -1, lesson(1, "A")))
	assert.False(t, g.IsLockedByDecision(domain.Root, 1))

	require.NoError(t, g.Insert(domain.Root, 0, question(2, "x")))
	idx, ok := g.DecisionNodeIndexOf(domain.Root)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	assert.False(t, g.IsLockedByDecision(domain.Root, 0))
	assert.False(t, g.IsLockedByDecision(domain.Root, 1), "the decision's own slot is not locked")
	assert.True(t, g.IsLockedByDecision(domain.Root, 2))
}

func TestGraph_InsertDuplicateIdentityIsFatal(t *testing.T) {
	g := pathgraph.New()
	require.NoError(t, g.Insert(domain.Root, -1, lesson(1, "A")))

	err := g.Insert(domain.Root, 0, lesson(1, "A again"))
	assert.True(t, domain.IsFatal(err))
	assert.ErrorIs(t, err, domain.ErrIdentityCollision)
	assert.Equal(t, 1, g.Len())
}

func TestGraph_UnknownBranchIsFatal(t *testing.T) {
	g := pathgraph.New()
	err := g.Insert(domain.Branch(domain.PersistedKey(99), 0), -1, lesson(1, "A"))
	assert.True(t, domain.IsFatal(err))
	assert.ErrorIs(t, err, domain.ErrUnknownBranch)
}

func TestGraph_CheckIdentitiesAcrossDraftAndPersisted(t *testing.T) {
	g := pathgraph.New()
	require.NoError(t, g.Insert(domain.Root, -1, lesson(0, "persisted zero")))
	require.NoError(t, g.Insert(domain.Root, 0, &domain.DraftNode{Seq: 0}))
	assert.NoError(t, g.CheckIdentities())
}

func TestFromPath(t *testing.T) {
	b := dsl.New(domain.PathMetadata{Title: "T", Description: "D", Language: "en"})
	b.Add(1).Lesson("a", "A").Go(2)
	b.Add(2).Question("q", "Q", "x", "y").Branch(0, 3).BranchEnd(1)
	b.Add(3).Lesson("c", "C").Go(4)
	b.Add(4).Lesson("d", "D")

	g, warnings, err := pathgraph.FromPath(b.MustBuild(1))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"A", "Q"}, titles(g.SequenceFor(domain.Root)))
	assert.Equal(t, []string{"C", "D"}, titles(g.SequenceFor(domain.Branch(domain.PersistedKey(2), 0))))
	assert.True(t, g.HasBranch(domain.Branch(domain.PersistedKey(2), 1)))
	assert.Empty(t, g.SequenceFor(domain.Branch(domain.PersistedKey(2), 1)))
}

func TestFromPath_OrphansRemovedOption(t *testing.T) {
	b := dsl.New(domain.PathMetadata{})
	// the question now only offers one option, but option 1 still has a branch
	b.Add(1).Question("q", "Q", "x").Branch(0, 2).Branch(1, 3)
	b.Add(2).Lesson("b", "B")
	b.Add(3).Lesson("c", "C")

	g, warnings, err := pathgraph.FromPath(b.MustBuild(1))
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, domain.PersistedKey(1), warnings[0].Node)
	assert.Equal(t, 1, *warnings[0].Option)
	assert.Equal(t, domain.PersistedKey(3), warnings[1].Node)

	assert.Equal(t, 2, g.Len())
	assert.False(t, g.HasBranch(domain.Branch(domain.PersistedKey(1), 1)))
}

func TestFromPath_CycleIsCorrupt(t *testing.T) {
	b := dsl.New(domain.PathMetadata{})
	b.Add(1).Lesson("a", "A").Go(2)
	b.Add(2).Lesson("b", "B").Go(1)

	_, _, err := pathgraph.FromPath(b.MustBuild(1))
	assert.ErrorIs(t, err, domain.ErrCorruptPath)
	assert.True(t, domain.IsFatal(err))
}
