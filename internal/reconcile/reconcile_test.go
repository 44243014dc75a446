package reconcile_test

import (
	"testing"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/reconcile"
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

func draftLesson(seq int64, title string) domain.Node {
	return &domain.DraftNode{Seq: seq, NodeData: domain.NodeData{
		Content:      domain.ExternalRef(title, "en", 1),
		DisplayTitle: title,
		ContentKind:  domain.ContentKindLearningObject,
	}}
}

func draftQuestion(seq int64, options ...string) domain.Node {
	return &domain.DraftNode{Seq: seq, NodeData: domain.NodeData{
		Content:      domain.LocalRef("mc"),
		DisplayTitle: "Q",
		ContentKind:  domain.ContentKindMultipleChoice,
		AnswerLabels: options,
	}}
}

func TestFlatten_EmptyPathRejectedLocally(t *testing.T) {
	_, err := reconcile.Flatten(pathgraph.New())
	assert.ErrorIs(t, err, domain.ErrEmptyPath)
	assert.EqualError(t, err, "path has no nodes")
}

func TestFlatten_PersistedThenDraft(t *testing.T) {
	g := pathgraph.New()
	require.NoError(t, g.Insert(domain.Root, -1, lesson(7, "A")))
	require.NoError(t, g.Insert(domain.Root, 0, draftLesson(0, "B")))

	payload, err := reconcile.Flatten(g)
	require.NoError(t, err)
	require.Len(t, payload.Nodes, 2)

	assert.Equal(t, "p:7", payload.Start)
	first, second := payload.Nodes[0], payload.Nodes[1]
	require.NotNil(t, first.ID)
	assert.Equal(t, int64(7), *first.ID)
	assert.False(t, first.Draft)
	assert.Equal(t, "d:0", first.Next)

	assert.Nil(t, second.ID)
	assert.True(t, second.Draft)
	assert.Equal(t, 1, second.Position)
	assert.Empty(t, second.Next)
}

func TestFlatten_CompletenessAndLinkage(t *testing.T) {
	g := pathgraph.New()
	q := draftQuestion(1, "x", "y", "z")
	require.NoError(t, g.Insert(domain.Root, -1, lesson(1, "A")))
	require.NoError(t, g.Insert(domain.Root, 0, q))
	require.NoError(t, g.Insert(domain.Branch(q.Key(), 0), -1, draftLesson(2, "C")))
	require.NoError(t, g.Insert(domain.Branch(q.Key(), 0), 0, lesson(2, "D")))
	require.NoError(t, g.Insert(domain.Branch(q.Key(), 2), -1, draftLesson(3, "E")))

	payload, err := reconcile.Flatten(g)
	require.NoError(t, err)
	assert.Len(t, payload.Nodes, g.Len())

	refs := make(map[string]domain.PayloadNode)
	for _, entry := range payload.Nodes {
		refs[entry.Ref] = entry
	}
	// depth-first: root sequence, then branches in option order
	var order []string
	for _, entry := range payload.Nodes {
		order = append(order, entry.Ref)
	}
	assert.Equal(t, []string{"p:1", "d:1", "d:2", "p:2", "d:3"}, order)

	decision := refs["d:1"]
	require.Len(t, decision.Options, 3)
	assert.Equal(t, "d:2", decision.Options[0].First)
	assert.Empty(t, decision.Options[1].First, "empty branch is a terminus")
	assert.Equal(t, "d:3", decision.Options[2].First)
	assert.Equal(t, "y", decision.Options[1].Label)

	for _, entry := range payload.Nodes {
		if entry.Branch == nil {
			continue
		}
		parent, ok := refs[entry.Branch.ParentRef]
		require.True(t, ok, "parent of %s must be in the payload", entry.Ref)
		assert.Equal(t, domain.ContentKindMultipleChoice, parent.Data.ContentKind)
	}
	assert.Equal(t, &domain.BranchLink{ParentRef: "d:1", Option: 0}, refs["p:2"].Branch)
}

func TestFlatten_BlankTitle(t *testing.T) {
	g := pathgraph.New()
	require.NoError(t, g.Insert(domain.Root, -1, lesson(1, "   ")))

	_, err := reconcile.Flatten(g)
	assert.ErrorIs(t, err, domain.ErrBlankTitle)
}

func TestMaterialize_RoundTripsThroughBootstrap(t *testing.T) {
	b := dsl.New(domain.PathMetadata{})
	b.Add(10).Lesson("a", "A").Go(11)
	b.Add(11).Question("q", "Q", "x", "y").Branch(0, 12).BranchEnd(1)
	b.Add(12).Lesson("c", "C")

	g, _, err := pathgraph.FromPath(b.MustBuild(1))
	require.NoError(t, err)
	require.NoError(t, g.Insert(domain.Branch(domain.PersistedKey(11), 1), -1, draftLesson(0, "New")))

	payload, err := reconcile.Flatten(g)
	require.NoError(t, err)

	next := int64(100)
	nodes, start, err := reconcile.Materialize(payload, func() (int64, error) {
		next++
		return next, nil
	})
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, int64(10), *start)
	require.Len(t, nodes, 4)

	stored := &domain.Path{ID: 1, StartNodeID: start, Nodes: nodes}
	again, warnings, err := pathgraph.FromPath(stored)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 4, again.Len())

	branch := again.SequenceFor(domain.Branch(domain.PersistedKey(11), 1))
	require.Len(t, branch, 1)
	assert.Equal(t, domain.PersistedKey(101), branch[0].Key())
	assert.Equal(t, "New", branch[0].Title())
}

func TestMaterialize_UnknownReference(t *testing.T) {
	payload := domain.SavePayload{
		Start: "d:0",
		Nodes: []domain.PayloadNode{{
			Ref:   "d:0",
			Draft: true,
			Data:  domain.NodeData{Content: domain.LocalRef("a"), ContentKind: domain.ContentKindLearningObject},
			Next:  "d:9",
		}},
	}
	_, _, err := reconcile.Materialize(payload, func() (int64, error) { return 1, nil })
	assert.Error(t, err)
}
