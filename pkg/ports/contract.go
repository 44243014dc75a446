package ports

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/reconcile"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

func contractMeta(title string) domain.PathMetadata {
	return domain.PathMetadata{Title: title, Description: "contract", Language: "en"}
}

func contractDraft(seq int64, title string, options ...string) domain.Node {
	kind := domain.ContentKindLearningObject
	if len(options) > 0 {
		kind = domain.ContentKindMultipleChoice
	}
	return &domain.DraftNode{Seq: seq, NodeData: domain.NodeData{
		Content:      domain.LocalRef(strings.ToLower(title)),
		DisplayTitle: title,
		ContentKind:  kind,
		AnswerLabels: options,
	}}
}

// RunPathStoreContract runs a suite of tests to verify that a PathStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunPathStoreContract(t *testing.T, store PathStore) {
	ctx := context.Background()

	// root: A, Q(yes|no); Q#0: B
	g := pathgraph.New()
	q := contractDraft(1, "Q", "yes", "no")
	require.NoError(t, g.Insert(domain.Root, -1, contractDraft(0, "A")))
	require.NoError(t, g.Insert(domain.Root, 0, q))
	require.NoError(t, g.Insert(domain.Branch(q.Key(), 0), -1, contractDraft(2, "B")))
	payload, err := reconcile.Flatten(g)
	require.NoError(t, err)

	var created int64

	t.Run("Create and Load", func(t *testing.T) {
		id, err := store.SaveOrCreatePath(ctx, domain.SaveRequest{Metadata: contractMeta("first"), Payload: payload})
		require.NoError(t, err, "SaveOrCreatePath should not return error")
		created = id

		loaded, err := store.LoadPath(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, loaded.ID)
		assert.Equal(t, "first", loaded.Metadata.Title)
		require.Len(t, loaded.Nodes, 3)
		require.NotNil(t, loaded.StartNodeID)

		rebuilt, warnings, err := pathgraph.FromPath(loaded)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		root := rebuilt.SequenceFor(domain.Root)
		require.Len(t, root, 2)
		assert.Equal(t, "A", root[0].Title())
		assert.True(t, domain.IsDecision(root[1]))
		yes := rebuilt.SequenceFor(domain.Branch(root[1].Key(), 0))
		require.Len(t, yes, 1)
		assert.Equal(t, "B", yes[0].Title())
		assert.Empty(t, rebuilt.SequenceFor(domain.Branch(root[1].Key(), 1)))
	})

	t.Run("Update keeps persisted ids", func(t *testing.T) {
		require.NotZero(t, created)
		loaded, err := store.LoadPath(ctx, created)
		require.NoError(t, err)
		rebuilt, _, err := pathgraph.FromPath(loaded)
		require.NoError(t, err)
		before := rebuilt.SequenceFor(domain.Root)

		require.NoError(t, rebuilt.Insert(domain.Root, -1, contractDraft(0, "Intro")))
		next, err := reconcile.Flatten(rebuilt)
		require.NoError(t, err)

		id, err := store.SaveOrCreatePath(ctx, domain.SaveRequest{PathID: &created, Metadata: contractMeta("renamed"), Payload: next})
		require.NoError(t, err)
		assert.Equal(t, created, id)

		after, err := store.LoadPath(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "renamed", after.Metadata.Title)
		require.Len(t, after.Nodes, 4)
		idx := after.NodeByID()
		for _, n := range before {
			assert.Contains(t, idx, n.(*domain.PersistedNode).ID, "persisted node keeps its id")
		}
		require.NotNil(t, after.StartNodeID)
		assert.Equal(t, "Intro", idx[*after.StartNodeID].Title())
	})

	t.Run("Failed save leaves path unchanged", func(t *testing.T) {
		require.NotZero(t, created)
		before, err := store.LoadPath(ctx, created)
		require.NoError(t, err)

		foreign := int64(987654)
		bad := domain.SavePayload{
			Start: "p:987654",
			Nodes: []domain.PayloadNode{{
				Ref:  "p:987654",
				ID:   &foreign,
				Data: domain.NodeData{Content: domain.LocalRef("x"), DisplayTitle: "X", ContentKind: domain.ContentKindLearningObject},
			}},
		}
		_, err = store.SaveOrCreatePath(ctx, domain.SaveRequest{PathID: &created, Metadata: contractMeta("broken"), Payload: bad})
		require.Error(t, err)

		after, err := store.LoadPath(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, before.Metadata, after.Metadata)
		assert.Len(t, after.Nodes, len(before.Nodes))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadPath(ctx, created+1000)
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
	})

	t.Run("Update Non-Existent", func(t *testing.T) {
		missing := created + 1000
		_, err := store.SaveOrCreatePath(ctx, domain.SaveRequest{PathID: &missing, Metadata: contractMeta("x"), Payload: payload})
		assert.ErrorIs(t, err, domain.ErrPathNotFound)
	})

	t.Run("List", func(t *testing.T) {
		second, err := store.SaveOrCreatePath(ctx, domain.SaveRequest{Metadata: contractMeta("second"), Payload: payload})
		require.NoError(t, err)
		assert.NotEqual(t, created, second)

		paths, err := store.ListPaths(ctx)
		require.NoError(t, err)
		ids := make([]int64, 0, len(paths))
		for _, p := range paths {
			ids = append(ids, p.ID)
		}
		assert.Contains(t, ids, created)
		assert.Contains(t, ids, second)
		assert.IsNonDecreasing(t, ids)
	})
}

// RunContentCatalogContract verifies a ContentCatalog against the summaries it was seeded with.
// known must hold at least one learning object and one multiple-choice question.
func RunContentCatalogContract(t *testing.T, catalog ContentCatalog, known []domain.ContentSummary) {
	ctx := context.Background()
	require.NotEmpty(t, known)

	t.Run("Fetch", func(t *testing.T) {
		for _, want := range known {
			got, err := catalog.FetchContent(ctx, want.Ref)
			require.NoError(t, err, "fetching %s", want.Ref)
			assert.Equal(t, want.Title, got.Title)
			assert.Equal(t, want.Kind, got.Kind)
			assert.Equal(t, want.Options, got.Options)
		}
	})

	t.Run("Fetch Non-Existent", func(t *testing.T) {
		_, err := catalog.FetchContent(ctx, domain.LocalRef("does-not-exist"))
		assert.ErrorIs(t, err, domain.ErrContentNotFound)
	})

	t.Run("Search All", func(t *testing.T) {
		all, err := catalog.SearchContent(ctx, domain.ContentFilter{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), len(known))
	})

	t.Run("Search By Kind", func(t *testing.T) {
		questions, err := catalog.SearchContent(ctx, domain.ContentFilter{Kind: domain.ContentKindMultipleChoice})
		require.NoError(t, err)
		require.NotEmpty(t, questions)
		for _, c := range questions {
			assert.True(t, c.IsDecision())
		}
	})

	t.Run("Search By Title", func(t *testing.T) {
		want := known[0]
		found, err := catalog.SearchContent(ctx, domain.ContentFilter{Query: strings.ToUpper(want.Title)})
		require.NoError(t, err)
		titles := make([]string, 0, len(found))
		for _, c := range found {
			titles = append(titles, c.Title)
		}
		assert.Contains(t, titles, want.Title)
	})
}
