package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/redis"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := setup(t)
	ports.RunPathStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, store := setup(t, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	b := dsl.New(domain.PathMetadata{Title: "T", Description: "D", Language: "en"})
	b.Add(3).Lesson("a", "A")
	require.NoError(t, store.Seed(ctx, b.MustBuild(7)))

	assert.True(t, mr.Exists("custom:app:path:7"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:paths"), "Expected index with custom prefix to exist")

	list, err := store.ListPaths(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)
	assert.Equal(t, 1, list[0].Nodes)
}

func TestRedisStore_SeedAdvancesCounters(t *testing.T) {
	_, store := setup(t)
	ctx := context.Background()

	b := dsl.New(domain.PathMetadata{Title: "T", Description: "D", Language: "en"})
	b.Add(20).Lesson("a", "A")
	require.NoError(t, store.Seed(ctx, b.MustBuild(4)))

	id, err := store.SaveOrCreatePath(ctx, domain.SaveRequest{
		Metadata: domain.PathMetadata{Title: "New", Description: "D", Language: "en"},
		Payload: domain.SavePayload{Start: "d:0", Nodes: []domain.PayloadNode{{
			Ref: "d:0", Draft: true,
			Data: domain.NodeData{Content: domain.LocalRef("b"), DisplayTitle: "B", ContentKind: domain.ContentKindLearningObject},
		}}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	p, err := store.LoadPath(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.Nodes, 1)
	assert.Equal(t, int64(21), p.Nodes[0].ID)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestRedisStore_LoadCorruptDocument(t *testing.T) {
	mr, store := setup(t)
	require.NoError(t, mr.Set("dwengo:path:1", "{not json"))

	_, err := store.LoadPath(context.Background(), 1)
	assert.ErrorContains(t, err, "failed to unmarshal path 1")
}
