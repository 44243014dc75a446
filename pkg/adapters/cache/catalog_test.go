package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/cache"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/memory"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FetchContent(ctx context.Context, ref domain.ContentRef) (domain.ContentSummary, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.ContentSummary), args.Error(1)
}

func (m *MockCatalog) SearchContent(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ContentSummary), args.Error(1)
}

var lesson = domain.ContentSummary{Ref: domain.LocalRef("a"), Title: "A", Language: "en", Kind: domain.ContentKindLearningObject}

func TestCachedCatalog_Contract(t *testing.T) {
	known := []domain.ContentSummary{
		lesson,
		{Ref: domain.LocalRef("q"), Title: "Q", Language: "en", Kind: domain.ContentKindMultipleChoice, Options: []string{"x", "y"}},
	}
	ports.RunContentCatalogContract(t, cache.NewCatalog(memory.NewCatalog(known...), time.Minute), known)
}

func TestCachedCatalog_FetchHitsOnce(t *testing.T) {
	ctx := context.Background()
	next := &MockCatalog{}
	next.On("FetchContent", mock.Anything, lesson.Ref).Return(lesson, nil).Once()
	missing := domain.LocalRef("gone")
	next.On("FetchContent", mock.Anything, missing).Return(domain.ContentSummary{}, domain.ErrContentNotFound).Once()

	c := cache.NewCatalog(next, time.Minute)
	for i := 0; i < 3; i++ {
		got, err := c.FetchContent(ctx, lesson.Ref)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Title)

		_, err = c.FetchContent(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrContentNotFound)
	}
	next.AssertExpectations(t)
}

func TestCachedCatalog_SearchWarmsCache(t *testing.T) {
	ctx := context.Background()
	next := &MockCatalog{}
	next.On("SearchContent", mock.Anything, domain.ContentFilter{Query: "a"}).Return([]domain.ContentSummary{lesson}, nil)

	c := cache.NewCatalog(next, time.Minute)
	_, err := c.SearchContent(ctx, domain.ContentFilter{Query: "a"})
	require.NoError(t, err)

	got, err := c.FetchContent(ctx, lesson.Ref)
	require.NoError(t, err)
	assert.Equal(t, lesson.Title, got.Title)
	next.AssertNotCalled(t, "FetchContent", mock.Anything, mock.Anything)

	c.Invalidate()
	next.On("FetchContent", mock.Anything, lesson.Ref).Return(lesson, nil).Once()
	_, err = c.FetchContent(ctx, lesson.Ref)
	require.NoError(t, err)
	next.AssertExpectations(t)
}
