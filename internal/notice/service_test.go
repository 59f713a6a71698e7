package notice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noticeadmin/internal/pkg/response"
)

// memoryRepository is a map-backed Repository for service tests.
type memoryRepository struct {
	records map[int64]Notice
	nextID  int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: map[int64]Notice{}, nextID: 1}
}

func (r *memoryRepository) Search(_ context.Context, _ SearchCondition, page PageRequest) (response.Page[Notice], error) {
	items := make([]Notice, 0, len(r.records))
	for _, n := range r.records {
		items = append(items, n)
	}
	return response.NewPage(items, page.Number, page.Size, len(items)), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Notice, error) {
	n, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (r *memoryRepository) Create(_ context.Context, n *Notice) error {
	n.ID = r.nextID
	r.nextID++
	r.records[n.ID] = *n
	return nil
}

func (r *memoryRepository) Update(_ context.Context, n *Notice) error {
	if _, ok := r.records[n.ID]; !ok {
		return ErrNotFound
	}
	r.records[n.ID] = *n
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	delete(r.records, id)
	return nil
}

// newTestService returns a service whose clock advances one second per
// call, so consecutive stamps are distinguishable.
func newTestService(repo Repository) Service {
	tick := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo).(*service)
	svc.now = func() time.Time {
		now := tick
		tick = tick.Add(time.Second)
		return now
	}
	return svc
}

func sampleNotice(t *testing.T) *Notice {
	t.Helper()
	return &Notice{
		Title:        "システムメンテナンスのお知らせ",
		CategoryCode: "1",
		PostDate:     datePtr(t, "2024-06-01"),
		StartDate:    datePtr(t, "2024-06-10"),
		EndDate:      datePtr(t, "2024-06-20"),
		Content:      "深夜にメンテナンスを実施します。",
	}
}

func TestServiceCreate(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleNotice(t))
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt, "create stamps both timestamps with the same instant")
}

func TestServiceUpdate(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleNotice(t))
	require.NoError(t, err)

	t.Run("missing id is rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, &Notice{Title: "no id"})
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.Update(ctx, &Notice{ID: 9999, Title: "gone"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("overwrites mutable fields and re-stamps UpdatedAt only", func(t *testing.T) {
		incoming := sampleNotice(t)
		incoming.ID = created.ID
		incoming.Title = "掲載期間変更のお知らせ"
		incoming.CategoryCode = "0"
		incoming.EndDate = nil

		updated, err := svc.Update(ctx, incoming)
		require.NoError(t, err)

		assert.Equal(t, "掲載期間変更のお知らせ", updated.Title)
		assert.Equal(t, "0", updated.CategoryCode)
		assert.Nil(t, updated.EndDate)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt, "CreatedAt is never modified")
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "UpdatedAt advances")
	})
}

func TestServiceFindByID(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleNotice(t))
	require.NoError(t, err)

	t.Run("returns the stored record", func(t *testing.T) {
		found, err := svc.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Title, found.Title)
	})

	t.Run("zero id is rejected", func(t *testing.T) {
		_, err := svc.FindByID(ctx, 0)
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceDeleteByID(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleNotice(t))
	require.NoError(t, err)

	t.Run("zero id is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.DeleteByID(ctx, 0))
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, svc.DeleteByID(ctx, created.ID))
		_, err := svc.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleting an already deleted id is not an error", func(t *testing.T) {
		assert.NoError(t, svc.DeleteByID(ctx, created.ID))
	})
}
