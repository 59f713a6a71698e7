package notice

import (
	"context"
	"time"

	"noticeadmin/internal/pkg/response"
)

type Service interface {
	Search(ctx context.Context, cond SearchCondition, page PageRequest) (response.Page[Notice], error)
	FindByID(ctx context.Context, id int64) (*Notice, error)
	Create(ctx context.Context, n *Notice) (*Notice, error)
	Update(ctx context.Context, n *Notice) (*Notice, error)
	DeleteByID(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Search(ctx context.Context, cond SearchCondition, page PageRequest) (response.Page[Notice], error) {
	return s.repo.Search(ctx, cond, page)
}

func (s *service) FindByID(ctx context.Context, id int64) (*Notice, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

// Create stamps CreatedAt and UpdatedAt with the same instant and
// persists the notice. The assigned id is set on the returned record.
func (s *service) Create(ctx context.Context, n *Notice) (*Notice, error) {
	now := s.now()
	n.CreatedAt = now
	n.UpdatedAt = now

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Update loads the existing record, overwrites every mutable field from
// the incoming value and re-stamps UpdatedAt. CreatedAt is never touched.
func (s *service) Update(ctx context.Context, n *Notice) (*Notice, error) {
	if n.ID == 0 {
		return nil, ErrIDRequired
	}

	existing, err := s.repo.GetByID(ctx, n.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = n.Title
	existing.CategoryCode = n.CategoryCode
	existing.PostDate = n.PostDate
	existing.StartDate = n.StartDate
	existing.EndDate = n.EndDate
	existing.Content = n.Content
	existing.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteByID is a no-op for a zero id and idempotent otherwise.
func (s *service) DeleteByID(ctx context.Context, id int64) error {
	if id == 0 {
		return nil
	}
	return s.repo.Delete(ctx, id)
}
