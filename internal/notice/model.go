package notice

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("notice not found")
	ErrIDRequired   = errors.New("notice id is required")
	ErrTitleTooLong = errors.New("notice title exceeds 100 characters")
)

// Notice is a time-bounded announcement shown to end users while the
// effective window [StartDate, EndDate] is open. EndDate may be nil
// (open-ended). CreatedAt/UpdatedAt are stamped by the service only.
type Notice struct {
	ID           int64
	Title        string
	CategoryCode string
	PostDate     *time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category is one entry of the fixed notice category enumeration.
type Category struct {
	Code  string
	Label string
}

// Categories lists every category in display order.
var Categories = []Category{
	{Code: "0", Label: "情報"},
	{Code: "1", Label: "重要"},
}

// CategoryLabels maps category codes to their display labels.
func CategoryLabels() map[string]string {
	labels := make(map[string]string, len(Categories))
	for _, c := range Categories {
		labels[c.Code] = c.Label
	}
	return labels
}

// SearchCondition defines the optional filters of a notice search.
// A zero field means the corresponding clause is not applied; all
// present clauses are combined with AND.
type SearchCondition struct {
	Title         string     // case-insensitive substring match
	CategoryCode  string     // exact match
	PostDate      *time.Time // exact match
	EffectiveFrom *time.Time // start_date >= EffectiveFrom
	EffectiveTo   *time.Time // end_date <= EffectiveTo
}

// IsEmpty reports whether no filter is set at all.
func (c SearchCondition) IsEmpty() bool {
	return c.Title == "" && c.CategoryCode == "" &&
		c.PostDate == nil && c.EffectiveFrom == nil && c.EffectiveTo == nil
}

// PageRequest carries 0-based paging for a search. The sort order is
// fixed by the repository (post_date DESC, id DESC) and not part of
// the request.
type PageRequest struct {
	Number int
	Size   int
}
