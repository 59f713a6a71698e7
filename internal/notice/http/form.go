package http

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"noticeadmin/internal/notice"
)

const (
	defaultPageNumber = 0
	defaultPageSize   = 100
	minPageSize       = 1
	maxPageSize       = 100

	maxTitleLength = 100

	dateLayout = "2006-01-02"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SearchForm binds the query parameters of the list view. Filter fields
// stay raw strings; conversion to typed values happens in ToCondition.
type SearchForm struct {
	Title    string `form:"title"`
	Category string `form:"category"`
	PostDate string `form:"postDate"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	Size     int    `form:"size,default=100"`
	Searched bool   `form:"searched"`
}

// NormalizePaging clamps the page number to >= 0 and the page size into
// [1, 100]. Applying it twice yields the same result as applying it once.
func (f *SearchForm) NormalizePaging() {
	f.Page = max(f.Page, defaultPageNumber)
	f.Size = min(max(f.Size, minPageSize), maxPageSize)
}

// HasCriteria reports whether any filter field is non-blank.
func (f *SearchForm) HasCriteria() bool {
	return hasText(f.Title) || hasText(f.Category) || hasText(f.PostDate) ||
		hasText(f.From) || hasText(f.To)
}

// ShouldSearch reports whether a query should actually run. The first
// visit to the list page with no query string shows an empty listing
// instead of an unfiltered dump.
func (f *SearchForm) ShouldSearch() bool {
	return f.Searched || f.HasCriteria()
}

// ToCondition converts the raw inputs into a search condition. Blank
// strings become absent fields; unparseable dates become absent too,
// never an error.
func (f *SearchForm) ToCondition() notice.SearchCondition {
	return notice.SearchCondition{
		Title:         blankToEmpty(f.Title),
		CategoryCode:  blankToEmpty(f.Category),
		PostDate:      parseDate(f.PostDate),
		EffectiveFrom: parseDate(f.From),
		EffectiveTo:   parseDate(f.To),
	}
}

func (f *SearchForm) ToPageRequest() notice.PageRequest {
	return notice.PageRequest{Number: f.Page, Size: f.Size}
}

// RefreshFrom overwrites the paging state with the page actually served,
// so stale request values do not drift from the rendered result.
func (f *SearchForm) RefreshFrom(number, size int) {
	f.Page = number
	f.Size = size
}

// QueryParams re-encodes the current filter and paging state so a
// redirect after delete preserves the user's search context.
func (f *SearchForm) QueryParams() url.Values {
	v := url.Values{}
	v.Set("title", f.Title)
	v.Set("category", f.Category)
	v.Set("postDate", f.PostDate)
	v.Set("from", f.From)
	v.Set("to", f.To)
	v.Set("page", strconv.Itoa(max(f.Page, defaultPageNumber)))
	v.Set("size", strconv.Itoa(min(max(f.Size, minPageSize), maxPageSize)))
	v.Set("searched", strconv.FormatBool(f.ShouldSearch()))
	return v
}

// NoticeForm binds the create/edit form. All fields are opaque strings
// at the binding layer; date accessors parse on demand and return nil
// for blank or malformed input, which the format stage then rejects.
type NoticeForm struct {
	ID        int64  `form:"id"`
	Title     string `form:"title"`
	Category  string `form:"category"`
	PostDate  string `form:"postDate"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Content   string `form:"content"`
}

// FieldError is a single validation message keyed by form field. The
// cross-field date-range error uses the pseudo field "dateRange".
type FieldError struct {
	Field   string
	Message string
}

// Validate runs the staged pipeline: required checks first, then format
// checks, then the cross-field date-range rule. Each stage only runs
// when every earlier stage passed, and the first failing stage's errors
// are returned alone.
func (f *NoticeForm) Validate() []FieldError {
	if errs := f.validateRequired(); len(errs) > 0 {
		return errs
	}
	if errs := f.validateFormat(); len(errs) > 0 {
		return errs
	}
	return f.validateDateRange()
}

func (f *NoticeForm) validateRequired() []FieldError {
	var errs []FieldError
	if !hasText(f.Title) {
		errs = append(errs, FieldError{Field: "title", Message: "タイトルを入力してください。"})
	}
	if !hasText(f.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "お知らせ区分を選択してください。"})
	}
	if !hasText(f.PostDate) {
		errs = append(errs, FieldError{Field: "postDate", Message: "掲載日を入力してください。"})
	}
	if !hasText(f.StartDate) {
		errs = append(errs, FieldError{Field: "startDate", Message: "適用開始日を入力してください。"})
	}
	if !hasText(f.EndDate) {
		errs = append(errs, FieldError{Field: "endDate", Message: "適用終了日を入力してください。"})
	}
	if !hasText(f.Content) {
		errs = append(errs, FieldError{Field: "content", Message: "内容を入力してください。"})
	}
	return errs
}

func (f *NoticeForm) validateFormat() []FieldError {
	var errs []FieldError
	if utf8.RuneCountInString(f.Title) > maxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "タイトルは100文字以内で入力してください。"})
	}
	if !datePattern.MatchString(f.PostDate) {
		errs = append(errs, FieldError{Field: "postDate", Message: "掲載日には正しい日付を入力してください。"})
	}
	if !datePattern.MatchString(f.StartDate) {
		errs = append(errs, FieldError{Field: "startDate", Message: "適用開始日には正しい日付を入力してください。"})
	}
	if !datePattern.MatchString(f.EndDate) {
		errs = append(errs, FieldError{Field: "endDate", Message: "適用終了日には正しい日付を入力してください。"})
	}
	return errs
}

func (f *NoticeForm) validateDateRange() []FieldError {
	start := f.StartDateValue()
	end := f.EndDateValue()
	if start != nil && end != nil && start.After(*end) {
		return []FieldError{{
			Field:   "dateRange",
			Message: "適用期間は開始日が終了日より前になるよう入力してください。",
		}}
	}
	return nil
}

func (f *NoticeForm) PostDateValue() *time.Time  { return parseDate(f.PostDate) }
func (f *NoticeForm) StartDateValue() *time.Time { return parseDate(f.StartDate) }
func (f *NoticeForm) EndDateValue() *time.Time   { return parseDate(f.EndDate) }

// ToNotice builds the domain record with the same lenient parsing as the
// accessors. Timestamps are left for the service to stamp.
func (f *NoticeForm) ToNotice() *notice.Notice {
	return &notice.Notice{
		ID:           f.ID,
		Title:        f.Title,
		CategoryCode: f.Category,
		PostDate:     f.PostDateValue(),
		StartDate:    f.StartDateValue(),
		EndDate:      f.EndDateValue(),
		Content:      f.Content,
	}
}

// FormFromNotice pre-fills the edit form from an existing record.
func FormFromNotice(n *notice.Notice) NoticeForm {
	return NoticeForm{
		ID:        n.ID,
		Title:     n.Title,
		Category:  n.CategoryCode,
		PostDate:  formatDate(n.PostDate),
		StartDate: formatDate(n.StartDate),
		EndDate:   formatDate(n.EndDate),
		Content:   n.Content,
	}
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// blankToEmpty keeps the value as entered when it has text and collapses
// whitespace-only input to the empty string (clause absent).
func blankToEmpty(s string) string {
	if hasText(s) {
		return s
	}
	return ""
}

// parseDate returns nil for blank or malformed input; the caller decides
// whether that matters.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
