package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"noticeadmin/internal/notice"
	"noticeadmin/internal/pkg/flash"
	"noticeadmin/internal/pkg/response"
)

const (
	listPath = "/notice"

	modeCreate = "create"
	modeEdit   = "edit"

	resultCreated = "created"
	resultUpdated = "updated"
	resultDeleted = "deleted"

	msgProcessCompleted = "処理が完了しました。"
)

type Handler struct {
	service notice.Service
}

func NewHandler(service notice.Service) *Handler {
	return &Handler{service: service}
}

// noticeView is the row model rendered by the list template, with dates
// pre-formatted and the category code resolved to its label.
type noticeView struct {
	ID            int64
	Title         string
	CategoryLabel string
	PostDate      string
	StartDate     string
	EndDate       string
}

func newNoticeView(n notice.Notice, labels map[string]string) noticeView {
	return noticeView{
		ID:            n.ID,
		Title:         n.Title,
		CategoryLabel: labels[n.CategoryCode],
		PostDate:      formatDate(n.PostDate),
		StartDate:     formatDate(n.StartDate),
		EndDate:       formatDate(n.EndDate),
	}
}

// List renders the search/list view. A request whose query string holds
// only paging noise (no filter, no explicit searched flag) is redirected
// to the bare list URL so meaningless query strings are never served.
func (h *Handler) List(c *gin.Context) {
	var form SearchForm
	if err := c.ShouldBindQuery(&form); err != nil {
		form = SearchForm{Size: defaultPageSize}
	}
	form.NormalizePaging()

	if c.Request.URL.RawQuery != "" && !form.ShouldSearch() {
		c.Redirect(http.StatusFound, listPath)
		return
	}

	runSearch := form.ShouldSearch()

	var result response.Page[notice.Notice]
	if runSearch {
		var err error
		result, err = h.service.Search(c.Request.Context(), form.ToCondition(), form.ToPageRequest())
		if err != nil {
			h.serverError(c)
			return
		}
	} else {
		result = response.EmptyPage[notice.Notice](form.Page, form.Size)
	}

	form.RefreshFrom(result.Number, result.Size)
	form.Searched = runSearch

	labels := notice.CategoryLabels()
	rows := make([]noticeView, len(result.Items))
	for i, n := range result.Items {
		rows[i] = newNoticeView(n, labels)
	}

	data := gin.H{
		"form":            form,
		"page":            result,
		"notices":         rows,
		"showResults":     runSearch,
		"categoryOptions": notice.Categories,
		"prevPage":        result.Number - 1,
		"nextPage":        result.Number + 1,
	}
	if msg, ok := flash.Take(c); ok {
		data["completedMessage"] = msg.Completed
		data["resultType"] = msg.ResultType
	}
	c.HTML(http.StatusOK, "notice-main.html", data)
}

// NewForm renders a blank create form.
func (h *Handler) NewForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, NoticeForm{}, modeCreate, nil)
}

// EditForm renders the form pre-filled from an existing notice. A
// missing or unknown id surfaces as not found.
func (h *Handler) EditForm(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)

	n, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound), errors.Is(err, notice.ErrIDRequired):
			h.notFound(c)
		default:
			h.serverError(c)
		}
		return
	}

	h.renderForm(c, http.StatusOK, FormFromNotice(n), modeEdit, nil)
}

// Create handles the create form submission.
func (h *Handler) Create(c *gin.Context) {
	h.handleSubmission(c, modeCreate, resultCreated, func(ctx context.Context, n *notice.Notice) error {
		_, err := h.service.Create(ctx, n)
		return err
	})
}

// Update handles the edit form submission.
func (h *Handler) Update(c *gin.Context) {
	h.handleSubmission(c, modeEdit, resultUpdated, func(ctx context.Context, n *notice.Notice) error {
		_, err := h.service.Update(ctx, n)
		return err
	})
}

// Delete removes a notice and redirects back to the list with the
// current search context re-attached as query parameters.
func (h *Handler) Delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.PostForm("selectedId"), 10, 64)

	if err := h.service.DeleteByID(c.Request.Context(), id); err != nil {
		h.serverError(c)
		return
	}

	var form SearchForm
	if err := c.ShouldBind(&form); err != nil {
		form = SearchForm{Size: defaultPageSize}
	}

	flash.Set(c, flash.Message{Completed: msgProcessCompleted, ResultType: resultDeleted})
	c.Redirect(http.StatusSeeOther, listPath+"?"+form.QueryParams().Encode())
}

// handleSubmission is the shared create/update flow: staged validation,
// then the action, then flash + redirect. Any validation failure stops
// and redisplays the form with that stage's errors.
func (h *Handler) handleSubmission(c *gin.Context, mode, resultType string, action func(context.Context, *notice.Notice) error) {
	var form NoticeForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form submission")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		h.renderForm(c, http.StatusOK, form, mode, errs)
		return
	}

	if err := action(c.Request.Context(), form.ToNotice()); err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound), errors.Is(err, notice.ErrIDRequired):
			h.notFound(c)
		case errors.Is(err, notice.ErrTitleTooLong):
			errs := []FieldError{{Field: "title", Message: "タイトルは100文字以内で入力してください。"}}
			h.renderForm(c, http.StatusOK, form, mode, errs)
		default:
			h.serverError(c)
		}
		return
	}

	flash.Set(c, flash.Message{Completed: msgProcessCompleted, ResultType: resultType})
	c.Redirect(http.StatusSeeOther, listPath)
}

func (h *Handler) renderForm(c *gin.Context, status int, form NoticeForm, mode string, errs []FieldError) {
	c.HTML(status, "notice-form.html", gin.H{
		"form":            form,
		"mode":            mode,
		"errors":          errs,
		"categoryOptions": notice.Categories,
	})
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"status":  http.StatusNotFound,
		"message": "お探しのお知らせは見つかりませんでした。",
	})
}

func (h *Handler) serverError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"status":  http.StatusInternalServerError,
		"message": "処理中にエラーが発生しました。",
	})
}
