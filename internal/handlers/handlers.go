package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/gdg-garage/tourism-api/internal/store"
	"github.com/shopspring/decimal"
)

// Resource is a group of operations mounted on the API.
type Resource interface {
	Register(api huma.API)
}

// Pager bounds the page size a client may ask for.
type Pager struct {
	Default int
	Max     int
}

type ListQuery struct {
	Page     int    `query:"page" minimum:"1" doc:"1-based page number"`
	PageSize int    `query:"page_size" minimum:"1" doc:"Results per page"`
	Search   string `query:"search" doc:"Case-insensitive terms, all of which must match"`
	Ordering string `query:"ordering" doc:"Field to order by, prefix with - for descending"`
}

func (q ListQuery) params(p Pager, filters map[string]string) store.ListParams {
	size := q.PageSize
	if size < 1 {
		size = p.Default
	}
	if p.Max > 0 && size > p.Max {
		size = p.Max
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return store.ListParams{
		Filters:  filters,
		Search:   q.Search,
		Ordering: q.Ordering,
		Page:     page,
		PageSize: size,
	}
}

// filters pairs parameter names with values and drops the empty ones.
func filters(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			m[kv[i]] = kv[i+1]
		}
	}
	return m
}

type ListBody[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

type ListOutput[T any] struct {
	Body ListBody[T]
}

func listOutput[M, T any](page *store.Page[M], convert func(M) T) *ListOutput[T] {
	results := make([]T, 0, len(page.Results))
	for _, m := range page.Results {
		results = append(results, convert(m))
	}
	return &ListOutput[T]{Body: ListBody[T]{
		Count:    page.Count,
		Page:     page.Page,
		PageSize: page.PageSize,
		Results:  results,
	}}
}

type ItemOutput[T any] struct {
	Body T
}

func item[T any](v T) *ItemOutput[T] {
	return &ItemOutput[T]{Body: v}
}

type IDPath struct {
	ID uint `path:"id" doc:"Record id"`
}

func same[T any](v T) T { return v }

const dateLayout = "2006-01-02"

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Newf(apperr.Validation, "%s: date has wrong format, use YYYY-MM-DD", field)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperr.Newf(apperr.Validation, "%s: a valid number is required", field)
	}
	return d, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"bearerAuth": {}}}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func noContent(o *huma.Operation) {
	o.DefaultStatus = http.StatusNoContent
}

func tagged(tag string) func(o *huma.Operation) {
	return func(o *huma.Operation) {
		o.Tags = append(o.Tags, tag)
	}
}
