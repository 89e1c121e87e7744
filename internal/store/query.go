package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter maps a query parameter onto an equality condition on Column.
type Filter struct {
	Column string
	Parse  func(string) (any, error)
}

// QuerySpec declares which columns a listing may filter, search and order by.
type QuerySpec struct {
	Filters  map[string]Filter
	Search   []string
	Ordering map[string]string
}

// ListParams are the raw listing options of a request.
type ListParams struct {
	Filters  map[string]string
	Search   string
	Ordering string
	Page     int
	PageSize int
}

type Page[T any] struct {
	Count    int64
	Page     int
	PageSize int
	Results  []T
}

// Scope narrows a listing, e.g. to the rows owned by one user.
type Scope func(*gorm.DB) *gorm.DB

func OwnedBy(userID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func StringFilter(column string) Filter {
	return Filter{Column: column, Parse: func(s string) (any, error) { return s, nil }}
}

func UintFilter(column string) Filter {
	return Filter{Column: column, Parse: func(s string) (any, error) {
		return strconv.ParseUint(s, 10, 64)
	}}
}

func IntFilter(column string) Filter {
	return Filter{Column: column, Parse: func(s string) (any, error) {
		return strconv.Atoi(s)
	}}
}

func BoolFilter(column string) Filter {
	return Filter{Column: column, Parse: func(s string) (any, error) {
		return strconv.ParseBool(s)
	}}
}

func DecimalFilter(column string) Filter {
	return Filter{Column: column, Parse: func(s string) (any, error) {
		return decimal.NewFromString(s)
	}}
}

func (r *Repository[T]) List(ctx context.Context, spec QuerySpec, params ListParams, scopes ...Scope) (*Page[T], error) {
	q := r.db.WithContext(ctx).Model(new(T))
	for _, scope := range scopes {
		q = scope(q)
	}

	q, err := spec.apply(q, params)
	if err != nil {
		return nil, err
	}
	q = q.Session(&gorm.Session{})

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, r.translate(err)
	}

	order, err := spec.order(params.Ordering)
	if err != nil {
		return nil, err
	}

	page := Page[T]{Count: count, Page: params.Page, PageSize: params.PageSize, Results: []T{}}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = int(count)
	}
	find := q.Order(order)
	if page.PageSize > 0 {
		find = find.Limit(page.PageSize).Offset((page.Page - 1) * page.PageSize)
	}
	if err := find.Find(&page.Results).Error; err != nil {
		return nil, r.translate(err)
	}
	return &page, nil
}

func (s QuerySpec) apply(q *gorm.DB, params ListParams) (*gorm.DB, error) {
	for param, raw := range params.Filters {
		if raw == "" {
			continue
		}
		f, ok := s.Filters[param]
		if !ok {
			return nil, apperr.Newf(apperr.Validation, "unknown filter %q", param)
		}
		v, err := f.Parse(raw)
		if err != nil {
			return nil, apperr.Newf(apperr.Validation, "invalid value %q for %s", raw, param)
		}
		q = q.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: v})
	}

	// every term has to match at least one search column
	if len(s.Search) > 0 {
		for _, term := range strings.Fields(params.Search) {
			like := "%" + strings.ToLower(term) + "%"
			var conds []clause.Expression
			for _, col := range s.Search {
				conds = append(conds, clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{clause.Column{Name: col}, like}})
			}
			q = q.Where(clause.Or(conds...))
		}
	}
	return q, nil
}

func (s QuerySpec) order(ordering string) (clause.OrderBy, error) {
	var by clause.OrderBy
	for _, field := range strings.Split(ordering, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		desc := strings.HasPrefix(field, "-")
		col, ok := s.Ordering[strings.TrimPrefix(field, "-")]
		if !ok {
			return by, apperr.Newf(apperr.Validation, "cannot order by %q", field)
		}
		by.Columns = append(by.Columns, clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc})
	}
	by.Columns = append(by.Columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	return by, nil
}
