// Package query turns list request parameters into filtered, sorted and
// paginated gorm queries
package query

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidPage       = errors.New("page must be a positive integer")
	ErrInvalidPageSize   = errors.New("pageSize must be a positive integer")
	ErrInvalidDescending = errors.New("descending must be true or false")
)

// Params holds the normalized list parameters of a single request
type Params struct {
	Page       int
	PageSize   int
	Search     string
	SortBy     string
	Descending bool
}

// Offset is the number of rows skipped before the current page. Pages
// too far out to address are clamped so they still come back empty.
func (p Params) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}

	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}

	return (p.Page - 1) * p.PageSize
}

// Values returns the filter and sort parameters to be echoed back into
// navigation links. Page and page size are left to the link builder.
func (p Params) Values() url.Values {
	v := url.Values{}

	if p.Search != "" {
		v.Set("search", p.Search)
	}

	v.Set("sortBy", p.SortBy)
	v.Set("descending", strconv.FormatBool(p.Descending))

	return v
}

// Parse reads page, pageSize, search, sortBy and descending from the
// request query. SortBy is resolved against s so the returned params
// always carry a known sort key.
func Parse(c *gin.Context, defaultPageSize int, s Sorting) (Params, error) {
	p := Params{
		Page:     1,
		PageSize: defaultPageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return p, ErrInvalidPage
		}
		p.Page = page
	}

	if v := c.Query("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return p, ErrInvalidPageSize
		}
		p.PageSize = size
	}

	if v := c.Query("descending"); v != "" {
		desc, err := strconv.ParseBool(v)
		if err != nil {
			return p, ErrInvalidDescending
		}
		p.Descending = desc
	}

	p.SortBy = s.Resolve(c.Query("sortBy"))
	return p, nil
}

// Sorting maps public sort keys to columns. Unknown keys fall back to
// Default.
type Sorting struct {
	Default string
	Columns map[string]clause.Column
}

// Resolve returns the lower cased key if it is known, the default otherwise
func (s Sorting) Resolve(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := s.Columns[key]; ok {
		return key
	}

	return s.Default
}

// Search adds a case-insensitive substring match of term against any of
// columns. The term is lower cased in Go, so every column must already
// hold lower cased text: a normalized column, or LOWER() over values
// known to be ASCII. An empty term leaves the query untouched.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

		conds := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			conds[i] = col + " LIKE ? ESCAPE '\\'"
			args[i] = pattern
		}

		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Sort orders by the column registered for p.SortBy
func Sort(s Sorting, p Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, ok := s.Columns[s.Resolve(p.SortBy)]
		if !ok {
			return db
		}

		return db.Order(clause.OrderByColumn{Column: col, Desc: p.Descending})
	}
}

// Paginate limits the query to the requested page
func Paginate(p Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PageSize)
	}
}

// List counts the rows matched by base and then loads the requested
// page into dest. The count ignores paging so it is the size of the
// whole filtered set. Scopes in load (preloads, selects) only apply to
// the page query.
func List(base *gorm.DB, s Sorting, p Params, dest any, load ...func(*gorm.DB) *gorm.DB) (total int64, err error) {
	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}

	err = base.Session(&gorm.Session{}).
		Scopes(append(load, Sort(s, p), Paginate(p))...).
		Find(dest).
		Error
	return total, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
