// Package hateoas builds the navigation links embedded in paginated
// responses
package hateoas

import (
	"bitwise74/company-api/internal/model"
	"net/url"
	"strconv"
)

// TotalPages returns how many pages of pageSize hold total items
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}

	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Build returns self, prev, next, first and last links for a page of a
// list served at path. prev is omitted on the first page and next on the
// last one. params are copied into every link next to page and pageSize.
func Build(path string, page, pageSize int, total int64, params url.Values) []model.Link {
	totalPages := TotalPages(total, pageSize)
	lastPage := max(totalPages, 1)

	href := func(p int) string {
		v := url.Values{}
		for k, vals := range params {
			v[k] = append([]string(nil), vals...)
		}

		v.Set("page", strconv.Itoa(p))
		v.Set("pageSize", strconv.Itoa(pageSize))

		return path + "?" + v.Encode()
	}

	links := []model.Link{{Rel: "self", Href: href(page)}}

	if page > 1 {
		links = append(links, model.Link{Rel: "prev", Href: href(page - 1)})
	}

	if page < totalPages {
		links = append(links, model.Link{Rel: "next", Href: href(page + 1)})
	}

	links = append(links,
		model.Link{Rel: "first", Href: href(1)},
		model.Link{Rel: "last", Href: href(lastPage)},
	)

	return links
}
