package hateoas

import (
	"bitwise74/company-api/internal/model"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rels(links []model.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Rel
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5000, 20, 250},
		{10, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize), "total=%d pageSize=%d", tt.total, tt.pageSize)
	}
}

func TestBuildRelations(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		links := Build("/api/companies", 1, 20, 100, nil)
		assert.Equal(t, []string{"self", "next", "first", "last"}, rels(links))
	})

	t.Run("middle page", func(t *testing.T) {
		links := Build("/api/companies", 3, 20, 100, nil)
		assert.Equal(t, []string{"self", "prev", "next", "first", "last"}, rels(links))
	})

	t.Run("last page", func(t *testing.T) {
		links := Build("/api/companies", 5, 20, 100, nil)
		assert.Equal(t, []string{"self", "prev", "first", "last"}, rels(links))
	})

	t.Run("beyond last page", func(t *testing.T) {
		links := Build("/api/companies", 9, 20, 100, nil)
		assert.Equal(t, []string{"self", "prev", "first", "last"}, rels(links))
	})

	t.Run("empty list", func(t *testing.T) {
		links := Build("/api/companies", 1, 20, 0, nil)
		require.Equal(t, []string{"self", "first", "last"}, rels(links))
		assert.Equal(t, "/api/companies?page=1&pageSize=20", links[2].Href)
	})
}

func TestBuildEchoesParams(t *testing.T) {
	params := url.Values{}
	params.Set("search", "co & sons")
	params.Set("sortBy", "name")
	params.Set("descending", "true")

	links := Build("/api/companies", 2, 10, 35, params)
	require.Len(t, links, 5)

	for _, l := range links {
		u, err := url.Parse(l.Href)
		require.NoError(t, err)

		assert.Equal(t, "/api/companies", u.Path)
		assert.Equal(t, "co & sons", u.Query().Get("search"))
		assert.Equal(t, "name", u.Query().Get("sortBy"))
		assert.Equal(t, "true", u.Query().Get("descending"))
		assert.Equal(t, "10", u.Query().Get("pageSize"))
	}

	assert.Equal(t, "2", query(t, links[0].Href).Get("page"))
	assert.Equal(t, "1", query(t, links[1].Href).Get("page"))
	assert.Equal(t, "3", query(t, links[2].Href).Get("page"))
	assert.Equal(t, "1", query(t, links[3].Href).Get("page"))
	assert.Equal(t, "4", query(t, links[4].Href).Get("page"))

	// Caller's values must not be modified
	assert.Empty(t, params.Get("page"))
}

func query(t *testing.T, href string) url.Values {
	t.Helper()

	u, err := url.Parse(href)
	require.NoError(t, err)
	return u.Query()
}
