package query

import (
	"bitwise74/company-api/db"
	"bitwise74/company-api/internal/model"
	"math"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var testSorting = Sorting{
	Default: "rank",
	Columns: map[string]clause.Column{
		"rank": {Name: "rank"},
		"name": {Name: "name"},
		"city": {Name: "city"},
	},
}

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/companies?"+rawQuery, nil)
	return c
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(sqlite.Open("file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"))
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return conn
}

func seedCompanies(t *testing.T, conn *gorm.DB, names ...string) {
	t.Helper()

	for i, name := range names {
		c := model.Company{
			Rank: i + 1,
			Name: name,
			City: "City " + strconv.Itoa(len(names)-i),
		}
		require.NoError(t, conn.Create(&c).Error)
	}
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse(testContext(""), 20, testSorting)
	require.NoError(t, err)

	assert.Equal(t, Params{Page: 1, PageSize: 20, SortBy: "rank"}, p)
	assert.Equal(t, 0, p.Offset())
}

func TestParseValues(t *testing.T) {
	p, err := Parse(testContext("page=3&pageSize=5&search=+acme+&sortBy=NAME&descending=true"), 20, testSorting)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.PageSize)
	assert.Equal(t, "acme", p.Search)
	assert.Equal(t, "name", p.SortBy)
	assert.True(t, p.Descending)
	assert.Equal(t, 10, p.Offset())

	v := p.Values()
	assert.Equal(t, "acme", v.Get("search"))
	assert.Equal(t, "name", v.Get("sortBy"))
	assert.Equal(t, "true", v.Get("descending"))
	assert.Empty(t, v.Get("page"))
}

func TestOffsetClampsHugePages(t *testing.T) {
	p, err := Parse(testContext("page=4611686018427387905&pageSize=4"), 20, testSorting)
	require.NoError(t, err)

	assert.Equal(t, math.MaxInt, p.Offset())
	assert.Equal(t, math.MaxInt, Params{Page: math.MaxInt, PageSize: math.MaxInt}.Offset())
	assert.Equal(t, 0, Params{Page: 1, PageSize: math.MaxInt}.Offset())
}

func TestParseUnknownSortFallsBack(t *testing.T) {
	p, err := Parse(testContext("sortBy=revenue"), 20, testSorting)
	require.NoError(t, err)
	assert.Equal(t, "rank", p.SortBy)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		query string
		want  error
	}{
		{"page=0", ErrInvalidPage},
		{"page=-1", ErrInvalidPage},
		{"page=abc", ErrInvalidPage},
		{"pageSize=0", ErrInvalidPageSize},
		{"pageSize=1.5", ErrInvalidPageSize},
		{"descending=maybe", ErrInvalidDescending},
	}

	for _, tt := range tests {
		_, err := Parse(testContext(tt.query), 20, testSorting)
		assert.ErrorIs(t, err, tt.want, "query %q", tt.query)
	}
}

func TestListPaginates(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "A", "B", "C", "D", "E")

	p := Params{Page: 2, PageSize: 2, SortBy: "rank"}

	var got []model.Company
	total, err := List(conn.Model(model.Company{}), testSorting, p, &got)
	require.NoError(t, err)

	assert.EqualValues(t, 5, total)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Rank)
	assert.Equal(t, 4, got[1].Rank)
}

func TestListBeyondLastPage(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "A", "B")

	var got []model.Company
	total, err := List(conn.Model(model.Company{}), testSorting, Params{Page: 4, PageSize: 10, SortBy: "rank"}, &got)
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	assert.Empty(t, got)
}

func TestListSortsDescending(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "Beta", "Alpha", "Gamma")

	var got []model.Company
	_, err := List(conn.Model(model.Company{}), testSorting, Params{Page: 1, PageSize: 10, SortBy: "name", Descending: true}, &got)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "Gamma", got[0].Name)
	assert.Equal(t, "Beta", got[1].Name)
	assert.Equal(t, "Alpha", got[2].Name)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "Acme Corp", "ACME Labs", "Globex", "Initech")

	p := Params{Page: 1, PageSize: 10, SortBy: "rank", Search: "acme"}

	var got []model.Company
	total, err := List(conn.Model(model.Company{}).Scopes(Search(p.Search, "normalized_name")), testSorting, p, &got)
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Corp", got[0].Name)
	assert.Equal(t, "ACME Labs", got[1].Name)
}

func TestListHugePageIsEmpty(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "Acme", "Globex")

	var got []model.Company
	total, err := List(conn.Model(model.Company{}), testSorting, Params{Page: 4611686018427387905, PageSize: 4, SortBy: "rank"}, &got)
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	assert.Empty(t, got)
}

func TestSearchFoldsNonASCII(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "ÉCOLE Inc", "Ecole Ltd", "Über GmbH")

	var got []model.Company
	require.NoError(t, conn.Scopes(Search("école", "normalized_name")).Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, "ÉCOLE Inc", got[0].Name)

	got = nil
	require.NoError(t, conn.Scopes(Search("ÜBER", "normalized_name")).Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, "Über GmbH", got[0].Name)
}

func TestSearchEscapesWildcards(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "100% Organic", "100 Percent", "snake_case", "snakeXcase")

	var got []model.Company
	require.NoError(t, conn.Scopes(Search("0%", "normalized_name")).Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Organic", got[0].Name)

	got = nil
	require.NoError(t, conn.Scopes(Search("e_c", "normalized_name")).Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, "snake_case", got[0].Name)
}

func TestSearchAnyColumn(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "Alpha", "Beta")

	var got []model.Company
	// City of the first company is "City 2"
	require.NoError(t, conn.Scopes(Search("city 2", "normalized_name", "LOWER(city)")).Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Name)
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	conn := testDB(t)
	seedCompanies(t, conn, "Alpha", "Beta")

	var count int64
	require.NoError(t, conn.Model(model.Company{}).Scopes(Search("", "normalized_name")).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
