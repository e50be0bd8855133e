package paging

import (
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/apierr"
)

func Test_FromQuery_FillsDefaultsAndClamps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page=-3&size=1000&order=DESC", nil)

	r := FromQuery(c, Request{Page: 0, Size: 5, Sort: "borrow_date"})

	assert.Equal(t, 0, r.Page)
	assert.Equal(t, MaxSize, r.Size)
	assert.Equal(t, "borrow_date", r.Sort)
	assert.Equal(t, "desc", r.Order)
}

func Test_Offset_NeverOverflows(t *testing.T) {
	assert.Equal(t, 10, Request{Page: 2, Size: 5}.Offset())
	assert.Equal(t, 0, Request{Page: -1, Size: 5}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt / 50, Size: 100}.Offset())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page=184467440737095516&size=100", nil)

	r := FromQuery(c, Request{Size: 10})

	assert.Equal(t, math.MaxInt/100, r.Page)
	assert.GreaterOrEqual(t, r.Offset(), 0)
}

func Test_Sorts_OrderBy(t *testing.T) {
	s := Sorts{"borrow_date": "borrow_date", "borrowDate": "borrow_date"}

	clause, err := s.OrderBy(Request{Sort: "borrowDate", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "borrow_date ASC", clause)

	clause, err = s.OrderBy(Request{Sort: "borrow_date", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "borrow_date DESC", clause)

	_, err = s.OrderBy(Request{Sort: "1; DROP TABLE books"})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}

func Test_New_ComputesTotalPages(t *testing.T) {
	p := New([]int{1, 2}, 12, Request{Page: 2, Size: 5})
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())

	empty := New[int](nil, 0, Request{Page: 0, Size: 5})
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext())
}

func Test_Links(t *testing.T) {
	u, err := url.Parse("/api/v1/transactions/history/c1?page=1&size=5&sort=due_date")
	require.NoError(t, err)

	links := New([]int{1}, 11, Request{Page: 1, Size: 5}).Links(u)

	assert.Equal(t, "/api/v1/transactions/history/c1?page=1&size=5&sort=due_date", links["self"])
	assert.Equal(t, "/api/v1/transactions/history/c1?page=0&size=5&sort=due_date", links["prev"])
	assert.Equal(t, "/api/v1/transactions/history/c1?page=2&size=5&sort=due_date", links["next"])
}

func Test_Links_OutOfRangePagePointsBackToLastPage(t *testing.T) {
	u, _ := url.Parse("/books?page=9")

	links := New[int](nil, 3, Request{Page: 9, Size: 2}).Links(u)

	assert.Equal(t, "/books?page=1&size=2", links["prev"])
	_, hasNext := links["next"]
	assert.False(t, hasNext)
}

func Test_Map(t *testing.T) {
	p := Map(New([]int{1, 2}, 2, Request{Size: 10}), func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, p.Items)
	assert.Equal(t, int64(2), p.Total)
}
