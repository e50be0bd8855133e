package paging

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/apierr"
)

const MaxSize = 100

// Request はページ指定（page は 0 始まり）。
type Request struct {
	Page  int
	Size  int
	Sort  string
	Order string // asc | desc
}

// Offset は Page*Size。桁あふれする位置は math.MaxInt に丸めるので、常に範囲外（空ページ）になる。
func (r Request) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

// FromQuery は ?page=&size=&sort=&order= を読み、欠けた値は def で埋める。
func FromQuery(c *gin.Context, def Request) Request {
	r := def
	r.Page = atoiDef(c.Query("page"), def.Page)
	r.Size = atoiDef(c.Query("size"), def.Size)
	if v := strings.TrimSpace(c.Query("sort")); v != "" {
		r.Sort = v
	}
	if v := strings.ToLower(strings.TrimSpace(c.Query("order"))); v != "" {
		r.Order = v
	}
	return r.normalize()
}

func (r Request) normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = 10
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	if r.Page > math.MaxInt/r.Size {
		r.Page = math.MaxInt / r.Size
	}
	if r.Order != "desc" {
		r.Order = "asc"
	}
	return r
}

// Sorts は API のソート名 → カラム名のホワイトリスト。
type Sorts map[string]string

// Resolve はカラム名と降順かどうかを返す。未知のソート名は INVALID_ARGUMENT。
func (s Sorts) Resolve(r Request) (col string, desc bool, err error) {
	col, ok := s[r.Sort]
	if !ok {
		return "", false, apierr.ErrInvalid(fmt.Sprintf("unsupported sort field: %q", r.Sort))
	}
	return col, r.Order == "desc", nil
}

// OrderBy は "column ASC" 形式の句を返す。
func (s Sorts) OrderBy(r Request) (string, error) {
	col, desc, err := s.Resolve(r)
	if err != nil {
		return "", err
	}
	if desc {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}

// Page はページング結果。範囲外のページは空の Items を返す。
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

func New[T any](items []T, total int64, r Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if r.Size > 0 {
		pages = int((total + int64(r.Size) - 1) / int64(r.Size))
	}
	return Page[T]{Items: items, Total: total, Page: r.Page, Size: r.Size, TotalPages: pages}
}

// Map は Items の型を変換する。
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{Items: out, Total: p.Total, Page: p.Page, Size: p.Size, TotalPages: p.TotalPages}
}

func (p Page[T]) HasPrev() bool { return p.Page > 0 }
func (p Page[T]) HasNext() bool { return p.Page+1 < p.TotalPages }

// Links は self / prev / next の URL を返す（無いものは含めない）。
func (p Page[T]) Links(u *url.URL) map[string]string {
	links := map[string]string{"self": withPage(u, p.Page, p.Size)}
	if p.HasPrev() {
		prev := p.Page - 1
		if last := p.TotalPages - 1; prev > last && last >= 0 {
			prev = last
		}
		links["prev"] = withPage(u, prev, p.Size)
	}
	if p.HasNext() {
		links["next"] = withPage(u, p.Page+1, p.Size)
	}
	return links
}

// SetLinkHeader は RFC 5988 の Link ヘッダを付ける。
func SetLinkHeader[T any](c *gin.Context, p Page[T]) {
	links := p.Links(c.Request.URL)
	parts := make([]string, 0, len(links))
	for _, rel := range []string{"self", "prev", "next"} {
		if href, ok := links[rel]; ok {
			parts = append(parts, fmt.Sprintf("<%s>; rel=%q", href, rel))
		}
	}
	c.Header("Link", strings.Join(parts, ", "))
}

func withPage(u *url.URL, page, size int) string {
	cp := *u
	q := cp.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	cp.RawQuery = q.Encode()
	return cp.RequestURI()
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
