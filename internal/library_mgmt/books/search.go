package books

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/textnorm"
)

var searchParams = []struct {
	key  string
	kind SearchKind
}{
	{"id", SearchByID},
	{"title", SearchByTitle},
	{"isbn", SearchByISBN},
	{"author", SearchByAuthor},
	{"q", SearchByQuery},
}

// ParseSearch は ?id= / ?title= / ?isbn= / ?author=[&available=] / ?q= のうち
// ちょうど1つを受け付ける。
func ParseSearch(v url.Values) (SearchBy, error) {
	var f SearchBy
	n := 0
	for _, p := range searchParams {
		val := strings.TrimSpace(v.Get(p.key))
		if val == "" {
			continue
		}
		n++
		f.Kind, f.Value = p.kind, val
	}
	if n != 1 {
		return SearchBy{}, apierr.ErrInvalid("exactly one of id, title, isbn, author, q is required")
	}

	switch f.Kind {
	case SearchByTitle, SearchByAuthor:
		f.Value = textnorm.Name(f.Value)
	case SearchByISBN:
		f.Value = textnorm.ISBN(f.Value)
	}

	if raw := strings.TrimSpace(v.Get("available")); raw != "" {
		if f.Kind != SearchByAuthor {
			return SearchBy{}, apierr.ErrInvalid("available can only be combined with author")
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return SearchBy{}, apierr.ErrInvalid("available must be true or false")
		}
		f.Available = &b
	}
	return f, nil
}

// ===== goqu queries =====

var bookColumns = []any{"b.book_id", "b.title", "b.isbn", "b.publication_year", "b.availability", "b.created_at"}

func (s *Store) filtered(f SearchBy) *goqu.SelectDataset {
	ds := s.dialect.From(goqu.T("books").As("b")).Prepared(true)

	switch f.Kind {
	case SearchByID:
		ds = ds.Where(goqu.Ex{"b.book_id": f.Value})
	case SearchByTitle:
		ds = ds.Where(goqu.Ex{"b.title": f.Value})
	case SearchByISBN:
		ds = ds.Where(goqu.Ex{"b.isbn": f.Value})
	case SearchByAuthor:
		ds = ds.
			Join(goqu.T("book_authors").As("ba"), goqu.On(goqu.Ex{"ba.book_id": goqu.I("b.book_id")})).
			Join(goqu.T("authors").As("a"), goqu.On(goqu.Ex{"a.author_id": goqu.I("ba.author_id")})).
			Where(goqu.Ex{"a.name": f.Value})
	case SearchByQuery:
		pat := "%" + f.Value + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("b.title").Like(pat),
			goqu.I("b.isbn").Like(pat),
		))
	}

	if f.Available != nil {
		avail := 0
		if *f.Available {
			avail = 1
		}
		ds = ds.Where(goqu.Ex{"b.availability": avail})
	}
	return ds
}

func (s *Store) Search(ctx context.Context, f SearchBy, col string, desc bool, limit, offset int) ([]Book, int64, error) {
	ds := s.filtered(f)

	countSQL, countArgs, err := ds.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.q.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || offset < 0 || offset >= int(total) {
		return []Book{}, total, nil
	}

	order := goqu.I(col).Asc()
	if desc {
		order = goqu.I(col).Desc()
	}
	query, args, err := ds.
		Select(bookColumns...).
		Order(order, goqu.I("b.book_id").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}

	items, err := s.queryBooks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Book, error) {
	return s.getOne(ctx, SearchBy{Kind: SearchByID, Value: id})
}

func (s *Store) GetByTitle(ctx context.Context, title string) (Book, error) {
	return s.getOne(ctx, SearchBy{Kind: SearchByTitle, Value: title})
}

func (s *Store) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.getOne(ctx, SearchBy{Kind: SearchByISBN, Value: isbn})
}

func (s *Store) getOne(ctx context.Context, f SearchBy) (Book, error) {
	query, args, err := s.filtered(f).Select(bookColumns...).Limit(1).ToSQL()
	if err != nil {
		return Book{}, err
	}
	items, err := s.queryBooks(ctx, query, args...)
	if err != nil {
		return Book{}, err
	}
	if len(items) == 0 {
		return Book{}, apierr.New(apierr.CodeBookNotFound, "book not found")
	}
	return items[0], nil
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Book, 0, 8)
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ISBN, &b.PublicationYear, &b.Available, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.CreatedAt = dateOf(b.CreatedAt)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachAuthors は本ごとの著者を1クエリでまとめて読む。
func (s *Store) attachAuthors(ctx context.Context, list []Book) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	idx := make(map[string]int, len(list))
	for i := range list {
		ids = append(ids, list[i].ID)
		idx[list[i].ID] = i
		list[i].Authors = []AuthorRef{}
	}

	query, args, err := s.dialect.From(goqu.T("book_authors").As("ba")).Prepared(true).
		Join(goqu.T("authors").As("a"), goqu.On(goqu.Ex{"a.author_id": goqu.I("ba.author_id")})).
		Select("ba.book_id", "a.author_id", "a.name").
		Where(goqu.Ex{"ba.book_id": ids}).
		Order(goqu.I("a.name").Asc()).
		ToSQL()
	if err != nil {
		return err
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var bookID string
		var a AuthorRef
		if err := rows.Scan(&bookID, &a.ID, &a.Name); err != nil {
			return err
		}
		if i, ok := idx[bookID]; ok {
			list[i].Authors = append(list[i].Authors, a)
		}
	}
	return rows.Err()
}
