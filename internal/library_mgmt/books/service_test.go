package books

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/cache"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/db/dbtest"
	"library-backend/internal/platform/paging"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type seqID struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (s *seqID) NewULID(time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%03d", s.prefix, s.n)
}

func newTestService(t *testing.T, c *cache.Cache) (*Service, *sql.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	clock := fixedClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	return newService(NewStore(conn, db.DriverSQLite), c, clock, &seqID{prefix: "ID"}), conn
}

func mustCreate(t *testing.T, svc *Service, title, isbn string, year int, authors ...string) Book {
	t.Helper()
	b, err := svc.CreateBook(context.Background(), CreateBookRequest{
		Title: title, ISBN: isbn, PublicationYear: year, Authors: authors,
	})
	require.NoError(t, err)
	return b
}

func Test_CreateBook_ResolvesAuthorsByExactName(t *testing.T) {
	svc, conn := newTestService(t, nil)
	ctx := context.Background()

	b1 := mustCreate(t, svc, "Good Omens", "978-0-552-13703-4", 1990, "Terry Pratchett", "Neil  Gaiman")
	b2 := mustCreate(t, svc, "Mort", "9780552131063", 1987, "Terry Pratchett")

	assert.True(t, b1.Available)
	assert.Equal(t, "2024-03-01", b1.CreatedAt.Format(DateLayout))
	assert.Equal(t, "9780552137034", b1.ISBN)
	require.Len(t, b1.Authors, 2)
	assert.Equal(t, "Neil Gaiman", b1.Authors[1].Name)
	require.Len(t, b2.Authors, 1)
	assert.Equal(t, b1.Authors[0].ID, b2.Authors[0].ID)

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&n))
	assert.Equal(t, 2, n)

	got, err := svc.GetBook(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, b1.Title, got.Title)
	assert.Len(t, got.Authors, 2)
}

func Test_CreateBook_RejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	mustCreate(t, svc, "Dune", "9780441172719", 1965, "Frank Herbert")

	_, err := svc.CreateBook(ctx, CreateBookRequest{Title: "Dune", ISBN: "9780000000002", PublicationYear: 1965})
	assert.True(t, apierr.Is(err, apierr.CodeDuplicateTitle), "got %v", err)

	// ISBN が同じなら書名・著者が違っても重複
	for _, isbn := range []string{"9780441172719", "978-0-441-17271-9"} {
		_, err = svc.CreateBook(ctx, CreateBookRequest{Title: "Another", ISBN: isbn, PublicationYear: 2000, Authors: []string{"Someone"}})
		assert.True(t, apierr.Is(err, apierr.CodeDuplicateISBN), "isbn %s: got %v", isbn, err)
	}

	// 書名も ISBN も同じなら ISBN の重複として扱う
	_, err = svc.CreateBook(ctx, CreateBookRequest{Title: "Dune", ISBN: "9780441172719", PublicationYear: 1965})
	assert.True(t, apierr.Is(err, apierr.CodeDuplicateISBN), "got %v", err)
}

func Test_CreateBook_DuplicateRollsBackAuthors(t *testing.T) {
	svc, conn := newTestService(t, nil)
	mustCreate(t, svc, "Dune", "9780441172719", 1965)

	_, err := svc.CreateBook(context.Background(), CreateBookRequest{
		Title: "Dune", ISBN: "9780000000002", PublicationYear: 1965, Authors: []string{"Nobody"},
	})
	require.Error(t, err)

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&n))
	assert.Zero(t, n)
}

func Test_CreateBook_Validation(t *testing.T) {
	svc, _ := newTestService(t, nil)

	for _, tc := range []struct {
		name string
		in   CreateBookRequest
	}{
		{"blank title", CreateBookRequest{Title: "   ", ISBN: "9780441172719", PublicationYear: 1965}},
		{"short isbn", CreateBookRequest{Title: "Dune", ISBN: "12345", PublicationYear: 1965}},
		{"letters in isbn", CreateBookRequest{Title: "Dune", ISBN: "97804411727AB", PublicationYear: 1965}},
		{"year", CreateBookRequest{Title: "Dune", ISBN: "9780441172719", PublicationYear: -1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBook(context.Background(), tc.in)
			assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument), "got %v", err)
		})
	}
}

func Test_mapDuplicate_UsesUniqueIndexAsGuard(t *testing.T) {
	conn := dbtest.Open(t)
	store := NewStore(conn, db.DriverSQLite)
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, &Book{ID: "B1", Title: "Dune", ISBN: "9780441172719", PublicationYear: 1965, CreatedAt: created}))

	err := store.Insert(ctx, &Book{ID: "B2", Title: "Other", ISBN: "9780441172719", PublicationYear: 1965, CreatedAt: created})
	assert.True(t, apierr.Is(mapDuplicate(err), apierr.CodeDuplicateISBN), "got %v", err)

	err = store.Insert(ctx, &Book{ID: "B3", Title: "Dune", ISBN: "9780000000002", PublicationYear: 1965, CreatedAt: created})
	assert.True(t, apierr.Is(mapDuplicate(err), apierr.CodeDuplicateTitle), "got %v", err)
}

func Test_ListBooks_PagesSortedByTitle(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	titles := []string{"Emma", "Beloved", "Dracula", "Atonement", "Carrie"}
	for i, title := range titles {
		mustCreate(t, svc, title, fmt.Sprintf("978000000000%d", i), 1900+i)
	}

	page, err := svc.ListBooks(ctx, paging.Request{Page: 0, Size: 2, Sort: "title", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Atonement", page.Items[0].Title)
	assert.Equal(t, "Beloved", page.Items[1].Title)

	last, err := svc.ListBooks(ctx, paging.Request{Page: 2, Size: 2, Sort: "title", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "Emma", last.Items[0].Title)

	byYear, err := svc.ListBooks(ctx, paging.Request{Page: 0, Size: 10, Sort: "publicationYear", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Carrie", byYear.Items[0].Title)

	_, err = svc.ListBooks(ctx, paging.Request{Size: 10, Sort: "availability"})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}

func Test_Search(t *testing.T) {
	svc, conn := newTestService(t, nil)
	ctx := context.Background()
	dune := mustCreate(t, svc, "Dune", "9780441172719", 1965, "Frank Herbert")
	mustCreate(t, svc, "Dune Messiah", "9780441172696", 1969, "Frank Herbert")
	mustCreate(t, svc, "Solaris", "9780156027601", 1961, "Stanisław Lem")
	_, err := conn.Exec(`UPDATE books SET availability = 0 WHERE book_id = ?`, dune.ID)
	require.NoError(t, err)
	def := ListDefaults

	page, err := svc.Search(ctx, SearchBy{Kind: SearchByISBN, Value: "9780441172719"}, def)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, dune.ID, page.Items[0].ID)

	page, err = svc.Search(ctx, SearchBy{Kind: SearchByTitle, Value: "Dune Messiah"}, def)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", page.Items[0].Title)

	_, err = svc.Search(ctx, SearchBy{Kind: SearchByTitle, Value: "Dun"}, def)
	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))

	page, err = svc.Search(ctx, SearchBy{Kind: SearchByAuthor, Value: "Frank Herbert"}, def)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	yes := true
	page, err = svc.Search(ctx, SearchBy{Kind: SearchByAuthor, Value: "Frank Herbert", Available: &yes}, def)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Dune Messiah", page.Items[0].Title)
	assert.Equal(t, "Frank Herbert", page.Items[0].Authors[0].Name)

	page, err = svc.Search(ctx, SearchBy{Kind: SearchByQuery, Value: "une"}, def)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.Search(ctx, SearchBy{Kind: SearchByQuery, Value: "0156"}, def)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Solaris", page.Items[0].Title)

	page, err = svc.Search(ctx, SearchBy{Kind: SearchByAuthor, Value: "Nobody"}, def)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func Test_UpdateBook(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	b := mustCreate(t, svc, "Dune", "9780441172719", 1965, "Frank Herbert")
	mustCreate(t, svc, "Solaris", "9780156027601", 1961)

	title, year := "Dune (Deluxe)", 2019
	authors := []string{"Frank Herbert", "Brian Herbert"}
	got, err := svc.UpdateBook(ctx, b.ID, UpdateBookRequest{Title: &title, PublicationYear: &year, Authors: &authors})
	require.NoError(t, err)
	assert.Equal(t, "Dune (Deluxe)", got.Title)
	assert.Equal(t, 2019, got.PublicationYear)
	assert.Equal(t, b.ISBN, got.ISBN)
	assert.Len(t, got.Authors, 2)

	// 自分自身の書名は重複扱いしない
	_, err = svc.UpdateBook(ctx, b.ID, UpdateBookRequest{Title: &title})
	assert.NoError(t, err)

	taken := "Solaris"
	_, err = svc.UpdateBook(ctx, b.ID, UpdateBookRequest{Title: &taken})
	assert.True(t, apierr.Is(err, apierr.CodeDuplicateTitle))

	no := false
	_, err = svc.UpdateBook(ctx, b.ID, UpdateBookRequest{Available: &no})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))

	_, err = svc.UpdateBook(ctx, "missing", UpdateBookRequest{Title: &taken})
	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))
}

func Test_DeleteBook_RefusedWhileOnLoan(t *testing.T) {
	svc, conn := newTestService(t, nil)
	ctx := context.Background()
	b := mustCreate(t, svc, "Dune", "9780441172719", 1965)
	_, err := conn.Exec(`INSERT INTO customers (customer_id, name, email, has_privileges) VALUES ('C1', 'Alice', 'a@example.com', 1)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO transactions (transaction_id, customer_id, book_id, borrow_date, due_date) VALUES ('T1', 'C1', ?, '2024-03-01', '2024-03-15')`, b.ID)
	require.NoError(t, err)

	err = svc.DeleteBook(ctx, b.ID)
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	_, err = conn.Exec(`UPDATE transactions SET return_date = '2024-03-05' WHERE transaction_id = 'T1'`)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBook(ctx, b.ID))

	_, err = svc.GetBook(ctx, b.ID)
	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))
	err = svc.DeleteBook(ctx, b.ID)
	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))
}

func Test_Cache_EvictedOnWrites(t *testing.T) {
	c := cache.New(cache.NewMemory(), time.Minute)
	svc, conn := newTestService(t, c)
	ctx := context.Background()
	b := mustCreate(t, svc, "Dune", "9780441172719", 1965)
	assert.Equal(t, time.Minute, svc.CacheTTL())

	got, err := svc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, got.Available)

	// キャッシュを通らない変更はすぐには見えない
	_, err = conn.Exec(`UPDATE books SET availability = 0 WHERE book_id = ?`, b.ID)
	require.NoError(t, err)
	got, err = svc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)

	svc.EvictBook(ctx, b.ID)
	got, err = svc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)

	title := "Dune (Deluxe)"
	_, err = svc.UpdateBook(ctx, b.ID, UpdateBookRequest{Title: &title})
	require.NoError(t, err)
	got, err = svc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)

	_, err = svc.Search(ctx, SearchBy{Kind: SearchByTitle, Value: "Dune"}, ListDefaults)
	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))
}
