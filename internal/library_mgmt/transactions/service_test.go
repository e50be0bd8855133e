package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/db/dbtest"
	"library-backend/internal/platform/paging"
)

// ---------- fixtures ----------

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type seqID struct {
	mu sync.Mutex
	n  int
}

func (s *seqID) NewULID(time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("T%03d", s.n)
}

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

type fixture struct {
	svc   *Service
	conn  *sql.DB
	clock *fakeClock
}

func newFixture(t *testing.T, policy Policy) fixture {
	t.Helper()
	conn := dbtest.Open(t)
	clock := &fakeClock{now: day("2024-01-01").Add(9 * time.Hour)}
	return fixture{
		svc:   newService(NewStore(conn), clock, &seqID{}, policy),
		conn:  conn,
		clock: clock,
	}
}

func (f fixture) seedBook(t *testing.T, id, title string) {
	t.Helper()
	_, err := f.conn.Exec(`INSERT INTO books (book_id, title, isbn, publication_year, availability, created_at) VALUES (?, ?, ?, 1965, 1, '2023-12-01')`,
		id, title, "isbn-"+id)
	require.NoError(t, err)
}

func (f fixture) seedCustomer(t *testing.T, id, name string, privileges bool) {
	t.Helper()
	_, err := f.conn.Exec(`INSERT INTO customers (customer_id, name, email, has_privileges) VALUES (?, ?, ?, ?)`,
		id, name, id+"@example.com", privileges)
	require.NoError(t, err)
}

func (f fixture) available(t *testing.T, bookID string) bool {
	t.Helper()
	var v bool
	require.NoError(t, f.conn.QueryRow(`SELECT availability FROM books WHERE book_id = ?`, bookID).Scan(&v))
	return v
}

func (f fixture) openCount(t *testing.T, bookID string) int {
	t.Helper()
	var n int
	require.NoError(t, f.conn.QueryRow(`SELECT COUNT(*) FROM transactions WHERE book_id = ? AND return_date IS NULL`, bookID).Scan(&n))
	return n
}

var defaultPolicy = Policy{LoanDays: 14, RequirePrivileges: true}

// ---------- scenarios ----------

func Test_Scenario_BorrowRejectReturnRejectAgain(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)
	f.seedCustomer(t, "C2", "Bob", true)
	ctx := context.Background()

	// 1. borrow B1 by C1
	tx, err := f.svc.CreateTransaction(ctx, NewTransaction{
		CustomerID: "C1", BookID: "B1",
		BorrowDate: ptr(day("2024-01-01")), DueDate: ptr(day("2024-01-15")),
		Actor: "librarian-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "2024-01-01", tx.BorrowDate.Format(DateLayout))
	assert.Equal(t, "2024-01-15", tx.DueDate.Format(DateLayout))
	assert.False(t, tx.ReturnDate.Valid)
	assert.False(t, f.available(t, "B1"))

	stored, err := f.svc.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, stored.ID)
	assert.Equal(t, "librarian-1", stored.LentBy.String)

	// 2. C2 cannot borrow B1 while it is open
	_, err = f.svc.Borrow(ctx, "C2", "B1", "librarian-1")
	assert.True(t, apierr.Is(err, apierr.CodeNotAvailable), "got %v", err)
	assert.Equal(t, 1, f.openCount(t, "B1"))

	// 3. return B1
	f.clock.now = day("2024-01-10").Add(15 * time.Hour)
	returned, err := f.svc.ReturnBook(ctx, "B1", "librarian-2")
	require.NoError(t, err)
	assert.Equal(t, tx.ID, returned.ID)
	assert.True(t, f.available(t, "B1"))

	stored, err = f.svc.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	require.True(t, stored.ReturnDate.Valid)
	assert.Equal(t, "2024-01-10", stored.ReturnDate.Time.Format(DateLayout))
	assert.Equal(t, "librarian-2", stored.ReceivedBy.String)

	// 4. no open transaction any more
	_, err = f.svc.ReturnBook(ctx, "B1", "librarian-2")
	assert.True(t, apierr.Is(err, apierr.CodeNoOpenTransaction), "got %v", err)
}

func Test_CreateTransaction_Fails_WhenDueDatePrecedesBorrowDate(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)

	_, err := f.svc.CreateTransaction(context.Background(), NewTransaction{
		CustomerID: "C1", BookID: "B1",
		BorrowDate: ptr(day("2024-02-01")), DueDate: ptr(day("2024-01-01")),
	})

	assert.True(t, apierr.Is(err, apierr.CodeInvalidDateRange))
	assert.True(t, f.available(t, "B1"))
}

func Test_CreateTransaction_Fails_WhenDatesMissing(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	ctx := context.Background()

	_, err := f.svc.CreateTransaction(ctx, NewTransaction{CustomerID: "C1", BookID: "B1", DueDate: ptr(day("2024-01-01"))})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidDateRange))

	_, err = f.svc.CreateTransaction(ctx, NewTransaction{CustomerID: "C1", BookID: "B1", BorrowDate: ptr(day("2024-01-01"))})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidDateRange))
}

func Test_CreateTransaction_Succeeds_WhenDueDateEqualsBorrowDate(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)

	tx, err := f.svc.CreateTransaction(context.Background(), NewTransaction{
		CustomerID: "C1", BookID: "B1",
		BorrowDate: ptr(day("2024-03-03")), DueDate: ptr(day("2024-03-03")),
	})

	require.NoError(t, err)
	assert.Equal(t, tx.BorrowDate, tx.DueDate)
}

func Test_CreateTransaction_ReportsMissingCustomerBeforeBook(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)
	ctx := context.Background()
	in := NewTransaction{BorrowDate: ptr(day("2024-01-01")), DueDate: ptr(day("2024-01-02"))}

	in.CustomerID, in.BookID = "nobody", "nothing"
	_, err := f.svc.CreateTransaction(ctx, in)
	assert.True(t, apierr.Is(err, apierr.CodeCustomerNotFound))

	in.CustomerID = "C1"
	_, err = f.svc.CreateTransaction(ctx, in)
	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))
}

func Test_Borrow_UsesTodayAndLoanPeriod(t *testing.T) {
	f := newFixture(t, Policy{LoanDays: 21, RequirePrivileges: true})
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)

	tx, err := f.svc.Borrow(context.Background(), "C1", "B1", "")

	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", tx.BorrowDate.Format(DateLayout))
	assert.Equal(t, "2024-01-22", tx.DueDate.Format(DateLayout))
	assert.False(t, tx.LentBy.Valid)
}

func Test_Borrow_RespectsPrivilegesPolicy(t *testing.T) {
	for _, tc := range []struct {
		name    string
		require bool
		wantErr bool
	}{
		{"enforced", true, true},
		{"not enforced", false, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, Policy{LoanDays: 14, RequirePrivileges: tc.require})
			f.seedBook(t, "B1", "Dune")
			f.seedCustomer(t, "C1", "Alice", false)

			_, err := f.svc.Borrow(context.Background(), "C1", "B1", "")

			if tc.wantErr {
				assert.True(t, apierr.Is(err, apierr.CodeNotPrivileged))
				assert.True(t, f.available(t, "B1"))
			} else {
				assert.NoError(t, err)
				assert.False(t, f.available(t, "B1"))
			}
		})
	}
}

func Test_ReturnBook_Fails_WhenBookUnknown(t *testing.T) {
	f := newFixture(t, defaultPolicy)

	_, err := f.svc.ReturnBook(context.Background(), "missing", "")

	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))
}

// ---------- properties ----------

func Test_RoundTrip_RestoresAvailability(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Borrow(ctx, "C1", "B1", "")
		require.NoError(t, err)
		assert.False(t, f.available(t, "B1"))
		assert.Equal(t, 1, f.openCount(t, "B1"))

		_, err = f.svc.ReturnBook(ctx, "B1", "")
		require.NoError(t, err)
		assert.True(t, f.available(t, "B1"))
		assert.Equal(t, 0, f.openCount(t, "B1"))
	}

	all, err := f.svc.TransactionsForBook(ctx, "B1")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, tx := range all {
		assert.True(t, tx.ReturnDate.Valid)
	}
}

func Test_ConcurrentBorrows_ExactlyOneWins(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	const n = 8
	for i := 0; i < n; i++ {
		f.seedCustomer(t, fmt.Sprintf("C%d", i), fmt.Sprintf("Customer %d", i), true)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		rejected int
		others   []error
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := f.svc.Borrow(context.Background(), fmt.Sprintf("C%d", i), "B1", "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case apierr.Is(err, apierr.CodeNotAvailable):
				rejected++
			default:
				others = append(others, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	require.Empty(t, others)
	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, rejected)
	assert.Equal(t, 1, f.openCount(t, "B1"))
	assert.False(t, f.available(t, "B1"))
}

type failingInsertRepo struct{ Repository }

var errInsert = errors.New("insert failed")

func (r failingInsertRepo) InsertTransaction(context.Context, *Transaction) error { return errInsert }

func (r failingInsertRepo) WithinTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return r.Repository.WithinTx(ctx, func(ctx context.Context, inner Repository) error {
		return fn(ctx, failingInsertRepo{inner})
	})
}

func Test_CreateTransaction_RollsBackReservation_WhenInsertFails(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)
	svc := newService(failingInsertRepo{NewStore(f.conn)}, f.clock, &seqID{}, defaultPolicy)

	_, err := svc.Borrow(context.Background(), "C1", "B1", "")

	assert.ErrorIs(t, err, errInsert)
	assert.True(t, f.available(t, "B1"))
	assert.Equal(t, 0, f.openCount(t, "B1"))
}

type doubleOpenRepo struct{ Repository }

func (r doubleOpenRepo) FindOpenTransactionsForBook(ctx context.Context, bookID string) ([]Transaction, error) {
	ts, err := r.Repository.FindOpenTransactionsForBook(ctx, bookID)
	return append(ts, ts...), err
}

func (r doubleOpenRepo) WithinTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return r.Repository.WithinTx(ctx, func(ctx context.Context, inner Repository) error {
		return fn(ctx, doubleOpenRepo{inner})
	})
}

func Test_ReturnBook_Fails_WhenMoreThanOneOpenTransaction(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)
	ctx := context.Background()
	_, err := f.svc.Borrow(ctx, "C1", "B1", "")
	require.NoError(t, err)
	svc := newService(doubleOpenRepo{NewStore(f.conn)}, f.clock, &seqID{}, defaultPolicy)

	_, err = svc.ReturnBook(ctx, "B1", "")

	assert.True(t, apierr.Is(err, apierr.CodeConflict))
	assert.False(t, f.available(t, "B1"))
}

// ---------- history ----------

func Test_BorrowingHistory_EmptyForCustomerWithoutTransactions(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedCustomer(t, "C1", "Alice", true)

	page, err := f.svc.BorrowingHistory(context.Background(), "C1", HistoryDefaults)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
}

func Test_BorrowingHistory_Fails_WhenCustomerUnknown(t *testing.T) {
	f := newFixture(t, defaultPolicy)

	_, err := f.svc.BorrowingHistory(context.Background(), "nobody", HistoryDefaults)

	assert.True(t, apierr.Is(err, apierr.CodeCustomerNotFound))
}

func Test_BorrowingHistory_PagesAndSorts(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedCustomer(t, "C1", "Alice", true)
	ctx := context.Background()
	// 7 books, borrowed on descending dates so insertion order differs from date order
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("B%d", i)
		f.seedBook(t, id, "Book "+id)
		borrow := day("2024-01-20").AddDate(0, 0, -i)
		_, err := f.svc.CreateTransaction(ctx, NewTransaction{
			CustomerID: "C1", BookID: id,
			BorrowDate: ptr(borrow), DueDate: ptr(borrow.AddDate(0, 0, 14)),
		})
		require.NoError(t, err)
	}

	first, err := f.svc.BorrowingHistory(ctx, "C1", HistoryDefaults)
	require.NoError(t, err)
	assert.Equal(t, int64(7), first.Total)
	assert.Equal(t, 2, first.TotalPages)
	require.Len(t, first.Items, 5)
	assert.Equal(t, "2024-01-14", first.Items[0].BorrowDate.Format(DateLayout))
	for i := 1; i < len(first.Items); i++ {
		assert.False(t, first.Items[i].BorrowDate.Before(first.Items[i-1].BorrowDate))
	}

	second, err := f.svc.BorrowingHistory(ctx, "C1", paging.Request{Page: 1, Size: 5, Sort: "borrowDate", Order: "asc"})
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)
	assert.Equal(t, "2024-01-20", second.Items[1].BorrowDate.Format(DateLayout))

	desc, err := f.svc.BorrowingHistory(ctx, "C1", paging.Request{Page: 0, Size: 5, Sort: "due_date", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-03", desc.Items[0].DueDate.Format(DateLayout))

	beyond, err := f.svc.BorrowingHistory(ctx, "C1", paging.Request{Page: 9, Size: 5, Sort: "borrow_date", Order: "asc"})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(7), beyond.Total)

	_, err = f.svc.BorrowingHistory(ctx, "C1", paging.Request{Size: 5, Sort: "customer_id; --"})
	assert.True(t, apierr.Is(err, apierr.CodeInvalidArgument))
}

func Test_BorrowingHistory_HugePageIsEmpty(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedCustomer(t, "C1", "Alice", true)
	f.seedBook(t, "B1", "Dune")
	ctx := context.Background()
	_, err := f.svc.Borrow(ctx, "C1", "B1", "")
	require.NoError(t, err)

	// Page*Size が int を超える位置
	page, err := f.svc.BorrowingHistory(ctx, "C1", paging.Request{Page: math.MaxInt64 / 50, Size: 100, Sort: "borrow_date", Order: "asc"})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Total)
}

// ---------- overdue ----------

func Test_IsOverdue(t *testing.T) {
	due := day("2024-01-15")
	open := Transaction{DueDate: due}
	closed := Transaction{DueDate: due, ReturnDate: sql.NullTime{Time: day("2024-01-20"), Valid: true}}

	for offset := -3; offset <= 3; offset++ {
		today := due.AddDate(0, 0, offset).Add(23 * time.Hour)
		assert.Equal(t, offset > 0, IsOverdue(open, today), "offset %d", offset)
		assert.False(t, IsOverdue(closed, today), "offset %d", offset)
	}
	assert.Equal(t, 5, DaysOverdue(open, day("2024-01-20")))
	assert.Equal(t, 0, DaysOverdue(open, due))
}

func Test_OverdueTransactions_And_Report(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedCustomer(t, "C1", "Alice", true)
	f.seedBook(t, "B1", "Dune")
	f.seedBook(t, "B2", "Solaris")
	f.seedBook(t, "B3", "Neuromancer")
	ctx := context.Background()

	create := func(bookID, borrow, due string) {
		_, err := f.svc.CreateTransaction(ctx, NewTransaction{
			CustomerID: "C1", BookID: bookID, BorrowDate: ptr(day(borrow)), DueDate: ptr(day(due)),
		})
		require.NoError(t, err)
	}
	create("B1", "2024-01-01", "2024-01-10") // overdue
	create("B2", "2024-01-01", "2024-01-20") // due on the report day
	create("B3", "2024-01-01", "2024-01-05") // returned below
	_, err := f.svc.ReturnBook(ctx, "B3", "")
	require.NoError(t, err)

	today := day("2024-01-20")
	overdue, err := f.svc.OverdueTransactions(ctx, today)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "B1", overdue[0].BookID)

	report, err := f.svc.OverdueReport(ctx, today)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "Dune", report[0].BookTitle)
	assert.Equal(t, "Alice", report[0].CustomerName)
	assert.Equal(t, 10, report[0].DaysOverdue)
}

func Test_TransactionsForBook_Fails_WhenBookUnknown(t *testing.T) {
	f := newFixture(t, defaultPolicy)

	_, err := f.svc.TransactionsForBook(context.Background(), "missing")

	assert.True(t, apierr.Is(err, apierr.CodeBookNotFound))
}

func Test_OnBookChanged_CalledAfterBorrowAndReturn(t *testing.T) {
	f := newFixture(t, defaultPolicy)
	f.seedBook(t, "B1", "Dune")
	f.seedCustomer(t, "C1", "Alice", true)
	var changed []string
	f.svc.OnBookChanged(func(_ context.Context, bookID string) { changed = append(changed, bookID) })
	ctx := context.Background()

	_, err := f.svc.Borrow(ctx, "C1", "B1", "")
	require.NoError(t, err)
	_, err = f.svc.Borrow(ctx, "C1", "B1", "")
	require.Error(t, err)
	_, err = f.svc.ReturnBook(ctx, "B1", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"B1", "B1"}, changed)
}
