package transactions

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/paging"
)

// -------------- Clock & ID --------------

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// -------------- Service --------------

// Policy は貸出ルールの設定値。
type Policy struct {
	LoanDays          int
	RequirePrivileges bool
}

type Service struct {
	repo   Repository
	clock  Clock
	id     IDGen
	policy Policy

	bookChanged func(ctx context.Context, bookID string)
}

func NewService(conn *sql.DB, policy Policy) *Service {
	return newService(NewStore(conn), realClock{}, ulidGen{}, policy)
}

func newService(repo Repository, clock Clock, id IDGen, policy Policy) *Service {
	if policy.LoanDays <= 0 {
		policy.LoanDays = 14
	}
	return &Service{repo: repo, clock: clock, id: id, policy: policy}
}

func (s *Service) Today() time.Time { return DateOf(s.clock.Now()) }

// OnBookChanged は貸出・返却で availability が変わった後に呼ばれる（キャッシュ破棄用）。
func (s *Service) OnBookChanged(fn func(ctx context.Context, bookID string)) { s.bookChanged = fn }

func (s *Service) notifyBookChanged(ctx context.Context, bookID string) {
	if s.bookChanged != nil {
		s.bookChanged(ctx, bookID)
	}
}

// NewTransaction は CreateTransaction の入力。日付は nil 可（nil は INVALID_DATE_RANGE）。
type NewTransaction struct {
	CustomerID string
	BookID     string
	BorrowDate *time.Time
	DueDate    *time.Time
	Actor      string
}

// POST /transactions
func (s *Service) CreateTransaction(ctx context.Context, in NewTransaction) (Transaction, error) {
	if in.BorrowDate == nil || in.DueDate == nil {
		return Transaction{}, apierr.New(apierr.CodeInvalidDateRange, "borrow_date and due_date are required")
	}
	borrow, due := DateOf(*in.BorrowDate), DateOf(*in.DueDate)
	if due.Before(borrow) {
		return Transaction{}, apierr.New(apierr.CodeInvalidDateRange, "due_date must not precede borrow_date")
	}
	return s.open(ctx, in.CustomerID, in.BookID, borrow, due, in.Actor, false)
}

// POST /transactions/borrowBook/:customerId/:bookId
func (s *Service) Borrow(ctx context.Context, customerID, bookID, actor string) (Transaction, error) {
	today := s.Today()
	return s.open(ctx, customerID, bookID, today, today.AddDate(0, 0, s.policy.LoanDays), actor, true)
}

func (s *Service) open(ctx context.Context, customerID, bookID string, borrow, due time.Time, actor string, checkPrivileges bool) (Transaction, error) {
	if strings.TrimSpace(customerID) == "" || strings.TrimSpace(bookID) == "" {
		return Transaction{}, apierr.ErrInvalid("customer_id and book_id are required")
	}

	cust, err := s.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return Transaction{}, err
	}
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return Transaction{}, err
	}
	if checkPrivileges && s.policy.RequirePrivileges && !cust.Privileges {
		return Transaction{}, apierr.New(apierr.CodeNotPrivileged, "customer has no borrowing privileges")
	}

	t := Transaction{
		ID:         s.id.NewULID(s.clock.Now()),
		CustomerID: customerID,
		BookID:     bookID,
		BorrowDate: borrow,
		DueDate:    due,
		LentBy:     toNullString(actor),
	}

	// 在庫確保と貸出記録の INSERT は同じ Tx で行う（片方だけ残らないように）
	err = s.repo.WithinTx(ctx, func(ctx context.Context, r Repository) error {
		if _, err := tryReserve(ctx, r, bookID); err != nil {
			return err
		}
		return r.InsertTransaction(ctx, &t)
	})
	if err != nil {
		return Transaction{}, err
	}

	s.notifyBookChanged(ctx, bookID)
	log.Printf("[INFO] transaction %s opened: customer=%s book=%s due=%s by=%s",
		t.ID, customerID, bookID, due.Format(DateLayout), actor)
	return t, nil
}

// POST /transactions/returnBook/:bookId
// 返却日は今日。返した貸出の ID を返す。
func (s *Service) ReturnBook(ctx context.Context, bookID, actor string) (Transaction, error) {
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return Transaction{}, err
	}
	today := s.Today()

	var returned Transaction
	err := s.repo.WithinTx(ctx, func(ctx context.Context, r Repository) error {
		open, err := r.FindOpenTransactionsForBook(ctx, bookID)
		if err != nil {
			return err
		}
		switch len(open) {
		case 0:
			return apierr.New(apierr.CodeNoOpenTransaction, "book has no open transaction")
		case 1:
		default:
			return apierr.ErrConflict("book has more than one open transaction")
		}

		t := open[0]
		ok, err := r.MarkReturned(ctx, t.ID, today, actor)
		if err != nil {
			return err
		}
		if !ok {
			// 同時に返却された
			return apierr.New(apierr.CodeNoOpenTransaction, "book has no open transaction")
		}
		if _, err := release(ctx, r, bookID); err != nil {
			return err
		}

		t.ReturnDate = sql.NullTime{Time: today, Valid: true}
		t.ReceivedBy = toNullString(actor)
		returned = t
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	s.notifyBookChanged(ctx, bookID)
	log.Printf("[INFO] transaction %s closed: book=%s by=%s", returned.ID, bookID, actor)
	return returned, nil
}

func (s *Service) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

var historySorts = paging.Sorts{
	"borrow_date": "borrow_date",
	"borrowDate":  "borrow_date",
	"due_date":    "due_date",
	"dueDate":     "due_date",
	"return_date": "return_date",
	"returnDate":  "return_date",
}

// HistoryDefaults: page 0, size 5, borrow_date 昇順
var HistoryDefaults = paging.Request{Page: 0, Size: 5, Sort: "borrow_date", Order: "asc"}

// GET /transactions/history/:customerId
// 履歴が0件の利用者は空ページ（エラーにしない）。利用者がいなければ CUSTOMER_NOT_FOUND。
func (s *Service) BorrowingHistory(ctx context.Context, customerID string, p paging.Request) (paging.Page[Transaction], error) {
	orderBy, err := historySorts.OrderBy(p)
	if err != nil {
		return paging.Page[Transaction]{}, err
	}
	if _, err := s.repo.GetCustomer(ctx, customerID); err != nil {
		return paging.Page[Transaction]{}, err
	}

	items, total, err := s.repo.PagedTransactionsForCustomer(ctx, customerID, orderBy, p.Size, p.Offset())
	if err != nil {
		return paging.Page[Transaction]{}, err
	}
	return paging.New(items, total, p), nil
}

// GET /books/:id/transactions
func (s *Service) TransactionsForBook(ctx context.Context, bookID string) ([]Transaction, error) {
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.TransactionsForBook(ctx, bookID)
}

// OverdueTransactions は呼び出し時点の未返却一覧から延滞分だけを返す。
func (s *Service) OverdueTransactions(ctx context.Context, today time.Time) ([]Transaction, error) {
	open, err := s.repo.ListOpenTransactions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(open))
	for _, t := range open {
		if IsOverdue(t, today) {
			out = append(out, t)
		}
	}
	return out, nil
}

// OverdueReport は延滞分に書名・利用者名・延滞日数を付けて返す。
func (s *Service) OverdueReport(ctx context.Context, today time.Time) ([]OverdueEntry, error) {
	open, err := s.repo.ListOpenWithNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OverdueEntry, 0, len(open))
	for _, e := range open {
		if !IsOverdue(e.Transaction, today) {
			continue
		}
		e.DaysOverdue = DaysOverdue(e.Transaction, today)
		out = append(out, e)
	}
	return out, nil
}

// helpers

func toNullString(s string) (ns sql.NullString) {
	if strings.TrimSpace(s) != "" {
		ns.Valid, ns.String = true, s
	}
	return
}
