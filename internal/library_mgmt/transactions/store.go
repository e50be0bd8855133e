package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/db"
)

// Repository は貸出処理が使う永続化ポート。
type Repository interface {
	GetBook(ctx context.Context, bookID string) (Book, error)
	GetCustomer(ctx context.Context, customerID string) (Customer, error)

	// ReserveBook は availability=1 の本だけを 0 にする。更新できたら true。
	ReserveBook(ctx context.Context, bookID string) (bool, error)
	ReleaseBook(ctx context.Context, bookID string) error

	InsertTransaction(ctx context.Context, t *Transaction) error
	GetTransaction(ctx context.Context, id string) (Transaction, error)
	MarkReturned(ctx context.Context, id string, returnDate time.Time, receivedBy string) (bool, error)

	FindOpenTransactionsForBook(ctx context.Context, bookID string) ([]Transaction, error)
	TransactionsForBook(ctx context.Context, bookID string) ([]Transaction, error)
	PagedTransactionsForCustomer(ctx context.Context, customerID, orderBy string, limit, offset int) ([]Transaction, int64, error)
	ListOpenTransactions(ctx context.Context) ([]Transaction, error)
	ListOpenWithNames(ctx context.Context) ([]OverdueEntry, error)

	// WithinTx は fn に渡す Repository の操作をひとつの DB トランザクションで実行する。
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}

type Store struct {
	conn *sql.DB
	q    db.DBTX
	inTx bool
}

var _ Repository = &Store{}

func NewStore(conn *sql.DB) *Store { return &Store{conn: conn, q: conn} }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &Store{conn: s.conn, q: tx, inTx: true})
	})
}

// ===== books / customers =====

func (s *Store) GetBook(ctx context.Context, bookID string) (Book, error) {
	const q = `SELECT book_id, title, availability FROM books WHERE book_id = ?`
	var b Book
	if err := s.q.QueryRowContext(ctx, q, bookID).Scan(&b.ID, &b.Title, &b.Available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, apierr.New(apierr.CodeBookNotFound, "book not found")
		}
		return Book{}, err
	}
	return b, nil
}

func (s *Store) GetCustomer(ctx context.Context, customerID string) (Customer, error) {
	const q = `SELECT customer_id, name, has_privileges FROM customers WHERE customer_id = ?`
	var c Customer
	if err := s.q.QueryRowContext(ctx, q, customerID).Scan(&c.ID, &c.Name, &c.Privileges); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, apierr.New(apierr.CodeCustomerNotFound, "customer not found")
		}
		return Customer{}, err
	}
	return c, nil
}

func (s *Store) ReserveBook(ctx context.Context, bookID string) (bool, error) {
	const q = `UPDATE books SET availability = 0 WHERE book_id = ? AND availability = 1`
	res, err := s.q.ExecContext(ctx, q, bookID)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

func (s *Store) ReleaseBook(ctx context.Context, bookID string) error {
	const q = `UPDATE books SET availability = 1 WHERE book_id = ?`
	_, err := s.q.ExecContext(ctx, q, bookID)
	return err
}

// ===== transactions =====

const txColumns = `transaction_id, customer_id, book_id, borrow_date, due_date, return_date, lent_by, received_by`

type scanner interface{ Scan(dest ...any) error }

func scanTransaction(sc scanner) (Transaction, error) {
	var t Transaction
	if err := sc.Scan(&t.ID, &t.CustomerID, &t.BookID, &t.BorrowDate, &t.DueDate, &t.ReturnDate, &t.LentBy, &t.ReceivedBy); err != nil {
		return Transaction{}, err
	}
	t.BorrowDate = DateOf(t.BorrowDate)
	t.DueDate = DateOf(t.DueDate)
	if t.ReturnDate.Valid {
		t.ReturnDate.Time = DateOf(t.ReturnDate.Time)
	}
	return t, nil
}

func (s *Store) queryTransactions(ctx context.Context, q string, args ...any) ([]Transaction, error) {
	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0, 8)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) InsertTransaction(ctx context.Context, t *Transaction) error {
	const q = `
	INSERT INTO transactions
	(transaction_id, customer_id, book_id, borrow_date, due_date, return_date, lent_by, received_by)
	VALUES
	(?, ?, ?, ?, ?, NULL, ?, NULL)`

	_, err := s.q.ExecContext(ctx, q,
		t.ID,
		t.CustomerID,
		t.BookID,
		t.BorrowDate.Format(DateLayout),
		t.DueDate.Format(DateLayout),
		nullStrOrNil(t.LentBy),
	)
	return err
}

func (s *Store) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	q := `SELECT ` + txColumns + ` FROM transactions WHERE transaction_id = ?`
	t, err := scanTransaction(s.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Transaction{}, apierr.New(apierr.CodeTransactionNotFound, "transaction not found")
		}
		return Transaction{}, err
	}
	return t, nil
}

// MarkReturned は未返却のときだけ return_date を入れる。既に返却済みなら false。
func (s *Store) MarkReturned(ctx context.Context, id string, returnDate time.Time, receivedBy string) (bool, error) {
	const q = `
	UPDATE transactions
	SET return_date = ?, received_by = ?
	WHERE transaction_id = ?
	AND return_date IS NULL`

	res, err := s.q.ExecContext(ctx, q, returnDate.Format(DateLayout), strOrNil(receivedBy), id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

func (s *Store) FindOpenTransactionsForBook(ctx context.Context, bookID string) ([]Transaction, error) {
	q := `SELECT ` + txColumns + ` FROM transactions WHERE book_id = ? AND return_date IS NULL`
	return s.queryTransactions(ctx, q, bookID)
}

func (s *Store) TransactionsForBook(ctx context.Context, bookID string) ([]Transaction, error) {
	q := `SELECT ` + txColumns + ` FROM transactions WHERE book_id = ? ORDER BY borrow_date, transaction_id`
	return s.queryTransactions(ctx, q, bookID)
}

// orderBy は呼び出し側でホワイトリスト済みの句（例: "borrow_date ASC"）
// 件数と明細は同じ読み取り専用トランザクションで取る。
func (s *Store) PagedTransactionsForCustomer(ctx context.Context, customerID, orderBy string, limit, offset int) ([]Transaction, int64, error) {
	if !s.inTx {
		var (
			items []Transaction
			total int64
		)
		err := db.ReadOnly(ctx, s.conn, func(ctx context.Context, tx db.DBTX) error {
			var err error
			items, total, err = (&Store{conn: s.conn, q: tx, inTx: true}).PagedTransactionsForCustomer(ctx, customerID, orderBy, limit, offset)
			return err
		})
		if err != nil {
			return nil, 0, err
		}
		return items, total, nil
	}

	var total int64
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE customer_id = ?`, customerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || offset < 0 || offset >= int(total) {
		return []Transaction{}, total, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + txColumns + ` FROM transactions WHERE customer_id = ?`)
	sb.WriteString(fmt.Sprintf(` ORDER BY %s, transaction_id ASC`, orderBy))
	sb.WriteString(` LIMIT ? OFFSET ?`)

	items, err := s.queryTransactions(ctx, sb.String(), customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) ListOpenTransactions(ctx context.Context) ([]Transaction, error) {
	q := `SELECT ` + txColumns + ` FROM transactions WHERE return_date IS NULL ORDER BY due_date, transaction_id`
	return s.queryTransactions(ctx, q)
}

func (s *Store) ListOpenWithNames(ctx context.Context) ([]OverdueEntry, error) {
	const q = `
	SELECT
	t.transaction_id, t.customer_id, t.book_id, t.borrow_date, t.due_date, t.return_date, t.lent_by, t.received_by,
	b.title, c.name
	FROM transactions t
	JOIN books b ON b.book_id = t.book_id
	JOIN customers c ON c.customer_id = t.customer_id
	WHERE t.return_date IS NULL
	ORDER BY t.due_date, t.transaction_id`

	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverdueEntry
	for rows.Next() {
		var e OverdueEntry
		t := &e.Transaction
		if err := rows.Scan(
			&t.ID, &t.CustomerID, &t.BookID, &t.BorrowDate, &t.DueDate, &t.ReturnDate, &t.LentBy, &t.ReceivedBy,
			&e.BookTitle, &e.CustomerName,
		); err != nil {
			return nil, err
		}
		t.BorrowDate = DateOf(t.BorrowDate)
		t.DueDate = DateOf(t.DueDate)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// helpers

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}

func strOrNil(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
