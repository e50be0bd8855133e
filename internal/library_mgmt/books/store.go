package books

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/db"
)

// Reader は1冊を引く読み取りポート。キャッシュはこの単位で被せる。
type Reader interface {
	GetByID(ctx context.Context, id string) (Book, error)
	GetByTitle(ctx context.Context, title string) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
}

type Repository interface {
	Reader

	// Search は f に合う本を col 順で返す。total は LIMIT 前の件数。
	Search(ctx context.Context, f SearchBy, col string, desc bool, limit, offset int) ([]Book, int64, error)

	Insert(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id string) (bool, error)
	HasOpenTransaction(ctx context.Context, id string) (bool, error)

	// ResolveAuthor は名前が完全一致する著者を返し、無ければ newID で作る。
	ResolveAuthor(ctx context.Context, name string, newID func() string) (AuthorRef, error)
	SetAuthors(ctx context.Context, bookID string, authors []AuthorRef) error

	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}

type Store struct {
	conn    *sql.DB
	q       db.DBTX
	dialect goqu.DialectWrapper
	inTx    bool
}

var _ Repository = &Store{}

// NewStore の driver は db.DriverMySQL か db.DriverSQLite（goqu の方言名と同じ）。
func NewStore(conn *sql.DB, driver string) *Store {
	return &Store{conn: conn, q: conn, dialect: goqu.Dialect(driver)}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &Store{conn: s.conn, q: tx, dialect: s.dialect, inTx: true})
	})
}

// ===== write =====

func (s *Store) Insert(ctx context.Context, b *Book) error {
	const q = `
	INSERT INTO books
	(book_id, title, isbn, publication_year, availability, created_at)
	VALUES
	(?, ?, ?, ?, 1, ?)`

	_, err := s.q.ExecContext(ctx, q, b.ID, b.Title, b.ISBN, b.PublicationYear, b.CreatedAt.Format(DateLayout))
	return err
}

// Update は書誌情報だけを書き換える。availability には触らない。
func (s *Store) Update(ctx context.Context, b *Book) error {
	const q = `UPDATE books SET title = ?, isbn = ?, publication_year = ? WHERE book_id = ?`
	res, err := s.q.ExecContext(ctx, q, b.Title, b.ISBN, b.PublicationYear, b.ID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		// MySQL は値が変わらないと 0 を返すので存在確認し直す
		if _, err := s.GetByID(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM books WHERE book_id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

func (s *Store) HasOpenTransaction(ctx context.Context, id string) (bool, error) {
	const q = `SELECT COUNT(*) FROM transactions WHERE book_id = ? AND return_date IS NULL`
	var n int
	if err := s.q.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ===== authors =====

func (s *Store) ResolveAuthor(ctx context.Context, name string, newID func() string) (AuthorRef, error) {
	var a AuthorRef
	err := s.q.QueryRowContext(ctx, `SELECT author_id, name FROM authors WHERE name = ?`, name).Scan(&a.ID, &a.Name)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return AuthorRef{}, err
	}

	a = AuthorRef{ID: newID(), Name: name}
	if _, err := s.q.ExecContext(ctx, `INSERT INTO authors (author_id, name, bio) VALUES (?, ?, NULL)`, a.ID, a.Name); err != nil {
		if db.IsDuplicateKey(err) {
			// 同名の著者が並行して作られた
			return AuthorRef{}, apierr.ErrConflict("author was created concurrently: " + name)
		}
		return AuthorRef{}, err
	}
	return a, nil
}

func (s *Store) SetAuthors(ctx context.Context, bookID string, authors []AuthorRef) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM book_authors WHERE book_id = ?`, bookID); err != nil {
		return err
	}
	for _, a := range authors {
		if _, err := s.q.ExecContext(ctx, `INSERT INTO book_authors (book_id, author_id) VALUES (?, ?)`, bookID, a.ID); err != nil {
			return err
		}
	}
	return nil
}
