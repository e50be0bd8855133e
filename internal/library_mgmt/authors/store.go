package authors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"library-backend/internal/platform/apierr"
)

type Store struct{ db *sqlx.DB }

func NewStore(conn *sql.DB, driver string) *Store {
	return &Store{db: sqlx.NewDb(conn, driver)}
}

const selectAuthor = `
	SELECT a.author_id, a.name, a.bio,
	(SELECT COUNT(*) FROM book_authors ba WHERE ba.author_id = a.author_id) AS book_count
	FROM authors a`

func (s *Store) get(ctx context.Context, where string, arg any) (Author, error) {
	var r authorRow
	if err := s.db.GetContext(ctx, &r, selectAuthor+` WHERE `+where, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Author{}, apierr.New(apierr.CodeAuthorNotFound, "author not found")
		}
		return Author{}, err
	}
	return r.toModel(), nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Author, error) {
	return s.get(ctx, `a.author_id = ?`, id)
}

func (s *Store) GetByName(ctx context.Context, name string) (Author, error) {
	return s.get(ctx, `a.name = ?`, name)
}

// orderBy はホワイトリスト済みの句
func (s *Store) List(ctx context.Context, orderBy string, limit, offset int) ([]Author, int64, error) {
	var total int64
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM authors`); err != nil {
		return nil, 0, err
	}
	if total == 0 || offset < 0 || offset >= int(total) {
		return []Author{}, total, nil
	}

	q := fmt.Sprintf(`%s ORDER BY %s, a.author_id ASC LIMIT ? OFFSET ?`, selectAuthor, orderBy)
	var rows []authorRow
	if err := s.db.SelectContext(ctx, &rows, q, limit, offset); err != nil {
		return nil, 0, err
	}
	out := make([]Author, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, total, nil
}

func (s *Store) Insert(ctx context.Context, a Author) error {
	const q = `INSERT INTO authors (author_id, name, bio) VALUES (:author_id, :name, :bio)`
	_, err := s.db.NamedExecContext(ctx, q, authorRow{AuthorID: a.ID, Name: a.Name, Bio: toNull(a.Bio)})
	return err
}

func (s *Store) Update(ctx context.Context, a Author) error {
	const q = `UPDATE authors SET name = :name, bio = :bio WHERE author_id = :author_id`
	_, err := s.db.NamedExecContext(ctx, q, authorRow{AuthorID: a.ID, Name: a.Name, Bio: toNull(a.Bio)})
	return err
}

// Delete は book_authors の紐付けも ON DELETE CASCADE で消える。
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE author_id = ?`, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

func toNull(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
