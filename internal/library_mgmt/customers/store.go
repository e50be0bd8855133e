package customers

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

const customerColumns = `customer_id, name, email, has_privileges`

func (s *Store) GetByID(ctx context.Context, id string) (Customer, error) {
	var r customerRow
	q := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = ?`
	if err := s.db.GetContext(ctx, &r, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, apierr.New(apierr.CodeCustomerNotFound, "customer not found")
		}
		return Customer{}, err
	}
	return r.toModel(), nil
}

// List は name が空でなければ完全一致で絞り込む。
func (s *Store) List(ctx context.Context, name, orderBy string, limit, offset int) ([]Customer, int64, error) {
	where, args := "", []any{}
	if name != "" {
		where, args = ` WHERE name = ?`, append(args, name)
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM customers`+where, args...); err != nil {
		return nil, 0, err
	}
	if total == 0 || offset < 0 || offset >= int(total) {
		return []Customer{}, total, nil
	}

	q := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY %s, customer_id ASC LIMIT ? OFFSET ?`, customerColumns, where, orderBy)
	var rows []customerRow
	if err := s.db.SelectContext(ctx, &rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}
	out := make([]Customer, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, total, nil
}

func (s *Store) Insert(ctx context.Context, c Customer) error {
	const q = `
	INSERT INTO customers (customer_id, name, email, has_privileges)
	VALUES (:customer_id, :name, :email, :has_privileges)`
	_, err := s.db.NamedExecContext(ctx, q, c.toRow())
	return err
}

func (s *Store) Update(ctx context.Context, c Customer) error {
	const q = `
	UPDATE customers
	SET name = :name, email = :email, has_privileges = :has_privileges
	WHERE customer_id = :customer_id`
	_, err := s.db.NamedExecContext(ctx, q, c.toRow())
	return err
}

// DeleteIfIdle は未返却の貸出が無いときだけ消す。
// 消せなかった理由を区別するため、消えなかったら呼び出し側で確認する。
func (s *Store) DeleteIfIdle(ctx context.Context, id string) (bool, error) {
	const q = `
	DELETE FROM customers
	WHERE customer_id = ?
	AND NOT EXISTS (
		SELECT 1 FROM transactions t
		WHERE t.customer_id = ? AND t.return_date IS NULL
	)`
	res, err := s.db.ExecContext(ctx, q, id, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}
