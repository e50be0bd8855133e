package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/db"
)

// Account は職員のログインアカウント。利用者 (customers) とは別物。
type Account struct {
	ID           string
	PasswordHash string
	Role         string
	IsDisabled   bool
	CreatedAt    time.Time
}

type AccountStore interface {
	// 見つからなければ nil, nil
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id string) (bool, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) AccountStore {
	return &Store{db: conn}
}

func (s *Store) GetByID(ctx context.Context, id string) (*Account, error) {
	const q = `
	SELECT id, password_hash, role, is_disabled, created_at
	FROM auth_accounts
	WHERE id = ?`

	var (
		a        Account
		disabled int
	)
	err := s.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.PasswordHash, &a.Role, &disabled, &a.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}
	a.IsDisabled = disabled == 1
	return &a, nil
}

// Create は同時登録で一意制約に当たった場合も DUPLICATE_NAME にする。
func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
	INSERT INTO auth_accounts (id, password_hash, role, is_disabled, created_at)
	VALUES (?, ?, ?, ?, ?)`

	disabled := 0
	if a.IsDisabled {
		disabled = 1
	}
	_, err := s.db.ExecContext(ctx, q, a.ID, a.PasswordHash, a.Role, disabled, a.CreatedAt.UTC())
	if db.IsDuplicateKey(err) {
		return apierr.New(apierr.CodeDuplicateName, "account already exists")
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM auth_accounts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
