package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/platform/apierr"
)

type Service struct {
	store  AccountStore
	issuer *Issuer
	now    func() time.Time
}

func NewService(db *sql.DB, issuer *Issuer) *Service {
	return &Service{store: NewStore(db), issuer: issuer, now: time.Now}
}

type AuthService interface {
	Login(ctx context.Context, id, password string) (string, error)
	Register(ctx context.Context, id, password, role string) error
	Delete(ctx context.Context, id string) error
}

var errAuthFailed = apierr.New(apierr.CodeUnauthorized, "invalid id or password")

func (s *Service) Login(ctx context.Context, id, password string) (string, error) {
	acct, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if acct == nil || acct.IsDisabled {
		return "", errAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", errAuthFailed
	}

	return s.issuer.Issue(acct.ID, acct.Role)
}

func (s *Service) Register(ctx context.Context, id, password, role string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 64 {
		return apierr.ErrInvalid("id must be 1..64 characters")
	}
	if len(password) < 8 {
		return apierr.ErrInvalid("password must be at least 8 characters")
	}
	switch role {
	case "":
		role = RoleLibrarian
	case RoleAdmin, RoleLibrarian:
	default:
		return apierr.ErrInvalid("role must be admin or librarian")
	}

	exists, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if exists != nil {
		return apierr.New(apierr.CodeDuplicateName, "account already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.store.Create(ctx, &Account{
		ID:           id,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now(),
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.ErrNotFound("account not found")
	}
	return nil
}
