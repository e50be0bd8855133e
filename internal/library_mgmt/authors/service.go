package authors

import (
	"context"
	"database/sql"
	"log"

	ulid "github.com/oklog/ulid/v2"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/paging"
	"library-backend/internal/platform/textnorm"
)

type Service struct {
	store *Store
	newID func() string
}

func NewService(conn *sql.DB, driver string) *Service {
	return &Service{store: NewStore(conn, driver), newID: func() string { return ulid.Make().String() }}
}

var authorSorts = paging.Sorts{
	"name":       "a.name",
	"book_count": "book_count",
	"bookCount":  "book_count",
}

var ListDefaults = paging.Request{Page: 0, Size: 10, Sort: "name", Order: "asc"}

// POST /authors
func (s *Service) CreateAuthor(ctx context.Context, in CreateAuthorRequest) (Author, error) {
	name := textnorm.Name(in.Name)
	if name == "" {
		return Author{}, apierr.ErrInvalid("name is required")
	}
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return Author{}, err
	}

	a := Author{ID: s.newID(), Name: name, Bio: in.Bio}
	if err := s.store.Insert(ctx, a); err != nil {
		return Author{}, mapDuplicate(err)
	}
	log.Printf("[INFO] author %s created: name=%q", a.ID, a.Name)
	return s.store.GetByID(ctx, a.ID)
}

func (s *Service) GetAuthor(ctx context.Context, id string) (Author, error) {
	return s.store.GetByID(ctx, id)
}

// GET /authors/by-name/:name 完全一致のみ
func (s *Service) GetAuthorByName(ctx context.Context, name string) (Author, error) {
	return s.store.GetByName(ctx, textnorm.Name(name))
}

func (s *Service) ListAuthors(ctx context.Context, p paging.Request) (paging.Page[Author], error) {
	orderBy, err := authorSorts.OrderBy(p)
	if err != nil {
		return paging.Page[Author]{}, err
	}
	items, total, err := s.store.List(ctx, orderBy, p.Size, p.Offset())
	if err != nil {
		return paging.Page[Author]{}, err
	}
	return paging.New(items, total, p), nil
}

func (s *Service) UpdateAuthor(ctx context.Context, id string, in UpdateAuthorRequest) (Author, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Author{}, err
	}
	if in.Name != nil {
		name := textnorm.Name(*in.Name)
		if name == "" {
			return Author{}, apierr.ErrInvalid("name must not be empty")
		}
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return Author{}, err
		}
		a.Name = name
	}
	if in.Bio != nil {
		a.Bio = in.Bio
	}

	if err := s.store.Update(ctx, a); err != nil {
		return Author{}, mapDuplicate(err)
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) DeleteAuthor(ctx context.Context, id string) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.New(apierr.CodeAuthorNotFound, "author not found")
	}
	log.Printf("[INFO] author %s deleted", id)
	return nil
}

// ensureNameFree は書き込み前の確認。競合時は UNIQUE 制約が DUPLICATE_NAME を返す。
func (s *Service) ensureNameFree(ctx context.Context, name, selfID string) error {
	other, err := s.store.GetByName(ctx, name)
	switch {
	case err == nil:
		if other.ID != selfID {
			return apierr.New(apierr.CodeDuplicateName, "an author with this name already exists")
		}
		return nil
	case apierr.Is(err, apierr.CodeAuthorNotFound):
		return nil
	default:
		return err
	}
}

func mapDuplicate(err error) error {
	if db.IsDuplicateKey(err) {
		return apierr.New(apierr.CodeDuplicateName, "an author with this name already exists")
	}
	return err
}
