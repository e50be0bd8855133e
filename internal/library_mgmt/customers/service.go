package customers

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/cache"
	"library-backend/internal/platform/paging"
	"library-backend/internal/platform/textnorm"
)

type Service struct {
	store *Store
	cache *cache.Cache
	newID func() string
}

func NewService(conn *sql.DB, driver string, c *cache.Cache) *Service {
	return &Service{
		store: NewStore(conn, driver),
		cache: c,
		newID: func() string { return ulid.Make().String() },
	}
}

func (s *Service) CacheTTL() time.Duration { return s.cache.TTL() }

func cacheKey(id string) string { return "customer:id:" + id }

var customerSorts = paging.Sorts{
	"name":  "name",
	"email": "email",
}

var ListDefaults = paging.Request{Page: 0, Size: 10, Sort: "name", Order: "asc"}

// POST /customers
func (s *Service) CreateCustomer(ctx context.Context, in CreateCustomerRequest) (Customer, error) {
	c := Customer{
		ID:         s.newID(),
		Name:       textnorm.Name(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Privileges: true,
	}
	if c.Name == "" || c.Email == "" {
		return Customer{}, apierr.ErrInvalid("name and email are required")
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return Customer{}, err
	}
	log.Printf("[INFO] customer %s registered", c.ID)
	return c, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (Customer, error) {
	return cache.Fetch(ctx, s.cache, cacheKey(id), func(ctx context.Context) (Customer, error) {
		return s.store.GetByID(ctx, id)
	})
}

// ListCustomers は name があれば完全一致の検索になる。
func (s *Service) ListCustomers(ctx context.Context, name string, p paging.Request) (paging.Page[Customer], error) {
	orderBy, err := customerSorts.OrderBy(p)
	if err != nil {
		return paging.Page[Customer]{}, err
	}
	items, total, err := s.store.List(ctx, textnorm.Name(name), orderBy, p.Size, p.Offset())
	if err != nil {
		return paging.Page[Customer]{}, err
	}
	return paging.New(items, total, p), nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, in UpdateCustomerRequest) (Customer, error) {
	return s.update(ctx, id, func(c *Customer) error {
		if in.Name != nil {
			c.Name = textnorm.Name(*in.Name)
			if c.Name == "" {
				return apierr.ErrInvalid("name must not be empty")
			}
		}
		if in.Email != nil {
			c.Email = strings.TrimSpace(*in.Email)
			if c.Email == "" {
				return apierr.ErrInvalid("email must not be empty")
			}
		}
		return nil
	})
}

// UpdatePrivileges は貸出権限を付与・剥奪する。
func (s *Service) UpdatePrivileges(ctx context.Context, id string, privileges bool) (Customer, error) {
	c, err := s.update(ctx, id, func(c *Customer) error {
		c.Privileges = privileges
		return nil
	})
	if err != nil {
		return Customer{}, err
	}
	log.Printf("[INFO] customer %s privileges=%t", id, privileges)
	return c, nil
}

func (s *Service) update(ctx context.Context, id string, apply func(c *Customer) error) (Customer, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Customer{}, err
	}
	if err := apply(&c); err != nil {
		return Customer{}, err
	}
	if err := s.store.Update(ctx, c); err != nil {
		return Customer{}, err
	}
	s.cache.Evict(ctx, cacheKey(id))
	return c, nil
}

// DeleteCustomer は未返却の本がある利用者は消さない。
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	ok, err := s.store.DeleteIfIdle(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.store.GetByID(ctx, id); err != nil {
			return err
		}
		return apierr.ErrConflict("customer has an open transaction")
	}
	s.cache.Evict(ctx, cacheKey(id))
	log.Printf("[INFO] customer %s deleted", id)
	return nil
}
