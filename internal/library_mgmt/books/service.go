package books

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/cache"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/paging"
	"library-backend/internal/platform/textnorm"
)

// -------------- Clock & ID --------------

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.Monotonic(rand.Reader, 0)).String()
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -------------- Service --------------

type Service struct {
	repo   Repository
	reader Reader
	cache  *cache.Cache
	clock  Clock
	id     IDGen
}

// NewService は c が nil ならキャッシュ無しで動く。
func NewService(conn *sql.DB, driver string, c *cache.Cache) *Service {
	return newService(NewStore(conn, driver), c, realClock{}, ulidGen{})
}

func newService(repo Repository, c *cache.Cache, clock Clock, id IDGen) *Service {
	return &Service{repo: repo, reader: newCachedReader(repo, c), cache: c, clock: clock, id: id}
}

// CacheTTL は Cache-Control: max-age に使う。キャッシュ無効なら 0。
func (s *Service) CacheTTL() time.Duration { return s.cache.TTL() }

var bookSorts = paging.Sorts{
	"title":            "b.title",
	"isbn":             "b.isbn",
	"publication_year": "b.publication_year",
	"publicationYear":  "b.publication_year",
	"created_at":       "b.created_at",
	"createdAt":        "b.created_at",
}

var ListDefaults = paging.Request{Page: 0, Size: 10, Sort: "title", Order: "asc"}

// ===== Create =====

func (s *Service) CreateBook(ctx context.Context, in CreateBookRequest) (Book, error) {
	b := Book{
		Title:           textnorm.Name(in.Title),
		ISBN:            textnorm.ISBN(in.ISBN),
		PublicationYear: in.PublicationYear,
		Available:       true,
		CreatedAt:       dateOf(s.clock.Now()),
	}
	if err := validate(b); err != nil {
		return Book{}, err
	}
	names := authorNames(in.Authors)

	b.ID = s.id.NewULID(s.clock.Now())
	err := s.repo.WithinTx(ctx, func(ctx context.Context, r Repository) error {
		if err := checkDuplicates(ctx, r, b, ""); err != nil {
			return err
		}
		if err := r.Insert(ctx, &b); err != nil {
			return mapDuplicate(err)
		}
		authors, err := s.resolveAuthors(ctx, r, names)
		if err != nil {
			return err
		}
		b.Authors = authors
		return r.SetAuthors(ctx, b.ID, authors)
	})
	if err != nil {
		return Book{}, err
	}

	log.Printf("[INFO] book %s created: title=%q isbn=%s authors=%d", b.ID, b.Title, b.ISBN, len(b.Authors))
	return b, nil
}

// ===== Read =====

func (s *Service) GetBook(ctx context.Context, id string) (Book, error) {
	return s.reader.GetByID(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context, p paging.Request) (paging.Page[Book], error) {
	return s.Search(ctx, SearchBy{Kind: SearchAll}, p)
}

// Search は id / title / isbn をキャッシュ経由の1件検索、author / q をページング検索として扱う。
func (s *Service) Search(ctx context.Context, f SearchBy, p paging.Request) (paging.Page[Book], error) {
	var (
		one Book
		err error
	)
	switch f.Kind {
	case SearchByID:
		one, err = s.reader.GetByID(ctx, f.Value)
	case SearchByTitle:
		one, err = s.reader.GetByTitle(ctx, f.Value)
	case SearchByISBN:
		one, err = s.reader.GetByISBN(ctx, f.Value)
	default:
		col, desc, err := bookSorts.Resolve(p)
		if err != nil {
			return paging.Page[Book]{}, err
		}
		items, total, err := s.repo.Search(ctx, f, col, desc, p.Size, p.Offset())
		if err != nil {
			return paging.Page[Book]{}, err
		}
		return paging.New(items, total, p), nil
	}
	if err != nil {
		return paging.Page[Book]{}, err
	}
	return paging.New([]Book{one}, 1, paging.Request{Page: 0, Size: 1}), nil
}

// IsCachedLookup は Search の結果がキャッシュ対象の1件検索かどうか。
func IsCachedLookup(f SearchBy) bool {
	switch f.Kind {
	case SearchByID, SearchByTitle, SearchByISBN:
		return true
	}
	return false
}

// ===== Update =====

func (s *Service) UpdateBook(ctx context.Context, id string, in UpdateBookRequest) (Book, error) {
	if in.Available != nil {
		return Book{}, apierr.ErrInvalid("availability is changed only by borrowing and returning")
	}

	var before, after Book
	err := s.repo.WithinTx(ctx, func(ctx context.Context, r Repository) error {
		cur, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before = cur

		next := cur
		if in.Title != nil {
			next.Title = textnorm.Name(*in.Title)
		}
		if in.ISBN != nil {
			next.ISBN = textnorm.ISBN(*in.ISBN)
		}
		if in.PublicationYear != nil {
			next.PublicationYear = *in.PublicationYear
		}
		if err := validate(next); err != nil {
			return err
		}
		if err := checkDuplicates(ctx, r, next, id); err != nil {
			return err
		}
		if err := r.Update(ctx, &next); err != nil {
			return mapDuplicate(err)
		}

		if in.Authors != nil {
			authors, err := s.resolveAuthors(ctx, r, authorNames(*in.Authors))
			if err != nil {
				return err
			}
			if err := r.SetAuthors(ctx, id, authors); err != nil {
				return err
			}
		}

		after, err = r.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return Book{}, err
	}

	s.cache.Evict(ctx, append(cacheKeys(before), cacheKeys(after)...)...)
	log.Printf("[INFO] book %s updated", id)
	return after, nil
}

// ===== Delete =====

// DeleteBook は貸出中（未返却の取引がある）の本は消さない。
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	var deleted Book
	err := s.repo.WithinTx(ctx, func(ctx context.Context, r Repository) error {
		b, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		open, err := r.HasOpenTransaction(ctx, id)
		if err != nil {
			return err
		}
		if open {
			return apierr.ErrConflict("book has an open transaction")
		}
		ok, err := r.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.New(apierr.CodeBookNotFound, "book not found")
		}
		deleted = b
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Evict(ctx, cacheKeys(deleted)...)
	log.Printf("[INFO] book %s deleted", id)
	return nil
}

// EvictBook は本のキャッシュを捨てる。貸出・返却で availability が変わったときに呼ぶ。
func (s *Service) EvictBook(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.cache.Evict(ctx, idKey(id))
		return
	}
	s.cache.Evict(ctx, cacheKeys(b)...)
}

// -------------- helpers --------------

func validate(b Book) error {
	if b.Title == "" {
		return apierr.ErrInvalid("title is required")
	}
	if !textnorm.ValidISBN(b.ISBN) {
		return apierr.ErrInvalid("isbn must be 10 or 13 characters")
	}
	if b.PublicationYear <= 0 || b.PublicationYear > 9999 {
		return apierr.ErrInvalid("publication_year must be between 1 and 9999")
	}
	return nil
}

// checkDuplicates は書き込み前の確認。ISBN の重複を書名より先に判定する。
// 本当の保証は UNIQUE 制約（mapDuplicate）。
func checkDuplicates(ctx context.Context, r Repository, b Book, selfID string) error {
	if other, err := r.GetByISBN(ctx, b.ISBN); err == nil {
		if other.ID != selfID {
			return apierr.New(apierr.CodeDuplicateISBN, "a book with this isbn already exists")
		}
	} else if !apierr.Is(err, apierr.CodeBookNotFound) {
		return err
	}

	if other, err := r.GetByTitle(ctx, b.Title); err == nil {
		if other.ID != selfID {
			return apierr.New(apierr.CodeDuplicateTitle, "a book with this title already exists")
		}
	} else if !apierr.Is(err, apierr.CodeBookNotFound) {
		return err
	}
	return nil
}

func mapDuplicate(err error) error {
	switch {
	case db.DuplicateKeyOn(err, "isbn"):
		return apierr.New(apierr.CodeDuplicateISBN, "a book with this isbn already exists")
	case db.DuplicateKeyOn(err, "title"):
		return apierr.New(apierr.CodeDuplicateTitle, "a book with this title already exists")
	case db.IsDuplicateKey(err):
		return apierr.ErrConflict("duplicate key")
	}
	return err
}

// authorNames は正規化して空と重複を落とす（順序は保つ）。
func authorNames(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, n := range in {
		n = textnorm.Name(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (s *Service) resolveAuthors(ctx context.Context, r Repository, names []string) ([]AuthorRef, error) {
	out := make([]AuthorRef, 0, len(names))
	for _, n := range names {
		a, err := r.ResolveAuthor(ctx, n, func() string { return s.id.NewULID(s.clock.Now()) })
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
