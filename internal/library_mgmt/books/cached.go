package books

import (
	"context"

	"library-backend/internal/platform/cache"
)

// cachedReader は Reader の前に look-aside キャッシュを置く。
// 見つからなかった結果（エラー）はキャッシュしない。
type cachedReader struct {
	next  Reader
	cache *cache.Cache
}

func newCachedReader(next Reader, c *cache.Cache) Reader {
	if c == nil {
		return next
	}
	return &cachedReader{next: next, cache: c}
}

func idKey(id string) string       { return "book:id:" + id }
func titleKey(title string) string { return "book:title:" + title }
func isbnKey(isbn string) string   { return "book:isbn:" + isbn }

// cacheKeys は b を指すキャッシュキー全部。
func cacheKeys(b Book) []string {
	return []string{idKey(b.ID), titleKey(b.Title), isbnKey(b.ISBN)}
}

func (r *cachedReader) GetByID(ctx context.Context, id string) (Book, error) {
	return cache.Fetch(ctx, r.cache, idKey(id), func(ctx context.Context) (Book, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *cachedReader) GetByTitle(ctx context.Context, title string) (Book, error) {
	return cache.Fetch(ctx, r.cache, titleKey(title), func(ctx context.Context) (Book, error) {
		return r.next.GetByTitle(ctx, title)
	})
}

func (r *cachedReader) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return cache.Fetch(ctx, r.cache, isbnKey(isbn), func(ctx context.Context) (Book, error) {
		return r.next.GetByISBN(ctx, isbn)
	})
}
