package transactions

import (
	"context"

	"library-backend/internal/platform/apierr"
)

// tryReserve は在庫ゲート: 貸出可能な本を条件付き UPDATE 1回で貸出中にする。
// 2つの借用が同時に来ても、availability=1 を 0 にできるのは片方だけ。
func tryReserve(ctx context.Context, r Repository, bookID string) (Book, error) {
	ok, err := r.ReserveBook(ctx, bookID)
	if err != nil {
		return Book{}, err
	}
	if !ok {
		// 更新0件: 本が無いのか、貸出中なのかを区別する
		if _, err := r.GetBook(ctx, bookID); err != nil {
			return Book{}, err
		}
		return Book{}, apierr.New(apierr.CodeNotAvailable, "book is not available")
	}
	return r.GetBook(ctx, bookID)
}

// release は本を貸出可能に戻す。
func release(ctx context.Context, r Repository, bookID string) (Book, error) {
	if err := r.ReleaseBook(ctx, bookID); err != nil {
		return Book{}, err
	}
	return r.GetBook(ctx, bookID)
}
