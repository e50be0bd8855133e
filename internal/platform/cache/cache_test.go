package cache

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type book struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func Test_Fetch_LoadsOnceThenServesFromCache(t *testing.T) {
	c := New(NewMemory(), time.Minute)
	ctx := context.Background()
	var calls int

	load := func(context.Context) (book, error) {
		calls++
		return book{ID: "b1", Title: "Dune"}, nil
	}

	first, err := Fetch(ctx, c, "book:id:b1", load)
	require.NoError(t, err)
	second, err := Fetch(ctx, c, "book:id:b1", load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func Test_Fetch_DoesNotCacheErrors(t *testing.T) {
	c := New(NewMemory(), time.Minute)
	ctx := context.Background()
	boom := errors.New("boom")
	var calls int

	load := func(context.Context) (book, error) {
		calls++
		return book{}, boom
	}

	_, err := Fetch(ctx, c, "k", load)
	assert.ErrorIs(t, err, boom)
	_, err = Fetch(ctx, c, "k", load)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func Test_Fetch_NilCacheAlwaysLoads(t *testing.T) {
	var c *Cache
	var calls int
	load := func(context.Context) (int, error) {
		calls++
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Fetch(context.Background(), c, "k", load)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 3, calls)
	c.Evict(context.Background(), "k")
	assert.NoError(t, c.Close())
}

func Test_Fetch_CollapsesConcurrentLoads(t *testing.T) {
	c := New(NewMemory(), time.Minute)
	var calls int32
	release := make(chan struct{})

	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, "answer", load)
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(8))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func Test_Memory_Expires(t *testing.T) {
	m := NewMemory().(*memoryStore)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func Test_Evict(t *testing.T) {
	c := New(NewMemory(), time.Minute)
	ctx := context.Background()
	_, err := Fetch(ctx, c, "k", func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	c.Evict(ctx, "k")

	v, err := Fetch(ctx, c, "k", func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func Test_Bolt_RoundTripAndExpiry(t *testing.T) {
	s, err := NewBolt(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	b := s.(*boltStore)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "book:isbn:9780441013593", []byte(`{"id":"b1"}`), time.Minute))
	raw, ok, err := b.Get(ctx, "book:isbn:9780441013593")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"b1"}`, string(raw))

	now = now.Add(2 * time.Minute)
	_, ok, err = b.Get(ctx, "book:isbn:9780441013593")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, b.Delete(ctx, "a", "missing"))
	_, ok, err = b.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_Open(t *testing.T) {
	c, err := Open("none", "", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = Open("memory", "", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, c.TTL())

	_, err = Open("redis", "", time.Minute)
	assert.Error(t, err)
}
