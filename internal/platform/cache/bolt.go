package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var bucketName = []byte("cache")

type boltEntry struct {
	Value     []byte `json:"value"`
	ExpiresAt int64  `json:"expires_at"` // unix nano, 0 = 無期限
}

type boltStore struct {
	db  *bolt.DB
	now func() time.Time
}

var _ Store = &boltStore{}

// NewBolt はファイルに永続化するキャッシュを開く。再起動後もエントリが残る。
func NewBolt(path string) (Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &boltStore{db: db, now: time.Now}, nil
}

func (b *boltStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var (
		e     boltEntry
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &e)
	})
	if err != nil || !found {
		return nil, false, err
	}
	if e.ExpiresAt != 0 && b.now().UnixNano() >= e.ExpiresAt {
		return nil, false, b.Delete(context.Background(), key)
	}
	return e.Value, true, nil
}

func (b *boltStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := boltEntry{Value: val}
	if ttl > 0 {
		e.ExpiresAt = b.now().Add(ttl).UnixNano()
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), raw)
	})
}

func (b *boltStore) Delete(_ context.Context, keys ...string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketName)
		for _, k := range keys {
			if err := bk.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *boltStore) Close() error { return b.db.Close() }
