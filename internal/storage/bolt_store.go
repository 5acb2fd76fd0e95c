package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	entryBucket      = "seen_entries"
	expiryValueBytes = 8
)

// boltStore implements Store on a single bbolt bucket mapping entry ID to
// expiry (big-endian unix seconds).
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	entryTTL        time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(entryBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		entryTTL:        opts.EntryTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenEntry reports whether id was marked and has not expired. Expired keys
// are left for the periodic sweep.
func (b *boltStore) SeenEntry(id string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return false, err
	}

	var seen bool
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket, err := seenBucket(tx)
		if err != nil {
			return err
		}
		expiry, ok := decodeExpiry(bucket.Get([]byte(id)))
		seen = ok && expiry.After(now)
		return nil
	})
	return seen, err
}

// MarkEntry records id as seen until the TTL elapses.
func (b *boltStore) MarkEntry(id string) error {
	return b.MarkEntries([]string{id})
}

// MarkEntries records every id in a single transaction.
func (b *boltStore) MarkEntries(ids []string) error {
	if b == nil || b.db == nil || len(ids) == 0 {
		return nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	value := make([]byte, expiryValueBytes)
	binary.BigEndian.PutUint64(value, uint64(now.Add(b.entryTTL).Unix()))

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := seenBucket(tx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if id == "" {
				continue
			}
			if err := bucket.Put([]byte(id), value); err != nil {
				return fmt.Errorf("mark entry %s: %w", id, err)
			}
		}
		return nil
	})
}

// maybeCleanupExpired sweeps expired IDs at most once per cleanup interval.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if now.Sub(time.Unix(b.lastCleanup.Load(), 0)) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	if now.Sub(time.Unix(b.lastCleanup.Load(), 0)) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := seenBucket(tx)
		if err != nil {
			return err
		}
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			if expiry, ok := decodeExpiry(v); !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func seenBucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(entryBucket))
	if bucket == nil {
		return nil, fmt.Errorf("seen entry bucket missing")
	}
	return bucket, nil
}

func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) != expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
