package gender

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/JonMunkholm/cop30utils/internal/logging"
)

var (
	gendersBucket = []byte("genders")
	cacheFileMode = os.FileMode(0o600)
)

// CachedResolver answers from a bbolt file before falling back to next.
// Only definite answers are stored, so unknown names are retried later.
type CachedResolver struct {
	db   *bolt.DB
	next Resolver
}

// OpenCache opens (or creates) the cache file at path.
func OpenCache(path string, next Resolver) (*CachedResolver, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := bolt.Open(path, cacheFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open gender cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(gendersBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init gender cache: %w", err)
	}

	return &CachedResolver{db: db, next: next}, nil
}

// Close releases the cache file.
func (c *CachedResolver) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Resolve implements Resolver.
func (c *CachedResolver) Resolve(ctx context.Context, firstName string) (Guess, error) {
	key := cacheKey(firstName)

	if g, ok := c.lookup(key); ok {
		g.Cached = true
		return g, nil
	}

	g, err := c.next.Resolve(ctx, firstName)
	if err != nil || !g.Known() {
		return g, err
	}

	if err := c.store(key, g); err != nil {
		logging.FromContext(ctx).Warn("gender cache write failed", "error", err)
	}
	return g, nil
}

// Len returns the number of cached names.
func (c *CachedResolver) Len() int {
	n := 0
	c.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(gendersBucket); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n
}

func (c *CachedResolver) lookup(key []byte) (Guess, bool) {
	var g Guess
	found := false
	c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(gendersBucket).Get(key)
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &g); err != nil {
			return err
		}
		found = true
		return nil
	})
	return g, found
}

func (c *CachedResolver) store(key []byte, g Guess) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		payload, err := json.Marshal(g)
		if err != nil {
			return err
		}
		return tx.Bucket(gendersBucket).Put(key, payload)
	})
}

// cacheKey folds case and Unicode form so "JOSÉ" and "José" share an entry.
func cacheKey(name string) []byte {
	name = norm.NFC.String(strings.TrimSpace(name))
	return []byte(cases.Fold().String(name))
}
