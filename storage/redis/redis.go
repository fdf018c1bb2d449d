// Package redis implements the remote key-value storage backend on a single
// Redis client constructed up front and reused for the backend's lifetime.
// There is no retry, backoff or reconnection logic: a dropped connection
// fails every subsequent operation until a new backend is constructed.
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/unkn0wn-root/permacache/storage"
)

var ErrNilClient = errors.New("redis storage: nil client")

type Storage struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Backend = (*Storage)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this backend exclusively owns the client
}

func New(cfg Config) (*Storage, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Storage{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// NewFromURL dials url (e.g. "redis://127.0.0.1:6379/0") and returns a
// backend that owns the resulting client.
func NewFromURL(url string) (*Storage, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Storage{rdb: goredis.NewClient(opt), closeClient: true}, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	if len(b) == 0 {
		return nil, false, nil // physical absent sentinel
	}
	return b, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

// Flush lists keys matching {filter}_* and removes them with one bulk DEL.
// Redis rejects DEL with no arguments, so zero matches skip the delete.
func (s *Storage) Flush(ctx context.Context, filter string) error {
	keys, err := s.rdb.Keys(ctx, filter+"_*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// Close releases the underlying redis client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Storage) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
