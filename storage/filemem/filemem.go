// Package filemem wraps the file backend with a process-local in-memory read
// index (BigCache). Reads hit memory first and fall through to disk,
// populating the index; writes go through to both (write-through, never
// write-back, so durability stays immediate). The index is non-authoritative
// and never shared: if another process mutates the same directory, this
// backend serves stale bytes until the entry ages out or Flush clears the
// index. That staleness is accepted, not corrected by invalidation.
package filemem

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	st "github.com/unkn0wn-root/permacache/storage"
	"github.com/unkn0wn-root/permacache/storage/file"
)

type Storage struct {
	files *file.Storage
	mem   *bc.BigCache
}

var _ st.Backend = (*Storage)(nil)

type Config struct {
	// Dir is the backing directory, created recursively if absent.
	Dir string

	// IndexLifeWindow bounds how long an entry may be served from memory
	// before the next read goes back to disk. 0 => 24h. This is the only
	// defense against cross-process staleness.
	IndexLifeWindow time.Duration

	// HardMaxIndexSizeMB caps index memory; 0 = unlimited. The durable
	// files underneath are never evicted.
	HardMaxIndexSizeMB int
}

func New(cfg Config) (*Storage, error) {
	files, err := file.New(cfg.Dir)
	if err != nil {
		return nil, err
	}

	life := cfg.IndexLifeWindow
	if life <= 0 {
		life = 24 * time.Hour
	}
	conf := bc.DefaultConfig(life)
	if cfg.HardMaxIndexSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxIndexSizeMB
	}
	mem, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Storage{files: files, mem: mem}, nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if b, err := s.mem.Get(key); err == nil {
		return b, true, nil
	} else if !errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, err
	}

	b, ok, err := s.files.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	// read-through: remember non-absent values only
	_ = s.mem.Set(key, b)
	return b, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.mem.Set(key, value); err != nil {
		return err
	}
	return s.files.Set(ctx, key, value)
}

// Flush clears the whole index, then deletes matching files. Clearing
// wholesale is deliberate: the index holds entries under any filter and a
// stale survivor would resurrect a flushed value.
func (s *Storage) Flush(ctx context.Context, filter string) error {
	if err := s.mem.Reset(); err != nil {
		return err
	}
	return s.files.Flush(ctx, filter)
}

func (s *Storage) Close(context.Context) error {
	return s.mem.Close()
}
