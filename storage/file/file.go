// Package file implements the file-backed storage backend: one regular file
// per key in a flat directory, filename identical to the key, content
// identical to the raw value bytes. Each Get and Set holds an exclusive
// advisory flock on its file, so cooperating processes sharing the directory
// never read or write torn entries. The lock covers a single call only; it
// does not extend over a caller's compute step.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sys/unix"

	st "github.com/unkn0wn-root/permacache/storage"
)

type Storage struct {
	dir string
}

var _ st.Backend = (*Storage)(nil)

// New creates dir (recursively) if absent and returns a Storage over it.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Storage) Dir() string { return s.dir }

func (s *Storage) Get(_ context.Context, key string) ([]byte, bool, error) {
	f, err := os.Open(filepath.Join(s.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil // never written: a miss, not an error
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return nil, false, err
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, false, err
	}
	if len(b) == 0 {
		// zero-length file is the physical absent sentinel
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	_, err = f.Write(value)
	return err
}

// Flush deletes every file in the directory whose name matches ^{filter}_.
// The first deletion failure aborts it; later matches stay on disk.
func (s *Storage) Flush(_ context.Context, filter string) error {
	re, err := regexp.Compile("^" + filter + "_")
	if err != nil {
		return fmt.Errorf("file: flush filter %q: %w", filter, err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !re.MatchString(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) Close(context.Context) error { return nil }
