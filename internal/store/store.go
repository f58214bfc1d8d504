package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupted marks persisted collection data that can no longer be decoded.
// It is never silently treated as an empty collection.
var ErrCorrupted = errors.New("collection data is corrupted")

// Keyed is implemented by any record that can live in a collection.
type Keyed interface {
	Key() string
}

// Store owns a directory of collection files, one JSON array per collection
// name. It is the only component that touches the files; everything else goes
// through a Collection.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.RWMutex),
	}, nil
}

// lock returns the mutex guarding one collection, creating it on first use.
// Writers to the same collection are serialized; different collections never
// contend.
func (s *Store) lock(collection string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[collection]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Collection is a typed view over one named collection of a Store.
type Collection[T Keyed] struct {
	store *Store
	name  string
}

func NewCollection[T Keyed](s *Store, name string) *Collection[T] {
	return &Collection[T]{
		store: s,
		name:  name,
	}
}

// ReadAll returns every record in the collection in file order. A collection
// that has never been written reads as empty.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	l := c.store.lock(c.name)
	l.RLock()
	defer l.RUnlock()

	return c.load()
}

// ReadOne looks a record up by key. A missing record is not an error.
func (c *Collection[T]) ReadOne(ctx context.Context, id string) (T, bool, error) {
	var zero T

	records, err := c.ReadAll(ctx)
	if err != nil {
		return zero, false, err
	}

	for _, rec := range records {
		if rec.Key() == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Save upserts the record by key: an existing record is replaced in place, a
// new one is appended. The collection is committed as a whole before Save
// returns.
func (c *Collection[T]) Save(ctx context.Context, record T) (T, error) {
	var zero T

	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	records, err := c.load()
	if err != nil {
		return zero, err
	}

	replaced := false
	for i, rec := range records {
		if rec.Key() == record.Key() {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	if err := c.commit(records); err != nil {
		return zero, err
	}
	return record, nil
}

// Delete removes the record with the given key and reports whether anything
// was removed.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	records, err := c.load()
	if err != nil {
		return false, err
	}

	found := false
	kept := make([]T, 0, len(records))
	for _, rec := range records {
		if rec.Key() == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return false, nil
	}

	if err := c.commit(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.store.path(c.name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read collection %q: %w", c.name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %q: %w: %w", c.name, ErrCorrupted, err)
	}
	return records, nil
}

// commit writes the whole collection to a temp file in the same directory and
// renames it into place, so a crash mid-write never leaves a partial file
// behind and readers only ever observe a fully committed state.
func (c *Collection[T]) commit(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", c.name, err)
	}

	tmp, err := os.CreateTemp(c.store.dir, c.name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", c.name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %q: %w", c.name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync collection %q: %w", c.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file for %q: %w", c.name, err)
	}

	if err := os.Rename(tmp.Name(), c.store.path(c.name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit collection %q: %w", c.name, err)
	}
	return nil
}
