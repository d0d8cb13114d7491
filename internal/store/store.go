// Package store implements a JSON-file-backed record store. Each collection
// is one file holding a JSON array of records of a single kind, guarded by a
// cross-process file lock so concurrent mutators from separate processes
// (web workers, CLI tools) serialize instead of interleaving partial writes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// DefaultLockTimeout bounds lock acquisition when no timeout is configured.
const DefaultLockTimeout = 10 * time.Second

// lockRetryDelay is the polling interval while waiting on the file lock.
const lockRetryDelay = 25 * time.Millisecond

// Entity is implemented by record types stored in a Collection.
type Entity interface {
	RecordID() string
	SetRecordID(id string)
}

// Collection is a durable, concurrency-safe set of records of one kind.
// The zero value is not usable; construct with NewCollection.
//
// Mutations hold an exclusive flock on <path>.lock for the read-modify-write
// and persist via write-to-temp-then-rename, so the backing file always
// contains a complete JSON array. The in-process mutex covers goroutines
// sharing this Collection, which the file lock alone does not serialize.
type Collection[T any, PT interface {
	Entity
	*T
}] struct {
	path        string
	idPrefix    string
	lockTimeout time.Duration

	mu  sync.Mutex
	flk *flock.Flock
}

// NewCollection opens (or creates) the collection file at path. A missing
// file is initialized to an empty JSON array. Generated ids are prefixed
// with idPrefix (e.g. "u" yields ids like "u-1f2a3b4c").
func NewCollection[T any, PT interface {
	Entity
	*T
}](path, idPrefix string, lockTimeout time.Duration) (*Collection[T, PT], error) {
	if path == "" {
		return nil, errors.New("collection path is required")
	}
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	c := &Collection[T, PT]{
		path:        path,
		idPrefix:    idPrefix,
		lockTimeout: lockTimeout,
		flk:         flock.New(path + ".lock"),
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := c.writeAll(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the collection's backing file path.
func (c *Collection[T, PT]) Path() string { return c.path }

// Load reads and parses the whole collection.
func (c *Collection[T, PT]) Load(ctx context.Context) ([]T, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return c.readAll()
}

// Get returns the record with the given id.
func (c *Collection[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	release, err := c.acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer release()
	records, err := c.readAll()
	if err != nil {
		return zero, err
	}
	for i := range records {
		if PT(&records[i]).RecordID() == id {
			return records[i], nil
		}
	}
	return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// Find returns all records matching the predicate.
func (c *Collection[T, PT]) Find(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Create appends the record and persists the collection. A record without an
// id gets a freshly generated one; a record whose id already exists fails
// with ErrDuplicateID and leaves the collection unchanged.
func (c *Collection[T, PT]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	release, err := c.acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer release()

	records, err := c.readAll()
	if err != nil {
		return zero, err
	}
	existing := make(map[string]struct{}, len(records))
	for i := range records {
		existing[PT(&records[i]).RecordID()] = struct{}{}
	}
	p := PT(&rec)
	if p.RecordID() == "" {
		p.SetRecordID(c.newID(existing))
	} else if _, dup := existing[p.RecordID()]; dup {
		return zero, fmt.Errorf("%s: %w", p.RecordID(), ErrDuplicateID)
	}
	records = append(records, rec)
	if err := c.writeAll(records); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update applies fn to the record with the given id inside the locked
// read-modify-write and persists the result.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, fn func(*T)) (T, error) {
	var zero T
	release, err := c.acquire(ctx)
	if err != nil {
		return zero, err
	}
	defer release()

	records, err := c.readAll()
	if err != nil {
		return zero, err
	}
	for i := range records {
		if PT(&records[i]).RecordID() != id {
			continue
		}
		fn(&records[i])
		// The id is the record's identity; fn must not detach it.
		PT(&records[i]).SetRecordID(id)
		if err := c.writeAll(records); err != nil {
			return zero, err
		}
		return records[i], nil
	}
	return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// Delete removes the record with the given id and persists the collection.
func (c *Collection[T, PT]) Delete(ctx context.Context, id string) error {
	release, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	records, err := c.readAll()
	if err != nil {
		return err
	}
	for i := range records {
		if PT(&records[i]).RecordID() == id {
			records = append(records[:i], records[i+1:]...)
			return c.writeAll(records)
		}
	}
	return fmt.Errorf("%s: %w", id, ErrNotFound)
}

// acquire takes the in-process mutex and then the file lock, bounded by the
// configured timeout. The returned release undoes both.
func (c *Collection[T, PT]) acquire(ctx context.Context) (func(), error) {
	c.mu.Lock()
	lockCtx, cancel := context.WithTimeout(ctx, c.lockTimeout)
	defer cancel()
	locked, err := c.flk.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		c.mu.Unlock()
		if err == nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", c.path, ErrLockTimeout)
		}
		return nil, fmt.Errorf("lock %s: %w", c.path, err)
	}
	return func() {
		_ = c.flk.Unlock()
		c.mu.Unlock()
	}, nil
}

// readAll parses the backing file. Caller must hold the lock.
func (c *Collection[T, PT]) readAll() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		// First load after the file went missing: re-initialize to [].
		if err := c.writeAll(nil); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	records := make([]T, 0)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", c.path, err, ErrCorruptStore)
	}
	return records, nil
}

// writeAll persists the records atomically: marshal, write to a temp file in
// the same directory, then rename over the collection file.
func (c *Collection[T, PT]) writeAll(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.path, err)
	}
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", c.path, err)
	}
	return nil
}

// newID generates an id unique within the collection.
func (c *Collection[T, PT]) newID(existing map[string]struct{}) string {
	for {
		hex := strings.ReplaceAll(uuid.NewString(), "-", "")
		id := c.idPrefix + "-" + hex[:8]
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}
