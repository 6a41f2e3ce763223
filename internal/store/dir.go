package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/trilex/internal/dictionary"
)

// Dir stores the dictionary files in a local directory.
type Dir struct {
	path string

	mu        sync.Mutex
	savedAt   time.Time
	watcher   *Watcher
	closeOnce sync.Once
}

// NewDir creates a directory store. The directory is created on first save.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Name implements Store.
func (d *Dir) Name() string {
	return "dir:" + d.path
}

// Path returns the directory.
func (d *Dir) Path() string {
	return d.path
}

// Load implements Store. Missing files are empty tables, so a new
// directory loads as an empty dictionary.
func (d *Dir) Load(ctx context.Context) (dictionary.Snapshot, error) {
	files := make(map[string][]byte, len(Files))
	for _, name := range Files {
		if err := ctx.Err(); err != nil {
			return dictionary.Snapshot{}, err
		}
		data, err := os.ReadFile(filepath.Join(d.path, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return dictionary.Snapshot{}, &StoreError{Backend: "dir", Op: "load", Err: err}
		}
		files[name] = data
	}
	snap, err := Decode(files)
	if err != nil {
		return dictionary.Snapshot{}, &StoreError{Backend: "dir", Op: "load", Err: err}
	}
	return snap, nil
}

// Save implements Store. Each file is written to a temporary file and
// renamed into place.
func (d *Dir) Save(ctx context.Context, snap dictionary.Snapshot) error {
	files, err := Encode(snap)
	if err != nil {
		return &StoreError{Backend: "dir", Op: "save", Err: err}
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return &StoreError{Backend: "dir", Op: "save", Err: err}
	}

	d.mu.Lock()
	d.savedAt = time.Now()
	d.mu.Unlock()

	for _, name := range Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeAtomic(filepath.Join(d.path, name), files[name]); err != nil {
			return &StoreError{Backend: "dir", Op: "save " + name, Err: err}
		}
	}

	d.mu.Lock()
	d.savedAt = time.Now()
	d.mu.Unlock()
	return nil
}

// Close implements Store. It stops the watcher if one is running.
func (d *Dir) Close() error {
	var err error
	d.closeOnce.Do(func() {
		d.mu.Lock()
		w := d.watcher
		d.mu.Unlock()
		if w != nil {
			if cerr := w.Close(); !errors.Is(cerr, ErrWatcherClosed) {
				err = cerr
			}
		}
	})
	return err
}

// recentlySaved reports whether this store wrote its files within window.
func (d *Dir) recentlySaved(window time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.savedAt.IsZero() && time.Since(d.savedAt) < window
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
