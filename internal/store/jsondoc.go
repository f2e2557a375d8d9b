package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// jsonDoc is a whole-file JSON document. Every mutation reads the file,
// applies the change and rewrites the file through a temp file and rename.
// The mutex serializes writers in this process only; concurrent processes
// are last-write-wins.
type jsonDoc[T any] struct {
	path  string
	empty func() T
	mu    sync.Mutex
}

func newJSONDoc[T any](path string, empty func() T) (*jsonDoc[T], error) {
	d := &jsonDoc[T]{path: path, empty: empty}
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := d.write(empty()); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// read loads the document. A missing or empty file yields the empty document.
func (d *jsonDoc[T]) read() (T, error) {
	v := d.empty()
	b, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(b) == 0) {
		return v, nil
	}
	if err != nil {
		return v, fmt.Errorf("read %s: %w", filepath.Base(d.path), err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", filepath.Base(d.path), err)
	}
	return v, nil
}

func (d *jsonDoc[T]) write(v T) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(d.path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(d.path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(d.path), err)
	}
	return nil
}

// view runs fn on a fresh copy of the document.
func (d *jsonDoc[T]) view(fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.read()
	if err != nil {
		return err
	}
	return fn(&v)
}

// update runs fn on the document and persists it when fn succeeds.
func (d *jsonDoc[T]) update(fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.read()
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	return d.write(v)
}
