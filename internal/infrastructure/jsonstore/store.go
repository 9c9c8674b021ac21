// Package jsonstore persists named collections as flat JSON files.
//
// Each collection lives in <dir>/<name>.json and is always read and written
// whole. Writes go to a temp file in the same directory followed by a rename,
// so a reader never observes a partially written document. Read-modify-write
// cycles are serialized per collection inside the process; separate processes
// sharing the directory still race with last-writer-wins semantics.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
)

const (
	CollectionUsers     = "users"
	CollectionProjects  = "projects"
	CollectionConfig    = "config"
	CollectionBlogPosts = "blogPosts"
)

type Store struct {
	dir    string
	logger *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open creates dir if needed and returns a store rooted there.
func Open(dir string, logger *logrus.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("jsonstore: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create data dir: %w", err)
	}
	return &Store{dir: dir, logger: logger, locks: make(map[string]*sync.Mutex)}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Exists reports whether the collection already has a backing file.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// load decodes the collection into dst. A missing file is replaced by def()
// and persisted immediately. Caller must hold the collection lock.
func (s *Store) load(name string, dst any, def func() any) error {
	b, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		v := def()
		if err := s.save(name, v); err != nil {
			return err
		}
		if s.logger != nil {
			s.logger.WithField("collection", name).Info("materialized default collection")
		}
		b, err = json.Marshal(v)
		if err != nil {
			return &apperr.StorageError{Collection: name, Op: "encode", Err: err}
		}
	} else if err != nil {
		return &apperr.StorageError{Collection: name, Op: "read", Err: err}
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return &apperr.StorageError{Collection: name, Op: "decode", Err: err}
	}
	return nil
}

// save atomically replaces the collection file. Caller must hold the lock.
func (s *Store) save(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return &apperr.StorageError{Collection: name, Op: "encode", Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return &apperr.StorageError{Collection: name, Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &apperr.StorageError{Collection: name, Op: "write", Err: err}
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &apperr.StorageError{Collection: name, Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return &apperr.StorageError{Collection: name, Op: "write", Err: err}
	}
	return nil
}

// errSkipWrite aborts an Update without persisting and without surfacing an
// error to the caller.
var errSkipWrite = errors.New("jsonstore: skip write")
