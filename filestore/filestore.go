// Package filestore provides a gareporter.KeyValueStore that keeps its values in a JSON file.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// Store is a KeyValueStore backed by a single JSON object on disk. Every Set rewrites the
// whole file by writing a temporary file and renaming it over the old one.
type Store struct {
	path   string
	values map[string]string
	loaded bool
	lock   sync.Mutex
}

// New returns a Store for the file at path. The file and its directory are created on
// the first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the store location under the user's configuration directory.
func DefaultPath(appName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "gareporter.json"), nil
}

func (s *Store) Get(key string) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.load(); err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.load(); err != nil {
		// An unreadable file is replaced rather than blocking every future write.
		s.values = make(map[string]string)
		s.loaded = true
	}
	s.values[key] = value
	return s.save()
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.values = make(map[string]string)
		s.loaded = true
		return nil
	}
	if err != nil {
		return err
	}
	values, err := parse(data)
	if err != nil {
		return fmt.Errorf("malformed store file %s: %w", s.path, err)
	}
	s.values = values
	s.loaded = true
	return nil
}

func (s *Store) save() error {
	w := jwriter.NewWriter()
	obj := w.Object()
	for k, v := range s.values {
		obj.Name(k).String(v)
	}
	obj.End()
	if err := w.Error(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(w.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func parse(data []byte) (map[string]string, error) {
	values := make(map[string]string)
	r := jreader.NewReader(data)
	for obj := r.Object(); obj.Next(); {
		key := string(obj.Name())
		if v, nonNull := r.StringOrNull(); nonNull {
			values[key] = v
		}
	}
	if err := r.Error(); err != nil {
		return nil, err
	}
	return values, nil
}
