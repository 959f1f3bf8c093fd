// Package filestore keeps the durable half of the session in a JSON document on
// disk, so a restarted console still knows who was logged in.
package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/suryanavv/ims/sessions"
)

// DefaultFileName is the document name inside the data folder
const DefaultFileName = "session.json"

var _ sessions.Store = (*Store)(nil)

// Store is a sessions.Store persisted as a single JSON object of string values.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store writing to folder/DefaultFileName, creating folder if needed.
func New(folder string) (*Store, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrapf(err, "[filestore.New] create %s", folder)
	}
	return &Store{path: filepath.Join(folder, DefaultFileName)}, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", sessions.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		// An unreadable document is replaced rather than blocking every write.
		values = map[string]string{}
	}
	values[key] = value
	return s.save(values)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		values = map[string]string{}
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[filestore.load] read")
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "[filestore.load] decode")
	}
	return values, nil
}

// save writes through a temp file and rename so readers never see a partial document.
func (s *Store) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[filestore.save] encode")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*.json")
	if err != nil {
		return errors.Wrap(err, "[filestore.save] temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[filestore.save] write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[filestore.save] close")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "[filestore.save] rename")
	}
	return nil
}
