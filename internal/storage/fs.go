package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: filepath.Clean(base)}, nil
}

// resolve anchors a key under the storage root. Keys whose cleaned path
// climbs out of the root (".." segments) are rejected.
func (s *FSStore) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := filepath.Join(s.base, key)
	if !strings.HasPrefix(dst, s.base+string(filepath.Separator)) {
		return "", errors.New("key escapes storage root")
	}
	return dst, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(dst)
}

func (s *FSStore) Delete(key string) error {
	if key == "" {
		return nil
	}
	dst, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
