package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps blobs on the local filesystem under one base directory.
// Keys are cleaned and confined to the base, so a crafted key cannot reach
// outside it.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) path(key string) (string, error) {
	key = filepath.Clean("/" + key) // forces the path to stay rooted
	if key == "/" {
		return "", errors.New("empty key")
	}
	return filepath.Join(s.base, strings.TrimPrefix(key, "/")), nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	dst, err := s.path(key)
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
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+key)), "/"), nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (s *FSStore) Exists(key string) bool {
	p, err := s.path(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Dir exposes the base directory as an fs.FS for http.FileServer.
func (s *FSStore) Dir() fs.FS { return os.DirFS(s.base) }
