package visits

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileStore keeps the counter in a flat TOML table of string values, the
// same shape as a browser key-value store:
//
//	visitCount = "42"
//
// Other keys in the file are preserved on write.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() (map[string]string, error) {
	entries := map[string]string{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}
	if _, err := toml.Decode(string(data), &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return entries, nil
}

// Read implements Store. An absent key reads as zero; an unparseable value
// is an error.
func (s *FileStore) Read() (int, error) {
	entries, err := s.load()
	if err != nil {
		return 0, err
	}
	raw, ok := entries[Key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", Key, err)
	}
	return n, nil
}

// Write implements Store.
func (s *FileStore) Write(n int) error {
	entries, err := s.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking the counter.
		entries = map[string]string{}
	}
	entries[Key] = strconv.Itoa(n)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(entries); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// MemoryStore is an in-process Store. A nil Value means no stored count.
type MemoryStore struct {
	Value   *string
	ReadErr error
	Writes  int
}

// Read implements Store.
func (m *MemoryStore) Read() (int, error) {
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	if m.Value == nil {
		return 0, nil
	}
	return strconv.Atoi(*m.Value)
}

// Write implements Store.
func (m *MemoryStore) Write(n int) error {
	v := strconv.Itoa(n)
	m.Value = &v
	m.Writes++
	return nil
}
