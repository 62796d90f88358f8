package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/uniscout/internal/model"
)

// Key identifies one artifact.
type Key struct {
	Slug string
	Kind model.ArtifactKind
}

// String returns the artifact file base name without extension.
func (k Key) String() string {
	return string(k.Kind) + "_" + k.Slug
}

// Store reads and writes artifacts under a directory.
type Store struct {
	dir   string
	locks *KeyedMutex
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Store{dir: dir, locks: NewKeyedMutex()}, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of an artifact.
func (s *Store) Path(key Key) string {
	return filepath.Join(s.dir, key.String()+".json")
}

// Load decodes an artifact into v.
// It returns false when the artifact is missing or is not valid JSON;
// an unreadable artifact counts as absent so the stage recomputes it.
func (s *Store) Load(key Key, v any) (bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read artifact %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil //nolint:nilerr // corrupt artifacts are recomputed
	}
	return true, nil
}

// Save encodes v and replaces the artifact file.
func (s *Store) Save(key Key, v any) error {
	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode artifact %s: %w", key, err)
	}
	if err := writeFileAtomic(s.Path(key), data, 0o600); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", key, err)
	}
	return nil
}

// Encode renders v as indented JSON without HTML escaping.
// The output is deterministic for a given value.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
