package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Store loads and saves progression records.
type Store interface {
	// Load returns the stored record, or the default record if there is
	// none or it cannot be trusted. Load never fails.
	Load() Record
	Save(r Record) error
}

// FileStore keeps a record as a YAML file.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, logger: logger.With("path", path)}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. Missing files, malformed YAML and out-of-range
// values all yield the default record.
func (s *FileStore) Load() Record {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no saved progress, starting fresh")
		return Default()
	}
	if err != nil {
		s.logger.Warn("failed to read progress", "err", err)
		return Default()
	}

	r, err := Decode(data)
	if err != nil {
		s.logger.Warn("discarding saved progress", "err", err)
		return Default()
	}
	return r
}

// Save writes the record atomically.
func (s *FileStore) Save(r Record) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace progress: %w", err)
	}
	return nil
}

// Decode parses a YAML record. Fields absent from data keep their defaults;
// any out-of-range value rejects the whole record.
func Decode(data []byte) (Record, error) {
	r := Default()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	if r.Defeated == nil {
		r.Defeated = map[int]bool{}
	}
	return r, nil
}

// MemoryStore keeps a record in memory, for sessions without a save location.
type MemoryStore struct {
	mu     sync.Mutex
	record Record
	saved  bool
}

// Load returns the last saved record or the default.
func (s *MemoryStore) Load() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return Default()
	}
	return s.record.Clone()
}

// Save keeps a copy of r.
func (s *MemoryStore) Save(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = r.Clone()
	s.saved = true
	return nil
}

// FileName maps a player name to a safe save file name. Characters outside
// [A-Za-z0-9_-] become underscores.
func FileName(username string) string {
	if username == "" {
		return "anonymous.yaml"
	}
	name := []byte(username)
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			name[i] = '_'
		}
	}
	if len(name) > 64 {
		name = name[:64]
	}
	return string(name) + ".yaml"
}
