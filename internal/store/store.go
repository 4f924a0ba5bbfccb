package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"passgrip/internal/domain"
)

var (
	// ErrNotFound is returned when an entry file no longer exists
	ErrNotFound = errors.New("entry not found")
	// ErrDecrypt is returned when an entry cannot be decoded
	ErrDecrypt = errors.New("cannot decrypt entry")
	// ErrNotDirectory is returned when the store root is missing or not a directory
	ErrNotDirectory = errors.New("password store is not a directory")
	// ErrOutsideStore is returned for paths that escape the store root
	ErrOutsideStore = errors.New("path is outside the password store")
)

// DefaultDebounce is how long the watcher waits for a burst of file
// events to settle before reloading
const DefaultDebounce = 150 * time.Millisecond

// Store is a directory of entry files, one secret per file
type Store struct {
	dir      string
	codec    Codec
	logger   *zap.Logger
	debounce time.Duration

	// watching runs between watch registration and the initial load
	watching func()
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebounce sets the reload debounce window
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// New creates a store rooted at dir
func New(dir string, codec Codec, opts ...Option) *Store {
	if codec == nil {
		codec = PlainCodec{}
	}
	s := &Store{
		dir:      filepath.Clean(dir),
		codec:    codec,
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the store root
func (s *Store) Dir() string {
	return s.dir
}

// Load walks the store and returns a name-ordered snapshot
func (s *Store) Load() (domain.Snapshot, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	ext := s.codec.Extension()
	var entries []domain.Entry
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != s.dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		var updated *time.Time
		if info, err := d.Info(); err == nil {
			mt := info.ModTime()
			updated = &mt
		}
		entries = append(entries, domain.NewEntry(domain.EntryName(rel, ext), path, updated, s))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load password store %s: %w", s.dir, err)
	}

	s.logger.Debug("loaded password store", zap.String("dir", s.dir), zap.Int("entries", len(entries)))
	return domain.NewSnapshot(entries), nil
}

// ReadSecret reads and decodes the entry at path
func (s *Store) ReadSecret(path string) (string, error) {
	if err := s.contains(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, s.name(path))
		}
		return "", fmt.Errorf("failed to read %s: %w", s.name(path), err)
	}
	plain, err := s.codec.Decode(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", s.name(path), err)
	}
	return string(plain), nil
}

// WriteSecret encodes secret and atomically replaces the entry at path
func (s *Store) WriteSecret(path, secret string) error {
	if err := s.contains(path); err != nil {
		return err
	}
	data, err := s.codec.Encode([]byte(secret))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.name(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.name(path), err)
	}
	tmp, err := os.CreateTemp(dir, ".passgrip-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", s.name(path), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", s.name(path), err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", s.name(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.name(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.name(path), err)
	}

	s.logger.Info("entry updated", zap.String("entry", s.name(path)))
	return nil
}

// pathFor returns the file path an entry named name would live at
func (s *Store) pathFor(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(name)+s.codec.Extension())
}

func (s *Store) checkRoot() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotDirectory, s.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, s.dir)
	}
	return nil
}

func (s *Store) contains(path string) error {
	rel, err := filepath.Rel(s.dir, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return fmt.Errorf("%w: %s", ErrOutsideStore, path)
	}
	return nil
}

func (s *Store) name(path string) string {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return path
	}
	return domain.EntryName(rel, s.codec.Extension())
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
