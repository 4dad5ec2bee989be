package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// DraftRepository keeps one JSON file per draft key under dir.
type DraftRepository struct {
	dir string
	mu  sync.Mutex
}

func NewDraftRepository(dir string) (*DraftRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &DraftRepository{dir: dir}, nil
}

func (r *DraftRepository) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", draft.ErrInvalidKey
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *DraftRepository) Get(_ context.Context, key string) ([]byte, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, draft.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *DraftRepository) Set(_ context.Context, key string, value []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeFileAtomic(path, value, 0o644)
}

func (r *DraftRepository) Delete(_ context.Context, key string) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// PurgeOlderThan removes drafts whose file was last written before cutoff.
func (r *DraftRepository) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("read draft dir: %w", err)
	}
	var purged int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

// writeFileAtomic writes to a temporary file in the same directory, fsyncs
// it and renames it over path so readers never see a partial draft.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
