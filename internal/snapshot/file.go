package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/domain"
)

// FileStore keeps one JSON file per session under a data directory. It is the
// single-host analog of the browser's local storage and the default backend
// when no Redis address is configured.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) SaveCart(ctx context.Context, sessionID string, lines []domain.LineItem) error {
	return s.write(sessionID+".cart.json", cartRecord{Version: SchemaVersion, Lines: lines})
}

func (s *FileStore) LoadCart(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	var rec cartRecord
	ok, err := s.read(sessionID+".cart.json", &rec)
	if err != nil || !ok || rec.Version != SchemaVersion {
		return nil, err
	}
	return rec.Lines, nil
}

func (s *FileStore) SaveWishlist(ctx context.Context, sessionID string, items []domain.WishlistItem) error {
	return s.write(sessionID+".wishlist.json", wishlistRecord{Version: SchemaVersion, Items: items})
}

func (s *FileStore) LoadWishlist(ctx context.Context, sessionID string) ([]domain.WishlistItem, error) {
	var rec wishlistRecord
	ok, err := s.read(sessionID+".wishlist.json", &rec)
	if err != nil || !ok || rec.Version != SchemaVersion {
		return nil, err
	}
	return rec.Items, nil
}

func (s *FileStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range []string{sessionID + ".cart.json", sessionID + ".wishlist.json"} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove snapshot: %w", err)
		}
	}
	return nil
}

// write replaces the snapshot file atomically via a temp file rename so a
// crash mid-write cannot leave a truncated record.
func (s *FileStore) write(name string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) read(name string, rec any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return true, nil
}
