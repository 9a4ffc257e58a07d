package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore - хранилище картинок профиля.
type FileStore interface {
	// Save - сохраняет файл и возвращает путь-референс
	Save(ctx context.Context, userID int, ext string, r io.Reader) (string, error)
}

type diskStore struct {
	dir string
}

func NewDiskStore(dir string) FileStore {
	return &diskStore{dir: dir}
}

func (s *diskStore) Save(ctx context.Context, userID int, ext string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d_%s%s", userID, uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}
