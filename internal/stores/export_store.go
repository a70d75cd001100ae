package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"rx-analytics/internal/shared/filestorages"
	"rx-analytics/internal/shared/ulid"
)

var (
	ErrExportNotFound = errors.New("export not found")
)

// ExportStore writes finished report exports to file storage. Every export gets a fresh key, so
// puts never overwrite an earlier artifact.
//
//go:generate mockgen -source=export_store.go -destination=./mocks/export_store_mock.go -package=mocks
type ExportStore interface {
	Put(ctx context.Context, report string, createdAt time.Time, content io.Reader) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the exports saved for report, oldest first.
	List(ctx context.Context, report string) ([]filestorages.FileInfo, error)
	// Key returns the storage key of the export file named file of report.
	Key(report, file string) string
}

type exportStore struct {
	fileStorage filestorages.FileStorage
	dir         string
	newID       func(time.Time) string
}

func NewExportStore(fileStorage filestorages.FileStorage) ExportStore {
	return &exportStore{fileStorage: fileStorage, dir: "exports", newID: ulid.NewULIDAt}
}

func (s *exportStore) Put(ctx context.Context, report string, createdAt time.Time, content io.Reader) (string, error) {
	key := s.getKey(report, createdAt, s.newID(createdAt))
	info, err := s.fileStorage.Create(ctx, key, content)
	if err != nil {
		return "", fmt.Errorf("failed to put export: %w", err)
	}
	return info.Key, nil
}

func (s *exportStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	readCloser, err := s.fileStorage.Open(ctx, key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) || errors.Is(err, filestorages.ErrInvalidKey) {
			return nil, ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to get export: %w", err)
	}
	return readCloser, nil
}

func (s *exportStore) List(ctx context.Context, report string) ([]filestorages.FileInfo, error) {
	files, err := s.fileStorage.List(ctx, path.Join(s.dir, report))
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	// keys start with the creation time, so key order is creation order
	out := make([]filestorages.FileInfo, 0, len(files))
	for _, file := range files {
		if path.Dir(file.Key) == path.Join(s.dir, report) && path.Ext(file.Key) == ".csv" {
			out = append(out, file)
		}
	}
	return out, nil
}

func (s *exportStore) Key(report, file string) string {
	return path.Join(s.dir, report, file)
}

func (s *exportStore) getKey(report string, createdAt time.Time, id string) string {
	return fmt.Sprintf("%s/%s/%s-%s.csv", s.dir, report, createdAt.UTC().Format("20060102T150405Z"), id)
}
