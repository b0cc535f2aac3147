package store

import (
	"context"
	stderrors "errors"
	"io/fs"
	"sync"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
)

// FileStore keeps the dataset in a JSON data file. Meta is not persisted.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a store for the data file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (congress.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, err := congress.ImportJSON(s.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s does not exist", s.path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read %s", s.path)
	}
	return ds, nil
}

func (s *FileStore) Save(_ context.Context, ds congress.Dataset, _ Meta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return congress.ExportJSON(s.path, ds)
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
