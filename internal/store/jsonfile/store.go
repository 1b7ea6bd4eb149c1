// Package jsonfile keeps each collection as an indented JSON array in its own
// file under a data directory (data/trainees.json and data/courses.json with
// the default DSN).
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
	"github.com/shrimpsizemoose/schoolcli/internal/store"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadTrainees(ctx context.Context) ([]models.Trainee, error) {
	data, err := s.read(store.TraineesDocument)
	if err != nil {
		return nil, err
	}
	return store.DecodeCollection[models.Trainee](data)
}

func (s *Store) SaveTrainees(ctx context.Context, trainees []models.Trainee) error {
	data, err := store.EncodeCollection(trainees)
	if err != nil {
		return err
	}
	return s.write(store.TraineesDocument, data)
}

func (s *Store) LoadCourses(ctx context.Context) ([]models.Course, error) {
	data, err := s.read(store.CoursesDocument)
	if err != nil {
		return nil, err
	}
	return store.DecodeCollection[models.Course](data)
}

func (s *Store) SaveCourses(ctx context.Context, courses []models.Course) error {
	data, err := store.EncodeCollection(courses)
	if err != nil {
		return err
	}
	return s.write(store.CoursesDocument, data)
}

// Lock serialises commands within this process only; other processes sharing
// the directory are not excluded.
func (s *Store) Lock(ctx context.Context) (func() error, error) {
	s.mu.Lock()
	return func() error {
		s.mu.Unlock()
		return nil
	}, nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// read treats a missing file as an empty collection.
func (s *Store) read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// write replaces the file via a rename so a crash never leaves half a
// collection behind.
func (s *Store) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
