// Package memory keeps both collections in process memory. It backs the
// memory:// DSN and stands in for the persistent stores in tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
)

type Store struct {
	mu       sync.Mutex
	cmd      sync.Mutex
	trainees []models.Trainee
	courses  []models.Course
}

func New() *Store {
	return &Store{}
}

// LoadTrainees returns a copy, so callers mutating it do not touch the store
// until they save.
func (s *Store) LoadTrainees(ctx context.Context) ([]models.Trainee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Trainee, len(s.trainees))
	copy(out, s.trainees)
	return out, nil
}

func (s *Store) SaveTrainees(ctx context.Context, trainees []models.Trainee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trainees = slices.Clone(trainees)
	return nil
}

func (s *Store) LoadCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCourses(s.courses), nil
}

func (s *Store) SaveCourses(ctx context.Context, courses []models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = cloneCourses(courses)
	return nil
}

func (s *Store) Lock(ctx context.Context) (func() error, error) {
	s.cmd.Lock()
	return func() error {
		s.cmd.Unlock()
		return nil
	}, nil
}

func (s *Store) Close() error {
	return nil
}

func cloneCourses(courses []models.Course) []models.Course {
	out := make([]models.Course, len(courses))
	for i, c := range courses {
		c.Participants = append([]int{}, c.Participants...)
		out[i] = c
	}
	return out
}
