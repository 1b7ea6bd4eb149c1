package app

import (
	"fmt"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/schoolcli/internal/command"
	"github.com/shrimpsizemoose/schoolcli/internal/school"
	"github.com/shrimpsizemoose/schoolcli/internal/store"
)

type Service struct {
	Config     *Config
	Store      store.Store
	Trainees   *school.TraineeService
	Courses    *school.CourseService
	Dispatcher *command.Dispatcher
}

func NewService(config *Config) (*Service, error) {
	st, err := NewStore(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}
	logger.Info.Printf("Using %s store at %s", DetectDBType(config.Database.DSN), config.Database.DSN)

	return NewServiceWithStore(config, st), nil
}

// NewServiceWithStore wires the services around an already opened store.
func NewServiceWithStore(config *Config, st store.Store) *Service {
	trainees := school.NewTraineeService(st, st)
	courses := school.NewCourseService(st, trainees)

	var locker store.Locker
	if l, ok := st.(store.Locker); ok {
		locker = l
	}

	return &Service{
		Config:     config,
		Store:      st,
		Trainees:   trainees,
		Courses:    courses,
		Dispatcher: command.NewDispatcher(trainees, courses, locker, config.LockTimeout),
	}
}

func (s *Service) Close() error {
	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}
