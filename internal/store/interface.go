package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
	"github.com/shrimpsizemoose/schoolcli/migrations"
)

// TraineeRepository loads and saves the whole trainee collection at once.
type TraineeRepository interface {
	LoadTrainees(ctx context.Context) ([]models.Trainee, error)
	SaveTrainees(ctx context.Context, trainees []models.Trainee) error
}

// CourseRepository loads and saves the whole course collection at once.
type CourseRepository interface {
	LoadCourses(ctx context.Context) ([]models.Course, error)
	SaveCourses(ctx context.Context, courses []models.Course) error
}

type Store interface {
	TraineeRepository
	CourseRepository
	Close() error
}

// Locker is implemented by stores that can be shared between processes. The
// lock spans one command's load and save.
type Locker interface {
	Lock(ctx context.Context) (unlock func() error, err error)
}

// BaseStore provides the documents table shared by the SQL implementations.
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies the .sql files of fsys in name order, translating
// dialect if needed
func (s *BaseStore) ApplyMigrations(fsys fs.FS, translateSQL func(string) string) error {
	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := fs.ReadFile(fsys, file.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

// MigrationsFS returns dir as a file system, or the embedded schema when dir
// is empty.
func MigrationsFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func (s *BaseStore) LoadTrainees(ctx context.Context) ([]models.Trainee, error) {
	body, err := s.loadDocument(ctx, TraineesDocument)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[models.Trainee](body)
}

func (s *BaseStore) SaveTrainees(ctx context.Context, trainees []models.Trainee) error {
	body, err := EncodeCollection(trainees)
	if err != nil {
		return err
	}
	return s.saveDocument(ctx, TraineesDocument, body)
}

func (s *BaseStore) LoadCourses(ctx context.Context) ([]models.Course, error) {
	body, err := s.loadDocument(ctx, CoursesDocument)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[models.Course](body)
}

func (s *BaseStore) SaveCourses(ctx context.Context, courses []models.Course) error {
	body, err := EncodeCollection(courses)
	if err != nil {
		return err
	}
	return s.saveDocument(ctx, CoursesDocument, body)
}

// loadDocument returns nil for a document that was never saved.
func (s *BaseStore) loadDocument(ctx context.Context, name string) ([]byte, error) {
	var doc Document
	query := s.Converter(`
		SELECT name, body, updated_at
		FROM documents
		WHERE name = ?
	`)

	err := s.DB.GetContext(ctx, &doc, query, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return []byte(doc.Body), nil
}

func (s *BaseStore) saveDocument(ctx context.Context, name string, body []byte) error {
	doc := Document{
		Name:      name,
		Body:      string(body),
		UpdatedAt: time.Now().UTC().Unix(),
	}
	_, err := s.DB.NamedExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at)
		VALUES (:name, :body, :updated_at)
		ON CONFLICT(name) DO UPDATE SET
		body = excluded.body,
		updated_at = excluded.updated_at
	`, doc)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
