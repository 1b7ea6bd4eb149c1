package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
)

func setupTestStore(t *testing.T) (*Store, string) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir)
	require.NoError(t, err)
	return s, dir
}

func TestMissingFilesAreEmpty(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	trainees, err := s.LoadTrainees(ctx)
	require.NoError(t, err)
	assert.Empty(t, trainees)

	courses, err := s.LoadCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestSaveWritesIndentedDocuments(t *testing.T) {
	s, dir := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCourses(ctx, []models.Course{
		{ID: 1, Name: "Data 101", StartDate: "2026-05-01"},
	}))

	data, err := os.ReadFile(filepath.Join(dir, "courses.json"))
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "id": 1,
    "name": "Data 101",
    "startDate": "2026-05-01",
    "participants": null
  }
]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should be cleaned up")
}

func TestRoundTrip(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	trainees := []models.Trainee{{ID: 101, FirstName: "John", LastName: "Doe"}}
	require.NoError(t, s.SaveTrainees(ctx, trainees))

	got, err := s.LoadTrainees(ctx)
	require.NoError(t, err)
	assert.Equal(t, trainees, got)
}

func TestReadsCamelCaseDocuments(t *testing.T) {
	s, dir := setupTestStore(t)
	ctx := context.Background()

	doc := `[{"id": 1, "name": "JavaScript", "startDate": "2026-03-01", "participants": [101]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courses.json"), []byte(doc), 0o644))

	courses, err := s.LoadCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, []int{101}, courses[0].Participants)
}

func TestCorruptDocument(t *testing.T) {
	s, dir := setupTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trainees.json"), []byte("{not json"), 0o644))

	_, err := s.LoadTrainees(context.Background())
	assert.Error(t, err)
}

func TestLockIsPerStore(t *testing.T) {
	s, dir := setupTestStore(t)
	ctx := context.Background()

	unlock, err := s.Lock(ctx)
	require.NoError(t, err)
	assert.False(t, s.mu.TryLock(), "lock should be held")

	// a second store on the same directory stands in for another process
	other, err := New(dir)
	require.NoError(t, err)
	otherUnlock, err := other.Lock(ctx)
	require.NoError(t, err)
	require.NoError(t, otherUnlock())

	require.NoError(t, unlock())
	assert.True(t, s.mu.TryLock())
	s.mu.Unlock()
}
