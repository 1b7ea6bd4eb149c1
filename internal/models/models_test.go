package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCalendarDate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain day", input: "2026-05-01", want: true},
		{name: "end of february", input: "2025-02-28", want: true},
		{name: "leap day", input: "2024-02-29", want: true},
		{name: "leap day in common year", input: "2025-02-29", want: false},
		{name: "february 30", input: "2025-02-30", want: false},
		{name: "april 31", input: "2025-04-31", want: false},
		{name: "month 13", input: "2025-13-01", want: false},
		{name: "month 0", input: "2025-00-10", want: false},
		{name: "day 0", input: "2025-01-00", want: false},
		{name: "unpadded month", input: "2025-1-10", want: false},
		{name: "slashes", input: "2025/01/10", want: false},
		{name: "trailing text", input: "2025-01-10x", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsCalendarDate(tc.input))
		})
	}
}

func TestCourseValidate(t *testing.T) {
	full := make([]int, MaxParticipants)
	for i := range full {
		full[i] = i
	}

	testCases := []struct {
		name    string
		course  Course
		wantErr bool
	}{
		{name: "valid", course: Course{ID: 1, Name: "Go", StartDate: "2026-01-01", Participants: []int{}}},
		{name: "full roster", course: Course{ID: 1, Name: "Go", StartDate: "2026-01-01", Participants: full}},
		{name: "over capacity", course: Course{ID: 1, Name: "Go", StartDate: "2026-01-01", Participants: append(full, 99)}, wantErr: true},
		{name: "duplicate participant", course: Course{ID: 1, Name: "Go", StartDate: "2026-01-01", Participants: []int{3, 3}}, wantErr: true},
		{name: "bad date", course: Course{ID: 1, Name: "Go", StartDate: "2026-02-30"}, wantErr: true},
		{name: "id out of range", course: Course{ID: 100000, Name: "Go", StartDate: "2026-01-01"}, wantErr: true},
		{name: "no name", course: Course{ID: 1, StartDate: "2026-01-01"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.course.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCourseCapacity(t *testing.T) {
	c := Course{Participants: []int{1, 2}}
	assert.True(t, c.HasParticipant(2))
	assert.False(t, c.HasParticipant(3))
	assert.False(t, c.IsFull())

	courses := []Course{
		{ID: 1, Participants: []int{7}},
		{ID: 2, Participants: []int{1, 7}},
		{ID: 3},
	}
	assert.Equal(t, 2, EnrolmentCount(courses, 7))
	assert.Equal(t, 0, EnrolmentCount(courses, 8))
}

func TestTrainee(t *testing.T) {
	tr := Trainee{ID: 5, FirstName: "John", LastName: "Doe"}
	assert.NoError(t, tr.Validate())
	assert.Equal(t, "John Doe", tr.FullName())
	assert.Equal(t, "John", Trainee{FirstName: "John"}.FullName())

	tr.LastName = ""
	assert.Error(t, tr.Validate())

	assert.Error(t, (&Trainee{ID: -1, FirstName: "A", LastName: "B"}).Validate())
}
