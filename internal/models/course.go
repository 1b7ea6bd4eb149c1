package models

import "slices"

const (
	MaxParticipants = 20
	MaxEnrolments   = 5
)

type Course struct {
	ID           int    `db:"id" json:"id" validate:"min=0,lt=100000"`
	Name         string `db:"name" json:"name" validate:"required"`
	StartDate    string `db:"start_date" json:"startDate" validate:"required,calendardate"`
	Participants []int  `db:"-" json:"participants" validate:"max=20,unique"`
}

func (c Course) Key() int {
	return c.ID
}

func (c Course) HasParticipant(traineeID int) bool {
	return slices.Contains(c.Participants, traineeID)
}

func (c Course) IsFull() bool {
	return len(c.Participants) >= MaxParticipants
}

func (c *Course) Validate() error {
	return validate.Struct(c)
}

// EnrolmentCount reports in how many of the courses the trainee participates.
func EnrolmentCount(courses []Course, traineeID int) int {
	n := 0
	for _, c := range courses {
		if c.HasParticipant(traineeID) {
			n++
		}
	}
	return n
}
