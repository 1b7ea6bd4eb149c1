package models

import "strings"

type Trainee struct {
	ID        int    `db:"id" json:"id" validate:"min=0,lt=100000"`
	FirstName string `db:"first_name" json:"firstName" validate:"required"`
	LastName  string `db:"last_name" json:"lastName" validate:"required"`
}

func (t Trainee) Key() int {
	return t.ID
}

// FullName joins first and last name, trimming the gap when one is empty.
func (t Trainee) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

func (t *Trainee) Validate() error {
	return validate.Struct(t)
}
