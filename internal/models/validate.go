package models

import (
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		return IsCalendarDate(fl.Field().String())
	})
	return v
}

// IsCalendarDate reports whether s is a zero-padded YYYY-MM-DD string naming a
// day that exists on the calendar. The triple is round-tripped through
// time.Date, which normalises overflow (Feb 30 becomes Mar 2), so any
// normalisation means the date does not exist.
func IsCalendarDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && int(d.Month()) == month && d.Day() == day
}
