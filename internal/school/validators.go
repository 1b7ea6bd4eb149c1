package school

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
)

// IDSpace is the exclusive upper bound of generated record IDs.
const IDSpace = 100000

const (
	invalidDateMsg        = "Invalid start date. Must be in yyyy-MM-dd format"
	invalidTraineeNameMsg = "Invalid name. Must be valid UTF-8 text"
	invalidCourseNameMsg  = "Invalid course name. Must be valid UTF-8 text"

	notFoundPhrase     = "not found"
	doesNotExistPhrase = "does not exist"
)

type keyed interface {
	Key() int
}

// requireField fails with msg when any of values is empty. One message covers
// every field of an operation.
func requireField(msg string, values ...string) error {
	for _, v := range values {
		if v == "" {
			return &Error{Kind: KindMissingField, Msg: msg}
		}
	}
	return nil
}

// requireText fails with msg when any of values is not valid UTF-8. Stored
// documents are JSON, which cannot carry such bytes unchanged.
func requireText(msg string, values ...string) error {
	for _, v := range values {
		if !utf8.ValidString(v) {
			return &Error{Kind: KindInvalidFormat, Msg: msg}
		}
	}
	return nil
}

func requireCalendarDate(s string) error {
	if !models.IsCalendarDate(s) {
		return &Error{Kind: KindInvalidFormat, Msg: invalidDateMsg}
	}
	return nil
}

// requireExisting returns the index of the record ref points at.
func requireExisting[T keyed](items []T, ref Ref, entity, phrase string) (int, error) {
	if id, ok := ref.ID(); ok {
		for i, item := range items {
			if item.Key() == id {
				return i, nil
			}
		}
	}
	return -1, &Error{
		Kind:   KindNotFound,
		Msg:    entity + " with ID " + ref.String() + " " + phrase,
		Entity: entity,
		Ref:    ref,
	}
}

// uniqueID draws from next until it hits an ID no item holds.
func uniqueID[T keyed](items []T, next func() int) (int, error) {
	taken := make(map[int]bool, len(items))
	for _, item := range items {
		taken[item.Key()] = true
	}
	if len(taken) >= IDSpace {
		return 0, newError(KindCapacityExceeded, "No free IDs left")
	}
	for {
		id := next()
		if id < 0 || id >= IDSpace {
			continue
		}
		if !taken[id] {
			return id, nil
		}
	}
}

func randomID() int {
	return rand.IntN(IDSpace)
}

// NormalizeName upper-cases the first letter and lower-cases the rest.
// Invalid UTF-8 is returned as is.
func NormalizeName(s string) string {
	if s == "" || !utf8.ValidString(s) {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
