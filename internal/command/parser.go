package command

import (
	"strings"

	"github.com/shrimpsizemoose/schoolcli/internal/school"
)

const usage = "Invalid command format.\nUsage: <COMMAND> <SUB_COMMAND> <PARAMETER1> <PARAMETER2> ..."

// Line is one input line split into its parts. Verb and Subverb are upper
// cased; Args are kept exactly as typed.
type Line struct {
	Verb    string
	Subverb string
	Args    []string
	Quit    bool
}

// Tokenize trims the input and collapses whitespace runs before splitting.
// "QUIT" and "q" are matched case-sensitively and end the session.
func Tokenize(input string) (Line, error) {
	parts := strings.Fields(input)
	sanitized := strings.Join(parts, " ")

	if sanitized == "QUIT" || sanitized == "q" {
		return Line{Quit: true}, nil
	}

	if len(parts) < 2 {
		return Line{}, &school.Error{Kind: school.KindParseFailure, Msg: usage}
	}

	return Line{
		Verb:    strings.ToUpper(parts[0]),
		Subverb: strings.ToUpper(parts[1]),
		Args:    parts[2:],
	}, nil
}
