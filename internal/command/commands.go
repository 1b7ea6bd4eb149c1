package command

import (
	"strings"

	"github.com/shrimpsizemoose/schoolcli/internal/school"
)

// Command is one of the concrete command types below.
type Command interface {
	Op() string
}

type Quit struct{}

// Ignored is a line whose verb is neither TRAINEE nor COURSE. It produces no
// output.
type Ignored struct {
	Verb string
}

type TraineeAdd struct {
	FirstName string
	LastName  string
}

type TraineeUpdate struct {
	ID        school.Ref
	FirstName string
	LastName  string
}

type TraineeDelete struct {
	ID school.Ref
}

type TraineeGet struct {
	ID school.Ref
}

type TraineeGetAll struct{}

type CourseAdd struct {
	Name      string
	StartDate string
}

type CourseUpdate struct {
	ID        school.Ref
	Name      string
	StartDate string
}

type CourseDelete struct {
	ID school.Ref
}

type CourseJoin struct {
	CourseID  school.Ref
	TraineeID school.Ref
}

type CourseLeave struct {
	CourseID  school.Ref
	TraineeID school.Ref
}

type CourseGet struct {
	ID school.Ref
}

type CourseGetAll struct{}

func (Quit) Op() string { return "quit" }
func (Ignored) Op() string { return "ignored" }
func (TraineeAdd) Op() string { return "trainee_add" }
func (TraineeUpdate) Op() string { return "trainee_update" }
func (TraineeDelete) Op() string { return "trainee_delete" }
func (TraineeGet) Op() string { return "trainee_get" }
func (TraineeGetAll) Op() string { return "trainee_getall" }
func (CourseAdd) Op() string { return "course_add" }
func (CourseUpdate) Op() string { return "course_update" }
func (CourseDelete) Op() string { return "course_delete" }
func (CourseJoin) Op() string { return "course_join" }
func (CourseLeave) Op() string { return "course_leave" }
func (CourseGet) Op() string { return "course_get" }
func (CourseGetAll) Op() string { return "course_getall" }

type builder func(args []string) Command

var traineeBuilders = map[string]builder{
	"ADD": func(args []string) Command {
		return TraineeAdd{FirstName: arg(args, 0), LastName: arg(args, 1)}
	},
	"UPDATE": func(args []string) Command {
		return TraineeUpdate{ID: school.Ref(arg(args, 0)), FirstName: arg(args, 1), LastName: arg(args, 2)}
	},
	"DELETE": func(args []string) Command {
		return TraineeDelete{ID: school.Ref(arg(args, 0))}
	},
	"GET": func(args []string) Command {
		return TraineeGet{ID: school.Ref(arg(args, 0))}
	},
	"GETALL": func(args []string) Command {
		return TraineeGetAll{}
	},
}

// Course names may span several tokens: the last token is always the date and
// everything before it (after the ID for UPDATE) is the name. A name wrapped
// in a single pair of double quotes loses them.
var courseBuilders = map[string]builder{
	"ADD": func(args []string) Command {
		if len(args) == 0 {
			return CourseAdd{}
		}
		last := len(args) - 1
		return CourseAdd{Name: courseName(args[:last]), StartDate: args[last]}
	},
	"UPDATE": func(args []string) Command {
		cmd := CourseUpdate{ID: school.Ref(arg(args, 0))}
		if len(args) < 2 {
			return cmd
		}
		last := len(args) - 1
		cmd.Name = courseName(args[1:last])
		cmd.StartDate = args[last]
		return cmd
	},
	"DELETE": func(args []string) Command {
		return CourseDelete{ID: school.Ref(arg(args, 0))}
	},
	"JOIN": func(args []string) Command {
		return CourseJoin{CourseID: school.Ref(arg(args, 0)), TraineeID: school.Ref(arg(args, 1))}
	},
	"LEAVE": func(args []string) Command {
		return CourseLeave{CourseID: school.Ref(arg(args, 0)), TraineeID: school.Ref(arg(args, 1))}
	},
	"GET": func(args []string) Command {
		return CourseGet{ID: school.Ref(arg(args, 0))}
	},
	"GETALL": func(args []string) Command {
		return CourseGetAll{}
	},
}

// Build turns a tokenized line into a typed command. Unknown sub-verbs of a
// known verb are an error; unknown verbs are Ignored.
func Build(line Line) (Command, error) {
	if line.Quit {
		return Quit{}, nil
	}

	var builders map[string]builder
	var domain string
	switch line.Verb {
	case "TRAINEE":
		builders, domain = traineeBuilders, "trainee"
	case "COURSE":
		builders, domain = courseBuilders, "course"
	default:
		return Ignored{Verb: line.Verb}, nil
	}

	build, found := builders[line.Subverb]
	if !found {
		return nil, &school.Error{
			Kind: school.KindUnknownSubcommand,
			Msg:  "Unknown " + domain + " subcommand '" + line.Subverb + "'",
		}
	}
	return build(line.Args), nil
}

func courseName(tokens []string) string {
	name := strings.Join(tokens, " ")
	if len(name) < 2 || !strings.HasPrefix(name, `"`) || !strings.HasSuffix(name, `"`) {
		return name
	}
	inner := name[1 : len(name)-1]
	if strings.Contains(inner, `"`) {
		return name
	}
	return inner
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
