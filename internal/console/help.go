package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const bannerRule = "=========================================="

var traineeHelp = []string{
	"  TRAINEE ADD <firstName> <lastName>          - Add a new trainee",
	"  TRAINEE UPDATE <id> [firstName] [lastName]  - Update trainee info",
	"  TRAINEE DELETE <id>                         - Delete a trainee",
	"  TRAINEE GET <id>                            - Get trainee details",
	"  TRAINEE GETALL                              - List all trainees",
}

var courseHelp = []string{
	"  COURSE ADD <name> <startDate>               - Add a new course (YYYY-MM-DD)",
	"  COURSE UPDATE <id> <name> <startDate>       - Update course info",
	"  COURSE DELETE <id>                          - Delete a course",
	"  COURSE JOIN <courseId> <traineeId>          - Add trainee to course",
	"  COURSE LEAVE <courseId> <traineeId>         - Remove trainee from course",
	"  COURSE GET <id>                             - Get course details",
	"  COURSE GETALL                               - List all courses",
}

type styles struct {
	banner  lipgloss.Style
	heading lipgloss.Style
	course  lipgloss.Style
	help    lipgloss.Style
	prompt  lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// newStyles binds the styles to out, so colour is only emitted when out is a
// terminal that supports it.
func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	if !color {
		return styles{
			banner:  r.NewStyle(),
			heading: r.NewStyle(),
			course:  r.NewStyle(),
			help:    r.NewStyle(),
			prompt:  r.NewStyle(),
			info:    r.NewStyle(),
			success: r.NewStyle(),
			failure: r.NewStyle(),
		}
	}
	return styles{
		banner:  r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		heading: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		course:  r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		help:    r.NewStyle().Foreground(lipgloss.Color("8")),
		prompt:  r.NewStyle(),
		info:    r.NewStyle().Foreground(lipgloss.Color("3")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (c *Console) printBanner() {
	s := c.styles
	fmt.Fprintln(c.out, s.banner.Render(bannerRule))
	fmt.Fprintln(c.out, s.banner.Render("     School Management CLI Application"))
	fmt.Fprintln(c.out, s.banner.Render(bannerRule))
	fmt.Fprintln(c.out)

	fmt.Fprintln(c.out, s.heading.Render("TRAINEE COMMANDS:"))
	for _, line := range traineeHelp {
		fmt.Fprintln(c.out, s.help.Render(line))
	}
	fmt.Fprintln(c.out)

	fmt.Fprintln(c.out, s.course.Render("COURSE COMMANDS:"))
	for _, line := range courseHelp {
		fmt.Fprintln(c.out, s.help.Render(line))
	}
	fmt.Fprintln(c.out)

	fmt.Fprintln(c.out, s.info.Render("Type QUIT or q to leave. Start entering commands below:"))
	fmt.Fprintln(c.out)
}
