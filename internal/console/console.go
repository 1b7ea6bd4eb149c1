package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/schoolcli/internal/command"
)

const prompt = "Enter Command: "

// Executor runs one raw command line.
type Executor interface {
	Execute(ctx context.Context, line string) command.Result
}

type Options struct {
	Color  bool
	Banner bool
}

type Console struct {
	in     io.Reader
	out    io.Writer
	exec   Executor
	opts   Options
	styles styles
}

func New(in io.Reader, out io.Writer, exec Executor, opts Options) *Console {
	return &Console{
		in:     in,
		out:    out,
		exec:   exec,
		opts:   opts,
		styles: newStyles(out, opts.Color),
	}
}

// Run reads and executes one line at a time until QUIT, end of input or ctx
// is cancelled.
func (c *Console) Run(ctx context.Context) error {
	if c.opts.Banner {
		c.printBanner()
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(c.out, c.styles.prompt.Render(prompt))

		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			logger.Info.Println("Shutting down console...")
			return nil

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return <-readErr
			}
			if c.Print(c.exec.Execute(ctx, line)) {
				return nil
			}
		}
	}
}

// Print shows a result and reports whether the session should end.
func (c *Console) Print(res command.Result) bool {
	switch {
	case res.Quit:
		fmt.Fprintln(c.out, c.styles.info.Render("Quitting the program."))
		return true
	case res.Err != nil:
		fmt.Fprintln(c.out, renderLines(c.styles.failure, res.Output))
	case res.Output != "":
		fmt.Fprintln(c.out, renderLines(c.styles.success, res.Output))
	}
	return false
}

// renderLines styles each line on its own; rendering the block at once would
// pad every line to the widest one.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
