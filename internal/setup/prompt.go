package setup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().Foreground(subtle)
)

// Bounds limits for the number of files processed per exchange.
type Bounds struct {
	Min     int
	Max     int
	Default int
}

// Prompter asks the operator for a raw answer.
type Prompter interface {
	Ask(b Bounds) (string, error)
}

// HuhPrompter asks through an interactive terminal form.
type HuhPrompter struct {
	Out io.Writer
}

// Ask renders a header and a single input field.
func (p HuhPrompter) Ask(b Bounds) (string, error) {
	if p.Out != nil {
		fmt.Fprintln(p.Out, headerStyle.Render("STOCKCAST"))
		fmt.Fprintln(p.Out, hintStyle.Render(fmt.Sprintf("Invalid answers fall back to %d.", b.Default)))
	}

	answer := strconv.Itoa(b.Default)
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Number of files to process per exchange [%d-%d]", b.Min, b.Max)).
				Value(&answer),
		),
	).Run()
	if err != nil {
		return "", err
	}

	return answer, nil
}

// ClampFilesPerExchange parses raw and returns it when it lies within bounds.
// Anything else yields the default and false.
func ClampFilesPerExchange(raw string, b Bounds) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < b.Min || n > b.Max {
		return b.Default, false
	}
	return n, true
}

// FilesPerExchange returns configured when it is set (non-zero), otherwise asks the operator.
// The second value is false when the answer was replaced by the default.
func FilesPerExchange(p Prompter, configured int, b Bounds) (int, bool, error) {
	if configured != 0 {
		n, ok := ClampFilesPerExchange(strconv.Itoa(configured), b)
		return n, ok, nil
	}

	raw, err := p.Ask(b)
	if err != nil {
		return 0, false, err
	}

	n, ok := ClampFilesPerExchange(raw, b)
	return n, ok, nil
}
