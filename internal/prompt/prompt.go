// Package prompt implements the operator interaction of a release run: the
// release-type menu and the yes/no confirmation gates.
//
// Input is read line by line, so a test or a script can answer every prompt
// through a plain io.Reader. Output is styled with lipgloss through a
// renderer bound to the output writer; on anything that is not a terminal
// the styles degrade to plain text.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmr-tortoise/cutrelease/internal/version"
)

// ErrNoInput is returned when input ends before a menu choice is made.
var ErrNoInput = errors.New("no input: expected a release type")

// Prompter asks the operator questions over a reader/writer pair.
type Prompter struct {
	scanner   *bufio.Scanner
	out       io.Writer
	assumeYes bool

	// pending delivers the line being read by the background reader. It
	// outlives a cancelled prompt so the line is not lost and the scanner
	// is never used by two goroutines.
	pending chan scanResult

	question lipgloss.Style
	subtle   lipgloss.Style
	warning  lipgloss.Style
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithAssumeYes answers every confirmation with "yes" without reading input.
func WithAssumeYes(assumeYes bool) Option {
	return func(p *Prompter) { p.assumeYes = assumeYes }
}

// New creates a Prompter reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	r := lipgloss.NewRenderer(out)
	p := &Prompter{
		scanner:  bufio.NewScanner(in),
		out:      out,
		question: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		subtle:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// scanResult is one line read from the input.
type scanResult struct {
	line string
	ok   bool
	err  error
}

// Confirm prints message and asks "[y/N]". Only "y" or "yes" (any case)
// confirm; an empty line or closed input means no. Cancelling ctx while
// waiting returns ctx.Err().
//
// message may span several lines; the last one is the question.
func (p *Prompter) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	for _, line := range lines[:len(lines)-1] {
		fmt.Fprintln(p.out, line)
	}
	fmt.Fprintf(p.out, "%s %s ", p.question.Render(lines[len(lines)-1]), p.subtle.Render("[y/N]"))

	if p.assumeYes {
		fmt.Fprintln(p.out, "y")
		return true, nil
	}

	line, ok, err := p.readLine(ctx)
	if err != nil {
		fmt.Fprintln(p.out)
		return false, err
	}
	if !ok {
		fmt.Fprintln(p.out)
		return false, nil
	}

	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes", nil
}

// SelectIntent shows the numbered release-type menu and re-asks until a
// valid choice is entered. Cancelling ctx while waiting returns ctx.Err().
func (p *Prompter) SelectIntent(ctx context.Context) (version.Intent, error) {
	for {
		if err := ctx.Err(); err != nil {
			return version.IntentUnset, err
		}

		fmt.Fprintln(p.out, p.question.Render("What type of release is this?"))
		for n, intent := range version.Intents {
			fmt.Fprintf(p.out, "  %d = %s\n", n+1, intent.Label())
		}
		fmt.Fprint(p.out, ": ")

		line, ok, err := p.readLine(ctx)
		if err != nil {
			fmt.Fprintln(p.out)
			return version.IntentUnset, err
		}
		if !ok {
			return version.IntentUnset, ErrNoInput
		}

		intent, err := parseChoice(line)
		if err != nil {
			fmt.Fprintln(p.out, p.warning.Render(err.Error()))
			continue
		}
		return intent, nil
	}
}

// parseChoice accepts a menu number only.
func parseChoice(line string) (version.Intent, error) {
	var n int
	if _, err := fmt.Sscanf(line, "%d", &n); err != nil || fmt.Sprint(n) != line {
		return version.IntentUnset, errors.New("invalid input, please enter a number")
	}
	if n < 1 || n > len(version.Intents) {
		return version.IntentUnset, errors.New("invalid input, please enter a valid number")
	}
	return version.Intents[n-1], nil
}

// readLine returns the next trimmed line; ok is false at end of input.
// The scan runs in its own goroutine so a cancelled ctx unblocks the caller.
func (p *Prompter) readLine(ctx context.Context) (string, bool, error) {
	if p.pending == nil {
		ch := make(chan scanResult, 1)
		p.pending = ch
		go func() {
			if p.scanner.Scan() {
				ch <- scanResult{line: strings.TrimSpace(p.scanner.Text()), ok: true}
				return
			}
			ch <- scanResult{err: p.scanner.Err()}
		}()
	}

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		return r.line, r.ok, r.err
	}
}
