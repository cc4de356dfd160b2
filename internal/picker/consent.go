package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"gallery-go/internal/gallery"
)

var scopePrompts = map[gallery.Scope]string{
	gallery.ScopeLibrary: "Allow access to your photo library?",
	gallery.ScopeCamera:  "Allow access to your camera?",
}

// TerminalConsent asks for each scope with a y/N prompt. When assume is set,
// every scope is granted without asking.
type TerminalConsent struct {
	in     io.Reader
	out    io.Writer
	assume bool
	isTTY  func() bool

	// answers is shared by every prompt so typed-ahead lines survive.
	answers *bufio.Reader
}

var _ gallery.Consent = (*TerminalConsent)(nil)

// NewTerminalConsent prompts on stdin and stdout.
func NewTerminalConsent(assume bool) *TerminalConsent {
	return &TerminalConsent{
		in:     os.Stdin,
		out:    os.Stdout,
		assume: assume,
		isTTY:  func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// Request prompts for scope. It fails when input is not a terminal, since
// nobody is there to answer.
func (c *TerminalConsent) Request(ctx context.Context, scope gallery.Scope) (bool, error) {
	if c.assume {
		return true, nil
	}
	if c.isTTY != nil && !c.isTTY() {
		return false, fmt.Errorf("cannot ask for %s access: input is not a terminal (use --yes)", scope)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	prompt, ok := scopePrompts[scope]
	if !ok {
		prompt = fmt.Sprintf("Allow %s access?", scope)
	}
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)

	if c.answers == nil {
		c.answers = bufio.NewReader(c.in)
	}
	line, err := c.answers.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
