package picker

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"gallery-go/internal/gallery"
)

// BrowserViewer opens website entries in the system browser. When no opener
// command is available it prints the address instead.
type BrowserViewer struct {
	out     io.Writer
	command func(uri string) *exec.Cmd
}

var _ gallery.PageViewer = (*BrowserViewer)(nil)

// NewBrowserViewer creates a viewer that launches the platform opener.
// printOnly forces the address to be written to out rather than opened.
func NewBrowserViewer(out io.Writer, printOnly bool) *BrowserViewer {
	v := &BrowserViewer{out: out}
	if !printOnly {
		v.command = openerCommand(runtime.GOOS)
	}
	return v
}

func openerCommand(goos string) func(uri string) *exec.Cmd {
	var name string
	var args []string
	switch goos {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		name = "xdg-open"
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil
	}
	return func(uri string) *exec.Cmd {
		return exec.Command(name, append(args, uri)...)
	}
}

// OpenPage hands uri to the opener and returns without waiting. The opener
// is not tied to ctx, so it outlives the command that launched it.
func (v *BrowserViewer) OpenPage(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.command == nil {
		_, err := fmt.Fprintf(v.out, "Open in your browser: %s\n", uri)
		return err
	}
	cmd := v.command(uri)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("detaching browser: %w", err)
	}
	return nil
}
