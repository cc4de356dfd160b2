package picker

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gallery-go/internal/gallery"
)

func newTestConsent(input string, tty bool) (*TerminalConsent, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &TerminalConsent{
		in:    strings.NewReader(input),
		out:   out,
		isTTY: func() bool { return tty },
	}, out
}

func TestTerminalConsent_Answers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: " y ", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "sure\n", want: false},
		{input: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, out := newTestConsent(tt.input, true)
			got, err := c.Request(context.Background(), gallery.ScopeLibrary)
			if err != nil {
				t.Fatalf("Request() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Request() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "photo library") {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestTerminalConsent_Assume(t *testing.T) {
	c, out := newTestConsent("", false)
	c.assume = true

	got, err := c.Request(context.Background(), gallery.ScopeCamera)
	if err != nil || !got {
		t.Errorf("Request() = %v, %v; want true, nil", got, err)
	}
	if out.Len() != 0 {
		t.Errorf("assumed consent still prompted: %q", out.String())
	}
}

func TestTerminalConsent_NotATerminal(t *testing.T) {
	c, _ := newTestConsent("y\n", false)

	if _, err := c.Request(context.Background(), gallery.ScopeLibrary); err == nil {
		t.Error("Request() without a terminal expected error")
	}
}

func TestTerminalConsent_TypedAhead(t *testing.T) {
	tests := []struct {
		input       string
		wantLibrary bool
		wantCamera  bool
	}{
		{input: "y\ny\n", wantLibrary: true, wantCamera: true},
		{input: "y\nn\n", wantLibrary: true, wantCamera: false},
		{input: "n\nyes\n", wantLibrary: false, wantCamera: true},
		{input: "y\n", wantLibrary: true, wantCamera: false},
	}
	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.input, "\n", "|"), func(t *testing.T) {
			c, out := newTestConsent(tt.input, true)
			ctx := context.Background()

			library, err := c.Request(ctx, gallery.ScopeLibrary)
			if err != nil {
				t.Fatalf("Request(library) error = %v", err)
			}
			camera, err := c.Request(ctx, gallery.ScopeCamera)
			if err != nil {
				t.Fatalf("Request(camera) error = %v", err)
			}
			if library != tt.wantLibrary || camera != tt.wantCamera {
				t.Errorf("library=%v camera=%v, want library=%v camera=%v",
					library, camera, tt.wantLibrary, tt.wantCamera)
			}
			if strings.Count(out.String(), "[y/N]") != 2 {
				t.Errorf("prompts = %q, want two", out.String())
			}
		})
	}
}
