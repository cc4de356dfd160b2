package picker

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBrowserViewer_Print(t *testing.T) {
	var out bytes.Buffer
	v := NewBrowserViewer(&out, true)

	if err := v.OpenPage(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("OpenPage() error = %v", err)
	}
	if !strings.Contains(out.String(), "https://example.com") {
		t.Errorf("output = %q, want the address", out.String())
	}
}

func TestBrowserViewer_Command(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}

	var got []string
	v := &BrowserViewer{
		command: func(uri string) *exec.Cmd {
			got = append(got, uri)
			return exec.Command(truePath)
		},
	}
	if err := v.OpenPage(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("OpenPage() error = %v", err)
	}
	if len(got) != 1 || got[0] != "https://example.com" {
		t.Errorf("command called with %v", got)
	}
}

func TestBrowserViewer_OutlivesContext(t *testing.T) {
	shPath, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	marker := filepath.Join(t.TempDir(), "opened")

	v := &BrowserViewer{
		command: func(uri string) *exec.Cmd {
			return exec.Command(shPath, "-c", `sleep 0.3; echo "$1" > "$2"`, "sh", uri, marker)
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := v.OpenPage(ctx, "https://example.com"); err != nil {
		t.Fatalf("OpenPage() error = %v", err)
	}
	cancel()

	deadline := time.Now().Add(5 * time.Second)
	for {
		data, err := os.ReadFile(marker)
		if err == nil && strings.TrimSpace(string(data)) == "https://example.com" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("opener did not finish after the context was cancelled")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestBrowserViewer_CancelledBeforeOpen(t *testing.T) {
	called := false
	v := &BrowserViewer{
		command: func(uri string) *exec.Cmd {
			called = true
			return exec.Command("true")
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := v.OpenPage(ctx, "https://example.com"); err == nil {
		t.Error("OpenPage() with cancelled context expected error")
	}
	if called {
		t.Error("opener launched after cancellation")
	}
}
