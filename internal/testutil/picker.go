package testutil

import (
	"context"
	"sync"

	"gallery-go/internal/gallery"
)

// StubPicker returns a preset selection on every Pick.
type StubPicker struct {
	Assets []gallery.Asset
	Err    error
	Calls  int
}

var _ gallery.Picker = (*StubPicker)(nil)

func NewStubPicker(assets ...gallery.Asset) *StubPicker {
	return &StubPicker{Assets: assets}
}

func (p *StubPicker) Pick(context.Context) ([]gallery.Asset, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	out := make([]gallery.Asset, len(p.Assets))
	copy(out, p.Assets)
	return out, nil
}

// StubConsent grants or denies scopes from a fixed table and records requests.
type StubConsent struct {
	mu       sync.Mutex
	denied   map[gallery.Scope]bool
	err      error
	requests []gallery.Scope
}

var _ gallery.Consent = (*StubConsent)(nil)

// NewStubConsent grants every scope except those listed.
func NewStubConsent(denied ...gallery.Scope) *StubConsent {
	c := &StubConsent{denied: make(map[gallery.Scope]bool)}
	for _, s := range denied {
		c.denied[s] = true
	}
	return c
}

// FailWith makes every Request return err.
func (c *StubConsent) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *StubConsent) Request(_ context.Context, scope gallery.Scope) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, scope)
	if c.err != nil {
		return false, c.err
	}
	return !c.denied[scope], nil
}

// Requests returns the scopes asked for, in order.
func (c *StubConsent) Requests() []gallery.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]gallery.Scope(nil), c.requests...)
}

// RecordingPageViewer records every URI it is asked to open.
type RecordingPageViewer struct {
	mu     sync.Mutex
	Opened []string
	Err    error
}

var _ gallery.PageViewer = (*RecordingPageViewer)(nil)

func (v *RecordingPageViewer) OpenPage(_ context.Context, uri string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Opened = append(v.Opened, uri)
	return v.Err
}
