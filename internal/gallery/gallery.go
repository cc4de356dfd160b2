package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("entry not found")

// Mode is how an opened entry is shown.
type Mode string

const (
	ModeFullscreen Mode = "fullscreen"
	ModeWebsite    Mode = "website"
)

// View is the transient state of an opened entry. It is never persisted.
type View struct {
	Mode    Mode
	Entry   MediaEntry
	Rotated bool
}

// Rotate toggles a quarter-turn display rotation.
func (v View) Rotate() View {
	v.Rotated = !v.Rotated
	return v
}

// Gallery holds the current collection and routes user actions to the Store.
// Calls are serialized; each mutation replaces the held collection with the
// value the Store returns.
type Gallery struct {
	store   *Store
	picker  Picker
	consent Consent
	viewer  PageViewer
	ids     IDGenerator
	logger  Logger

	mu    sync.Mutex
	items Collection
}

// NewGallery creates a Gallery. consent may be nil, in which case every
// scope is treated as granted.
func NewGallery(store *Store, picker Picker, consent Consent, viewer PageViewer, ids IDGenerator, logger Logger) *Gallery {
	return &Gallery{
		store:   store,
		picker:  picker,
		consent: consent,
		viewer:  viewer,
		ids:     ids,
		logger:  logger,
		items:   Collection{},
	}
}

// Init loads the persisted collection.
func (g *Gallery) Init(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = g.store.Load(ctx)
}

// Items returns a copy of the current collection.
func (g *Gallery) Items() Collection {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.items.Clone()
}

// Grid lays out the current collection at the given column width.
func (g *Gallery) Grid(columnWidth float64) []Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Layout(g.items, columnWidth)
}

// PickMedia asks for library and camera consent, runs the picker and appends
// the selected assets. Returns the number of entries added.
func (g *Gallery) PickMedia(ctx context.Context) (int, error) {
	if g.picker == nil {
		return 0, fmt.Errorf("no media picker configured")
	}
	if err := g.requestPermissions(ctx); err != nil {
		return 0, err
	}

	assets, err := g.picker.Pick(ctx)
	if err != nil {
		return 0, fmt.Errorf("picking media: %w", err)
	}
	if len(assets) == 0 {
		g.logger.Info("media selection cancelled")
		return 0, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	taken := make(map[string]bool, len(g.items)+len(assets))
	for _, e := range g.items {
		taken[e.ID] = true
	}

	entries := make([]MediaEntry, 0, len(assets))
	for _, a := range assets {
		e := MediaEntry{
			ID:       a.AssetID,
			URI:      a.URI,
			Kind:     a.Kind,
			Width:    a.Width,
			Height:   a.Height,
			Rotation: a.Rotation,
		}
		if e.ID == "" || taken[e.ID] {
			e.ID = g.ids.New()
		}
		if err := e.Validate(); err != nil {
			g.logger.Warn("skipping selected asset", "uri", a.URI, "error", err)
			continue
		}
		taken[e.ID] = true
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	g.logger.Info("selected media assets", "count", len(entries))
	g.items = g.store.Append(ctx, g.items, entries...)
	return len(entries), nil
}

func (g *Gallery) requestPermissions(ctx context.Context) error {
	if g.consent == nil {
		return nil
	}
	for _, scope := range []Scope{ScopeLibrary, ScopeCamera} {
		granted, err := g.consent.Request(ctx, scope)
		if err != nil {
			return fmt.Errorf("requesting %s permission: %w", scope, err)
		}
		if !granted {
			return fmt.Errorf("access to %s is required: %w", scope, ErrPermissionDenied)
		}
	}
	return nil
}

// AddWebsite appends a website entry. Addresses that do not mention "http"
// anywhere get https:// prepended.
func (g *Gallery) AddWebsite(ctx context.Context, raw string) (MediaEntry, error) {
	uri := strings.TrimSpace(raw)
	if uri == "" {
		return MediaEntry{}, fmt.Errorf("website address is empty")
	}
	if !strings.Contains(strings.ToLower(uri), "http") {
		uri = "https://" + uri
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	e := MediaEntry{
		ID:     g.ids.New(),
		URI:    uri,
		Kind:   KindWebsite,
		Width:  WebsiteWidth,
		Height: WebsiteHeight,
	}
	g.logger.Info("added website", "id", e.ID, "uri", e.URI)
	g.items = g.store.Append(ctx, g.items, e)
	return e, nil
}

// Remove deletes the entry with the given id. Unknown ids are ignored.
func (g *Gallery) Remove(ctx context.Context, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = g.store.Delete(ctx, g.items, id)
}

// Move relocates the entry with the given id to a user-typed position.
// Returns ErrInvalidIndex if target is not an integer.
func (g *Gallery) Move(ctx context.Context, id string, target string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	items, err := g.store.Reorder(ctx, g.items, id, target)
	if err != nil {
		return err
	}
	g.items = items
	return nil
}

// Open shows the entry with the given id. Websites are handed to the page
// viewer; everything else opens fullscreen.
func (g *Gallery) Open(ctx context.Context, id string) (View, error) {
	g.mu.Lock()
	e, ok := g.items.Find(id)
	g.mu.Unlock()
	if !ok {
		return View{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	if e.Kind != KindWebsite {
		return View{Mode: ModeFullscreen, Entry: e}, nil
	}

	if g.viewer != nil {
		if err := g.viewer.OpenPage(ctx, e.URI); err != nil {
			return View{}, fmt.Errorf("opening page: %w", err)
		}
	}
	return View{Mode: ModeWebsite, Entry: e}, nil
}
