package gallery_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gallery-go/internal/gallery"
	"gallery-go/internal/testutil"
)

type galleryFixture struct {
	gallery *gallery.Gallery
	kv      *testutil.FailingKVStore
	picker  *testutil.StubPicker
	consent *testutil.StubConsent
	viewer  *testutil.RecordingPageViewer
	logger  *testutil.RecordingLogger
}

func newGalleryFixture(t *testing.T) *galleryFixture {
	t.Helper()
	f := &galleryFixture{
		kv:      testutil.NewFailingKVStore(),
		picker:  testutil.NewStubPicker(),
		consent: testutil.NewStubConsent(),
		viewer:  &testutil.RecordingPageViewer{},
		logger:  testutil.NewRecordingLogger(),
	}
	ids := testutil.NewStubIDGenerator()
	store := gallery.NewStore(f.kv, f.logger, gallery.WithIDGenerator(ids))
	f.gallery = gallery.NewGallery(store, f.picker, f.consent, f.viewer, ids, f.logger)
	f.gallery.Init(context.Background())
	return f
}

func TestGallery_InitEmpty(t *testing.T) {
	f := newGalleryFixture(t)
	if items := f.gallery.Items(); len(items) != 0 {
		t.Errorf("Items() = %v, want empty", items)
	}
}

func TestGallery_PickMedia(t *testing.T) {
	f := newGalleryFixture(t)
	f.picker.Assets = []gallery.Asset{
		{AssetID: "asset-a", URI: "file:///a.jpg", Kind: gallery.KindImage, Width: 400, Height: 300},
		{URI: "file:///b.mov", Kind: gallery.KindVideo, Width: 1920, Height: 1080, Rotation: 90},
	}
	ctx := context.Background()

	n, err := f.gallery.PickMedia(ctx)
	if err != nil {
		t.Fatalf("PickMedia() error = %v", err)
	}
	if n != 2 {
		t.Errorf("PickMedia() = %d, want 2", n)
	}

	items := f.gallery.Items()
	if want := []string{"asset-a", "media-1"}; !reflect.DeepEqual(ids(items), want) {
		t.Errorf("ids = %v, want %v", ids(items), want)
	}
	if items[1].Rotation != 90 {
		t.Errorf("rotation = %d, want 90 from picker", items[1].Rotation)
	}

	wantScopes := []gallery.Scope{gallery.ScopeLibrary, gallery.ScopeCamera}
	if got := f.consent.Requests(); !reflect.DeepEqual(got, wantScopes) {
		t.Errorf("consent requests = %v, want %v", got, wantScopes)
	}

	// Persisted.
	fresh := gallery.NewStore(f.kv, gallery.NewNopLogger())
	if got := fresh.Load(ctx); !reflect.DeepEqual(got, items) {
		t.Errorf("persisted = %v, want %v", got, items)
	}
}

func TestGallery_PickMediaRepeatedAssetID(t *testing.T) {
	f := newGalleryFixture(t)
	f.picker.Assets = []gallery.Asset{{AssetID: "same", URI: "file:///a.jpg", Kind: gallery.KindImage}}
	ctx := context.Background()

	for range 2 {
		if _, err := f.gallery.PickMedia(ctx); err != nil {
			t.Fatalf("PickMedia() error = %v", err)
		}
	}

	items := f.gallery.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Errorf("duplicate ids after picking the same asset twice: %v", ids(items))
	}
}

func TestGallery_PickMediaPermissionDenied(t *testing.T) {
	for _, scope := range []gallery.Scope{gallery.ScopeLibrary, gallery.ScopeCamera} {
		t.Run(string(scope), func(t *testing.T) {
			f := newGalleryFixture(t)
			f.consent = testutil.NewStubConsent(scope)
			store := gallery.NewStore(f.kv, f.logger)
			g := gallery.NewGallery(store, f.picker, f.consent, f.viewer, testutil.NewStubIDGenerator(), f.logger)
			f.picker.Assets = []gallery.Asset{{URI: "file:///a.jpg", Kind: gallery.KindImage}}

			n, err := g.PickMedia(context.Background())
			if !errors.Is(err, gallery.ErrPermissionDenied) {
				t.Fatalf("PickMedia() error = %v, want ErrPermissionDenied", err)
			}
			if n != 0 {
				t.Errorf("PickMedia() = %d, want 0", n)
			}
			if f.picker.Calls != 0 {
				t.Errorf("picker invoked without permission")
			}
			if f.kv.Puts() != 0 {
				t.Errorf("storage written without permission")
			}
		})
	}
}

func TestGallery_PickMediaConsentError(t *testing.T) {
	f := newGalleryFixture(t)
	boom := errors.New("no tty")
	f.consent.FailWith(boom)

	if _, err := f.gallery.PickMedia(context.Background()); !errors.Is(err, boom) {
		t.Errorf("PickMedia() error = %v, want %v", err, boom)
	}
}

func TestGallery_PickMediaCancelled(t *testing.T) {
	f := newGalleryFixture(t)

	n, err := f.gallery.PickMedia(context.Background())
	if err != nil {
		t.Fatalf("PickMedia() error = %v", err)
	}
	if n != 0 {
		t.Errorf("PickMedia() = %d, want 0", n)
	}
	if f.kv.Puts() != 0 {
		t.Errorf("cancelled selection wrote to storage")
	}
}

func TestGallery_PickMediaPickerError(t *testing.T) {
	f := newGalleryFixture(t)
	f.picker.Err = errors.New("library unavailable")

	if _, err := f.gallery.PickMedia(context.Background()); err == nil {
		t.Error("PickMedia() expected error")
	}
	if len(f.gallery.Items()) != 0 {
		t.Errorf("items changed after picker error")
	}
}

func TestGallery_PickMediaSkipsInvalidAssets(t *testing.T) {
	f := newGalleryFixture(t)
	f.picker.Assets = []gallery.Asset{
		{URI: "", Kind: gallery.KindImage},
		{URI: "file:///ok.jpg", Kind: gallery.KindImage, Width: 1, Height: 1},
	}

	n, err := f.gallery.PickMedia(context.Background())
	if err != nil {
		t.Fatalf("PickMedia() error = %v", err)
	}
	if n != 1 {
		t.Errorf("PickMedia() = %d, want 1", n)
	}
	if f.logger.Count("WARN") != 1 {
		t.Errorf("skipped asset logged %d warnings, want 1", f.logger.Count("WARN"))
	}
}

func TestGallery_AddWebsite(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "example.com", want: "https://example.com"},
		{raw: "  example.com/path  ", want: "https://example.com/path"},
		{raw: "http://example.com", want: "http://example.com"},
		{raw: "https://example.com", want: "https://example.com"},
		{raw: "HTTPS://Example.com", want: "HTTPS://Example.com"},
		{raw: "example.com/?r=http", want: "example.com/?r=http"},
		{raw: "ftp.example.com/httpdocs", want: "ftp.example.com/httpdocs"},
		{raw: "ftp.example.com/docs", want: "https://ftp.example.com/docs"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := newGalleryFixture(t)

			e, err := f.gallery.AddWebsite(context.Background(), tt.raw)
			if err != nil {
				t.Fatalf("AddWebsite() error = %v", err)
			}
			if e.URI != tt.want {
				t.Errorf("URI = %q, want %q", e.URI, tt.want)
			}
			if e.Kind != gallery.KindWebsite {
				t.Errorf("Kind = %q, want website", e.Kind)
			}
			if e.Width != gallery.WebsiteWidth || e.Height != gallery.WebsiteHeight {
				t.Errorf("size = %dx%d, want %dx%d", e.Width, e.Height, gallery.WebsiteWidth, gallery.WebsiteHeight)
			}
			if items := f.gallery.Items(); len(items) != 1 || items[0] != e {
				t.Errorf("Items() = %v, want [%v]", items, e)
			}
		})
	}
}

func TestGallery_AddWebsiteEmpty(t *testing.T) {
	f := newGalleryFixture(t)

	if _, err := f.gallery.AddWebsite(context.Background(), "   "); err == nil {
		t.Error("AddWebsite() expected error for blank input")
	}
	if f.kv.Puts() != 0 {
		t.Errorf("blank website wrote to storage")
	}
}

func TestGallery_RemoveAndMove(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()
	for _, site := range []string{"a.com", "b.com", "c.com"} {
		if _, err := f.gallery.AddWebsite(ctx, site); err != nil {
			t.Fatalf("AddWebsite() error = %v", err)
		}
	}

	if err := f.gallery.Move(ctx, "media-3", "0"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if want := []string{"media-3", "media-1", "media-2"}; !reflect.DeepEqual(ids(f.gallery.Items()), want) {
		t.Errorf("after Move() = %v, want %v", ids(f.gallery.Items()), want)
	}

	err := f.gallery.Move(ctx, "media-1", "top")
	if !errors.Is(err, gallery.ErrInvalidIndex) {
		t.Errorf("Move() error = %v, want ErrInvalidIndex", err)
	}
	if want := []string{"media-3", "media-1", "media-2"}; !reflect.DeepEqual(ids(f.gallery.Items()), want) {
		t.Errorf("invalid Move() changed order: %v", ids(f.gallery.Items()))
	}

	f.gallery.Remove(ctx, "media-1")
	if want := []string{"media-3", "media-2"}; !reflect.DeepEqual(ids(f.gallery.Items()), want) {
		t.Errorf("after Remove() = %v, want %v", ids(f.gallery.Items()), want)
	}
}

func TestGallery_Open(t *testing.T) {
	f := newGalleryFixture(t)
	f.picker.Assets = []gallery.Asset{{AssetID: "photo", URI: "file:///a.jpg", Kind: gallery.KindImage, Width: 4, Height: 3}}
	ctx := context.Background()

	if _, err := f.gallery.PickMedia(ctx); err != nil {
		t.Fatalf("PickMedia() error = %v", err)
	}
	site, err := f.gallery.AddWebsite(ctx, "example.com")
	if err != nil {
		t.Fatalf("AddWebsite() error = %v", err)
	}

	v, err := f.gallery.Open(ctx, "photo")
	if err != nil {
		t.Fatalf("Open(photo) error = %v", err)
	}
	if v.Mode != gallery.ModeFullscreen || v.Rotated {
		t.Errorf("Open(photo) = %+v, want unrotated fullscreen", v)
	}
	if !v.Rotate().Rotated || v.Rotate().Rotate().Rotated {
		t.Errorf("Rotate() does not toggle")
	}
	if len(f.viewer.Opened) != 0 {
		t.Errorf("page viewer used for a photo")
	}

	v, err = f.gallery.Open(ctx, site.ID)
	if err != nil {
		t.Fatalf("Open(website) error = %v", err)
	}
	if v.Mode != gallery.ModeWebsite {
		t.Errorf("Open(website) mode = %q", v.Mode)
	}
	if want := []string{"https://example.com"}; !reflect.DeepEqual(f.viewer.Opened, want) {
		t.Errorf("viewer opened %v, want %v", f.viewer.Opened, want)
	}

	if _, err := f.gallery.Open(ctx, "missing"); !errors.Is(err, gallery.ErrNotFound) {
		t.Errorf("Open(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGallery_Grid(t *testing.T) {
	f := newGalleryFixture(t)
	if _, err := f.gallery.AddWebsite(context.Background(), "a.com"); err != nil {
		t.Fatalf("AddWebsite() error = %v", err)
	}

	cells := f.gallery.Grid(150)
	if len(cells) != 1 || cells[0].Height != 150 || cells[0].Column != 0 {
		t.Errorf("Grid() = %+v", cells)
	}
}
