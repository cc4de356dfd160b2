package picker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"gallery-go/internal/config"
	"gallery-go/internal/gallery"
)

// FilePicker selects media from the local filesystem. Each path is either a
// media file or a directory whose media files are picked recursively.
type FilePicker struct {
	paths       []string
	ignore      *IgnoreMatcher
	videoWidth  int
	videoHeight int
	rotation    int
	logger      gallery.Logger
}

var _ gallery.Picker = (*FilePicker)(nil)

// FilePickerOption configures optional FilePicker behaviour.
type FilePickerOption func(*FilePicker)

// WithRotation records a fixed rotation, in degrees, on every picked asset.
func WithRotation(degrees int) FilePickerOption {
	return func(p *FilePicker) { p.rotation = degrees }
}

// WithVideoSize overrides the configured fallback size for videos.
func WithVideoSize(width, height int) FilePickerOption {
	return func(p *FilePicker) {
		p.videoWidth, p.videoHeight = width, height
	}
}

// NewFilePicker creates a picker for the given paths.
func NewFilePicker(cfg config.PickerConfig, paths []string, logger gallery.Logger, opts ...FilePickerOption) *FilePicker {
	p := &FilePicker{
		paths:       paths,
		ignore:      NewIgnoreMatcher(cfg.Ignore),
		videoWidth:  cfg.VideoWidth,
		videoHeight: cfg.VideoHeight,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pick resolves every path and returns one asset per supported file, in
// argument order with directory contents sorted by path. Files that are not
// images or videos are skipped. A missing path is an error.
func (p *FilePicker) Pick(ctx context.Context) ([]gallery.Asset, error) {
	var assets []gallery.Asset
	for _, raw := range p.paths {
		files, err := p.resolve(raw)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			a, err := p.asset(path)
			if errors.Is(err, errUnsupported) {
				p.logger.Warn("skipping unsupported file", "path", path)
				continue
			}
			if err != nil {
				return nil, err
			}
			assets = append(assets, a)
		}
	}
	return assets, nil
}

// resolve returns the absolute media file paths named by raw.
func (p *FilePicker) resolve(raw string) ([]string, error) {
	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	if info.Mode().IsRegular() {
		return []string{abs}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a regular file or directory: %s", abs)
	}

	local, err := ReadIgnoreFile(filepath.Join(abs, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	matcher := p.ignore.With(append(local, IgnoreFileName))

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == abs {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		if matcher.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func (p *FilePicker) asset(path string) (gallery.Asset, error) {
	facts, err := inspectFile(path)
	if err != nil {
		return gallery.Asset{}, err
	}

	a := gallery.Asset{
		URI:      fileURI(path),
		Kind:     facts.kind,
		Width:    facts.width,
		Height:   facts.height,
		Rotation: p.rotation,
	}
	if a.Kind == gallery.KindVideo && (a.Width == 0 || a.Height == 0) {
		a.Width, a.Height = p.videoWidth, p.videoHeight
	}
	p.logger.Debug("picked file", "path", path, "mime", facts.mime, "width", a.Width, "height", a.Height)
	return a, nil
}

// fileURI returns the file:// URI for an absolute path.
func fileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
