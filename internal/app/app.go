package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gallery-go/internal/config"
	"gallery-go/internal/encryption"
	"gallery-go/internal/gallery"
	"gallery-go/internal/kv"
	"gallery-go/internal/picker"
)

// GalleryApp is the application layer between the CLI and the Gallery.
// It constructs all dependencies from config and closes storage and the log
// file on Close.
type GalleryApp struct {
	cfg     *config.Config
	kv      gallery.KVStore
	gallery *gallery.Gallery
	logger  gallery.Logger
	clock   gallery.Clock
	op      *Operation
	logFile *os.File
}

// options collects what a single CLI invocation supplies beyond config.
type options struct {
	paths      []string
	assume     bool
	rotation   int
	passphrase func() (string, error)
	out        io.Writer
	stderr     io.Writer
	printPages bool
	clock      gallery.Clock
	ids        gallery.IDGenerator
}

// Option configures a GalleryApp.
type Option func(*options)

// WithPaths sets the files and directories offered to the media picker.
func WithPaths(paths ...string) Option {
	return func(o *options) { o.paths = paths }
}

// WithAssumeConsent grants library and camera access without prompting.
func WithAssumeConsent(assume bool) Option {
	return func(o *options) { o.assume = o.assume || assume }
}

// WithRotation records a fixed rotation on picked media.
func WithRotation(degrees int) Option {
	return func(o *options) { o.rotation = degrees }
}

// WithPassphrase sets the prompt used to unlock age-encrypted storage when
// GALLERY_PASSPHRASE is unset.
func WithPassphrase(prompt func() (string, error)) Option {
	return func(o *options) { o.passphrase = prompt }
}

// WithOutput sets where prompts and printed page addresses go.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithStderr sets the second destination of log lines. nil logs to file only.
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// WithPrintPages prints website addresses instead of launching a browser.
func WithPrintPages(printOnly bool) Option {
	return func(o *options) { o.printPages = printOnly }
}

// WithClock overrides the clock used for operation timing.
func WithClock(clock gallery.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithIDGenerator overrides how new entry ids are made.
func WithIDGenerator(ids gallery.IDGenerator) Option {
	return func(o *options) { o.ids = ids }
}

// NewGalleryApp creates a fully wired GalleryApp from the given config and
// loads the stored collection. operation names the CLI command being run
// (e.g. "AddWebsite", "Move"). The caller must call Close when done.
func NewGalleryApp(ctx context.Context, cfg *config.Config, operation string, opts ...Option) (*GalleryApp, error) {
	o := options{
		out:    os.Stdout,
		stderr: os.Stderr,
		clock:  gallery.RealClock{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.assume = o.assume || cfg.Picker.AssumeConsent

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if o.ids == nil {
		if o.ids, err = newIDGenerator(cfg.Picker.IDFormat, o.clock); err != nil {
			return nil, err
		}
	}

	op := NewOperation(operation, o.clock)
	slogger, logFile, err := newLogger(cfg.LogDir, op.ID, level, o.stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	store, err := openStore(ctx, cfg, o)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	var storeOpts []gallery.StoreOption
	storeOpts = append(storeOpts, gallery.WithIDGenerator(o.ids))
	if cfg.Storage.Key != "" {
		storeOpts = append(storeOpts, gallery.WithKey(cfg.Storage.Key))
	}

	p := picker.NewFilePicker(cfg.Picker, o.paths, logger, picker.WithRotation(o.rotation))
	consent := picker.NewTerminalConsent(o.assume)
	viewer := picker.NewBrowserViewer(o.out, o.printPages)

	g := gallery.NewGallery(gallery.NewStore(store, logger, storeOpts...), p, consent, viewer, o.ids, logger)
	g.Init(ctx)

	logger.Debug("operation started", "operation", operation, "storage", cfg.Storage.Type)

	return &GalleryApp{
		cfg:     cfg,
		kv:      store,
		gallery: g,
		logger:  logger,
		clock:   o.clock,
		op:      op,
		logFile: logFile,
	}, nil
}

func newIDGenerator(format string, clock gallery.Clock) (gallery.IDGenerator, error) {
	switch strings.ToLower(format) {
	case "", "uuid":
		return gallery.UUIDGenerator{}, nil
	case "timestamp":
		return gallery.TimestampIDGenerator{Clock: clock}, nil
	default:
		return nil, fmt.Errorf("unknown id format %q", format)
	}
}

// openStore builds the configured backend and, when encryption is enabled,
// wraps it so values are sealed at rest.
func openStore(ctx context.Context, cfg *config.Config, o options) (gallery.KVStore, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	store, err := kv.NewStoreFromConfig(ctx, cfg.Storage, cfg.HostID)
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}
	if enc == nil {
		return store, nil
	}

	if !enc.IsConfigured() {
		store.Close()
		return nil, fmt.Errorf("encryption keys not found: run 'gallery config keys init'")
	}

	passphrase, err := readPassphrase(o.passphrase)
	if err != nil {
		store.Close()
		return nil, err
	}
	dec, err := enc.Unlock(passphrase)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("unlocking storage: %w", err)
	}
	return kv.NewEncryptedStore(store, enc, dec), nil
}

func readPassphrase(prompt func() (string, error)) (string, error) {
	if p := os.Getenv(PassphraseEnv); p != "" {
		return p, nil
	}
	if prompt == nil {
		return "", fmt.Errorf("storage is encrypted: set %s or run interactively", PassphraseEnv)
	}
	p, err := prompt()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return p, nil
}

// SetupKeys generates the age key pair named in cfg, protected by passphrase.
func SetupKeys(cfg *config.Config, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return fmt.Errorf("encryption is disabled: set [encryption] type = \"age\" first")
	}
	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up keys: %w", err)
	}
	return nil
}

// fail records err on the operation and returns it unchanged.
func (a *GalleryApp) fail(err error) error {
	if err != nil {
		a.op.Fail()
	}
	return err
}

// Items returns the current collection.
func (a *GalleryApp) Items() gallery.Collection {
	return a.gallery.Items()
}

// Grid lays out the collection. columnWidth <= 0 uses the configured width.
func (a *GalleryApp) Grid(columnWidth float64) []gallery.Cell {
	if columnWidth <= 0 {
		columnWidth = a.cfg.Layout.ColumnWidth
	}
	return a.gallery.Grid(columnWidth)
}

// AddMedia runs the media picker over the paths given at construction.
// Returns the number of entries added.
func (a *GalleryApp) AddMedia(ctx context.Context) (int, error) {
	n, err := a.gallery.PickMedia(ctx)
	return n, a.fail(err)
}

// AddWebsite appends a website entry.
func (a *GalleryApp) AddWebsite(ctx context.Context, rawURL string) (gallery.MediaEntry, error) {
	e, err := a.gallery.AddWebsite(ctx, rawURL)
	return e, a.fail(err)
}

// Remove deletes the entry with the given id and reports whether it existed.
// The collection is persisted either way.
func (a *GalleryApp) Remove(ctx context.Context, id string) bool {
	_, found := a.gallery.Items().Find(id)
	a.gallery.Remove(ctx, id)
	return found
}

// Move relocates an entry to a user-typed index and returns where it ended
// up, or -1 when no entry has that id. The collection is persisted either way.
func (a *GalleryApp) Move(ctx context.Context, id, target string) (int, error) {
	if err := a.gallery.Move(ctx, id, target); err != nil {
		return -1, a.fail(err)
	}
	return a.gallery.Items().IndexOf(id), nil
}

// Open opens an entry. rotate applies one quarter turn to the returned view.
func (a *GalleryApp) Open(ctx context.Context, id string, rotate bool) (gallery.View, error) {
	v, err := a.gallery.Open(ctx, id)
	if err != nil {
		return gallery.View{}, a.fail(err)
	}
	if rotate {
		v = v.Rotate()
	}
	return v, nil
}

// Close logs the operation outcome and releases storage and the log file.
func (a *GalleryApp) Close() error {
	var firstErr error

	a.logger.Debug("operation finished", "operation", a.op.Name, "status", a.op.Status, "elapsed", a.op.Elapsed(a.clock))

	if err := a.kv.Close(); err != nil {
		firstErr = fmt.Errorf("closing storage: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
