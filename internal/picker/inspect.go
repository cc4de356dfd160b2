package picker

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"gallery-go/internal/gallery"
)

// errUnsupported marks files that are neither images nor videos.
var errUnsupported = errors.New("not an image or video")

// fileFacts is what the picker learns about a file before it becomes an Asset.
type fileFacts struct {
	kind   gallery.Kind
	mime   string
	width  int
	height int
}

// inspectFile sniffs the content type of path and, for images in a registered
// format, reads the pixel dimensions from the header. Width and height stay
// zero when they cannot be determined.
func inspectFile(path string) (fileFacts, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fileFacts{}, fmt.Errorf("detecting type of %s: %w", path, err)
	}

	p := fileFacts{mime: mt.String()}
	switch {
	case strings.HasPrefix(p.mime, "image/"):
		p.kind = gallery.KindImage
	case strings.HasPrefix(p.mime, "video/"):
		p.kind = gallery.KindVideo
		return p, nil
	default:
		return fileFacts{}, fmt.Errorf("%s (%s): %w", path, p.mime, errUnsupported)
	}

	f, err := os.Open(path)
	if err != nil {
		return fileFacts{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// Formats without a registered decoder, such as HEIC, keep zero size.
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		p.width, p.height = cfg.Width, cfg.Height
	}
	return p, nil
}
