package gallery

import "fmt"

// Kind identifies how a MediaEntry is rendered.
type Kind string

const (
	KindImage       Kind = "image"
	KindVideo       Kind = "video"
	KindWebsite     Kind = "website"
	KindLivePhoto   Kind = "livePhoto"
	KindPairedVideo Kind = "pairedVideo"
)

// Website entries carry placeholder dimensions; they have no natural size.
const (
	WebsiteWidth  = 100
	WebsiteHeight = 100
)

// IsVideo reports whether entries of this kind play as video. Live photos,
// paired videos and unrecognized kinds all fall back to video playback.
func (k Kind) IsVideo() bool {
	switch k {
	case KindImage, KindWebsite:
		return false
	default:
		return true
	}
}

// MediaEntry is one persisted gallery item.
type MediaEntry struct {
	ID       string `json:"id"`
	URI      string `json:"uri"`
	Kind     Kind   `json:"type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Rotation int    `json:"rotation"`
}

// Validate checks the fields a new entry must carry before it joins a collection.
func (e MediaEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry has no id")
	}
	if e.URI == "" {
		return fmt.Errorf("entry %s has no uri", e.ID)
	}
	if e.Width < 0 || e.Height < 0 {
		return fmt.Errorf("entry %s has negative dimensions %dx%d", e.ID, e.Width, e.Height)
	}
	return nil
}

// DisplaySize returns the width and height to use for aspect-ratio layout,
// swapped when the entry is rotated a quarter turn.
func (e MediaEntry) DisplaySize() (width, height int) {
	if e.Rotation%180 != 0 {
		return e.Height, e.Width
	}
	return e.Width, e.Height
}

// Collection is the ordered set of entries. Index 0 renders first.
type Collection []MediaEntry

// IndexOf returns the position of the entry with the given id, or -1.
func (c Collection) IndexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entry with the given id.
func (c Collection) Find(id string) (MediaEntry, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return MediaEntry{}, false
	}
	return c[i], true
}

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
