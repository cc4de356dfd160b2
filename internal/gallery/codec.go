package gallery

import (
	"encoding/json"
	"fmt"
)

// storedEntry is the on-disk shape of a MediaEntry. Every field is optional
// so blobs written before a field existed still decode.
type storedEntry struct {
	ID       *string `json:"id"`
	URI      *string `json:"uri"`
	Kind     *Kind   `json:"type"`
	Width    *int    `json:"width"`
	Height   *int    `json:"height"`
	Rotation *int    `json:"rotation"`
}

// EncodeCollection serializes c as a JSON array. A nil collection encodes as [].
func EncodeCollection(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a persisted blob. Missing fields take zero values.
// Entries without a uri are dropped; entries whose id is missing or repeats
// an earlier one are given a fresh id from ids. Each repair is reported to
// logger.
func DecodeCollection(data []byte, ids IDGenerator, logger Logger) (Collection, error) {
	var stored []storedEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}

	out := make(Collection, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for i, s := range stored {
		e := MediaEntry{
			ID:       deref(s.ID),
			URI:      deref(s.URI),
			Kind:     deref(s.Kind),
			Width:    deref(s.Width),
			Height:   deref(s.Height),
			Rotation: deref(s.Rotation),
		}

		if e.URI == "" {
			logger.Warn("dropping stored entry without uri", "index", i, "id", e.ID)
			continue
		}
		if e.ID == "" || seen[e.ID] {
			old := e.ID
			e.ID = ids.New()
			logger.Warn("reassigned stored entry id", "index", i, "old_id", old, "new_id", e.ID)
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
