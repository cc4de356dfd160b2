package gallery

import (
	"context"
	"errors"
)

// ErrPermissionDenied is returned when the user declines library or camera access.
var ErrPermissionDenied = errors.New("permission denied")

// Asset is one item returned by a Picker.
type Asset struct {
	// AssetID is the picker's own identifier, if it has one.
	AssetID  string
	URI      string
	Kind     Kind
	Width    int
	Height   int
	Rotation int
}

// Picker selects media from the device library. A cancelled selection
// returns no assets and no error.
type Picker interface {
	Pick(ctx context.Context) ([]Asset, error)
}

// Scope names a permission a Consent is asked for.
type Scope string

const (
	ScopeLibrary Scope = "library"
	ScopeCamera  Scope = "camera"
)

// Consent asks the user for permission to use a scope.
type Consent interface {
	Request(ctx context.Context, scope Scope) (bool, error)
}

// PageViewer opens a website entry outside the grid.
type PageViewer interface {
	OpenPage(ctx context.Context, uri string) error
}
