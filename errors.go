package launcher

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrMissingOriginScope is raised when the origin is read outside an
	// active OriginScope. It signals a wiring bug in the integrator's code.
	ErrMissingOriginScope = errors.New("launcher: origin accessed outside an active origin scope")

	// ErrMalformedManifest is returned when a manifest body is not JSON.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrNoPath is returned when a fetch is attempted with an empty path.
	ErrNoPath = errors.New("empty path")
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// AssetError reports a layer image that could not be fetched or decoded.
type AssetError struct {
	Src string
	Err error
}

func (e *AssetError) Error() string { return fmt.Sprintf("asset %s: %v", e.Src, e.Err) }

// Unwrap returns the underlying cause.
func (e *AssetError) Unwrap() error { return e.Err }
