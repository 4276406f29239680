package stage

import "errors"

var (
	// ErrNoCanvas is returned when a render names a canvas element that the
	// document does not contain.
	ErrNoCanvas = errors.New("stage: no canvas")
	// ErrUnknownScene is returned when a manifest names an unregistered scene.
	ErrUnknownScene = errors.New("stage: unknown scene")
	// ErrMissingElement is returned when an observer element cannot be found.
	ErrMissingElement = errors.New("stage: missing element")
	// ErrInvalidManifest is returned for manifests that fail validation.
	ErrInvalidManifest = errors.New("stage: invalid manifest")
)
