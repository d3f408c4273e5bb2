package inkpot

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation targets an id that does
	// not exist in its collection.
	ErrNotFound = errors.New("inkpot: not found")

	// ErrBackendUnavailable is returned when the remote persistence
	// backend is misconfigured or unreachable. Readers fall back to the
	// collection's documented default; writers must surface it.
	ErrBackendUnavailable = errors.New("inkpot: backend unavailable")

	// ErrSeedProtected is returned when deletion of a built-in seed post
	// is refused by policy.
	ErrSeedProtected = errors.New("inkpot: seed post is protected")
)

// ValidationError reports a missing or malformed required field. It is
// raised before any write takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("inkpot: invalid %s: %s", e.Field, e.Reason)
}

// QuotaExceededError reports a write rejected by the pre-flight size
// check. The previously stored value is left unchanged.
type QuotaExceededError struct {
	Collection string
	Size       int64
	Quota      int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("inkpot: collection %q is %s, over the %s storage quota; remove images or delete posts to free space",
		e.Collection, FormatBytes(e.Size), FormatBytes(e.Quota))
}

// ImageError reports a per-file decode or encode failure during batch
// compression. One failing file does not abort the rest of the batch.
type ImageError struct {
	Name string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("inkpot: image %q: %v", e.Name, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }
