package inkpot

import "encoding/json"

// Collection names. These keys are the persisted storage identity of each
// collection and must stay bit-exact with the legacy format, including
// the two preference flags.
const (
	CollPosts       = "posts"
	CollCategories  = "categories"
	CollComments    = "comments"
	CollAbout       = "aboutContent"
	CollContact     = "contactContent"
	CollAuthFlag    = "isAuthenticated"
	CollBackendFlag = "useSupabase"
)

// StorageQuota is the maximum serialized byte size permitted for a single
// persisted collection in the local backend (5 MiB).
const StorageQuota int64 = 5 * 1024 * 1024

// Store abstracts persistence of named collections. Each collection is
// serialized and written wholesale; a Get returns exactly what the last
// Set stored, or nil when nothing has been stored yet.
//
// No transaction spans two collections, and two processes (or browser
// tabs, in the original deployment) writing the same collection are not
// coordinated: last write wins at whole-collection granularity. That is
// an accepted limitation of the format, not something implementations
// should try to fix.
type Store interface {
	// Get returns the stored bytes for the collection, or (nil, nil) when
	// the collection has never been written.
	Get(collection string) ([]byte, error)
	// Set persists the full serialized collection in a single write.
	Set(collection string, data []byte) error
	Close() error
}

// loadJSON reads a collection into v's type and returns the documented
// default when the collection is absent, unparseable, or the backend is
// unreachable for reads.
func loadJSON[T any](s Store, collection string, def T) T {
	data, err := s.Get(collection)
	if err != nil || data == nil {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def
	}
	return v
}

// saveJSON serializes v and persists it. Errors (quota, backend
// unavailable) are surfaced to the caller; the write is never silently
// dropped or retried.
func saveJSON(s Store, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(collection, data)
}
