package inkpot

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// LocalStore persists collections in an embedded Badger key/value
// database, one JSON blob per collection key. It is the server-side
// analog of the original deployment's browser-local storage, including
// its 5 MiB per-collection quota.
type LocalStore struct {
	db     *badger.DB
	path   string
	isTemp bool
}

// NewLocalStore opens (or creates) the Badger database at path. An empty
// path opens a throwaway database in a temp directory, removed on Close;
// tests rely on this for isolation.
func NewLocalStore(path string) (*LocalStore, error) {
	isTemp := false
	if path == "" {
		tmp, err := os.MkdirTemp("", "inkpot_local_")
		if err != nil {
			return nil, fmt.Errorf("inkpot: create temp dir: %w", err)
		}
		path = tmp
		isTemp = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("inkpot: open local store: %w", err)
	}
	return &LocalStore{db: db, path: path, isTemp: isTemp}, nil
}

func (s *LocalStore) Get(collection string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(collection))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set persists the collection after a pre-flight size check. A payload
// over StorageQuota is rejected with QuotaExceededError before anything
// is written, leaving the prior value untouched.
func (s *LocalStore) Set(collection string, data []byte) error {
	if size := int64(len(data)); size > StorageQuota {
		return &QuotaExceededError{Collection: collection, Size: size, Quota: StorageQuota}
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collection), data)
	})
}

func (s *LocalStore) Close() error {
	err := s.db.Close()
	if s.isTemp {
		if rmErr := os.RemoveAll(s.path); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}
