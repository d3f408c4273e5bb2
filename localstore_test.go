package inkpot

import (
	"bytes"
	"errors"
	"testing"
)

func setupLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore("")
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLocalStoreRoundTrip(t *testing.T) {
	s := setupLocalStore(t)

	want := []byte(`[{"id":1,"title":"Hello"}]`)
	if err := s.Set(CollPosts, want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(CollPosts)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Get returned %q, want %q", got, want)
	}
}

func TestLocalStoreAbsentCollection(t *testing.T) {
	s := setupLocalStore(t)

	got, err := s.Get("neverWritten")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent collection, got %q", got)
	}
}

func TestLocalStoreOverwrite(t *testing.T) {
	s := setupLocalStore(t)

	if err := s.Set(CollAbout, []byte("first")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(CollAbout, []byte("second")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(CollAbout)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestLocalStoreQuota(t *testing.T) {
	s := setupLocalStore(t)

	prior := []byte(`{"title":"About"}`)
	if err := s.Set(CollAbout, prior); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// One byte over the quota is rejected before anything is written.
	err := s.Set(CollAbout, make([]byte, StorageQuota+1))
	var qe *QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if qe.Collection != CollAbout || qe.Size != StorageQuota+1 {
		t.Fatalf("unexpected error detail: %+v", qe)
	}

	got, err := s.Get(CollAbout)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, prior) {
		t.Fatal("rejected write must leave the prior value unchanged")
	}

	// Exactly at the quota is still accepted.
	if err := s.Set(CollPosts, make([]byte, StorageQuota)); err != nil {
		t.Fatalf("write at quota boundary should succeed: %v", err)
	}
}

func TestLocalStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}
	if err := s.Set(CollContact, []byte("keep me")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = NewLocalStore(dir)
	if err != nil {
		t.Fatalf("failed to reopen local store: %v", err)
	}
	defer s.Close()

	got, err := s.Get(CollContact)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "keep me" {
		t.Fatalf("expected value to survive reopen, got %q", got)
	}
}
