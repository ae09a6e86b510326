package core

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T, ttl time.Duration, max int) *SessionStore {
	t.Helper()
	store := NewSessionStore(ttl, max, time.Hour) // sweep far away, tests drive eviction
	t.Cleanup(store.Close)
	return store
}

func emptyTables() (*InventoryTable, *InventoryTable) {
	return &InventoryTable{Source: SourceVauto}, &InventoryTable{Source: SourceReynolds}
}

func TestSessionStore_PutAndGet(t *testing.T) {
	store := newTestStore(t, time.Minute, 10)
	vauto, reynolds := emptyTables()

	session, err := store.Put(vauto, reynolds)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if session.ID == "" {
		t.Fatal("session ID is empty")
	}

	got, err := store.Get(session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Vauto != vauto || got.Reynolds != reynolds {
		t.Error("Get returned different tables than Put stored")
	}
}

func TestSessionStore_UnknownID(t *testing.T) {
	store := newTestStore(t, time.Minute, 10)

	_, err := store.Get("b8a9e3c0-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_ExpiredSessionIsGone(t *testing.T) {
	store := newTestStore(t, time.Millisecond, 10)
	vauto, reynolds := emptyTables()

	session, err := store.Put(vauto, reynolds)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after TTL", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0 after lazy eviction", store.Len())
	}
}

func TestSessionStore_GetRefreshesIdleTimer(t *testing.T) {
	store := newTestStore(t, 50*time.Millisecond, 10)
	vauto, reynolds := emptyTables()

	session, err := store.Put(vauto, reynolds)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Keep touching the session at intervals shorter than the TTL.
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		if _, err := store.Get(session.ID); err != nil {
			t.Fatalf("Get after touch %d: %v", i, err)
		}
	}
}

func TestSessionStore_FullStoreRejectsPut(t *testing.T) {
	store := newTestStore(t, time.Minute, 2)

	for i := 0; i < 2; i++ {
		vauto, reynolds := emptyTables()
		if _, err := store.Put(vauto, reynolds); err != nil {
			t.Fatalf("Put %d: %v", i, err)
		}
	}

	vauto, reynolds := emptyTables()
	if _, err := store.Put(vauto, reynolds); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("err = %v, want ErrTooManySessions", err)
	}
}

func TestSessionStore_FullStoreEvictsExpiredBeforeRejecting(t *testing.T) {
	store := newTestStore(t, time.Millisecond, 1)
	vauto, reynolds := emptyTables()

	if _, err := store.Put(vauto, reynolds); err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	// The first session is past its TTL, so this Put must succeed.
	if _, err := store.Put(vauto, reynolds); err != nil {
		t.Errorf("Put after expiry: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestStore(t, time.Minute, 10)
	vauto, reynolds := emptyTables()

	session, err := store.Put(vauto, reynolds)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	store.Delete(session.ID)
	if _, err := store.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after Delete", err)
	}

	// Unknown IDs are a no-op.
	store.Delete("not-a-session")
}

func TestSessionStore_ExpiresAt(t *testing.T) {
	ttl := time.Minute
	store := newTestStore(t, ttl, 10)
	vauto, reynolds := emptyTables()

	before := time.Now()
	session, err := store.Put(vauto, reynolds)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	expires := store.ExpiresAt(session)
	if expires.Before(before.Add(ttl)) {
		t.Errorf("ExpiresAt = %v, want at least %v", expires, before.Add(ttl))
	}
}
