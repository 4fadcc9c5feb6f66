package sessionstore

import (
	"testing"
	"time"

	"github.com/dukahub/reception-api/internal/domain/entity"
	"github.com/google/uuid"
)

func newTestSession(userID uuid.UUID) *entity.FormSession {
	draft := entity.NewDraft()
	return entity.NewFormSession("shop-1", userID, "", draft, entity.NewCatalog(nil, nil))
}

func TestStorePutGetDelete(t *testing.T) {
	store := NewStore(DefaultConfig())
	defer store.Close()

	userID := uuid.New()
	session := newTestSession(userID)
	store.Put(session)

	got, err := store.Get(session.ID, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != session {
		t.Error("Get returned a different session")
	}

	store.Delete(session.ID)
	if _, err := store.Get(session.ID, userID); err == nil {
		t.Error("expected error after Delete")
	}
}

func TestStoreGetRejectsWrongUser(t *testing.T) {
	store := NewStore(DefaultConfig())
	defer store.Close()

	session := newTestSession(uuid.New())
	store.Put(session)

	if _, err := store.Get(session.ID, uuid.New()); err == nil {
		t.Error("expected error for foreign session")
	}
}

func TestStoreGetUnknownSession(t *testing.T) {
	store := NewStore(DefaultConfig())
	defer store.Close()

	if _, err := store.Get(uuid.New(), uuid.New()); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestStoreCleanupDropsIdleSessions(t *testing.T) {
	store := NewStore(Config{SessionTTL: time.Minute, CleanupInterval: time.Hour})
	defer store.Close()

	userID := uuid.New()
	stale := newTestSession(userID)
	stale.LastActive = time.Now().Add(-2 * time.Minute)
	fresh := newTestSession(userID)
	store.Put(stale)
	store.Put(fresh)

	store.cleanup()

	if _, err := store.Get(stale.ID, userID); err == nil {
		t.Error("stale session survived cleanup")
	}
	if _, err := store.Get(fresh.ID, userID); err != nil {
		t.Errorf("fresh session dropped: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}
