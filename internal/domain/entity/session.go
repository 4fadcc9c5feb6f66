package entity

import (
	"sync"
	"time"

	"github.com/dukahub/reception-api/internal/domain/enum"
	"github.com/dukahub/reception-api/pkg/selectbox"
	"github.com/google/uuid"
)

// PendingCreation remembers which line triggered a delegated product
// creation and the search text that seeded it. It is keyed by line id, not
// index: lines may be added, removed or reordered while the creation form
// is open. Cleared when the creation resolves, successfully or not.
type PendingCreation struct {
	TargetLineID string `json:"target_line_id"`
	SeedName     string `json:"seed_name"`
}

// FormSession is one user's open reception form. All of its mutable state
// (draft, catalog, pending creation, supplier select) lives behind the
// session mutex; mutations are serialized per session the way a UI event
// loop serializes handlers.
type FormSession struct {
	ID          uuid.UUID
	ShopID      string
	UserID      uuid.UUID
	ReceptionID string // empty for a new reception, set when editing
	Status      enum.FormStatus
	Draft       *ReceptionDraft
	Catalog     *Catalog
	Pending     *PendingCreation
	SupplierBox *selectbox.Box
	ShowCharges bool
	LastError   string
	CreatedAt   time.Time
	LastActive  time.Time

	mu sync.Mutex
}

// NewFormSession creates a session around an already-hydrated draft and
// catalog.
func NewFormSession(shopID string, userID uuid.UUID, receptionID string, draft *ReceptionDraft, catalog *Catalog) *FormSession {
	now := time.Now()
	return &FormSession{
		ID:          uuid.New(),
		ShopID:      shopID,
		UserID:      userID,
		ReceptionID: receptionID,
		Status:      enum.FormStatusEditing,
		Draft:       draft,
		Catalog:     catalog,
		ShowCharges: draft.HasCharges(),
		CreatedAt:   now,
		LastActive:  now,
	}
}

// Lock acquires the session mutex.
func (s *FormSession) Lock() { s.mu.Lock() }

// Unlock releases the session mutex.
func (s *FormSession) Unlock() { s.mu.Unlock() }

// Touch records activity for TTL-based expiry.
func (s *FormSession) Touch() { s.LastActive = time.Now() }

// IsEditing reports whether the session accepts mutations.
func (s *FormSession) IsEditing() bool {
	return s.Status == enum.FormStatusEditing
}

// IsEdit reports whether the session edits a persisted reception rather
// than drafting a new one.
func (s *FormSession) IsEdit() bool {
	return s.ReceptionID != ""
}
