package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/store"
)

// SessionStore is the server-side session registry over the two
// storage scopes.
//
// "Remember me" picks the scope: remembered sessions go to the durable
// store and survive restarts; one-time sessions go to the ephemeral
// store and die with the process.
type SessionStore struct {
	durable   *store.Collections
	ephemeral *store.Collections

	// Sessions are persisted as one list per scope, so every mutation
	// is a read-modify-write of that list. The mutex serializes them.
	mu sync.Mutex
}

func NewSessionStore(durable, ephemeral *store.Collections) *SessionStore {
	return &SessionStore{durable: durable, ephemeral: ephemeral}
}

// Create registers a new session for the user and returns it. The ID
// is an xid: unique, unguessable enough for a jti, and sortable by
// creation time for free.
func (ss *SessionStore) Create(ctx context.Context, userID int64, remember bool) (model.Session, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	scope := ss.ephemeral
	if remember {
		scope = ss.durable
	}

	session := model.Session{
		ID:        xid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	sessions, err := scope.Sessions(ctx)
	if err != nil {
		return model.Session{}, fmt.Errorf("auth: loading sessions: %w", err)
	}
	if err := scope.SaveSessions(ctx, append(sessions, session)); err != nil {
		return model.Session{}, fmt.Errorf("auth: saving session: %w", err)
	}
	return session, nil
}

// Lookup finds a session by ID in either scope.
func (ss *SessionStore) Lookup(ctx context.Context, id string) (model.Session, bool, error) {
	for _, scope := range []*store.Collections{ss.durable, ss.ephemeral} {
		sessions, err := scope.Sessions(ctx)
		if err != nil {
			return model.Session{}, false, fmt.Errorf("auth: loading sessions: %w", err)
		}
		for _, s := range sessions {
			if s.ID == id {
				return s, true, nil
			}
		}
	}
	return model.Session{}, false, nil
}

// Delete removes a session from whichever scope holds it. Deleting a
// session that doesn't exist is a no-op — logout must be idempotent.
func (ss *SessionStore) Delete(ctx context.Context, id string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	for _, scope := range []*store.Collections{ss.durable, ss.ephemeral} {
		sessions, err := scope.Sessions(ctx)
		if err != nil {
			return fmt.Errorf("auth: loading sessions: %w", err)
		}
		kept := sessions[:0]
		for _, s := range sessions {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		if len(kept) != len(sessions) {
			if err := scope.SaveSessions(ctx, kept); err != nil {
				return fmt.Errorf("auth: saving sessions: %w", err)
			}
		}
	}
	return nil
}
