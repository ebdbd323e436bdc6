package auth

import (
	"context"
	"testing"

	"github.com/sakif/shop-ledger/internal/store"
	"github.com/sakif/shop-ledger/internal/store/memory"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *store.Collections, *store.Collections) {
	t.Helper()
	durable := store.NewCollections(memory.New())
	ephemeral := store.NewCollections(memory.New())
	return NewSessionStore(durable, ephemeral), durable, ephemeral
}

func TestCreate_ScopeFollowsRemember(t *testing.T) {
	ss, durable, ephemeral := newTestSessionStore(t)
	ctx := context.Background()

	remembered, err := ss.Create(ctx, 1, true)
	if err != nil {
		t.Fatalf("Create(remember) error = %v", err)
	}
	oneTime, err := ss.Create(ctx, 2, false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if remembered.ID == oneTime.ID {
		t.Error("two sessions got the same ID")
	}

	d, _ := durable.Sessions(ctx)
	e, _ := ephemeral.Sessions(ctx)
	if len(d) != 1 || d[0].ID != remembered.ID {
		t.Errorf("durable scope = %v, want just the remembered session", d)
	}
	if len(e) != 1 || e[0].ID != oneTime.ID {
		t.Errorf("ephemeral scope = %v, want just the one-time session", e)
	}
}

func TestLookup_FindsEitherScope(t *testing.T) {
	ss, _, _ := newTestSessionStore(t)
	ctx := context.Background()

	remembered, _ := ss.Create(ctx, 1, true)
	oneTime, _ := ss.Create(ctx, 2, false)

	for _, id := range []string{remembered.ID, oneTime.ID} {
		got, ok, err := ss.Lookup(ctx, id)
		if err != nil {
			t.Fatalf("Lookup(%s) error = %v", id, err)
		}
		if !ok || got.ID != id {
			t.Errorf("Lookup(%s) = %v, %v; want found", id, got, ok)
		}
	}

	if _, ok, _ := ss.Lookup(ctx, "no-such-session"); ok {
		t.Error("Lookup(unknown) reported found")
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	ss, _, _ := newTestSessionStore(t)
	ctx := context.Background()

	session, _ := ss.Create(ctx, 1, false)

	if err := ss.Delete(ctx, session.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := ss.Lookup(ctx, session.ID); ok {
		t.Error("session still found after Delete")
	}

	// Deleting again, or deleting something that never existed, is fine.
	if err := ss.Delete(ctx, session.ID); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
	if err := ss.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete(unknown) error = %v", err)
	}
}

func TestDelete_LeavesOtherSessionsAlone(t *testing.T) {
	ss, _, _ := newTestSessionStore(t)
	ctx := context.Background()

	keep, _ := ss.Create(ctx, 1, true)
	drop, _ := ss.Create(ctx, 1, true)

	if err := ss.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := ss.Lookup(ctx, keep.ID); !ok {
		t.Error("unrelated session was deleted")
	}
}
