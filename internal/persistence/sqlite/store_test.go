package sqlite

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("file::memory:?cache=shared&mode=memory")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "villays_user"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "villays_user", `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, "villays_user")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != `{"id":"u1"}` {
		t.Errorf("unexpected value %q ok=%v", value, ok)
	}

	if err := store.Set(ctx, "villays_user", `{"id":"u2"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, err = store.Get(ctx, "villays_user")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if value != `{"id":"u2"}` {
		t.Errorf("expected upsert to replace value, got %q", value)
	}
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "villays_welcome_seen", "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Delete(ctx, "villays_welcome_seen"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, err := store.Get(ctx, "villays_welcome_seen"); err != nil || ok {
		t.Errorf("expected key to be gone, got ok=%v err=%v", ok, err)
	}

	if err := store.Delete(ctx, "never_existed"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}
