package session

import (
	"testing"

	"github.com/smartpark-app/smartpark-client/pkg/smartpark"
)

func TestStoreHoldsSingleIdentity(t *testing.T) {
	store := NewStore()

	if _, ok := store.Current(); ok {
		t.Fatal("expected empty store")
	}

	store.Set(smartpark.User{ID: 1, Name: "Ana", Email: "Ana@B.com"})
	user, ok := store.Current()
	if !ok {
		t.Fatal("expected identity")
	}
	if user.Email != "ana@b.com" {
		t.Fatalf("email not lowercased: %q", user.Email)
	}

	store.Set(smartpark.User{ID: 2, Email: "other@b.com"})
	user, _ = store.Current()
	if user.ID != 2 {
		t.Fatalf("expected replacement, got %+v", user)
	}

	store.Clear()
	if _, ok := store.Current(); ok {
		t.Fatal("expected cleared store")
	}
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	store := NewStore()

	var events []bool
	cancel := store.Subscribe(func(_ smartpark.User, ok bool) {
		events = append(events, ok)
	})

	store.Set(smartpark.User{ID: 1, Email: "a@b.com"})
	store.Clear()

	if len(events) != 2 || events[0] != true || events[1] != false {
		t.Fatalf("unexpected events %v", events)
	}

	cancel()
	store.Set(smartpark.User{ID: 1, Email: "a@b.com"})
	if len(events) != 2 {
		t.Fatal("listener fired after cancel")
	}
}
