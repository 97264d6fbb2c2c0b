package services

import (
	"testing"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := store.GetOrCreate("+573001112233")
	if session.State != models.StateAwaitingStart {
		t.Errorf("new session state = %s, want %s", session.State, models.StateAwaitingStart)
	}

	// Same conversation id yields the same session.
	again := store.GetOrCreate("+573001112233")
	if again != session {
		t.Error("GetOrCreate should return the existing session")
	}
	if store.Count() != 1 {
		t.Errorf("Count = %d, want 1", store.Count())
	}

	store.Delete("+573001112233")
	if _, ok := store.Get("+573001112233"); ok {
		t.Error("session should be gone after Delete")
	}
	if store.Count() != 0 {
		t.Errorf("Count = %d, want 0", store.Count())
	}
}
