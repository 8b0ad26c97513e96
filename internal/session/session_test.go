package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sess := New(7, 3, 30*time.Minute, now)

	if sess.ID == "" {
		t.Error("session ID must be assigned")
	}
	if sess.UserID != 7 || sess.QuizID != 3 {
		t.Errorf("identity = user %d quiz %d, want 7/3", sess.UserID, sess.QuizID)
	}
	if !sess.StartedAt.Equal(now) {
		t.Errorf("StartedAt = %v, want %v", sess.StartedAt, now)
	}
	if !sess.Deadline.Equal(now.Add(30 * time.Minute)) {
		t.Errorf("Deadline = %v, want start + 30m", sess.Deadline)
	}

	other := New(7, 3, 30*time.Minute, now)
	if other.ID == sess.ID {
		t.Error("two sessions must not share an ID")
	}
}

func TestSessionRecordOverwrites(t *testing.T) {
	sess := New(1, 1, time.Minute, time.Now())

	sess.Record(1, "A")
	sess.Record(2, "C")
	sess.Record(1, "B")

	if sess.Answers[1] != "B" {
		t.Errorf("answer 1 = %q, want B (overwritten)", sess.Answers[1])
	}
	if len(sess.Answers) != 2 {
		t.Errorf("answer count = %d, want 2", len(sess.Answers))
	}
}

func TestSessionExpired(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sess := New(1, 1, 30*time.Minute, start)

	if sess.Expired(start.Add(29 * time.Minute)) {
		t.Error("session should not be expired before the deadline")
	}
	if sess.Expired(sess.Deadline) {
		t.Error("session should not be expired exactly at the deadline")
	}
	if !sess.Expired(sess.Deadline.Add(time.Second)) {
		t.Error("session should be expired after the deadline")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	sess := New(1, 2, time.Minute, time.Now())
	sess.Record(1, "A")

	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Answers[1] != "A" || got.QuizID != 2 {
		t.Errorf("Get returned %+v", got)
	}

	// The returned session is a copy; mutating it must not affect the store.
	got.Record(1, "E")
	again, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if again.Answers[1] != "A" {
		t.Errorf("store state mutated through a returned copy: %q", again.Answers[1])
	}
}

func TestMemoryStoreMissingAndDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}

	sess := New(1, 1, time.Minute, time.Now())
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete err = %v, want ErrNotFound", err)
	}
}
