package scheduler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/malumbo/academy/internal/store"
)

func TestPurgeReadMessages(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	old, err := st.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Name: "Old", Email: "old@example.com", Message: "hello",
	})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	if _, err := st.MarkMessageRead(ctx, old.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	// Unread messages are never purged regardless of age.
	if _, err := st.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Name: "Unread", Email: "unread@example.com", Message: "hello",
	}); err != nil {
		t.Fatalf("create message: %v", err)
	}

	s := New(st, slog.Default(), 90)
	// A cutoff in the future makes the freshly created read message old
	// enough to purge.
	s.retentionDays = -1

	if err := s.purgeReadMessages(); err != nil {
		t.Fatalf("purge: %v", err)
	}

	messages, err := st.ListContactMessages(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 remaining message, got %d", len(messages))
	}
	if messages[0].Name != "Unread" {
		t.Errorf("wrong message survived: %s", messages[0].Name)
	}
}

func TestStartDisabledRetention(t *testing.T) {
	s := New(store.NewMemory(), slog.Default(), 0)
	if err := s.Start(); err != nil {
		t.Fatalf("start with retention disabled: %v", err)
	}
	if entries := len(s.cron.Entries()); entries != 0 {
		t.Errorf("expected no cron entries, got %d", entries)
	}
}

func TestStartAndStop(t *testing.T) {
	s := New(store.NewMemory(), slog.Default(), 30)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if entries := len(s.cron.Entries()); entries != 1 {
		t.Errorf("expected 1 cron entry, got %d", entries)
	}

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
