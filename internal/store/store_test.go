package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
	"abctrack/internal/kv"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore() (*RecordStore, kv.Store) {
	backend := kv.NewMemoryStore()
	s := NewRecordStore(backend, testLogger())
	return s, backend
}

func TestCreateChild(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	id, record, err := s.CreateChild(ctx, "user-1", "Mia", "she/her")
	if err != nil {
		t.Fatalf("CreateChild() error = %v", err)
	}

	if record.ChildName != "mia" {
		t.Errorf("ChildName = %q, want %q", record.ChildName, "mia")
	}
	if record.ChildNameCapitalized != "Mia" {
		t.Errorf("ChildNameCapitalized = %q, want %q", record.ChildNameCapitalized, "Mia")
	}
	if record.IsDeleted {
		t.Error("new record should not be deleted")
	}
	if record.CompletedLogs.Positive == nil || record.CompletedLogs.Negative == nil {
		t.Error("both log arrays must be present on a fresh record")
	}
	if len(record.CompletedLogs.Positive) != 0 || len(record.CompletedLogs.Negative) != 0 {
		t.Error("fresh record should have empty log arrays")
	}

	loaded, err := s.LoadChild(ctx, "user-1", id)
	if err != nil {
		t.Fatalf("LoadChild() error = %v", err)
	}
	if loaded.ChildUUID != record.ChildUUID {
		t.Errorf("ChildUUID = %q, want %q", loaded.ChildUUID, record.ChildUUID)
	}
	if loaded.CompletedLogs.Positive == nil || loaded.CompletedLogs.Negative == nil {
		t.Error("loaded record must have both log arrays present")
	}
}

func TestLoadChildNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	_, err := s.LoadChild(ctx, "user-1", "nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("LoadChild() error = %v, want ErrNotFound", err)
	}
}

func TestLoadChildCorruptedIsNotDeleted(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore()

	key := userKey("user-1", "bad_child")
	if err := backend.Set(ctx, key, "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, err := s.LoadChild(ctx, "user-1", "bad_child")
	if !errors.Is(err, domain.ErrCorrupted) {
		t.Fatalf("LoadChild() error = %v, want ErrCorrupted", err)
	}

	// The corrupted value must survive the failed read.
	raw, ok, err := backend.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("corrupted key vanished after read: ok=%v err=%v", ok, err)
	}
	if raw != "{not json" {
		t.Errorf("corrupted value changed: %q", raw)
	}
}

func TestAppendLogPartitionsAndOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	id, _, err := s.CreateChild(ctx, "user-1", "Theo", "he/him")
	if err != nil {
		t.Fatalf("CreateChild() error = %v", err)
	}

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	first, err := s.AppendLog(ctx, "user-1", id, models.SentimentNegative, nil, base)
	if err != nil {
		t.Fatalf("AppendLog() error = %v", err)
	}
	second, err := s.AppendLog(ctx, "user-1", id, models.SentimentNegative, nil, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("AppendLog() error = %v", err)
	}
	if _, err := s.AppendLog(ctx, "user-1", id, models.SentimentPositive, nil, base.Add(2*time.Hour)); err != nil {
		t.Fatalf("AppendLog() error = %v", err)
	}

	record, err := s.LoadChild(ctx, "user-1", id)
	if err != nil {
		t.Fatalf("LoadChild() error = %v", err)
	}

	neg := record.CompletedLogs.Negative
	if len(neg) != 2 {
		t.Fatalf("negative partition has %d entries, want 2", len(neg))
	}
	if neg[0].ID != first.ID || neg[1].ID != second.ID {
		t.Error("appends must preserve insertion order")
	}
	if len(record.CompletedLogs.Positive) != 1 {
		t.Errorf("positive partition has %d entries, want 1", len(record.CompletedLogs.Positive))
	}
}

func TestClearLogsKeepsRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	id, _, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")
	if _, err := s.AppendLog(ctx, "user-1", id, models.SentimentPositive, nil, time.Now()); err != nil {
		t.Fatalf("AppendLog() error = %v", err)
	}

	if err := s.ClearLogs(ctx, "user-1", id); err != nil {
		t.Fatalf("ClearLogs() error = %v", err)
	}

	record, err := s.LoadChild(ctx, "user-1", id)
	if err != nil {
		t.Fatalf("LoadChild() error = %v", err)
	}
	if len(record.CompletedLogs.All()) != 0 {
		t.Error("logs should be empty after clear")
	}
	if record.ChildName != "mia" {
		t.Error("clearing logs must not touch the rest of the record")
	}
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	keepID, _, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")
	dropID, _, _ := s.CreateChild(ctx, "user-1", "Theo", "he/him")

	if err := s.SoftDeleteChild(ctx, "user-1", dropID); err != nil {
		t.Fatalf("SoftDeleteChild() error = %v", err)
	}

	_, ids, err := s.ListChildren(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListChildren() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != keepID {
		t.Errorf("ListChildren() ids = %v, want [%s]", ids, keepID)
	}

	// Deleted records stay loadable by id.
	record, err := s.LoadChild(ctx, "user-1", dropID)
	if err != nil {
		t.Fatalf("LoadChild() error = %v", err)
	}
	if !record.IsDeleted {
		t.Error("record should be marked deleted")
	}
}

func TestListChildrenSkipsReservedAndCorrupted(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore()

	id, _, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")
	backend.Set(ctx, userKey("user-1", keyOnboarding), "true")
	backend.Set(ctx, userKey("user-1", suggestionPrefix+"hitting"), `{"suggestions":{}}`)
	backend.Set(ctx, userKey("user-1", "broken_child"), "{oops")
	backend.Set(ctx, userKey("user-2", "other"), `{"child_uuid":"x","child_name":"other"}`)

	records, ids, err := s.ListChildren(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListChildren() error = %v", err)
	}
	if len(records) != 1 || ids[0] != id {
		t.Errorf("ListChildren() = %d records, ids %v; want only %s", len(records), ids, id)
	}
}

func TestUpdateChildKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	id, created, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")

	updated, err := s.UpdateChild(ctx, "user-1", id, "Amelia", "")
	if err != nil {
		t.Fatalf("UpdateChild() error = %v", err)
	}
	if updated.ChildName != "amelia" || updated.ChildNameCapitalized != "Amelia" {
		t.Errorf("name fields = %q/%q", updated.ChildName, updated.ChildNameCapitalized)
	}
	if updated.ChildUUID != created.ChildUUID {
		t.Error("child_uuid must never change on rename")
	}
	if updated.Pronouns != "she/her" {
		t.Errorf("empty pronouns arg must keep existing value, got %q", updated.Pronouns)
	}

	// The storage id keeps the original name.
	if _, err := s.LoadChild(ctx, "user-1", id); err != nil {
		t.Errorf("record not loadable under original id: %v", err)
	}
}

func TestCustomOptions(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	id, _, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")

	record, err := s.AddCustomOption(ctx, "user-1", id, "behavior", models.CustomOption{Label: "spitting", Emoji: "x"})
	if err != nil {
		t.Fatalf("AddCustomOption() error = %v", err)
	}
	if len(record.CustomOptions["behavior"]) != 1 {
		t.Fatalf("options = %v", record.CustomOptions)
	}

	// Same label again replaces, never duplicates.
	record, err = s.AddCustomOption(ctx, "user-1", id, "behavior", models.CustomOption{Label: "spitting", Emoji: "y"})
	if err != nil {
		t.Fatalf("AddCustomOption() error = %v", err)
	}
	opts := record.CustomOptions["behavior"]
	if len(opts) != 1 || opts[0].Emoji != "y" {
		t.Errorf("duplicate label should overwrite in place, got %v", opts)
	}

	record, err = s.RemoveCustomOption(ctx, "user-1", id, "behavior", "spitting")
	if err != nil {
		t.Fatalf("RemoveCustomOption() error = %v", err)
	}
	if _, ok := record.CustomOptions["behavior"]; ok {
		t.Error("empty option list should drop the question key")
	}

	// Removing an absent label is a no-op.
	if _, err := s.RemoveCustomOption(ctx, "user-1", id, "behavior", "spitting"); err != nil {
		t.Errorf("RemoveCustomOption() on absent label error = %v", err)
	}
}

func TestPurgeCorrupted(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore()

	goodID, _, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")
	backend.Set(ctx, userKey("user-1", "broken_child"), "{oops")

	purged, err := s.PurgeCorrupted(ctx, "user-1")
	if err != nil {
		t.Fatalf("PurgeCorrupted() error = %v", err)
	}
	if len(purged) != 1 || purged[0] != "broken_child" {
		t.Errorf("purged = %v, want [broken_child]", purged)
	}

	if _, ok, _ := backend.Get(ctx, userKey("user-1", "broken_child")); ok {
		t.Error("corrupted key should be gone after purge")
	}
	if _, err := s.LoadChild(ctx, "user-1", goodID); err != nil {
		t.Errorf("healthy record lost during purge: %v", err)
	}
}

func TestMutateUpdatesTimestamp(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()

	current := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	s := NewRecordStore(backend, testLogger()).WithClock(func() time.Time { return current })

	id, created, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")

	current = current.Add(2 * time.Hour)
	record, err := s.Mutate(ctx, "user-1", id, func(r *models.ChildRecord) error {
		r.Pronouns = "they/them"
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}
	if !record.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", record.UpdatedAt, created.UpdatedAt)
	}
	if !record.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt must not change on mutation")
	}
}
