package store

import (
	"context"
	"testing"

	"abctrack/internal/domain/models"
)

func TestSelectedIsPureRead(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore()

	if _, _, err := s.CreateChild(ctx, "user-1", "Mia", "she/her"); err != nil {
		t.Fatalf("CreateChild() error = %v", err)
	}

	sel, err := s.Selected(ctx, "user-1")
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if sel != nil {
		t.Errorf("Selected() = %+v, want nil before any selection", sel)
	}

	// Reading must not have written a default pointer.
	if _, ok, _ := backend.Get(ctx, userKey("user-1", keySelectedChild)); ok {
		t.Error("Selected() wrote the selection key")
	}
}

func TestEnsureSelectionDefaultsToFirstChild(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore()

	id, record, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")

	sel, err := s.EnsureSelection(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureSelection() error = %v", err)
	}
	if sel == nil || sel.ID != id || sel.ChildUUID != record.ChildUUID {
		t.Fatalf("EnsureSelection() = %+v, want pointer at %s", sel, id)
	}

	// The default must be persisted.
	if _, ok, _ := backend.Get(ctx, userKey("user-1", keySelectedChild)); !ok {
		t.Error("EnsureSelection() did not persist the selection")
	}

	again, err := s.Selected(ctx, "user-1")
	if err != nil {
		t.Fatalf("Selected() error = %v", err)
	}
	if again == nil || again.ID != id {
		t.Errorf("Selected() after ensure = %+v", again)
	}
}

func TestEnsureSelectionNoChildren(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	sel, err := s.EnsureSelection(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureSelection() error = %v", err)
	}
	if sel != nil {
		t.Errorf("EnsureSelection() = %+v, want nil with no children", sel)
	}
}

func TestEnsureSelectionKeepsValidPointer(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	s.CreateChild(ctx, "user-1", "Mia", "she/her")
	secondID, second, _ := s.CreateChild(ctx, "user-1", "Theo", "he/him")

	want := models.SelectedChild{ID: secondID, ChildUUID: second.ChildUUID, ChildName: second.ChildName}
	if err := s.SetSelected(ctx, "user-1", want); err != nil {
		t.Fatalf("SetSelected() error = %v", err)
	}

	sel, err := s.EnsureSelection(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureSelection() error = %v", err)
	}
	if sel == nil || sel.ID != secondID {
		t.Errorf("EnsureSelection() = %+v, want existing pointer kept", sel)
	}
}

func TestEnsureSelectionRepairsDanglingPointer(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	keepID, _, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")
	dropID, dropped, _ := s.CreateChild(ctx, "user-1", "Theo", "he/him")

	s.SetSelected(ctx, "user-1", models.SelectedChild{ID: dropID, ChildUUID: dropped.ChildUUID, ChildName: dropped.ChildName})
	if err := s.SoftDeleteChild(ctx, "user-1", dropID); err != nil {
		t.Fatalf("SoftDeleteChild() error = %v", err)
	}

	sel, err := s.EnsureSelection(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureSelection() error = %v", err)
	}
	if sel == nil || sel.ID != keepID {
		t.Errorf("EnsureSelection() = %+v, want re-pointed at %s", sel, keepID)
	}
}

func TestEnsureSelectionToleratesCorruptedPointer(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore()

	id, _, _ := s.CreateChild(ctx, "user-1", "Mia", "she/her")
	backend.Set(ctx, userKey("user-1", keySelectedChild), "{broken")

	sel, err := s.EnsureSelection(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureSelection() error = %v", err)
	}
	if sel == nil || sel.ID != id {
		t.Errorf("EnsureSelection() = %+v, want repaired pointer at %s", sel, id)
	}
}
