package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
)

var base = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func pendingSighting(id string, submitted time.Time, keys ...string) *models.Sighting {
	s := &models.Sighting{
		ID:             id,
		Title:          "title " + id,
		Description:    "description",
		ReporterName:   "Anonymous",
		SuspicionLevel: 3,
		AttachmentKeys: keys,
		SubmittedAt:    submitted,
	}
	s.SetState(models.Pending())
	return s
}

func TestMemoryRecordStoreInsertRejectsInvalidRows(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	if err := store.Insert(ctx, pendingSighting("", base)); err == nil {
		t.Fatal("expected error for empty id")
	}

	bad := pendingSighting("a", base)
	bad.SuspicionLevel = 11
	if err := store.Insert(ctx, bad); err == nil {
		t.Fatal("expected error for suspicion level out of range")
	}

	inconsistent := pendingSighting("b", base)
	inconsistent.Status = models.StatusApproved
	if err := store.Insert(ctx, inconsistent); err == nil {
		t.Fatal("expected error for approved row without approved_at")
	}

	if err := store.Insert(ctx, pendingSighting("c", base)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(ctx, pendingSighting("c", base)); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestMemoryRecordStoreReturnsCopies(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()
	_ = store.Insert(ctx, pendingSighting("a", base, "a-0"))

	got, _ := store.Get(ctx, "a")
	got.AttachmentKeys[0] = "mutated"
	got.Title = "mutated"

	again, _ := store.Get(ctx, "a")
	if again.AttachmentKeys[0] != "a-0" || again.Title != "title a" {
		t.Fatalf("stored row was mutated through a returned copy: %+v", again)
	}
}

func TestMemoryRecordStoreApprove(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()
	_ = store.Insert(ctx, pendingSighting("a", base))

	// Approval earlier than submission is clamped to submitted_at.
	n, err := store.Approve(ctx, "a", base.Add(-time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("approve = %d, %v", n, err)
	}
	got, _ := store.Get(ctx, "a")
	at, ok := got.State().ApprovedAt()
	if !ok || !at.Equal(base) {
		t.Fatalf("approved_at = %v (ok=%v), want %v", at, ok, base)
	}

	if n, _ := store.Approve(ctx, "a", base.Add(time.Hour)); n != 0 {
		t.Fatalf("second approve changed %d rows", n)
	}
	if n, _ := store.Approve(ctx, "missing", base); n != 0 {
		t.Fatalf("approve missing changed %d rows", n)
	}
}

func TestMemoryRecordStoreDelete(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()
	_ = store.Insert(ctx, pendingSighting("a", base, "a-0"))

	deleted, err := store.Delete(ctx, "a")
	if err != nil || deleted == nil || deleted.AttachmentKeys[0] != "a-0" {
		t.Fatalf("delete = %+v, %v", deleted, err)
	}
	deleted, err = store.Delete(ctx, "a")
	if err != nil || deleted != nil {
		t.Fatalf("second delete = %+v, %v; want nil, nil", deleted, err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
}

func TestMemoryRecordStoreDeletePendingBefore(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()
	_ = store.Insert(ctx, pendingSighting("old", base))
	_ = store.Insert(ctx, pendingSighting("new", base.Add(2*time.Hour)))
	_ = store.Insert(ctx, pendingSighting("approved", base))
	_, _ = store.Approve(ctx, "approved", base)

	deleted, err := store.DeletePendingBefore(ctx, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("delete pending: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != "old" {
		t.Fatalf("deleted = %+v, want [old]", deleted)
	}
	pending, _ := store.ListPending(ctx)
	if len(pending) != 1 || pending[0].ID != "new" {
		t.Fatalf("pending = %+v, want [new]", pending)
	}
}

func TestMemoryRecordStoreListOrdering(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()
	_ = store.Insert(ctx, pendingSighting("b", base.Add(time.Minute)))
	_ = store.Insert(ctx, pendingSighting("a", base))
	_ = store.Insert(ctx, pendingSighting("c", base.Add(2*time.Minute)))

	pending, _ := store.ListPending(ctx)
	if len(pending) != 3 || pending[0].ID != "a" || pending[1].ID != "b" || pending[2].ID != "c" {
		t.Fatalf("pending order wrong: %v", pending)
	}

	_, _ = store.Approve(ctx, "a", base.Add(time.Hour))
	_, _ = store.Approve(ctx, "c", base.Add(2*time.Hour))
	approved, _ := store.ListApproved(ctx, 10, 0)
	if len(approved) != 2 || approved[0].ID != "c" || approved[1].ID != "a" {
		t.Fatalf("approved order wrong: %v", approved)
	}
	approved, _ = store.ListApproved(ctx, 1, 1)
	if len(approved) != 1 || approved[0].ID != "a" {
		t.Fatalf("paged approved wrong: %v", approved)
	}
}
