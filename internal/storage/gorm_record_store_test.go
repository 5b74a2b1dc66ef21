package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to TEST_DATABASE_URL, skipping when it is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Sighting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("DELETE FROM sightings").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestGormRecordStoreLifecycle(t *testing.T) {
	store := NewGormRecordStore(openTestDB(t))
	ctx := context.Background()
	submitted := time.Now().UTC().Truncate(time.Millisecond)

	id := uuid.NewString()
	if err := store.Insert(ctx, pendingSighting(id, submitted, id+"-0")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusPending || got.ApprovedAt != nil || len(got.AttachmentKeys) != 1 {
		t.Fatalf("unexpected row %+v", got)
	}

	n, err := store.Approve(ctx, id, submitted.Add(-time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("approve = %d, %v", n, err)
	}
	if n, _ := store.Approve(ctx, id, submitted); n != 0 {
		t.Fatalf("second approve changed %d rows", n)
	}
	got, _ = store.Get(ctx, id)
	at, ok := got.State().ApprovedAt()
	if !ok || at.Before(got.SubmittedAt) {
		t.Fatalf("approved_at = %v (ok=%v), submitted_at = %v", at, ok, got.SubmittedAt)
	}

	approved, err := store.ListApproved(ctx, 10, 0)
	if err != nil || len(approved) != 1 {
		t.Fatalf("list approved = %d, %v", len(approved), err)
	}

	deleted, err := store.Delete(ctx, id)
	if err != nil || deleted == nil || deleted.AttachmentKeys[0] != id+"-0" {
		t.Fatalf("delete = %+v, %v", deleted, err)
	}
	deleted, err = store.Delete(ctx, id)
	if err != nil || deleted != nil {
		t.Fatalf("second delete = %+v, %v", deleted, err)
	}
}

func TestGormRecordStoreDeletePendingBefore(t *testing.T) {
	store := NewGormRecordStore(openTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	stale, fresh := uuid.NewString(), uuid.NewString()
	_ = store.Insert(ctx, pendingSighting(stale, now.Add(-72*time.Hour)))
	_ = store.Insert(ctx, pendingSighting(fresh, now.Add(-time.Hour)))

	deleted, err := store.DeletePendingBefore(ctx, now.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("delete pending: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != stale {
		t.Fatalf("deleted = %+v, want [%s]", deleted, stale)
	}
	pending, _ := store.ListPending(ctx)
	if len(pending) != 1 || pending[0].ID != fresh {
		t.Fatalf("pending = %+v, want [%s]", pending, fresh)
	}
}
