package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/storage"
	"github.com/google/uuid"
)

const (
	DefaultPendingTTL = 48 * time.Hour
	DefaultBlobTTL    = 365 * 24 * time.Hour
)

type LifecycleConfig struct {
	// PendingTTL is how long a sighting may wait for moderation.
	PendingTTL time.Duration
	// BlobTTL bounds the lifetime of an attachment, including orphans.
	BlobTTL time.Duration
}

// LifecycleService owns every state change of a sighting and keeps its
// attachments in step with the record. Attachments are written before the
// record on create and deleted after the record on reject and expiry, so a
// failed create can leave an unreferenced blob but a record never points
// at a missing one.
type LifecycleService struct {
	records storage.RecordStore
	blobs   storage.BlobStore
	cfg     LifecycleConfig
	now     func() time.Time
}

func NewLifecycleService(records storage.RecordStore, blobs storage.BlobStore, cfg LifecycleConfig) *LifecycleService {
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = DefaultPendingTTL
	}
	if cfg.BlobTTL <= 0 {
		cfg.BlobTTL = DefaultBlobTTL
	}
	return &LifecycleService{records: records, blobs: blobs, cfg: cfg, now: time.Now}
}

// WithClock replaces the time source.
func (s *LifecycleService) WithClock(now func() time.Time) *LifecycleService {
	s.now = now
	return s
}

// AttachmentKey names the blob for the seq-th attachment of a sighting.
func AttachmentKey(sightingID string, seq int) string {
	return fmt.Sprintf("%s-%d", sightingID, seq)
}

// Submit validates a raw intake form and creates the sighting. Nothing is
// written when validation fails.
func (s *LifecycleService) Submit(ctx context.Context, raw RawSubmission) (string, error) {
	ns, err := ValidateSubmission(raw)
	if err != nil {
		return "", err
	}
	return s.Create(ctx, ns)
}

// Create stores a validated submission as a pending sighting and returns its id.
func (s *LifecycleService) Create(ctx context.Context, ns NewSighting) (string, error) {
	id := uuid.NewString()
	now := s.now().UTC()

	keys := make([]string, 0, 1)
	if ns.Photo != nil {
		key := AttachmentKey(id, 0)
		if err := s.putAttachment(ctx, id, key, ns.Photo, now); err != nil {
			return "", storageErr("store attachment", err)
		}
		keys = append(keys, key)
	}

	sighting := &models.Sighting{
		ID:             id,
		Title:          ns.Title,
		Description:    ns.Description,
		ReporterName:   ns.ReporterName,
		ReporterEmail:  ns.ReporterEmail,
		SuspicionLevel: ns.SuspicionLevel,
		AttachmentKeys: keys,
		SubmittedAt:    now,
	}
	sighting.SetState(models.Pending())

	if err := s.records.Insert(ctx, sighting); err != nil {
		if len(keys) > 0 {
			slog.Error("sighting insert failed after attachment upload; attachment orphaned",
				"sighting_id", id, "blob_key", keys[0], "filename", ns.Photo.Filename,
				"action", "create", "error", err)
		}
		return "", storageErr("store sighting", err)
	}

	if ns.Photo != nil {
		slog.Info("sighting created", "sighting_id", id, "attachments", len(keys), "filename", ns.Photo.Filename)
	} else {
		slog.Info("sighting created", "sighting_id", id, "attachments", len(keys))
	}
	return id, nil
}

func (s *LifecycleService) putAttachment(ctx context.Context, id, key string, photo *Upload, now time.Time) error {
	body, err := photo.Open()
	if err != nil {
		return err
	}
	defer body.Close()

	return s.blobs.Put(ctx, key, body, photo.Size, storage.BlobMeta{
		ContentType: photo.ContentType,
		Expires:     now.Add(s.cfg.BlobTTL),
		Metadata:    map[string]string{"sighting_id": id},
	})
}

// Approve moves a pending sighting to approved. It reports how many
// sightings changed: 0 for unknown or already approved ids.
func (s *LifecycleService) Approve(ctx context.Context, id string) (int64, error) {
	changes, err := s.records.Approve(ctx, id, s.now().UTC())
	if err != nil {
		return 0, storageErr("approve sighting", err)
	}
	if changes > 0 {
		slog.Info("sighting approved", "sighting_id", id)
	}
	return changes, nil
}

// Reject deletes a sighting and its attachments. Unknown ids are a no-op.
func (s *LifecycleService) Reject(ctx context.Context, id string) error {
	// Keys are read before the delete so that whichever caller removes the
	// row also knows what to clean up.
	existing, err := s.records.Get(ctx, id)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return storageErr("load sighting", err)
	}

	deleted, err := s.records.Delete(ctx, id)
	if err != nil {
		return storageErr("delete sighting", err)
	}
	if deleted == nil {
		return nil
	}

	keys := deleted.AttachmentKeys
	if len(keys) == 0 {
		keys = existing.AttachmentKeys
	}
	s.deleteAttachments(ctx, id, keys, "reject")
	slog.Info("sighting rejected", "sighting_id", id, "attachments", len(keys))
	return nil
}

// Expire deletes pending sightings older than the pending TTL together
// with their attachments and returns how many were removed.
func (s *LifecycleService) Expire(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-s.cfg.PendingTTL)
	expired, err := s.records.DeletePendingBefore(ctx, cutoff)
	if err != nil {
		return 0, storageErr("expire sightings", err)
	}
	for _, sighting := range expired {
		s.deleteAttachments(ctx, sighting.ID, sighting.AttachmentKeys, "expire")
	}
	if len(expired) > 0 {
		slog.Info("pending sightings expired", "deleted", len(expired), "cutoff", cutoff)
	}
	return len(expired), nil
}

// deleteAttachments runs after the record is gone; failures leave an
// orphan bounded by the blob TTL and are only logged.
func (s *LifecycleService) deleteAttachments(ctx context.Context, id string, keys []string, action string) {
	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			slog.Error("attachment delete failed; attachment orphaned",
				"sighting_id", id, "blob_key", key, "action", action, "error", err)
		}
	}
}
