package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/storage"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50
	DefaultImageBase = "/api/image/"
)

// PublicItem is an approved sighting as shown to everyone. It has no
// reporter email by construction.
type PublicItem struct {
	ID             string
	Title          string
	Description    string
	ReporterName   string
	SuspicionLevel int
	PhotoURLs      []string
	SubmittedAt    time.Time
	ApprovedAt     time.Time
}

// QueueItem is a pending sighting as shown to the operator.
type QueueItem struct {
	ID             string
	Title          string
	Description    string
	ReporterName   string
	ReporterEmail  string
	SuspicionLevel int
	PhotoURLs      []string
	Status         models.Status
	SubmittedAt    time.Time
}

// FeedService builds the read-only views over sightings.
type FeedService struct {
	records   storage.RecordStore
	blobs     storage.BlobStore
	imageBase string
}

func NewFeedService(records storage.RecordStore, blobs storage.BlobStore, imageBase string) *FeedService {
	if imageBase == "" {
		imageBase = DefaultImageBase
	}
	if !strings.HasSuffix(imageBase, "/") {
		imageBase += "/"
	}
	return &FeedService{records: records, blobs: blobs, imageBase: imageBase}
}

// NormalizePage applies the public feed paging bounds.
func NormalizePage(limit, offset int) (int, int) {
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PublicFeed lists approved sightings, most recently approved first.
func (s *FeedService) PublicFeed(ctx context.Context, limit, offset int) ([]PublicItem, error) {
	limit, offset = NormalizePage(limit, offset)
	sightings, err := s.records.ListApproved(ctx, limit, offset)
	if err != nil {
		return nil, storageErr("list approved sightings", err)
	}

	items := make([]PublicItem, 0, len(sightings))
	for i := range sightings {
		sg := &sightings[i]
		approvedAt, ok := sg.State().ApprovedAt()
		if !ok {
			continue
		}
		items = append(items, PublicItem{
			ID:             sg.ID,
			Title:          sg.Title,
			Description:    sg.Description,
			ReporterName:   sg.ReporterName,
			SuspicionLevel: sg.SuspicionLevel,
			PhotoURLs:      s.photoURLs(sg.AttachmentKeys),
			SubmittedAt:    sg.SubmittedAt,
			ApprovedAt:     approvedAt,
		})
	}
	return items, nil
}

// ModerationQueue lists pending sightings, oldest first.
func (s *FeedService) ModerationQueue(ctx context.Context) ([]QueueItem, error) {
	sightings, err := s.records.ListPending(ctx)
	if err != nil {
		return nil, storageErr("list pending sightings", err)
	}

	items := make([]QueueItem, 0, len(sightings))
	for _, sg := range sightings {
		items = append(items, QueueItem{
			ID:             sg.ID,
			Title:          sg.Title,
			Description:    sg.Description,
			ReporterName:   sg.ReporterName,
			ReporterEmail:  sg.ReporterEmail,
			SuspicionLevel: sg.SuspicionLevel,
			PhotoURLs:      s.photoURLs(sg.AttachmentKeys),
			Status:         sg.Status,
			SubmittedAt:    sg.SubmittedAt,
		})
	}
	return items, nil
}

// Attachment opens the blob behind a photo URL. Callers close Body.
func (s *FeedService) Attachment(ctx context.Context, key string) (*storage.Blob, error) {
	if key == "" {
		return nil, ErrAttachmentNotFound
	}
	blob, err := s.blobs.Get(ctx, key)
	if errors.Is(err, storage.ErrBlobNotFound) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, storageErr("read attachment", err)
	}
	return blob, nil
}

func (s *FeedService) photoURLs(keys []string) []string {
	urls := make([]string, 0, len(keys))
	for _, k := range keys {
		urls = append(urls, s.imageBase+k)
	}
	return urls
}
