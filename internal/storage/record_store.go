// Package storage holds the two stores a sighting lives in: structured
// records (Postgres or memory) and binary attachments (S3 or memory).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
)

var ErrRecordNotFound = errors.New("sighting not found")

// RecordStore is the query contract the lifecycle and feed services need.
type RecordStore interface {
	Insert(ctx context.Context, s *models.Sighting) error

	// Get returns ErrRecordNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.Sighting, error)

	// Approve moves a pending sighting to approved with approved_at set to
	// the later of at and its submitted_at. Only a pending row is changed;
	// the result is the number of rows changed (0 or 1).
	Approve(ctx context.Context, id string, at time.Time) (int64, error)

	// Delete removes a sighting and returns the row as it was deleted, or
	// nil when no row was removed (unknown id or a concurrent deleter won).
	Delete(ctx context.Context, id string) (*models.Sighting, error)

	// DeletePendingBefore removes every pending sighting submitted before
	// cutoff and returns the deleted rows.
	DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]models.Sighting, error)

	// ListApproved orders by approved_at descending.
	ListApproved(ctx context.Context, limit, offset int) ([]models.Sighting, error)

	// ListPending orders by submitted_at ascending.
	ListPending(ctx context.Context) ([]models.Sighting, error)

	Ping(ctx context.Context) error
}
