package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
)

// MemoryRecordStore is a process-local RecordStore for development and tests.
// It applies the same conditional-write rules as the Postgres store.
type MemoryRecordStore struct {
	mu        sync.RWMutex
	sightings map[string]models.Sighting
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{sightings: make(map[string]models.Sighting)}
}

// cloneSighting copies the slice and pointer fields so callers cannot mutate stored rows.
func cloneSighting(s models.Sighting) models.Sighting {
	if s.AttachmentKeys != nil {
		s.AttachmentKeys = append([]string(nil), s.AttachmentKeys...)
	}
	if s.ApprovedAt != nil {
		at := *s.ApprovedAt
		s.ApprovedAt = &at
	}
	return s
}

func (m *MemoryRecordStore) Insert(_ context.Context, s *models.Sighting) error {
	if s.ID == "" {
		return fmt.Errorf("insert sighting: empty id")
	}
	if s.SuspicionLevel < 1 || s.SuspicionLevel > 10 {
		return fmt.Errorf("insert sighting: suspicion level %d out of range", s.SuspicionLevel)
	}
	if (s.Status == models.StatusApproved) != (s.ApprovedAt != nil) {
		return fmt.Errorf("insert sighting: status %q inconsistent with approved_at", s.Status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sightings[s.ID]; exists {
		return fmt.Errorf("insert sighting: duplicate id %s", s.ID)
	}
	m.sightings[s.ID] = cloneSighting(*s)
	return nil
}

func (m *MemoryRecordStore) Get(_ context.Context, id string) (*models.Sighting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sightings[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	out := cloneSighting(s)
	return &out, nil
}

func (m *MemoryRecordStore) Approve(_ context.Context, id string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sightings[id]
	if !ok || s.Status != models.StatusPending {
		return 0, nil
	}
	if at.Before(s.SubmittedAt) {
		at = s.SubmittedAt
	}
	s.SetState(models.Approved(at))
	m.sightings[id] = s
	return 1, nil
}

func (m *MemoryRecordStore) Delete(_ context.Context, id string) (*models.Sighting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sightings[id]
	if !ok {
		return nil, nil
	}
	delete(m.sightings, id)
	return &s, nil
}

func (m *MemoryRecordStore) DeletePendingBefore(_ context.Context, cutoff time.Time) ([]models.Sighting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted []models.Sighting
	for id, s := range m.sightings {
		if s.Status == models.StatusPending && s.SubmittedAt.Before(cutoff) {
			deleted = append(deleted, s)
			delete(m.sightings, id)
		}
	}
	return deleted, nil
}

func (m *MemoryRecordStore) ListApproved(_ context.Context, limit, offset int) ([]models.Sighting, error) {
	items := m.filter(models.StatusApproved)
	sort.Slice(items, func(i, j int) bool {
		ai, aj := *items[i].ApprovedAt, *items[j].ApprovedAt
		if !ai.Equal(aj) {
			return ai.After(aj)
		}
		return items[i].ID < items[j].ID
	})
	if offset >= len(items) {
		return []models.Sighting{}, nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (m *MemoryRecordStore) ListPending(_ context.Context) ([]models.Sighting, error) {
	items := m.filter(models.StatusPending)
	sort.Slice(items, func(i, j int) bool {
		si, sj := items[i].SubmittedAt, items[j].SubmittedAt
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (m *MemoryRecordStore) filter(status models.Status) []models.Sighting {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]models.Sighting, 0, len(m.sightings))
	for _, s := range m.sightings {
		if s.Status == status {
			items = append(items, cloneSighting(s))
		}
	}
	return items
}

func (m *MemoryRecordStore) Ping(context.Context) error {
	return nil
}
