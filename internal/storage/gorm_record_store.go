package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecordStore keeps sightings in Postgres.
type GormRecordStore struct {
	db *gorm.DB
}

func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

// withStatus returns a GORM scope that filters by moderation status.
func withStatus(status models.Status) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

func paginate(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit).Offset(offset)
	}
}

func (s *GormRecordStore) Insert(ctx context.Context, sighting *models.Sighting) error {
	if err := s.db.WithContext(ctx).Create(sighting).Error; err != nil {
		return fmt.Errorf("insert sighting: %w", err)
	}
	return nil
}

func (s *GormRecordStore) Get(ctx context.Context, id string) (*models.Sighting, error) {
	var sighting models.Sighting
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&sighting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sighting: %w", err)
	}
	return &sighting, nil
}

func (s *GormRecordStore) Approve(ctx context.Context, id string, at time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Sighting{}).
		Scopes(withStatus(models.StatusPending)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.StatusApproved,
			"approved_at": gorm.Expr("GREATEST(?::timestamptz, submitted_at)", at.UTC()),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("approve sighting: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormRecordStore) Delete(ctx context.Context, id string) (*models.Sighting, error) {
	var deleted []models.Sighting
	err := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&deleted).Error
	if err != nil {
		return nil, fmt.Errorf("delete sighting: %w", err)
	}
	if len(deleted) == 0 {
		return nil, nil
	}
	return &deleted[0], nil
}

func (s *GormRecordStore) DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]models.Sighting, error) {
	var deleted []models.Sighting
	err := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Scopes(withStatus(models.StatusPending)).
		Where("submitted_at < ?", cutoff.UTC()).
		Delete(&deleted).Error
	if err != nil {
		return nil, fmt.Errorf("delete expired sightings: %w", err)
	}
	return deleted, nil
}

func (s *GormRecordStore) ListApproved(ctx context.Context, limit, offset int) ([]models.Sighting, error) {
	var sightings []models.Sighting
	err := s.db.WithContext(ctx).
		Scopes(withStatus(models.StatusApproved), paginate(limit, offset)).
		Order("approved_at DESC").
		Order("id").
		Find(&sightings).Error
	if err != nil {
		return nil, fmt.Errorf("list approved sightings: %w", err)
	}
	return sightings, nil
}

func (s *GormRecordStore) ListPending(ctx context.Context) ([]models.Sighting, error) {
	var sightings []models.Sighting
	err := s.db.WithContext(ctx).
		Scopes(withStatus(models.StatusPending)).
		Order("submitted_at ASC").
		Order("id").
		Find(&sightings).Error
	if err != nil {
		return nil, fmt.Errorf("list pending sightings: %w", err)
	}
	return sightings, nil
}

func (s *GormRecordStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
