package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog keeps ERROR-level log records so failed writes and orphaned
// attachments can be traced after the fact.
type SystemLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Timestamp  time.Time      `gorm:"not null;index" json:"timestamp"`
	Level      string         `gorm:"size:10;not null;index" json:"level"`
	Message    string         `gorm:"type:text" json:"message"`
	SightingID string         `gorm:"size:36;index" json:"sighting_id"`
	RequestID  string         `gorm:"size:36;index" json:"request_id"`
	BlobKey    string         `gorm:"size:255" json:"blob_key"`
	Action     string         `gorm:"size:100" json:"action"`
	Error      string         `gorm:"type:text" json:"error"`
	Extra      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt  time.Time      `json:"created_at"`
}
