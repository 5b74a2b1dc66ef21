package models

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Sighting is a user-submitted report awaiting or past moderation.
// Rejected and expired sightings are deleted, so there is no rejected status.
type Sighting struct {
	ID             string                      `gorm:"primaryKey;size:36" json:"id"`
	Title          string                      `gorm:"size:120;not null" json:"title"`
	Description    string                      `gorm:"type:text;not null" json:"description"`
	ReporterName   string                      `gorm:"size:80;not null;default:'Anonymous'" json:"reporter_name"`
	ReporterEmail  string                      `gorm:"size:120" json:"reporter_email,omitempty"`
	SuspicionLevel int                         `gorm:"not null;default:1;check:chk_sightings_suspicion,suspicion_level BETWEEN 1 AND 10" json:"suspicion_level"`
	AttachmentKeys datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'" json:"attachment_keys"`
	Status         Status                      `gorm:"size:16;not null;default:'pending';index:idx_sightings_status_submitted,priority:1;index:idx_sightings_status_approved,priority:1;check:chk_sightings_approval,(status = 'pending' AND approved_at IS NULL) OR (status = 'approved' AND approved_at IS NOT NULL)" json:"status"`
	SubmittedAt    time.Time                   `gorm:"not null;index:idx_sightings_status_submitted,priority:2" json:"submitted_at"`
	ApprovedAt     *time.Time                  `gorm:"index:idx_sightings_status_approved,priority:2" json:"approved_at,omitempty"`
}

func (Sighting) TableName() string {
	return "sightings"
}

// State is the moderation state of a sighting: either Pending or
// Approved at a given instant. The zero value is Pending.
type State struct {
	approvedAt time.Time
	approved   bool
}

func Pending() State {
	return State{}
}

func Approved(at time.Time) State {
	return State{approvedAt: at.UTC(), approved: true}
}

// ApprovedAt returns the approval instant; ok is false while pending.
func (s State) ApprovedAt() (at time.Time, ok bool) {
	return s.approvedAt, s.approved
}

func (s State) Status() Status {
	if s.approved {
		return StatusApproved
	}
	return StatusPending
}

// State derives the tagged state from the stored columns. A row marked
// approved without a timestamp cannot be written through SetState and is
// rejected by the table constraint, so it is reported as pending.
func (s *Sighting) State() State {
	if s.Status == StatusApproved && s.ApprovedAt != nil {
		return Approved(*s.ApprovedAt)
	}
	return Pending()
}

// SetState writes status and approved_at together.
func (s *Sighting) SetState(st State) {
	s.Status = st.Status()
	if at, ok := st.ApprovedAt(); ok {
		s.ApprovedAt = &at
		return
	}
	s.ApprovedAt = nil
}
