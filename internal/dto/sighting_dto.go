package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type CreateSightingResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type ApproveResponse struct {
	OK      bool  `json:"ok"`
	Changes int64 `json:"changes"`
}

type HealthResponse struct {
	OK        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// PublicSighting is a feed entry. It deliberately has no email field.
type PublicSighting struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Name            string    `json:"name"`
	SuspiciousMeter int       `json:"suspicious_meter"`
	Photos          []string  `json:"photos"`
	SubmittedAt     time.Time `json:"submitted_at"`
	ApprovedAt      time.Time `json:"approved_at"`
}

type PendingSighting struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	SuspiciousMeter int       `json:"suspicious_meter"`
	Photos          []string  `json:"photos"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type PublicFeedResponse struct {
	Items []PublicSighting `json:"items"`
}

type PendingQueueResponse struct {
	Items []PendingSighting `json:"items"`
}

func NewPublicFeedResponse(items []services.PublicItem) PublicFeedResponse {
	out := make([]PublicSighting, 0, len(items))
	for _, it := range items {
		out = append(out, PublicSighting{
			ID:              it.ID,
			Title:           it.Title,
			Description:     it.Description,
			Name:            it.ReporterName,
			SuspiciousMeter: it.SuspicionLevel,
			Photos:          it.PhotoURLs,
			SubmittedAt:     it.SubmittedAt,
			ApprovedAt:      it.ApprovedAt,
		})
	}
	return PublicFeedResponse{Items: out}
}

func NewPendingQueueResponse(items []services.QueueItem) PendingQueueResponse {
	out := make([]PendingSighting, 0, len(items))
	for _, it := range items {
		out = append(out, PendingSighting{
			ID:              it.ID,
			Title:           it.Title,
			Description:     it.Description,
			Name:            it.ReporterName,
			Email:           it.ReporterEmail,
			SuspiciousMeter: it.SuspicionLevel,
			Photos:          it.PhotoURLs,
			Status:          string(it.Status),
			SubmittedAt:     it.SubmittedAt,
		})
	}
	return PendingQueueResponse{Items: out}
}
