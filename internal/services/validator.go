package services

import (
	"io"
	"mime"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLen       = 120
	MaxDescriptionLen = 5000
	MaxNameLen        = 80
	MaxEmailLen       = 120

	MinSuspicion = 1
	MaxSuspicion = 10

	MaxAttachmentBytes = 1 << 20

	AnonymousReporter = "Anonymous"
	consentGranted    = "true"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Upload is one file part of an intake form. Open is only called once the
// submission has passed validation.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// RawSubmission is the intake form as received.
type RawSubmission struct {
	Title          string
	Description    string
	Name           string
	Email          string
	SuspicionMeter string
	Consent        string
	Photos         []Upload
}

// NewSighting is a submission that passed validation and coercion.
type NewSighting struct {
	Title          string
	Description    string
	ReporterName   string
	ReporterEmail  string
	SuspicionLevel int
	Photo          *Upload
}

// ValidateSubmission trims, truncates and coerces the raw form. It fails
// only on a missing title or description or on absent consent; oversized
// or unsupported photos are dropped rather than refused.
func ValidateSubmission(raw RawSubmission) (NewSighting, error) {
	ns := NewSighting{
		Title:          clip(raw.Title, MaxTitleLen),
		Description:    clip(raw.Description, MaxDescriptionLen),
		ReporterName:   clip(raw.Name, MaxNameLen),
		ReporterEmail:  clip(raw.Email, MaxEmailLen),
		SuspicionLevel: ParseSuspicion(raw.SuspicionMeter),
	}

	if ns.Title == "" {
		return NewSighting{}, invalid("title is required")
	}
	if ns.Description == "" {
		return NewSighting{}, invalid("description is required")
	}
	if !strings.EqualFold(strings.TrimSpace(raw.Consent), consentGranted) {
		return NewSighting{}, invalid("consent is required")
	}
	if ns.ReporterName == "" {
		ns.ReporterName = AnonymousReporter
	}

	if len(raw.Photos) > 0 && acceptPhoto(raw.Photos[0]) {
		photo := raw.Photos[0]
		photo.ContentType = normalizeContentType(photo.ContentType)
		ns.Photo = &photo
	}
	return ns, nil
}

// ParseSuspicion reads a leading integer and clamps it into [1,10].
// Input without a leading integer counts as 1.
func ParseSuspicion(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n <= MaxSuspicion {
			n = n*10 + int(r-'0')
		}
	}
	if digits == 0 {
		return MinSuspicion
	}
	if neg {
		n = -n
	}
	return clamp(n, MinSuspicion, MaxSuspicion)
}

func acceptPhoto(u Upload) bool {
	if u.Open == nil || u.Size <= 0 || u.Size > MaxAttachmentBytes {
		return false
	}
	return allowedImageTypes[normalizeContentType(u.ContentType)]
}

func normalizeContentType(ct string) string {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mediaType
}

func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
