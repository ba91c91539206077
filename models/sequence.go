package models

import (
	"time"

	"gorm.io/gorm"
)

// Sequence statuses
const (
	SequenceStatusDraft     = "draft"
	SequenceStatusActive    = "active"
	SequenceStatusPaused    = "paused"
	SequenceStatusCompleted = "completed"
)

// Step types double as queue item channels
const (
	StepTypeEmail    = "email"
	StepTypeLinkedIn = "linkedin"
	StepTypeManual   = "manual"
)

// Contact is a single outreach target. All fields are optional; identity is
// by email when present.
type Contact struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}

// Step is one unit of outreach within a sequence. DelayDays is relative to
// the previous step, not to the sequence start.
type Step struct {
	StepID    string `json:"step_id"`
	Type      string `json:"type"` // email, linkedin, manual
	DelayDays int    `json:"delay_days"`
	Subject   string `json:"subject,omitempty"`
	Content   string `json:"content,omitempty"`
	SendTime  string `json:"send_time,omitempty"` // optional HH:MM time-of-day
	Status    string `json:"status,omitempty"`    // draft, scheduled, sent
}

// SequenceMetrics holds denormalized engagement counters. Sent is maintained
// incrementally by the dispatcher and must match the count of sent email
// queue items for the sequence.
type SequenceMetrics struct {
	Sent     int `gorm:"default:0" json:"sent"`
	Opened   int `gorm:"default:0" json:"opened"`
	Replied  int `gorm:"default:0" json:"replied"`
	Positive int `gorm:"default:0" json:"positive"`
}

// Sequence is a named, ordered campaign of steps applied to a contact list.
type Sequence struct {
	gorm.Model `json:"-"`

	SequenceID string `gorm:"uniqueIndex;not null" json:"sequence_id"`
	Name       string `gorm:"not null" json:"name"`

	// Steps and contacts are stored as documents; queue items carry their
	// own snapshots, so editing these never rewrites already-built items.
	Steps    []Step    `gorm:"type:jsonb;serializer:json" json:"steps"`
	Contacts []Contact `gorm:"type:jsonb;serializer:json" json:"contacts"`

	Status    string     `gorm:"default:'draft';index" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"` // set exactly once, on first activation

	Metrics SequenceMetrics `gorm:"embedded;embeddedPrefix:metrics_" json:"metrics"`
}
