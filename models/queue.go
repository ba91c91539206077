package models

import (
	"time"

	"gorm.io/gorm"
)

// Queue item statuses. The dispatcher is the only writer of the terminal
// states (sent, failed, task_created); the lifecycle handlers are the only
// writers of pending/pending_paused.
const (
	QueueStatusPending       = "pending"
	QueueStatusPendingPaused = "pending_paused"
	QueueStatusSent          = "sent"
	QueueStatusFailed        = "failed"
	QueueStatusTaskCreated   = "task_created"
)

// QueueItem is one dated, per-contact instantiation of a sequence step. It
// owns a snapshot of the contact taken at build time; later contact edits do
// not touch items already in the queue.
type QueueItem struct {
	gorm.Model `json:"-"`

	ItemID     string `gorm:"uniqueIndex;not null" json:"id"`
	SequenceID string `gorm:"index;not null" json:"sequence_id"`
	StepID     string `json:"step_id"`

	Contact Contact `gorm:"type:jsonb;serializer:json" json:"contact"`
	Channel string  `json:"channel"` // email, linkedin, manual
	Subject string  `json:"subject,omitempty"`
	Content string  `json:"content,omitempty"`

	ScheduledAt time.Time  `gorm:"index" json:"scheduled_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	Status      string     `gorm:"default:'pending';index" json:"status"`
	LastError   string     `json:"last_error,omitempty"`
}
