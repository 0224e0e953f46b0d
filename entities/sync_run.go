package entities

import (
	"time"

	"github.com/google/uuid"
)

type SyncRun struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Strategy   string    `gorm:"size:20" json:"strategy"`
	Target     int       `json:"target"`
	Added      int       `json:"added"`
	Skipped    int       `json:"skipped"`
	Status     string    `gorm:"size:20" json:"status"` // "completed", "failed"
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time `gorm:"type:timestamp" json:"started_at"`
	FinishedAt time.Time `gorm:"type:timestamp" json:"finished_at"`
}
