package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sync strategies. "quick" and "random" both import via single random fetches;
// quick is the bulk variant chosen while the store is nearly empty.
const (
	StrategyQuick    = "quick"
	StrategyRandom   = "random"
	StrategyCategory = "category"
	StrategyArea     = "area"
)

const (
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

var (
	MessageSuccessSync        = "sync completed"
	MessageSuccessGetSyncRuns = "success get sync runs"

	MessageFailedSync        = "sync failed"
	MessageFailedGetSyncRuns = "failed to get sync runs"
)

type (
	SyncRequest struct {
		Strategy string `json:"strategy" validate:"omitempty,oneof=quick random category area"`
		Count    int    `json:"count" validate:"omitempty,min=1,max=200"`
	}

	SyncReport struct {
		RunID     uuid.UUID     `json:"run_id"`
		Strategy  string        `json:"strategy"`
		Target    int           `json:"target"`
		Added     int           `json:"added"`
		Skipped   int           `json:"skipped"`
		StartedAt time.Time     `json:"started_at"`
		Duration  time.Duration `json:"duration"`
	}
)
