package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchRun is the stored header of one matching run.
type MatchRun struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Summary   Summary
}
