package domain

import "time"

type WatchStatus string

const (
	WatchStatusWatching  WatchStatus = "watching"
	WatchStatusCompleted WatchStatus = "completed"

	// CompletedThreshold is the watched percentage at and above which an
	// entry counts as completed.
	CompletedThreshold = 85.0
)

// WatchHistoryEntry tracks playback progress for one title on one
// profile. Keyed by (AccountID, ProfileID, MovieID); upserts replace
// progress fields and leave StartedAt untouched.
type WatchHistoryEntry struct {
	ID                string
	AccountID         string
	ProfileID         string
	MovieID           int
	MediaType         string
	Title             string
	PosterPath        string
	LastPositionSec   int
	DurationSec       int
	WatchedPercentage float64
	Status            WatchStatus
	StartedAt         time.Time
	LastPlayedAt      time.Time
}
