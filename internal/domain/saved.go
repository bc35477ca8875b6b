package domain

import "time"

// SavedItem is a favorites-list entry. Keyed by (AccountID, ProfileID,
// MovieID); re-adding an already-saved title refreshes AddedAt.
type SavedItem struct {
	ID         string
	AccountID  string
	ProfileID  string
	MovieID    int
	MediaType  string
	Title      string
	PosterPath string
	AddedAt    time.Time
}
