package jersey

import "time"

// Jersey is a merchandise item. Image holds the base64-encoded upload so the
// record is self-contained and needs no file storage.
type Jersey struct {
	ID         string    `json:"id"`
	TeamName   string    `json:"teamName"`
	Type       string    `json:"type"`
	PlayerName string    `json:"playerName,omitempty"`
	Price      int64     `json:"price"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"createdAt"`
}
