package player

import "time"

// Player belongs to a team by name only; the reference is advisory and the two
// records have independent lifecycles.
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Team         string    `json:"team"`
	JerseyNumber string    `json:"jerseyNumber"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
}
