package ticket

import (
	"time"

	"github.com/arenapass/arenapass/internal/team"
)

// TicketType is one priced admission tier for a fixture.
type TicketType struct {
	Label    string `json:"type"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// Ticket describes a fixture between two teams referenced by identity.
type Ticket struct {
	ID         string       `json:"id"`
	HomeTeamID string       `json:"homeTeam"`
	AwayTeamID string       `json:"awayTeam"`
	Venue      string       `json:"venue"`
	Date       time.Time    `json:"date"`
	Time       string       `json:"time"`
	Types      []TicketType `json:"ticketTypes"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// View is the API projection with both team records embedded.
type View struct {
	ID        string       `json:"id"`
	HomeTeam  *team.Team   `json:"homeTeam"`
	AwayTeam  *team.Team   `json:"awayTeam"`
	Venue     string       `json:"venue"`
	Date      time.Time    `json:"date"`
	Time      string       `json:"time"`
	Types     []TicketType `json:"ticketTypes"`
	CreatedAt time.Time    `json:"createdAt"`
}
