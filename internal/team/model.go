package team

import "time"

// Team represents a club whose matches and merchandise are sold on the platform.
// Amount is the current charge, in whole shillings, collected by an STK push.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Issuer      string    `json:"issuer"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	IPFSHash    string    `json:"ipfsHash,omitempty"`
	Amount      int64     `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
