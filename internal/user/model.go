package user

import "time"

// Provisioning status of the Stellar account attached at registration.
const (
	ProvisioningComplete = "complete"
	ProvisioningPartial  = "partial"
)

// User represents a registered platform account. The Stellar secret key is
// deliberately not part of this struct; it lives in the secret store and must
// never travel through API responses.
type User struct {
	ID                 string
	PhoneNumber        string
	PasswordHash       []byte
	StellarPublicKey   string
	IsAdmin            bool
	IsStaff            bool
	ProvisioningStatus string
	CreatedAt          time.Time
}

// Public is the API-safe projection of a user.
type Public struct {
	ID               string    `json:"id"`
	PhoneNumber      string    `json:"phoneNumber"`
	StellarPublicKey string    `json:"stellarPublicKey"`
	IsAdmin          bool      `json:"is_admin"`
	IsStaff          bool      `json:"is_staff"`
	StellarStatus    string    `json:"stellarStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Public strips credentials and secrets from the record.
func (u User) Public() Public {
	return Public{
		ID:               u.ID,
		PhoneNumber:      u.PhoneNumber,
		StellarPublicKey: u.StellarPublicKey,
		IsAdmin:          u.IsAdmin,
		IsStaff:          u.IsStaff,
		StellarStatus:    u.ProvisioningStatus,
		CreatedAt:        u.CreatedAt,
	}
}
