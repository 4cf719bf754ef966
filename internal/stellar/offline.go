package stellar

import (
	"context"

	"github.com/stellar/go/keypair"
)

// OfflineProvisioner generates keypairs without touching the network. It backs
// development environments where no platform source account is configured;
// accounts come out partial because no funding or trustline happened.
type OfflineProvisioner struct{}

// Provision returns a fresh, unfunded keypair.
func (OfflineProvisioner) Provision(_ context.Context) (Account, error) {
	pair, err := keypair.Random()
	if err != nil {
		return Account{}, err
	}
	return Account{
		PublicKey: pair.Address(),
		SecretKey: pair.Seed(),
		Status:    StatusPartial,
		Detail:    "offline provisioner: no funding attempted",
	}, nil
}
