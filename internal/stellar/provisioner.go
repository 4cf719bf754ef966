// Package stellar provisions a payment identity on the Stellar network for
// every registered user: a fresh keypair, faucet funding, and a sponsored
// trustline plus starting balance paid by the platform account.
package stellar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/txnbuild"

	"github.com/arenapass/arenapass/internal/config"
)

// Provisioning outcome. Partial means the account and keys exist but the
// sponsorship transaction did not make it to the ledger.
const (
	StatusComplete = "complete"
	StatusPartial  = "partial"
)

// Account is the outcome of a provisioning run. SecretKey is handed to the
// caller exactly once, for the secret store; it must not be logged.
type Account struct {
	PublicKey string
	SecretKey string
	Status    string
	Detail    string
}

// HorizonAPI is the slice of the Horizon client the provisioner needs.
// *horizonclient.Client satisfies it.
type HorizonAPI interface {
	AccountDetail(request horizonclient.AccountRequest) (hProtocol.Account, error)
	FeeStats() (hProtocol.FeeStats, error)
	SubmitTransaction(tx *txnbuild.Transaction) (hProtocol.Transaction, error)
}

const txTimeout = 300 // seconds of transaction validity

// Provisioner creates and funds Stellar accounts sponsored by the platform key.
type Provisioner struct {
	horizon    HorizonAPI
	funder     Funder
	source     *keypair.Full
	asset      txnbuild.CreditAsset
	amount     string
	passphrase string
	logger     *slog.Logger
}

// NewProvisioner wires a provisioner from configuration. The platform source
// secret must parse to a full keypair.
func NewProvisioner(cfg config.Stellar, horizon HorizonAPI, funder Funder, logger *slog.Logger) (*Provisioner, error) {
	source, err := keypair.ParseFull(cfg.SourceSecret)
	if err != nil {
		return nil, fmt.Errorf("parse stellar source secret: %w", err)
	}
	issuer := cfg.AssetIssuer
	if issuer == "" {
		issuer = source.Address()
	}
	return &Provisioner{
		horizon:    horizon,
		funder:     funder,
		source:     source,
		asset:      txnbuild.CreditAsset{Code: cfg.AssetCode, Issuer: issuer},
		amount:     cfg.FundingAmount,
		passphrase: cfg.NetworkPassphrase,
		logger:     logger,
	}, nil
}

// Provision runs the three-step flow. Keypair or faucet failures abort with an
// error. After funding, any failure of the sponsorship transaction is reported
// as a partial account rather than an error: the keys exist and the caller is
// expected to persist the user regardless.
func (p *Provisioner) Provision(ctx context.Context) (Account, error) {
	pair, err := keypair.Random()
	if err != nil {
		return Account{}, fmt.Errorf("generate keypair: %w", err)
	}

	if err := p.funder.Fund(ctx, pair.Address()); err != nil {
		return Account{}, fmt.Errorf("fund account: %w", err)
	}

	account := Account{PublicKey: pair.Address(), SecretKey: pair.Seed(), Status: StatusComplete}

	if err := p.sponsor(pair); err != nil {
		account.Status = StatusPartial
		account.Detail = submitDetail(err)
		p.logger.Warn("sponsorship transaction failed",
			slog.String("public_key", pair.Address()),
			slog.String("detail", account.Detail),
		)
		return account, nil
	}

	p.logger.Info("stellar account provisioned", slog.String("public_key", pair.Address()))
	return account, nil
}

// sponsor builds, signs and submits the four-operation sponsorship transaction.
func (p *Provisioner) sponsor(pair *keypair.Full) error {
	sourceAccount, err := p.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: p.source.Address()})
	if err != nil {
		return fmt.Errorf("load source account: %w", err)
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &sourceAccount,
		IncrementSequenceNum: true,
		BaseFee:              p.baseFee(),
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(txTimeout)},
		Operations: []txnbuild.Operation{
			&txnbuild.BeginSponsoringFutureReserves{SponsoredID: pair.Address()},
			&txnbuild.ChangeTrust{
				Line:          txnbuild.ChangeTrustAssetWrapper{Asset: p.asset},
				SourceAccount: pair.Address(),
			},
			&txnbuild.Payment{
				Destination: pair.Address(),
				Asset:       p.asset,
				Amount:      p.amount,
			},
			&txnbuild.EndSponsoringFutureReserves{SourceAccount: pair.Address()},
		},
	})
	if err != nil {
		return fmt.Errorf("build transaction: %w", err)
	}

	// Both the sponsor and the sponsored account must sign.
	tx, err = tx.Sign(p.passphrase, p.source, pair)
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}

	// Returned unwrapped so Horizon result codes survive for reporting.
	if _, err := p.horizon.SubmitTransaction(tx); err != nil {
		return err
	}
	return nil
}

// baseFee consults Horizon fee stats, falling back to the protocol minimum.
func (p *Provisioner) baseFee() int64 {
	stats, err := p.horizon.FeeStats()
	if err != nil || stats.FeeCharged.P50 < txnbuild.MinBaseFee {
		return txnbuild.MinBaseFee
	}
	return stats.FeeCharged.P50
}

// submitDetail extracts Horizon result codes when available.
func submitDetail(err error) string {
	if herr := horizonclient.GetError(err); herr != nil {
		if codes, cErr := herr.ResultCodes(); cErr == nil {
			parts := append([]string{codes.TransactionCode}, codes.OperationCodes...)
			return strings.Join(parts, ",")
		}
	}
	return err.Error()
}
