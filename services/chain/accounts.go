package chain

import (
	"crypto/sha256"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"receivault/models"
)

// accountDiscriminator computes the 8-byte Anchor account discriminator.
func accountDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var disc [8]byte
	copy(disc[:], sum[:8])
	return disc
}

var (
	VaultDiscriminator    = accountDiscriminator("Vault")
	PositionDiscriminator = accountDiscriminator("Position")
)

// On-chain status codes.
const (
	vaultStateFunding uint8 = iota
	vaultStateActive
	vaultStateMatured
	vaultStateCanceled
	vaultStateClosed
)

// VaultAccount is the on-chain vault layout (borsh, after the
// discriminator).
type VaultAccount struct {
	Authority       solana.PublicKey
	TokenMint       solana.PublicKey
	Name            string
	Originator      string
	Status          uint8
	FundingTarget   uint64
	TotalDeposited  uint64
	DepositorCount  uint32
	AprBps          uint16
	PayoutRatioBps  uint16
	TenorDays       uint16
	FundingDeadline int64
	MaturesAt       int64
	Bump            uint8
}

// PositionAccount is the on-chain position layout (borsh, after the
// discriminator).
type PositionAccount struct {
	Vault       solana.PublicKey
	Owner       solana.PublicKey
	Deposited   uint64
	ShareUnits  uint64
	Claimed     bool
	DepositedAt int64
	ClaimedAt   int64
	Bump        uint8
}

// DecodeVaultAccount decodes a raw vault account, checking the
// discriminator first.
func DecodeVaultAccount(data []byte) (*VaultAccount, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("account data too short: %d bytes", len(data))
	}
	var disc [8]byte
	copy(disc[:], data[:8])
	if disc != VaultDiscriminator {
		return nil, fmt.Errorf("not a vault account")
	}
	acc := new(VaultAccount)
	if err := bin.NewBorshDecoder(data[8:]).Decode(acc); err != nil {
		return nil, fmt.Errorf("failed to decode vault account: %w", err)
	}
	return acc, nil
}

// DecodePositionAccount decodes a raw position account, checking the
// discriminator first.
func DecodePositionAccount(data []byte) (*PositionAccount, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("account data too short: %d bytes", len(data))
	}
	var disc [8]byte
	copy(disc[:], data[:8])
	if disc != PositionDiscriminator {
		return nil, fmt.Errorf("not a position account")
	}
	acc := new(PositionAccount)
	if err := bin.NewBorshDecoder(data[8:]).Decode(acc); err != nil {
		return nil, fmt.Errorf("failed to decode position account: %w", err)
	}
	return acc, nil
}

func statusFromChain(code uint8) models.VaultStatus {
	switch code {
	case vaultStateFunding:
		return models.VaultStatusFunding
	case vaultStateActive:
		return models.VaultStatusActive
	case vaultStateMatured:
		return models.VaultStatusMatured
	case vaultStateCanceled:
		return models.VaultStatusCanceled
	case vaultStateClosed:
		return models.VaultStatusClosed
	default:
		return models.VaultStatus(fmt.Sprintf("unknown(%d)", code))
	}
}

// ToModel converts the on-chain vault into the stored model.
func (a *VaultAccount) ToModel(pda solana.PublicKey, tokenDecimals uint8, slot uint64) *models.Vault {
	return &models.Vault{
		PDA:             pda.String(),
		Name:            a.Name,
		Originator:      a.Originator,
		Authority:       a.Authority.String(),
		TokenMint:       a.TokenMint.String(),
		TokenDecimals:   tokenDecimals,
		Status:          statusFromChain(a.Status),
		FundingTarget:   a.FundingTarget,
		TotalDeposited:  a.TotalDeposited,
		DepositorCount:  a.DepositorCount,
		AprBps:          a.AprBps,
		PayoutRatioBps:  a.PayoutRatioBps,
		TenorDays:       a.TenorDays,
		FundingDeadline: time.Unix(a.FundingDeadline, 0).UTC(),
		MaturesAt:       time.Unix(a.MaturesAt, 0).UTC(),
		Slot:            slot,
		UpdatedAt:       time.Now().UTC(),
	}
}

// ToModel converts the on-chain position into the stored model.
func (a *PositionAccount) ToModel(pda solana.PublicKey, slot uint64) *models.Position {
	p := &models.Position{
		PDA:         pda.String(),
		VaultPDA:    a.Vault.String(),
		Owner:       a.Owner.String(),
		Deposited:   a.Deposited,
		ShareUnits:  a.ShareUnits,
		Claimed:     a.Claimed,
		DepositedAt: time.Unix(a.DepositedAt, 0).UTC(),
		Slot:        slot,
		UpdatedAt:   time.Now().UTC(),
	}
	if a.Claimed && a.ClaimedAt > 0 {
		p.ClaimedAt = time.Unix(a.ClaimedAt, 0).UTC()
	}
	return p
}
