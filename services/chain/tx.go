package chain

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Instruction opcodes. The program dispatches on the first byte of the
// instruction data; borsh-encoded arguments follow.
const (
	opInitialize uint8 = iota
	opDeposit
	opFinalizeFunding
	opMatureVault
	opClaim
	opCloseVault
)

type initializeArgs struct {
	Name            string
	Originator      string
	FundingTarget   uint64
	AprBps          uint16
	TenorDays       uint16
	FundingDeadline int64
}

type depositArgs struct {
	Amount uint64
}

type matureArgs struct {
	PayoutRatioBps uint16
}

func encodeInstructionData(opcode uint8, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte(opcode)
	if args != nil {
		if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, fmt.Errorf("failed to encode instruction args: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// InitializeParams carries everything needed to create a vault.
type InitializeParams struct {
	Authority       solana.PublicKey
	TokenMint       solana.PublicKey
	Name            string
	Originator      string
	FundingTarget   uint64
	AprBps          uint16
	TenorDays       uint16
	FundingDeadline time.Time
}

// BuildInitialize assembles an unsigned vault-creation transaction and
// returns it with the derived vault address.
func (c *Client) BuildInitialize(ctx context.Context, p InitializeParams) (*solana.Transaction, solana.PublicKey, error) {
	vaultPDA, _, err := DeriveVaultPDA(c.programID, p.Authority, p.Name)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive vault pda: %w", err)
	}
	vaultToken, _, err := DeriveVaultTokenPDA(c.programID, vaultPDA)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive vault token pda: %w", err)
	}

	data, err := encodeInstructionData(opInitialize, initializeArgs{
		Name:            p.Name,
		Originator:      p.Originator,
		FundingTarget:   p.FundingTarget,
		AprBps:          p.AprBps,
		TenorDays:       p.TenorDays,
		FundingDeadline: p.FundingDeadline.Unix(),
	})
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	inst := solana.NewInstruction(c.programID, solana.AccountMetaSlice{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(vaultToken).WRITE(),
		solana.Meta(p.Authority).SIGNER().WRITE(),
		solana.Meta(p.TokenMint),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SystemProgramID),
	}, data)

	tx, err := c.buildTx(ctx, p.Authority, inst)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	return tx, vaultPDA, nil
}

// BuildDeposit assembles an unsigned deposit transaction for an owner's
// wallet.
func (c *Client) BuildDeposit(ctx context.Context, vaultPDA, owner, mint solana.PublicKey, amount uint64) (*solana.Transaction, error) {
	positionPDA, _, err := DerivePositionPDA(c.programID, vaultPDA, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to derive position pda: %w", err)
	}
	vaultToken, _, err := DeriveVaultTokenPDA(c.programID, vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("failed to derive vault token pda: %w", err)
	}
	ownerToken, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive owner token account: %w", err)
	}

	data, err := encodeInstructionData(opDeposit, depositArgs{Amount: amount})
	if err != nil {
		return nil, err
	}

	inst := solana.NewInstruction(c.programID, solana.AccountMetaSlice{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(positionPDA).WRITE(),
		solana.Meta(owner).SIGNER().WRITE(),
		solana.Meta(ownerToken).WRITE(),
		solana.Meta(vaultToken).WRITE(),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SystemProgramID),
	}, data)

	return c.buildTx(ctx, owner, inst)
}

// BuildFinalizeFunding assembles the authority's funding-finalization
// transaction. The program activates the vault when the target was met
// and cancels it otherwise.
func (c *Client) BuildFinalizeFunding(ctx context.Context, vaultPDA, authority solana.PublicKey) (*solana.Transaction, error) {
	data, err := encodeInstructionData(opFinalizeFunding, nil)
	if err != nil {
		return nil, err
	}
	inst := solana.NewInstruction(c.programID, solana.AccountMetaSlice{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(authority).SIGNER(),
	}, data)
	return c.buildTx(ctx, authority, inst)
}

// BuildMatureVault assembles the authority's maturation transaction,
// fixing the payout ratio applied to claims.
func (c *Client) BuildMatureVault(ctx context.Context, vaultPDA, authority solana.PublicKey, payoutRatioBps uint16) (*solana.Transaction, error) {
	data, err := encodeInstructionData(opMatureVault, matureArgs{PayoutRatioBps: payoutRatioBps})
	if err != nil {
		return nil, err
	}
	inst := solana.NewInstruction(c.programID, solana.AccountMetaSlice{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(authority).SIGNER(),
	}, data)
	return c.buildTx(ctx, authority, inst)
}

// BuildClaim assembles an owner's payout-claim transaction.
func (c *Client) BuildClaim(ctx context.Context, vaultPDA, owner, mint solana.PublicKey) (*solana.Transaction, error) {
	positionPDA, _, err := DerivePositionPDA(c.programID, vaultPDA, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to derive position pda: %w", err)
	}
	vaultToken, _, err := DeriveVaultTokenPDA(c.programID, vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("failed to derive vault token pda: %w", err)
	}
	ownerToken, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive owner token account: %w", err)
	}

	data, err := encodeInstructionData(opClaim, nil)
	if err != nil {
		return nil, err
	}

	inst := solana.NewInstruction(c.programID, solana.AccountMetaSlice{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(positionPDA).WRITE(),
		solana.Meta(owner).SIGNER().WRITE(),
		solana.Meta(ownerToken).WRITE(),
		solana.Meta(vaultToken).WRITE(),
		solana.Meta(solana.TokenProgramID),
	}, data)

	return c.buildTx(ctx, owner, inst)
}

// BuildCloseVault assembles the authority's vault-close transaction.
func (c *Client) BuildCloseVault(ctx context.Context, vaultPDA, authority solana.PublicKey) (*solana.Transaction, error) {
	vaultToken, _, err := DeriveVaultTokenPDA(c.programID, vaultPDA)
	if err != nil {
		return nil, fmt.Errorf("failed to derive vault token pda: %w", err)
	}
	data, err := encodeInstructionData(opCloseVault, nil)
	if err != nil {
		return nil, err
	}
	inst := solana.NewInstruction(c.programID, solana.AccountMetaSlice{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(vaultToken).WRITE(),
		solana.Meta(authority).SIGNER().WRITE(),
		solana.Meta(solana.TokenProgramID),
	}, data)
	return c.buildTx(ctx, authority, inst)
}

func (c *Client) buildTx(ctx context.Context, payer solana.PublicKey, insts ...solana.Instruction) (*solana.Transaction, error) {
	blockhash, err := c.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := solana.NewTransaction(insts, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble transaction: %w", err)
	}
	return tx, nil
}

// EncodeTx serializes an unsigned transaction to base64 for wallet
// signing.
func EncodeTx(tx *solana.Transaction) (string, error) {
	encoded, err := tx.ToBase64()
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction: %w", err)
	}
	return encoded, nil
}

// DecodeSignedTx parses a base64 wallet-signed transaction.
func DecodeSignedTx(raw string) (*solana.Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed transaction encoding: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	return tx, nil
}
