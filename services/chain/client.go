// Package chain wraps the Solana RPC surface the platform needs: account
// fetches at an explicit commitment, program account scans, transaction
// assembly and confirmed submission.
package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const (
	confirmPollDelay    = 3 * time.Second
	confirmPollAttempts = 10
)

// Client is a thin wrapper over the Solana JSON-RPC client scoped to a
// single program.
type Client struct {
	rpc       *rpc.Client
	programID solana.PublicKey
	logger    *zap.Logger
}

// NewClient dials the RPC endpoint for the given program.
func NewClient(rpcURL string, programID solana.PublicKey, logger *zap.Logger) *Client {
	return &Client{
		rpc:       rpc.New(rpcURL),
		programID: programID,
		logger:    logger,
	}
}

// ProgramID returns the program this client is scoped to.
func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// Ping reports whether the RPC node is healthy.
func (c *Client) Ping(ctx context.Context) error {
	out, err := c.rpc.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("rpc health check failed: %w", err)
	}
	if out != rpc.HealthOk {
		return fmt.Errorf("rpc node unhealthy: %s", out)
	}
	return nil
}

// FetchAccount returns the raw account data and the slot it was observed
// at. A missing account returns nil data with no error.
func (c *Client) FetchAccount(ctx context.Context, key solana.PublicKey, commitment rpc.CommitmentType) ([]byte, uint64, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, key, &rpc.GetAccountInfoOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to fetch account %s: %w", key, err)
	}
	if out.Value == nil {
		return nil, out.RPCContext.Context.Slot, nil
	}
	return out.Value.Data.GetBinary(), out.RPCContext.Context.Slot, nil
}

// KeyedAccount pairs an account's address with its raw data.
type KeyedAccount struct {
	Pubkey solana.PublicKey
	Data   []byte
}

// ScanProgramAccounts returns every program account whose data starts
// with the given discriminator.
func (c *Client) ScanProgramAccounts(ctx context.Context, discriminator [8]byte, commitment rpc.CommitmentType) ([]KeyedAccount, error) {
	out, err := c.rpc.GetProgramAccountsWithOpts(ctx, c.programID, &rpc.GetProgramAccountsOpts{
		Commitment: commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  solana.Base58(discriminator[:]),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan program accounts: %w", err)
	}

	accounts := make([]KeyedAccount, 0, len(out))
	for _, item := range out {
		accounts = append(accounts, KeyedAccount{
			Pubkey: item.Pubkey,
			Data:   item.Account.Data.GetBinary(),
		})
	}
	return accounts, nil
}

// LatestBlockhash fetches a recent blockhash for transaction assembly.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to fetch blockhash: %w", err)
	}
	return out.Value.Blockhash, nil
}

// SubmitAndConfirm broadcasts a signed transaction and polls for
// confirmation. A transaction that lands but is not yet confirmed when
// polling stops is returned with Confirmed=false and no error; an
// on-chain failure is an error.
func (c *Client) SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, uint64, bool, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return sig, 0, false, fmt.Errorf("failed to send transaction: %w", err)
	}

	for attempt := 0; attempt < confirmPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return sig, 0, false, ctx.Err()
		case <-time.After(confirmPollDelay):
		}

		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			c.logger.Warn("signature status poll failed", zap.Error(err), zap.String("signature", sig.String()))
			continue
		}
		if len(out.Value) == 0 || out.Value[0] == nil {
			continue
		}
		status := out.Value[0]
		if status.Err != nil {
			return sig, status.Slot, false, fmt.Errorf("transaction failed on chain: %v", status.Err)
		}
		if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
			return sig, status.Slot, true, nil
		}
	}

	// Landed but unconfirmed within the polling window; the indexer will
	// pick it up on a later pass.
	return sig, 0, false, nil
}
