package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTxError(t *testing.T) {
	cases := []struct {
		err       string
		code      string
		retryable bool
	}{
		{"Transaction results in an account with insufficient funds for rent", "insufficientFunds", false},
		{"Attempt to debit an account but found insufficient lamports", "insufficientFunds", false},
		{"custom program error: 0x1", "insufficientFunds", false},
		{"Blockhash not found", "blockhashExpired", true},
		{"block height exceeded", "blockhashExpired", true},
		{"Transaction simulation failed: Error processing Instruction 0", "simulationFailed", false},
		{"This transaction has already been processed", "alreadyProcessed", false},
		{"connection reset by peer", "txFailed", true},
	}
	for _, tc := range cases {
		got := ClassifyTxError(errors.New(tc.err))
		assert.Equal(t, tc.code, got.Code, "error %q", tc.err)
		assert.Equal(t, tc.retryable, got.Retryable, "error %q", tc.err)
		assert.NotEmpty(t, got.Message)
	}
}
