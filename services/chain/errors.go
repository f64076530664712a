package chain

import "strings"

// TxError classifies a failed transaction submission for the client.
type TxError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e *TxError) Error() string {
	return e.Message
}

const (
	codeInsufficientFunds = "insufficientFunds"
	codeBlockhashExpired  = "blockhashExpired"
	codeSimulationFailed  = "simulationFailed"
	codeAlreadyProcessed  = "alreadyProcessed"
	codeTxFailed          = "txFailed"
)

// ClassifyTxError maps an RPC submission error onto a stable error code
// the client can branch on.
func ClassifyTxError(err error) *TxError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"),
		strings.Contains(msg, "insufficient lamports"),
		strings.Contains(msg, "custom program error: 0x1"):
		return &TxError{Code: codeInsufficientFunds, Message: "insufficient funds for transaction", Retryable: false}
	case strings.Contains(msg, "blockhash not found"),
		strings.Contains(msg, "block height exceeded"),
		strings.Contains(msg, "transaction expired"):
		return &TxError{Code: codeBlockhashExpired, Message: "transaction expired; rebuild and sign again", Retryable: true}
	case strings.Contains(msg, "transaction simulation failed"):
		return &TxError{Code: codeSimulationFailed, Message: err.Error(), Retryable: false}
	case strings.Contains(msg, "already been processed"):
		return &TxError{Code: codeAlreadyProcessed, Message: "transaction already processed", Retryable: false}
	default:
		return &TxError{Code: codeTxFailed, Message: err.Error(), Retryable: true}
	}
}
