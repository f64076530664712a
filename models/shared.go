package models

// Page is the cursor-paginated envelope for list endpoints. Source marks
// whether the rows came from reconciled chain state or fixture data so
// demo figures are never mistaken for real ones.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	Total      int64  `json:"total"`
	Source     string `json:"source"`
}

// TxSubmission is the request body for wallet-facing mutation endpoints:
// the wallet signs locally and posts the serialized transaction.
type TxSubmission struct {
	SignedTx string `json:"signedTx" binding:"required"` // Base64-encoded signed transaction
}

// TxReceipt is returned after a transaction is submitted.
type TxReceipt struct {
	Signature string `json:"signature"`
	Confirmed bool   `json:"confirmed"`
	Slot      uint64 `json:"slot,omitempty"`
	Message   string `json:"message,omitempty"` // User-facing status or failure reason
}

// UnsignedTx is returned by build endpoints for the wallet to sign.
type UnsignedTx struct {
	TxBase64        string `json:"txBase64"`
	RecentBlockhash string `json:"recentBlockhash"`
}
