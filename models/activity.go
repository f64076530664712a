package models

import "time"

// ActivityKind identifies which program operation produced an event.
type ActivityKind string

const (
	ActivityInitialize ActivityKind = "initialize"
	ActivityDeposit    ActivityKind = "deposit"
	ActivityFinalize   ActivityKind = "finalize"
	ActivityMature     ActivityKind = "mature"
	ActivityClaim      ActivityKind = "claim"
	ActivityClose      ActivityKind = "close"
)

// ActivityEvent is one row of the activity feed.
type ActivityEvent struct {
	Signature string       `bson:"signature" json:"signature"` // Transaction signature, unique
	VaultPDA  string       `bson:"vault_pda" json:"vaultPda"`
	Wallet    string       `bson:"wallet" json:"wallet"` // Acting wallet (depositor or authority)
	Kind      ActivityKind `bson:"kind" json:"kind"`
	Amount    uint64       `bson:"amount" json:"amount"` // Base units, zero for lifecycle-only events
	Slot      uint64       `bson:"slot" json:"slot"`
	BlockTime time.Time    `bson:"block_time" json:"blockTime"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
}
