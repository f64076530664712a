package models

import "time"

// CollateralEntry is one receivable backing a vault.
type CollateralEntry struct {
	ID             string    `bson:"id" json:"id"`
	VaultPDA       string    `bson:"vault_pda" json:"vaultPda"`
	Payer          string    `bson:"payer" json:"payer"`                     // Obligor on the receivable
	FaceValue      uint64    `bson:"face_value" json:"faceValue"`            // Base units owed at due date
	AdvanceRateBps uint16    `bson:"advance_rate_bps" json:"advanceRateBps"` // Financed fraction of face value
	DueDate        time.Time `bson:"due_date" json:"dueDate"`
	Status         string    `bson:"status" json:"status"` // e.g. "current", "paid", "late"
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// TransparencyReport is the collateral view served for one vault.
type TransparencyReport struct {
	VaultPDA           string            `json:"vaultPda"`
	Entries            []CollateralEntry `json:"entries"`
	TotalFaceValue     uint64            `json:"totalFaceValue"`
	WeightedAdvanceBps uint16            `json:"weightedAdvanceBps"` // Face-value-weighted average advance rate
	WeightedDaysToDue  int               `json:"weightedDaysToDue"`  // Face-value-weighted average days until due
	GeneratedAt        time.Time         `json:"generatedAt"`
}
