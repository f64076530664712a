package chain

import "github.com/gagliardetto/solana-go"

// Seed prefixes used by the program's PDAs.
const (
	SeedVault      = "vault"
	SeedVaultToken = "vault_token"
	SeedPosition   = "position"
)

// DeriveVaultPDA derives the vault account address from the authority
// and the vault name.
func DeriveVaultPDA(programID, authority solana.PublicKey, name string) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(SeedVault),
		authority.Bytes(),
		[]byte(name),
	}, programID)
}

// DeriveVaultTokenPDA derives the vault's token custody account address.
func DeriveVaultTokenPDA(programID, vaultPDA solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(SeedVaultToken),
		vaultPDA.Bytes(),
	}, programID)
}

// DerivePositionPDA derives a depositor's position account address.
func DerivePositionPDA(programID, vaultPDA, owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(SeedPosition),
		vaultPDA.Bytes(),
		owner.Bytes(),
	}, programID)
}
