package datasource

import (
	"testing"

	"receivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureKeysAreDeterministic(t *testing.T) {
	assert.Equal(t, fixtureKey("wallet", "alpha"), fixtureKey("wallet", "alpha"))
	assert.NotEqual(t, fixtureKey("wallet", "alpha"), fixtureKey("wallet", "bravo"))
	assert.Len(t, fixtureKey("vault", "anything"), 44)
}

func TestFixtureVaultListPagination(t *testing.T) {
	repo := NewFixtureVaultRepo()

	all, err := repo.ListAll()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	first, next, total, err := repo.List("", "", 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, int64(len(all)), total)
	require.NotEmpty(t, next)

	second, _, _, err := repo.List("", next, 2)
	require.NoError(t, err)
	require.NotEmpty(t, second)
	assert.NotEqual(t, first[0].PDA, second[0].PDA, "pages do not overlap")

	// Status filter narrows the set.
	funding, _, fundingTotal, err := repo.List(models.VaultStatusFunding, "", 10)
	require.NoError(t, err)
	for _, v := range funding {
		assert.Equal(t, models.VaultStatusFunding, v.Status)
	}
	assert.Less(t, fundingTotal, total)
}

func TestFixturePositionsBelongToKnownVaults(t *testing.T) {
	vaults, err := NewFixtureVaultRepo().ListAll()
	require.NoError(t, err)
	known := make(map[string]models.Vault, len(vaults))
	for _, v := range vaults {
		known[v.PDA] = v
	}

	posRepo := NewFixturePositionRepo()
	for _, v := range vaults {
		positions, err := posRepo.ListByVault(v.PDA)
		require.NoError(t, err)
		var sum uint64
		for _, p := range positions {
			_, ok := known[p.VaultPDA]
			assert.True(t, ok)
			sum += p.Deposited
		}
		assert.Equal(t, v.TotalDeposited, sum, "positions add up to the vault total for %s", v.Name)
	}
}

func TestFixtureActivityFilters(t *testing.T) {
	repo := NewFixtureActivityRepo()
	vaults, err := NewFixtureVaultRepo().ListAll()
	require.NoError(t, err)
	pda := vaults[0].PDA

	events, _, _, err := repo.List(pda, "", "", 50)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Equal(t, pda, e.VaultPDA)
	}

	// Duplicate signatures are swallowed.
	dup := events[0]
	require.NoError(t, repo.Record(&dup))
	after, _, total, err := repo.List(pda, "", "", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(len(after)), total)
	assert.Len(t, after, len(events))
}

func TestOffsetCursorRoundTrip(t *testing.T) {
	cursor := encodeOffset(7)
	offset, err := decodeOffset(cursor)
	require.NoError(t, err)
	assert.Equal(t, 7, offset)

	offset, err = decodeOffset("")
	require.NoError(t, err)
	assert.Zero(t, offset)

	_, err = decodeOffset("!!!")
	assert.Error(t, err)
}
