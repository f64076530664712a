package datasource

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"sync"
	"time"

	"receivault/models"
)

// Fixture repositories back the API with deterministic demo data. The
// generators are seeded from stable keys, so restarts and multiple
// instances serve identical figures.

// fixtureBase anchors all generated timestamps so fixtures are stable
// across runs.
var fixtureBase = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func fixtureSeed(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// fixtureKey derives a base58-looking address from a seed key. Not a
// real curve point; fixtures never touch the chain.
func fixtureKey(kind, key string) string {
	const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	seed := fixtureSeed(kind + ":" + key)
	out := make([]byte, 44)
	for i := range out {
		seed = seed*6364136223846793005 + 1442695040888963407
		out[i] = alphabet[seed%uint64(len(alphabet))]
	}
	return string(out)
}

var fixtureVaultSpecs = []struct {
	name       string
	originator string
	status     models.VaultStatus
	targetUSDC uint64 // whole tokens
	filledPct  uint64
	aprBps     uint16
	payoutBps  uint16
	tenorDays  uint16
}{
	{"Meridian Freight Receivables Q3", "Meridian Logistics", models.VaultStatusFunding, 250_000, 62, 1150, 0, 90},
	{"Atlas Med Supply Invoices", "Atlas Medical Supply", models.VaultStatusFunding, 400_000, 28, 1325, 0, 120},
	{"Harborline Export Factoring", "Harborline Trading Co", models.VaultStatusActive, 150_000, 100, 1040, 0, 60},
	{"Westfield Retail Receivables", "Westfield Brands", models.VaultStatusActive, 600_000, 100, 1210, 0, 180},
	{"Cobalt Energy Services Q2", "Cobalt Field Services", models.VaultStatusMatured, 320_000, 100, 1180, 10450, 90},
	{"Pioneer Agri Receivables", "Pioneer Agri Group", models.VaultStatusClosed, 180_000, 100, 990, 10280, 75},
}

const fixtureTokenDecimals = 6

var fixtureWallets = []string{
	fixtureKey("wallet", "alpha"),
	fixtureKey("wallet", "bravo"),
	fixtureKey("wallet", "charlie"),
	fixtureKey("wallet", "delta"),
	fixtureKey("wallet", "echo"),
}

type fixtureStore struct {
	mu         sync.RWMutex
	vaults     []models.Vault
	positions  []models.Position
	activity   []models.ActivityEvent
	collateral []models.CollateralEntry
}

var (
	storeOnce sync.Once
	store     *fixtureStore
)

func getStore() *fixtureStore {
	storeOnce.Do(func() {
		store = buildFixtures()
	})
	return store
}

func buildFixtures() *fixtureStore {
	s := &fixtureStore{}
	mint := fixtureKey("mint", "usdc")
	for i, spec := range fixtureVaultSpecs {
		pda := fixtureKey("vault", spec.name)
		target := spec.targetUSDC * 1_000_000
		deposited := target * spec.filledPct / 100
		created := fixtureBase.AddDate(0, 0, -30*(len(fixtureVaultSpecs)-i))
		v := models.Vault{
			PDA:             pda,
			Name:            spec.name,
			Originator:      spec.originator,
			Authority:       fixtureKey("authority", spec.originator),
			TokenMint:       mint,
			TokenDecimals:   fixtureTokenDecimals,
			Status:          spec.status,
			FundingTarget:   target,
			TotalDeposited:  deposited,
			AprBps:          spec.aprBps,
			PayoutRatioBps:  spec.payoutBps,
			TenorDays:       spec.tenorDays,
			FundingDeadline: created.AddDate(0, 0, 21),
			MaturesAt:       created.AddDate(0, 0, 21+int(spec.tenorDays)),
			Slot:            1_000_000 + uint64(i)*50_000,
			CreatedAt:       created,
			UpdatedAt:       created,
		}

		// Spread each vault's deposits across a deterministic subset of
		// the demo wallets.
		seed := fixtureSeed("positions:" + spec.name)
		holders := int(seed%3) + 2
		walletBase := int(seed % uint64(len(fixtureWallets)))
		remaining := deposited
		for w := 0; w < holders && remaining > 0; w++ {
			wallet := fixtureWallets[(walletBase+w)%len(fixtureWallets)]
			amount := remaining / uint64(holders-w)
			remaining -= amount
			depositedAt := created.AddDate(0, 0, w+1)
			p := models.Position{
				PDA:         fixtureKey("position", spec.name+":"+wallet),
				VaultPDA:    pda,
				Owner:       wallet,
				Deposited:   amount,
				ShareUnits:  amount,
				DepositedAt: depositedAt,
				Slot:        v.Slot + uint64(w),
				UpdatedAt:   depositedAt,
			}
			if spec.status == models.VaultStatusClosed {
				p.Claimed = true
				p.ClaimedAt = v.MaturesAt.AddDate(0, 0, 2)
			}
			s.positions = append(s.positions, p)
			s.activity = append(s.activity, models.ActivityEvent{
				Signature: fixtureKey("sig", spec.name+":deposit:"+wallet),
				VaultPDA:  pda,
				Wallet:    wallet,
				Kind:      models.ActivityDeposit,
				Amount:    amount,
				Slot:      p.Slot,
				BlockTime: depositedAt,
				CreatedAt: depositedAt,
			})
		}
		v.DepositorCount = uint32(holders)

		s.activity = append(s.activity, models.ActivityEvent{
			Signature: fixtureKey("sig", spec.name+":initialize"),
			VaultPDA:  pda,
			Wallet:    v.Authority,
			Kind:      models.ActivityInitialize,
			Slot:      v.Slot,
			BlockTime: created,
			CreatedAt: created,
		})

		// Three receivables per vault with staggered due dates.
		for r := 0; r < 3; r++ {
			face := target / 3
			due := fixtureBase.AddDate(0, 0, 20+15*r+i*3)
			s.collateral = append(s.collateral, models.CollateralEntry{
				ID:             fmt.Sprintf("rcv-%d-%d", i+1, r+1),
				VaultPDA:       pda,
				Payer:          fmt.Sprintf("%s Obligor %d", spec.originator, r+1),
				FaceValue:      face,
				AdvanceRateBps: 8000 + uint16(r)*250,
				DueDate:        due,
				Status:         "outstanding",
				CreatedAt:      created,
				UpdatedAt:      created,
			})
		}

		s.vaults = append(s.vaults, v)
	}

	// Newest first, matching the Mongo repositories' sort order.
	sort.SliceStable(s.vaults, func(i, j int) bool {
		return s.vaults[i].CreatedAt.After(s.vaults[j].CreatedAt)
	})
	sort.SliceStable(s.positions, func(i, j int) bool {
		return s.positions[i].DepositedAt.After(s.positions[j].DepositedAt)
	})
	sort.SliceStable(s.activity, func(i, j int) bool {
		return s.activity[i].BlockTime.After(s.activity[j].BlockTime)
	})
	return s
}

// Fixture pagination uses a plain offset cursor. The envelope stays
// opaque to clients either way.

func encodeOffset(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeOffset(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("malformed cursor: %w", err)
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("malformed cursor")
	}
	return offset, nil
}

func paginate(total, offset, limit int) (end int, next string) {
	end = offset + limit
	if end >= total {
		return total, ""
	}
	return end, encodeOffset(end)
}
