package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	collateralRepo "receivault/database/repository/collateral"
	positionRepo "receivault/database/repository/position"
	vaultRepo "receivault/database/repository/vault"
	"receivault/utils"
)

// ExportService renders tabular data as CSV or JSON for download.
// Generation is fully client-independent: the handler streams the bytes
// with the right content type and filename.
type ExportService interface {
	VaultsCSV(ctx context.Context) ([]byte, error)
	VaultsJSON(ctx context.Context) ([]byte, error)
	PositionsCSV(ctx context.Context, wallet string) ([]byte, error)
	PositionsJSON(ctx context.Context, wallet string) ([]byte, error)
	CollateralCSV(ctx context.Context, vaultPDA string) ([]byte, error)
	CollateralJSON(ctx context.Context, vaultPDA string) ([]byte, error)
}

// DefaultExportService implements ExportService over the Mongo repositories.
type DefaultExportService struct {
	VaultRepo      vaultRepo.VaultRepository
	PositionRepo   positionRepo.PositionRepository
	CollateralRepo collateralRepo.CollateralRepository
}

// exportPositionsLimit bounds a single wallet export.
const exportPositionsLimit = 1000

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(sanitizeRow(row)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// VaultsCSV exports all vaults.
func (s *DefaultExportService) VaultsCSV(ctx context.Context) ([]byte, error) {
	vaults, err := s.VaultRepo.ListAll()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(vaults))
	for _, v := range vaults {
		rows = append(rows, []string{
			v.PDA,
			v.Name,
			v.Originator,
			string(v.Status),
			utils.FormatBaseUnits(v.FundingTarget, v.TokenDecimals),
			utils.FormatBaseUnits(v.TotalDeposited, v.TokenDecimals),
			utils.FormatPercentBps(int64(v.AprBps)),
			strconv.Itoa(int(v.TenorDays)),
			v.FundingDeadline.Format(time.RFC3339),
		})
	}
	return writeCSV(headerRow(
		"vault", "name", "originator", "status", "fundingTarget",
		"totalDeposited", "apr", "tenorDays", "fundingDeadline",
	), rows)
}

// VaultsJSON exports all vaults as JSON.
func (s *DefaultExportService) VaultsJSON(ctx context.Context) ([]byte, error) {
	vaults, err := s.VaultRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return json.Marshal(vaults)
}

// PositionsCSV exports a wallet's positions.
func (s *DefaultExportService) PositionsCSV(ctx context.Context, wallet string) ([]byte, error) {
	positions, _, _, err := s.PositionRepo.ListByOwner(wallet, "", exportPositionsLimit)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{
			p.PDA,
			p.VaultPDA,
			p.Owner,
			strconv.FormatUint(p.Deposited, 10),
			strconv.FormatUint(p.ShareUnits, 10),
			strconv.FormatBool(p.Claimed),
			p.DepositedAt.Format(time.RFC3339),
		})
	}
	return writeCSV(headerRow(
		"position", "vault", "owner", "deposited", "shareUnits", "claimed", "depositedAt",
	), rows)
}

// PositionsJSON exports a wallet's positions as JSON.
func (s *DefaultExportService) PositionsJSON(ctx context.Context, wallet string) ([]byte, error) {
	positions, _, _, err := s.PositionRepo.ListByOwner(wallet, "", exportPositionsLimit)
	if err != nil {
		return nil, err
	}
	return json.Marshal(positions)
}

// CollateralCSV exports the receivables backing a vault.
func (s *DefaultExportService) CollateralCSV(ctx context.Context, vaultPDA string) ([]byte, error) {
	entries, err := s.CollateralRepo.ListByVault(vaultPDA)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.VaultPDA,
			e.Payer,
			strconv.FormatUint(e.FaceValue, 10),
			utils.FormatPercentBps(int64(e.AdvanceRateBps)),
			e.DueDate.Format(time.RFC3339),
			e.Status,
		})
	}
	return writeCSV(headerRow(
		"id", "vault", "payer", "faceValue", "advanceRate", "dueDate", "status",
	), rows)
}

// CollateralJSON exports the receivables backing a vault as JSON.
func (s *DefaultExportService) CollateralJSON(ctx context.Context, vaultPDA string) ([]byte, error) {
	entries, err := s.CollateralRepo.ListByVault(vaultPDA)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entries)
}
