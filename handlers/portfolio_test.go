package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receivault/models"
	"receivault/services/chain"
	portfolioSvc "receivault/services/portfolio"
)

type stubPortfolioService struct {
	receipt *models.TxReceipt
	err     error
}

func (s *stubPortfolioService) Positions(context.Context, string, string, int) (*models.Page[portfolioSvc.PositionView], error) {
	return nil, nil
}

func (s *stubPortfolioService) Summary(context.Context, string) (*models.PortfolioSummary, error) {
	return nil, nil
}

func (s *stubPortfolioService) Deposit(context.Context, string, string, uint64) (*models.UnsignedTx, error) {
	return nil, nil
}

func (s *stubPortfolioService) Claim(context.Context, string, string) (*models.UnsignedTx, error) {
	return nil, nil
}

func (s *stubPortfolioService) SubmitSigned(context.Context, string, models.ActivityKind, uint64, string) (*models.TxReceipt, error) {
	return s.receipt, s.err
}

func TestSubmitDepositSurfacesClassification(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubPortfolioService{
		receipt: &models.TxReceipt{Signature: "sig", Confirmed: false, Message: "transaction expired; rebuild and sign again"},
		err: &chain.TxError{
			Code:      "blockhashExpired",
			Message:   "transaction expired; rebuild and sign again",
			Retryable: true,
		},
	}
	router := gin.New()
	router.POST("/api/tx/deposit/submit", SubmitDepositHandler(svc))

	body := `{"vaultPda":"vault-1","amount":1000,"signedTx":"AQID"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tx/deposit/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "blockhashExpired", resp["code"])
	assert.Equal(t, true, resp["retryable"])
	assert.Equal(t, "transaction expired; rebuild and sign again", resp["error"])
	require.Contains(t, resp, "receipt")
	receipt, ok := resp["receipt"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sig", receipt["signature"])
}

func TestSubmitDepositReturnsReceiptOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubPortfolioService{
		receipt: &models.TxReceipt{Signature: "sig", Confirmed: true, Slot: 42},
	}
	router := gin.New()
	router.POST("/api/tx/deposit/submit", SubmitDepositHandler(svc))

	body := `{"vaultPda":"vault-1","amount":1000,"signedTx":"AQID"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tx/deposit/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TxReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Confirmed)
	assert.Equal(t, uint64(42), resp.Slot)
}
