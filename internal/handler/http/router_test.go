package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/esyhub/staffpay-backend/internal/config"
	"github.com/esyhub/staffpay-backend/internal/pkg/feed"
	"github.com/esyhub/staffpay-backend/internal/pkg/jwt"
	"github.com/esyhub/staffpay-backend/internal/repository/memory"
	accrualService "github.com/esyhub/staffpay-backend/internal/service/accrual"
	authService "github.com/esyhub/staffpay-backend/internal/service/auth"
	employeeService "github.com/esyhub/staffpay-backend/internal/service/employee"
	hubService "github.com/esyhub/staffpay-backend/internal/service/hub"
	ledgerService "github.com/esyhub/staffpay-backend/internal/service/ledger"
	payoutService "github.com/esyhub/staffpay-backend/internal/service/payout"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "secret123"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		App:   config.AppConfig{Env: "test"},
		Admin: config.AdminConfig{Username: testAdminUser, PasswordHash: string(hash)},
	}

	employeeRepo := memory.NewEmployeeRepository()
	txRepo := memory.NewTransactionRepository()
	hubRepo := memory.NewHubRepository()
	changes := feed.NewHub()
	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")

	ledgerSvc := ledgerService.NewService(txRepo, employeeRepo, changes)

	return NewRouter(cfg, jwtSvc, Handlers{
		Auth:     NewAuthHandler(authService.NewService(cfg.Admin, jwtSvc), jwtSvc),
		Employee: NewEmployeeHandler(employeeService.NewService(employeeRepo, txRepo, memory.NewTxRunner()), ledgerSvc),
		Hub:      NewHubHandler(hubService.NewService(hubRepo)),
		Ledger:   NewLedgerHandler(ledgerSvc),
		Accrual:  NewAccrualHandler(accrualService.NewService(txRepo, employeeRepo, changes)),
		Payout: NewPayoutHandler(payoutService.NewService(employeeRepo, txRepo, payoutService.Options{
			TDSRatePercent: decimal.NewFromInt(1),
		})),
		Balance: NewBalanceHandler(ledgerService.NewProjector(txRepo, changes)),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	t.Run("valid credentials", func(t *testing.T) {
		token := login(t, router)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": testAdminUser,
			"password": "not-it",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	t.Run("missing token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/employees", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token is not a bearer token", func(t *testing.T) {
		jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
		refresh, _, err := jwtSvc.GenerateRefreshToken(testAdminUser)
		require.NoError(t, err)

		rec := doJSON(t, router, http.MethodGet, "/api/v1/employees", refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestEmployeeTransactionFlow(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	// create an employee
	rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", token, map[string]interface{}{
		"name":          "Ravi",
		"address":       "Jaipur",
		"salary_date":   15,
		"salary_amount": "12000",
		"per_fwd":       "13",
		"per_rvp":       "10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var createResp struct {
		Data struct {
			ID           string          `json:"id"`
			TotalAdvance decimal.Decimal `json:"total_advance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createResp))
	empID := createResp.Data.ID
	require.NotEmpty(t, empID)
	assert.True(t, createResp.Data.TotalAdvance.IsZero())

	// record an advance
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/employees/%s/transactions", empID), token, map[string]string{
		"type":   "Advance",
		"amount": "500",
		"date":   "2026-08-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// invalid type is rejected with field details
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/employees/%s/transactions", empID), token, map[string]string{
		"type":   "Bonus",
		"amount": "500",
		"date":   "2026-08-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// balance reflects the advance
	rec = doJSON(t, router, http.MethodGet, "/api/v1/employees/"+empID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var getResp struct {
		Data struct {
			TotalAdvance decimal.Decimal `json:"total_advance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &getResp))
	assert.True(t, getResp.Data.TotalAdvance.Equal(decimal.NewFromInt(500)))

	// list the ledger
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/employees/%s/transactions", empID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Data []struct {
			Type   string          `json:"type"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	require.Len(t, listResp.Data, 1)
	assert.Equal(t, "Advance", listResp.Data[0].Type)

	// unknown employee 404s
	rec = doJSON(t, router, http.MethodGet, "/api/v1/employees/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccrualSweepEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", token, map[string]interface{}{
		"name":          "Ravi",
		"address":       "Jaipur",
		"salary_date":   10,
		"salary_amount": "12000",
		"per_fwd":       "13",
		"per_rvp":       "10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/accrual/sweep?as_of=2026-08-20", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sweepResp struct {
		Data struct {
			Inserted int `json:"inserted"`
			Skipped  int `json:"skipped"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sweepResp))
	assert.Equal(t, 1, sweepResp.Data.Inserted)

	// second sweep is a no-op
	rec = doJSON(t, router, http.MethodPost, "/api/v1/accrual/sweep?as_of=2026-08-21", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sweepResp))
	assert.Equal(t, 0, sweepResp.Data.Inserted)
	assert.Equal(t, 1, sweepResp.Data.Skipped)
}

func TestPayoutPreviewEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/payout/preview", token, map[string]interface{}{
		"per_fwd": "13",
		"per_rvp": "10",
		"rows": []map[string]interface{}{
			{"fwd_count": 29},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			GrossAmount decimal.Decimal `json:"gross_amount"`
			TDSAmount   decimal.Decimal `json:"tds_amount"`
			FinalAmount decimal.Decimal `json:"final_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.GrossAmount.Equal(decimal.NewFromInt(377)))
	assert.True(t, resp.Data.TDSAmount.Equal(decimal.NewFromInt(4)))
	assert.True(t, resp.Data.FinalAmount.Equal(decimal.NewFromInt(373)))
}
