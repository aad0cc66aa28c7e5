package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/debtwise/debtwise-backend/internal/service"
	"github.com/debtwise/debtwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiabilityHandler() (*LiabilityHandler, *testutil.MockLiabilityRepository, *testutil.MockDebtPaymentRepository) {
	liabilityRepo := testutil.NewMockLiabilityRepository()
	paymentRepo := testutil.NewMockDebtPaymentRepository()
	liabilityService := service.NewLiabilityService(liabilityRepo)
	progressService := service.NewProgressService(liabilityRepo, paymentRepo)
	return NewLiabilityHandler(liabilityService, progressService), liabilityRepo, paymentRepo
}

func TestCreateLiabilityHandler(t *testing.T) {
	h, _, _ := newLiabilityHandler()

	body := `{"name":"Visa","type":"credit_card","amount":"2500.00","interestRate":"19.99"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/liabilities", body)
	withWorkspace(c, 1)

	require.NoError(t, h.CreateLiability(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp LiabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Visa", resp.Name)
	assert.Equal(t, "2500.00", resp.Amount)
	assert.Equal(t, "2500.00", resp.OriginalAmount)
	// Derived: 2% of 2500
	assert.Equal(t, "50.00", resp.MinimumPayment)
	require.NotNil(t, resp.InterestRate)
	assert.Equal(t, "19.99", *resp.InterestRate)
}

func TestCreateLiabilityHandler_InvalidAmount(t *testing.T) {
	h, _, _ := newLiabilityHandler()

	body := `{"name":"Visa","type":"credit_card","amount":"not-a-number"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/liabilities", body)
	withWorkspace(c, 1)

	require.NoError(t, h.CreateLiability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeValidation, problem.Type)
}

func TestCreateLiabilityHandler_NoWorkspace(t *testing.T) {
	h, _, _ := newLiabilityHandler()

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/liabilities", `{"name":"Visa","amount":"100"}`)

	require.NoError(t, h.CreateLiability(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetLiabilitiesHandler_StatusFilter(t *testing.T) {
	h, liabilityRepo, _ := newLiabilityHandler()

	liabilityRepo.AddLiability(&domain.Liability{ID: uuid.New(), WorkspaceID: 1, Name: "active", Amount: decimal.NewFromInt(100)})
	liabilityRepo.AddLiability(&domain.Liability{ID: uuid.New(), WorkspaceID: 1, Name: "closed", Amount: decimal.Zero, IsArchived: true})

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/liabilities", "")
	withWorkspace(c, 1)
	require.NoError(t, h.GetLiabilities(c))

	var active []LiabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Len(t, active, 1)

	c, rec = newTestContext(t, http.MethodGet, "/api/v1/liabilities?status=all", "")
	withWorkspace(c, 1)
	require.NoError(t, h.GetLiabilities(c))

	var all []LiabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestGetLiabilityHandler_NotFound(t *testing.T) {
	h, _, _ := newLiabilityHandler()

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/liabilities/"+uuid.NewString(), "")
	withWorkspace(c, 1)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	require.NoError(t, h.GetLiability(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeNotFound, problem.Type)
}

func TestGetLiabilityHandler_BadID(t *testing.T) {
	h, _, _ := newLiabilityHandler()

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/liabilities/nope", "")
	withWorkspace(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, h.GetLiability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateLiabilityHandler_ArchivedConflict(t *testing.T) {
	h, liabilityRepo, _ := newLiabilityHandler()

	liability := &domain.Liability{ID: uuid.New(), WorkspaceID: 1, Name: "closed", Amount: decimal.Zero, IsArchived: true}
	liabilityRepo.AddLiability(liability)

	c, rec := newTestContext(t, http.MethodPut, "/api/v1/liabilities/"+liability.ID.String(), `{"amount":"50"}`)
	withWorkspace(c, 1)
	c.SetParamNames("id")
	c.SetParamValues(liability.ID.String())

	require.NoError(t, h.UpdateLiability(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeConflict, problem.Type)
}

func TestArchiveLiabilityHandler(t *testing.T) {
	h, liabilityRepo, _ := newLiabilityHandler()

	liability := &domain.Liability{ID: uuid.New(), WorkspaceID: 1, Name: "card", Amount: decimal.Zero}
	liabilityRepo.AddLiability(liability)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/liabilities/"+liability.ID.String()+"/archive", "")
	withWorkspace(c, 1)
	c.SetParamNames("id")
	c.SetParamValues(liability.ID.String())

	require.NoError(t, h.ArchiveLiability(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LiabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsArchived)
	assert.NotNil(t, resp.ArchivedAt)
}

func TestDeleteLiabilityHandler(t *testing.T) {
	h, liabilityRepo, _ := newLiabilityHandler()

	liability := &domain.Liability{ID: uuid.New(), WorkspaceID: 1, Name: "card", Amount: decimal.NewFromInt(100)}
	liabilityRepo.AddLiability(liability)

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/liabilities/"+liability.ID.String(), "")
	withWorkspace(c, 1)
	c.SetParamNames("id")
	c.SetParamValues(liability.ID.String())

	require.NoError(t, h.DeleteLiability(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, liabilityRepo.Liabilities)
}

func TestGetProgressHandler(t *testing.T) {
	h, liabilityRepo, paymentRepo := newLiabilityHandler()

	liability := &domain.Liability{
		ID:             uuid.New(),
		WorkspaceID:    1,
		Name:           "card",
		Amount:         decimal.NewFromInt(600),
		OriginalAmount: decimal.NewFromInt(1000),
	}
	liabilityRepo.AddLiability(liability)
	paymentRepo.AddPayment(&domain.DebtPayment{
		LiabilityID: liability.ID,
		Amount:      decimal.NewFromInt(400),
		PaymentType: domain.PaymentRegular,
	})

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/liabilities/"+liability.ID.String()+"/progress", "")
	withWorkspace(c, 1)
	c.SetParamNames("id")
	c.SetParamValues(liability.ID.String())

	require.NoError(t, h.GetProgress(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProgressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "400.00", resp.TotalPaid)
	assert.Equal(t, "600.00", resp.RemainingAmount)
	assert.InDelta(t, 40.0, resp.ProgressPercentage, 0.0001)
}
