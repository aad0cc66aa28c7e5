package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles debt payment HTTP requests
type PaymentHandler struct {
	paymentService *service.DebtPaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.DebtPaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest represents the record payment request body
type RecordPaymentRequest struct {
	Amount      string  `json:"amount"`
	PaymentType string  `json:"paymentType"`
	Description *string `json:"description,omitempty"`
	PaymentDate *string `json:"paymentDate,omitempty"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          string  `json:"id"`
	LiabilityID string  `json:"liabilityId"`
	Amount      string  `json:"amount"`
	PaymentType string  `json:"paymentType"`
	Description *string `json:"description,omitempty"`
	PaymentDate string  `json:"paymentDate"`
	CreatedAt   string  `json:"createdAt"`
}

// RecordPaymentResponse is the recorded payment plus the liability it left
// behind
type RecordPaymentResponse struct {
	Payment   PaymentResponse   `json:"payment"`
	Liability LiabilityResponse `json:"liability"`
}

// RecordPayment handles POST /api/v1/liabilities/:id/payments
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	liabilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", nil)
	}

	var req RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var paymentDate time.Time
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return NewValidationError(c, "Invalid payment date", []ValidationError{
				{Field: "paymentDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
	}

	result, err := h.paymentService.RecordPayment(workspaceID, liabilityID, service.RecordPaymentInput{
		Amount:      amount,
		PaymentType: domain.PaymentType(req.PaymentType),
		Description: req.Description,
		PaymentDate: paymentDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		if errors.Is(err, domain.ErrLiabilityArchived) {
			return NewConflictError(c, "Payments cannot be recorded against archived liabilities")
		}
		if errors.Is(err, domain.ErrDebtPaymentAmountInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrDebtPaymentTypeInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "paymentType", Message: "Must be regular, extra, or interest_only"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to record payment")
		return NewInternalError(c, "Failed to record payment")
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Str("liability_id", liabilityID.String()).
		Str("amount", amount.StringFixed(2)).
		Msg("Payment recorded")

	return c.JSON(http.StatusCreated, RecordPaymentResponse{
		Payment:   toPaymentResponse(result.Payment),
		Liability: toLiabilityResponse(result.Liability),
	})
}

// GetPayments handles GET /api/v1/liabilities/:id/payments
func (h *PaymentHandler) GetPayments(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	liabilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", nil)
	}

	payments, err := h.paymentService.GetPayments(workspaceID, liabilityID)
	if err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list payments")
		return NewInternalError(c, "Failed to list payments")
	}

	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = toPaymentResponse(p)
	}
	return c.JSON(http.StatusOK, responses)
}

func toPaymentResponse(p *domain.DebtPayment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID.String(),
		LiabilityID: p.LiabilityID.String(),
		Amount:      p.Amount.StringFixed(2),
		PaymentType: string(p.PaymentType),
		Description: p.Description,
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
