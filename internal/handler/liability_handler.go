package handler

import (
	"errors"
	"net/http"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/debtwise/debtwise-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LiabilityHandler handles liability-related HTTP requests
type LiabilityHandler struct {
	liabilityService *service.LiabilityService
	progressService  *service.ProgressService
}

// NewLiabilityHandler creates a new LiabilityHandler
func NewLiabilityHandler(liabilityService *service.LiabilityService, progressService *service.ProgressService) *LiabilityHandler {
	return &LiabilityHandler{
		liabilityService: liabilityService,
		progressService:  progressService,
	}
}

// CreateLiabilityRequest represents the create liability request body
type CreateLiabilityRequest struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Amount         string  `json:"amount"`
	OriginalAmount *string `json:"originalAmount,omitempty"`
	InterestRate   *string `json:"interestRate,omitempty"`
	MonthlyPayment *string `json:"monthlyPayment,omitempty"`
}

// UpdateLiabilityRequest represents the update liability request body
type UpdateLiabilityRequest struct {
	Name           *string `json:"name,omitempty"`
	Amount         *string `json:"amount,omitempty"`
	InterestRate   *string `json:"interestRate,omitempty"`
	MonthlyPayment *string `json:"monthlyPayment,omitempty"`
}

// LiabilityResponse represents a liability in API responses
type LiabilityResponse struct {
	ID             string  `json:"id"`
	WorkspaceID    int32   `json:"workspaceId"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Amount         string  `json:"amount"`
	OriginalAmount string  `json:"originalAmount"`
	InterestRate   *string `json:"interestRate,omitempty"`
	MonthlyPayment *string `json:"monthlyPayment,omitempty"`
	MinimumPayment string  `json:"minimumPayment"`
	IsArchived     bool    `json:"isArchived"`
	ArchivedAt     *string `json:"archivedAt,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ProgressResponse represents payoff progress in API responses
type ProgressResponse struct {
	TotalPaid          string  `json:"totalPaid"`
	RemainingAmount    string  `json:"remainingAmount"`
	ProgressPercentage float64 `json:"progressPercentage"`
	OriginalAmount     string  `json:"originalAmount"`
}

// CreateLiability handles POST /api/v1/liabilities
func (h *LiabilityHandler) CreateLiability(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateLiabilityRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	originalAmount, verr := parseOptionalDecimal(req.OriginalAmount, "originalAmount")
	if verr != nil {
		return NewValidationError(c, "Invalid original amount", []ValidationError{*verr})
	}
	interestRate, verr := parseOptionalDecimal(req.InterestRate, "interestRate")
	if verr != nil {
		return NewValidationError(c, "Invalid interest rate", []ValidationError{*verr})
	}
	monthlyPayment, verr := parseOptionalDecimal(req.MonthlyPayment, "monthlyPayment")
	if verr != nil {
		return NewValidationError(c, "Invalid monthly payment", []ValidationError{*verr})
	}

	liability, err := h.liabilityService.CreateLiability(workspaceID, service.CreateLiabilityInput{
		Name:           req.Name,
		Type:           domain.LiabilityType(req.Type),
		Amount:         amount,
		OriginalAmount: originalAmount,
		InterestRate:   interestRate,
		MonthlyPayment: monthlyPayment,
	})
	if err != nil {
		if verr := liabilityValidationError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create liability")
		return NewInternalError(c, "Failed to create liability")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("liability_id", liability.ID.String()).Str("name", liability.Name).Msg("Liability created")

	return c.JSON(http.StatusCreated, toLiabilityResponse(liability))
}

// GetLiabilities handles GET /api/v1/liabilities
func (h *LiabilityHandler) GetLiabilities(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	includeArchived := c.QueryParam("status") == "all"

	liabilities, err := h.liabilityService.GetLiabilities(workspaceID, includeArchived)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list liabilities")
		return NewInternalError(c, "Failed to list liabilities")
	}

	responses := make([]LiabilityResponse, len(liabilities))
	for i, l := range liabilities {
		responses[i] = toLiabilityResponse(l)
	}
	return c.JSON(http.StatusOK, responses)
}

// GetLiability handles GET /api/v1/liabilities/:id
func (h *LiabilityHandler) GetLiability(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", nil)
	}

	liability, err := h.liabilityService.GetLiabilityByID(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get liability")
		return NewInternalError(c, "Failed to get liability")
	}
	return c.JSON(http.StatusOK, toLiabilityResponse(liability))
}

// UpdateLiability handles PUT /api/v1/liabilities/:id
func (h *LiabilityHandler) UpdateLiability(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", nil)
	}

	var req UpdateLiabilityRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, verr := parseOptionalDecimal(req.Amount, "amount")
	if verr != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{*verr})
	}
	interestRate, verr := parseOptionalDecimal(req.InterestRate, "interestRate")
	if verr != nil {
		return NewValidationError(c, "Invalid interest rate", []ValidationError{*verr})
	}
	monthlyPayment, verr := parseOptionalDecimal(req.MonthlyPayment, "monthlyPayment")
	if verr != nil {
		return NewValidationError(c, "Invalid monthly payment", []ValidationError{*verr})
	}

	liability, err := h.liabilityService.UpdateLiability(workspaceID, id, service.UpdateLiabilityInput{
		Name:           req.Name,
		Amount:         amount,
		InterestRate:   interestRate,
		MonthlyPayment: monthlyPayment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		if errors.Is(err, domain.ErrLiabilityArchived) {
			return NewConflictError(c, "Archived liabilities cannot be updated")
		}
		if verr := liabilityValidationError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to update liability")
		return NewInternalError(c, "Failed to update liability")
	}
	return c.JSON(http.StatusOK, toLiabilityResponse(liability))
}

// ArchiveLiability handles POST /api/v1/liabilities/:id/archive
func (h *LiabilityHandler) ArchiveLiability(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", nil)
	}

	liability, err := h.liabilityService.ArchiveLiability(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to archive liability")
		return NewInternalError(c, "Failed to archive liability")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("liability_id", id.String()).Msg("Liability archived")

	return c.JSON(http.StatusOK, toLiabilityResponse(liability))
}

// DeleteLiability handles DELETE /api/v1/liabilities/:id
func (h *LiabilityHandler) DeleteLiability(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", nil)
	}

	if err := h.liabilityService.DeleteLiability(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete liability")
		return NewInternalError(c, "Failed to delete liability")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetProgress handles GET /api/v1/liabilities/:id/progress
func (h *LiabilityHandler) GetProgress(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid liability ID", nil)
	}

	progress, err := h.progressService.GetProgress(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrLiabilityNotFound) {
			return NewNotFoundError(c, "Liability not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to compute progress")
		return NewInternalError(c, "Failed to compute progress")
	}

	return c.JSON(http.StatusOK, ProgressResponse{
		TotalPaid:          progress.TotalPaid.StringFixed(2),
		RemainingAmount:    progress.RemainingAmount.StringFixed(2),
		ProgressPercentage: progress.ProgressPercentage,
		OriginalAmount:     progress.OriginalAmount.StringFixed(2),
	})
}

func liabilityValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrLiabilityNameEmpty):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrLiabilityNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 200 characters or less"},
		})
	case errors.Is(err, domain.ErrLiabilityAmountNegative):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be negative"},
		})
	case errors.Is(err, domain.ErrLiabilityRateNegative):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "interestRate", Message: "Interest rate must not be negative"},
		})
	case errors.Is(err, domain.ErrLiabilityPaymentInvalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "monthlyPayment", Message: "Monthly payment must be positive"},
		})
	}
	return nil
}

func parseOptionalDecimal(s *string, field string) (*decimal.Decimal, *ValidationError) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "Must be a valid decimal number"}
	}
	return &d, nil
}

func toLiabilityResponse(l *domain.Liability) LiabilityResponse {
	resp := LiabilityResponse{
		ID:             l.ID.String(),
		WorkspaceID:    l.WorkspaceID,
		Name:           l.Name,
		Type:           string(l.Type),
		Amount:         l.Amount.StringFixed(2),
		OriginalAmount: l.OriginalAmount.StringFixed(2),
		MinimumPayment: l.MinimumPayment().StringFixed(2),
		IsArchived:     l.IsArchived,
		CreatedAt:      l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      l.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if l.InterestRate != nil {
		s := l.InterestRate.String()
		resp.InterestRate = &s
	}
	if l.MonthlyPayment != nil {
		s := l.MonthlyPayment.StringFixed(2)
		resp.MonthlyPayment = &s
	}
	if l.ArchivedAt != nil {
		s := l.ArchivedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ArchivedAt = &s
	}
	return resp
}
