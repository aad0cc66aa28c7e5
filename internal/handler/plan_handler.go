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

// PlanHandler handles debt payment plan HTTP requests
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// BuildPlanRequest represents the build plan request body
type BuildPlanRequest struct {
	Strategy           string   `json:"strategy"`
	MonthlyExtraBudget string   `json:"monthlyExtraBudget"`
	PriorityOrder      []string `json:"priorityOrder,omitempty"`
}

// PlanEntryResponse represents one debt's projection within a plan
type PlanEntryResponse struct {
	Liability      LiabilityResponse `json:"liability"`
	MonthsToPayoff int               `json:"monthsToPayoff"`
	TotalInterest  string            `json:"totalInterest"`
	Unpayable      bool              `json:"unpayable"`
	PayoffOrder    int               `json:"payoffOrder"`
}

// AllocationResponse represents one line of the monthly budget distribution
type AllocationResponse struct {
	LiabilityID string `json:"liabilityId"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
}

// PlanResponse represents a computed payment plan
type PlanResponse struct {
	Debts                     []PlanEntryResponse  `json:"debts"`
	NextDebtToFocus           *string              `json:"nextDebtToFocus"`
	MonthlyBudgetDistribution []AllocationResponse `json:"monthlyBudgetDistribution"`
	TotalInterest             string               `json:"totalInterest"`
	PayoffMonths              int                  `json:"payoffMonths"`
}

// ComparisonResponse represents a snowball vs avalanche comparison
type ComparisonResponse struct {
	Snowball      PlanResponse `json:"snowball"`
	Avalanche     PlanResponse `json:"avalanche"`
	InterestSaved string       `json:"interestSaved"`
	MonthsSaved   int          `json:"monthsSaved"`
	Recommended   string       `json:"recommended"`
}

// BuildPlan handles POST /api/v1/debt-plans
func (h *PlanHandler) BuildPlan(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req BuildPlanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	extraBudget := decimal.Zero
	if req.MonthlyExtraBudget != "" {
		var err error
		extraBudget, err = decimal.NewFromString(req.MonthlyExtraBudget)
		if err != nil {
			return NewValidationError(c, "Invalid extra budget", []ValidationError{
				{Field: "monthlyExtraBudget", Message: "Must be a valid decimal number"},
			})
		}
	}

	priorityOrder := make([]uuid.UUID, 0, len(req.PriorityOrder))
	for _, raw := range req.PriorityOrder {
		id, err := uuid.Parse(raw)
		if err != nil {
			return NewValidationError(c, "Invalid priority order", []ValidationError{
				{Field: "priorityOrder", Message: "All entries must be valid liability IDs"},
			})
		}
		priorityOrder = append(priorityOrder, id)
	}

	strategy := &domain.DebtPaymentStrategy{
		Type:               domain.StrategyType(req.Strategy),
		PriorityOrder:      priorityOrder,
		MonthlyExtraBudget: extraBudget,
	}

	plan, err := h.planService.BuildPlan(workspaceID, strategy)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStrategyType):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "strategy", Message: "Must be snowball, avalanche, or custom"},
			})
		case errors.Is(err, domain.ErrInvalidStrategyOrder):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "priorityOrder", Message: "Must be an exact permutation of the active liability IDs"},
			})
		case errors.Is(err, domain.ErrInvalidBudget):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlyExtraBudget", Message: "Budget and balances must not be negative"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to build plan")
		return NewInternalError(c, "Failed to build plan")
	}

	return c.JSON(http.StatusOK, toPlanResponse(plan))
}

// CompareStrategies handles GET /api/v1/debt-plans/compare
func (h *PlanHandler) CompareStrategies(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	extraBudget := decimal.Zero
	if raw := c.QueryParam("extraBudget"); raw != "" {
		var err error
		extraBudget, err = decimal.NewFromString(raw)
		if err != nil {
			return NewValidationError(c, "Invalid extra budget", []ValidationError{
				{Field: "extraBudget", Message: "Must be a valid decimal number"},
			})
		}
	}

	comparison, err := h.planService.CompareStrategies(workspaceID, extraBudget)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBudget) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "extraBudget", Message: "Budget must not be negative"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to compare strategies")
		return NewInternalError(c, "Failed to compare strategies")
	}

	return c.JSON(http.StatusOK, ComparisonResponse{
		Snowball:      toPlanResponse(comparison.Snowball),
		Avalanche:     toPlanResponse(comparison.Avalanche),
		InterestSaved: comparison.InterestSaved.StringFixed(2),
		MonthsSaved:   comparison.MonthsSaved,
		Recommended:   string(comparison.Recommended),
	})
}

func toPlanResponse(plan *domain.DebtPaymentPlan) PlanResponse {
	resp := PlanResponse{
		Debts:                     make([]PlanEntryResponse, len(plan.Debts)),
		MonthlyBudgetDistribution: make([]AllocationResponse, len(plan.MonthlyBudgetDistribution)),
		TotalInterest:             plan.TotalInterest().StringFixed(2),
		PayoffMonths:              plan.PayoffMonths(),
	}
	for i, entry := range plan.Debts {
		resp.Debts[i] = PlanEntryResponse{
			Liability:      toLiabilityResponse(entry.Liability),
			MonthsToPayoff: entry.MonthsToPayoff,
			TotalInterest:  entry.TotalInterest.StringFixed(2),
			Unpayable:      entry.Unpayable,
			PayoffOrder:    entry.PayoffOrder,
		}
	}
	for i, alloc := range plan.MonthlyBudgetDistribution {
		resp.MonthlyBudgetDistribution[i] = AllocationResponse{
			LiabilityID: alloc.LiabilityID.String(),
			Amount:      alloc.Amount.StringFixed(2),
			Type:        string(alloc.Type),
		}
	}
	if plan.NextDebtToFocus != nil {
		s := plan.NextDebtToFocus.String()
		resp.NextDebtToFocus = &s
	}
	return resp
}
