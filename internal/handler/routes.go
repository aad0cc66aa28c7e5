package handler

import (
	"github.com/debtwise/debtwise-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, liabilityHandler *LiabilityHandler, paymentHandler *PaymentHandler, planHandler *PlanHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Liability routes (protected)
	liabilities := api.Group("/liabilities")
	liabilities.Use(authMiddleware.Authenticate())
	liabilities.POST("", liabilityHandler.CreateLiability)
	liabilities.GET("", liabilityHandler.GetLiabilities)
	liabilities.GET("/:id", liabilityHandler.GetLiability)
	liabilities.PUT("/:id", liabilityHandler.UpdateLiability)
	liabilities.POST("/:id/archive", liabilityHandler.ArchiveLiability)
	liabilities.DELETE("/:id", liabilityHandler.DeleteLiability)
	liabilities.GET("/:id/progress", liabilityHandler.GetProgress)
	liabilities.POST("/:id/payments", paymentHandler.RecordPayment)
	liabilities.GET("/:id/payments", paymentHandler.GetPayments)

	// Plan routes (protected, rate limited: plan building is the expensive
	// surface)
	plans := api.Group("/debt-plans")
	plans.Use(authMiddleware.Authenticate())
	plans.Use(middleware.RateLimitMiddleware(rateLimiter))
	plans.POST("", planHandler.BuildPlan)
	plans.GET("/compare", planHandler.CompareStrategies)
}
