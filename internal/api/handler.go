package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/models"
	"github.com/ewei/budgetgroups-server/internal/service"
)

// Handler holds the API handlers and their service dependency
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/login", h.Login)

	// Invitation lookup and rejection are reachable by token alone: the
	// invitee is not a member and may not have an account yet.
	api.GET("/invitations/:token", h.LookupInvitation)
	api.POST("/invitations/:token/reject", h.RejectInvitation)

	// Authenticated routes
	auth := api.Group("", AuthMiddleware())

	auth.GET("/invitations", h.ListInvitations)
	auth.POST("/invitations/:token/accept", h.AcceptInvitation)

	auth.POST("/groups", h.CreateGroup)
	auth.GET("/groups", h.ListGroups)
	auth.GET("/groups/:id", h.GetGroup)
	auth.PUT("/groups/:id", h.UpdateGroup)
	auth.DELETE("/groups/:id", h.DeleteGroup)

	auth.GET("/groups/:id/members", h.ListMembers)
	auth.PUT("/groups/:id/members/:userId", h.UpdateMemberRole)
	auth.DELETE("/groups/:id/members/:userId", h.RemoveMember)

	auth.POST("/groups/:id/invitations", h.InviteMember)

	auth.POST("/groups/:id/transactions", h.CreateTransaction)
	auth.GET("/groups/:id/transactions", h.ListTransactions)
	auth.PUT("/groups/:id/transactions/:entryId", h.UpdateTransaction)
	auth.DELETE("/groups/:id/transactions/:entryId", h.DeleteTransaction)

	auth.POST("/groups/:id/budgets", h.CreateBudget)
	auth.GET("/groups/:id/budgets", h.ListBudgets)
	auth.PUT("/groups/:id/budgets/:entryId", h.UpdateBudget)
	auth.DELETE("/groups/:id/budgets/:entryId", h.DeleteBudget)
	auth.GET("/groups/:id/budgets/:entryId/progress", h.BudgetProgress)

	auth.GET("/groups/:id/summary", h.TransactionSummary)
	auth.GET("/groups/:id/activity", h.ListActivity)
}

// currentUserID returns the authenticated user ID set by AuthMiddleware.
func currentUserID(c *gin.Context) string {
	return c.GetString("userId")
}

// respondError maps an error kind to an HTTP status and writes the error body.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperrors.NotFound:
		status = http.StatusNotFound
	case apperrors.Unauthorized:
		status = http.StatusForbidden
	case apperrors.InvalidState, apperrors.Conflict:
		status = http.StatusConflict
	case apperrors.Expired:
		status = http.StatusGone
	}

	c.JSON(status, models.ErrorResponse{
		Status:  "error",
		Code:    kind.String(),
		Message: err.Error(),
	})
}

// badRequest writes a validation error body.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "BAD_REQUEST",
		Message: err.Error(),
	})
}
