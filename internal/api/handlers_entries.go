package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ewei/budgetgroups-server/internal/models"
)

// CreateTransaction handles POST /api/groups/:id/transactions
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	txn, err := h.svc.CreateTransaction(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TransactionResponse{Status: "success", Transaction: txn})
}

// ListTransactions handles GET /api/groups/:id/transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	txns, err := h.svc.ListTransactions(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionListResponse{Status: "success", Transactions: txns})
}

// UpdateTransaction handles PUT /api/groups/:id/transactions/:entryId
func (h *Handler) UpdateTransaction(c *gin.Context) {
	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	txn, err := h.svc.UpdateTransaction(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("entryId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionResponse{Status: "success", Transaction: txn})
}

// DeleteTransaction handles DELETE /api/groups/:id/transactions/:entryId
func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.svc.DeleteTransaction(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("entryId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Transaction deleted"})
}

// CreateBudget handles POST /api/groups/:id/budgets
func (h *Handler) CreateBudget(c *gin.Context) {
	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	budget, err := h.svc.CreateBudget(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.BudgetResponse{Status: "success", Budget: budget})
}

// ListBudgets handles GET /api/groups/:id/budgets?active=true
func (h *Handler) ListBudgets(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	budgets, err := h.svc.ListBudgets(c.Request.Context(), currentUserID(c), c.Param("id"), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BudgetListResponse{Status: "success", Budgets: budgets})
}

// UpdateBudget handles PUT /api/groups/:id/budgets/:entryId
func (h *Handler) UpdateBudget(c *gin.Context) {
	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	budget, err := h.svc.UpdateBudget(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("entryId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BudgetResponse{Status: "success", Budget: budget})
}

// DeleteBudget handles DELETE /api/groups/:id/budgets/:entryId
func (h *Handler) DeleteBudget(c *gin.Context) {
	if err := h.svc.DeleteBudget(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("entryId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Budget deleted"})
}

// BudgetProgress handles GET /api/groups/:id/budgets/:entryId/progress
func (h *Handler) BudgetProgress(c *gin.Context) {
	progress, err := h.svc.BudgetProgress(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("entryId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BudgetProgressResponse{Status: "success", Progress: progress})
}

// TransactionSummary handles GET /api/groups/:id/summary
func (h *Handler) TransactionSummary(c *gin.Context) {
	summary, err := h.svc.TransactionSummary(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionSummaryResponse{Status: "success", Summary: summary})
}
