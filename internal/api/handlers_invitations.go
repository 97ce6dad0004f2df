package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ewei/budgetgroups-server/internal/models"
)

// InviteMember handles POST /api/groups/:id/invitations
func (h *Handler) InviteMember(c *gin.Context) {
	var req models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	invitation, err := h.svc.InviteMember(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.InvitationResponse{Status: "success", Invitation: invitation})
}

// LookupInvitation handles GET /api/invitations/:token
func (h *Handler) LookupInvitation(c *gin.Context) {
	invitation, err := h.svc.LookupInvitation(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InvitationLookupResponse{Status: "success", Invitation: invitation})
}

// ListInvitations handles GET /api/invitations?email=...
func (h *Handler) ListInvitations(c *gin.Context) {
	invitations, err := h.svc.ListInvitationsForEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InvitationListResponse{Status: "success", Invitations: invitations})
}

// AcceptInvitation handles POST /api/invitations/:token/accept
func (h *Handler) AcceptInvitation(c *gin.Context) {
	invitation, err := h.svc.AcceptInvitation(c.Request.Context(), c.Param("token"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InvitationResponse{Status: "success", Invitation: invitation})
}

// RejectInvitation handles POST /api/invitations/:token/reject
func (h *Handler) RejectInvitation(c *gin.Context) {
	invitation, err := h.svc.RejectInvitation(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InvitationResponse{Status: "success", Invitation: invitation})
}
