package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ewei/budgetgroups-server/internal/models"
)

// CreateGroup handles POST /api/groups
func (h *Handler) CreateGroup(c *gin.Context) {
	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	group, err := h.svc.CreateGroup(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.GroupResponse{Status: "success", Group: group})
}

// ListGroups handles GET /api/groups
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.svc.ListGroups(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GroupListResponse{Status: "success", Groups: groups})
}

// GetGroup handles GET /api/groups/:id
func (h *Handler) GetGroup(c *gin.Context) {
	group, err := h.svc.GetGroup(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GroupResponse{Status: "success", Group: group})
}

// UpdateGroup handles PUT /api/groups/:id
func (h *Handler) UpdateGroup(c *gin.Context) {
	var req models.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	group, err := h.svc.UpdateGroup(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GroupResponse{Status: "success", Group: group})
}

// DeleteGroup handles DELETE /api/groups/:id
func (h *Handler) DeleteGroup(c *gin.Context) {
	if err := h.svc.DeleteGroup(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Group deleted"})
}

// ListMembers handles GET /api/groups/:id/members
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.svc.ListMembers(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MemberListResponse{Status: "success", Members: members})
}

// UpdateMemberRole handles PUT /api/groups/:id/members/:userId
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	var req models.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.svc.UpdateMemberRole(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("userId"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MemberResponse{Status: "success", Member: member})
}

// RemoveMember handles DELETE /api/groups/:id/members/:userId
func (h *Handler) RemoveMember(c *gin.Context) {
	if err := h.svc.RemoveMember(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Member removed"})
}

// ListActivity handles GET /api/groups/:id/activity
func (h *Handler) ListActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.svc.ListActivity(c.Request.Context(), currentUserID(c), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ActivityListResponse{Status: "success", Entries: entries})
}
