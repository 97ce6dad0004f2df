package service

import (
	"context"
	"log/slog"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// Group operations

// CreateGroup inserts the group and its owner membership as a two-step
// sequence with a compensating delete. There is no cross-call transaction:
// if the membership insert fails the group row is removed so no ownerless
// group is left behind, and the membership error is surfaced.
func (s *DefaultService) CreateGroup(ctx context.Context, userID string, req models.CreateGroupRequest) (*models.Group, error) {
	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		CreatedBy:   userID,
	}

	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, upstream(err, "error creating group")
	}

	if _, err := s.addMember(ctx, group.ID, userID, models.RoleOwner, nil); err != nil {
		// Compensating action: best-effort rollback of step 1.
		if delErr := s.repo.DeleteGroup(ctx, group.ID); delErr != nil {
			slog.Error("group rollback failed after owner membership error",
				"group_id", group.ID, "error", delErr)
		}
		return nil, err
	}

	s.recordActivity(ctx, group.ID, userID, models.ActionCreatedGroup, models.EntityGroup,
		&group.ID, models.GroupActivityDetails{Name: group.Name})

	slog.Info("group created", "group_id", group.ID, "created_by", userID)
	return group, nil
}

func (s *DefaultService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	role, err := s.actorRole(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(role) {
		return nil, errUnauthorized("view this group")
	}

	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, upstream(err, "error getting group")
	}
	if group == nil {
		return nil, apperrors.New(apperrors.NotFound, "group not found")
	}

	return group, nil
}

func (s *DefaultService) ListGroups(ctx context.Context, userID string) ([]models.GroupWithRole, error) {
	groups, err := s.repo.GetUserGroups(ctx, userID)
	if err != nil {
		return nil, upstream(err, "error listing groups")
	}
	if groups == nil {
		groups = []models.GroupWithRole{}
	}
	return groups, nil
}

func (s *DefaultService) UpdateGroup(ctx context.Context, userID, groupID string, req models.UpdateGroupRequest) (*models.Group, error) {
	role, err := s.actorRole(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageGroup(role) {
		return nil, errUnauthorized("update this group")
	}

	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, upstream(err, "error getting group")
	}
	if group == nil {
		return nil, apperrors.New(apperrors.NotFound, "group not found")
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}
	if req.AvatarURL != nil {
		group.AvatarURL = req.AvatarURL
	}

	if err := s.repo.UpdateGroup(ctx, group); err != nil {
		return nil, upstream(err, "error updating group")
	}

	s.recordActivity(ctx, groupID, userID, models.ActionUpdatedGroup, models.EntityGroup,
		&groupID, models.GroupActivityDetails{Name: group.Name})

	return group, nil
}

func (s *DefaultService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	role, err := s.actorRole(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !authz.CanManageGroup(role) {
		return errUnauthorized("delete this group")
	}

	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return upstream(err, "error getting group")
	}
	if group == nil {
		return apperrors.New(apperrors.NotFound, "group not found")
	}

	// Memberships, invitations, shared rows and the activity log cascade
	// at the store level.
	if err := s.repo.DeleteGroup(ctx, groupID); err != nil {
		return upstream(err, "error deleting group")
	}

	slog.Info("group deleted", "group_id", groupID, "deleted_by", userID)
	return nil
}
