package service

import (
	"context"
	"log/slog"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// Membership operations

// ListMembers returns every membership in the group, best-effort enriched
// with user display info. If enrichment fails the memberships are returned
// with id-only user stubs; membership data matters more than display names.
func (s *DefaultService) ListMembers(ctx context.Context, userID, groupID string) ([]models.MemberWithUser, error) {
	role, err := s.actorRole(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(role) {
		return nil, errUnauthorized("view members")
	}

	members, err := s.repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, upstream(err, "error listing members")
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}

	users, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Warn("member enrichment failed", "group_id", groupID, "error", err)
		users = nil
	}

	enriched := make([]models.MemberWithUser, len(members))
	for i, m := range members {
		enriched[i] = models.MemberWithUser{
			Member: m,
			User:   models.MemberUser{ID: m.UserID},
		}
		if u, ok := users[m.UserID]; ok {
			enriched[i].User.Name = u.Name
			enriched[i].User.Email = u.Email
			enriched[i].User.AvatarURL = u.AvatarURL
		}
	}

	return enriched, nil
}

func (s *DefaultService) UpdateMemberRole(ctx context.Context, actorID, groupID, targetUserID string, newRole models.Role) (*models.Member, error) {
	actorRole, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.repo.GetMember(ctx, groupID, targetUserID)
	if err != nil {
		return nil, upstream(err, "error getting target membership")
	}
	if target == nil {
		return nil, apperrors.New(apperrors.NotFound, "membership not found")
	}

	if !authz.CanManageMember(actorRole, target.Role, actorID, targetUserID) {
		return nil, errUnauthorized("change this member's role")
	}

	previousRole := target.Role
	if err := s.repo.UpdateMemberRole(ctx, groupID, targetUserID, newRole); err != nil {
		return nil, upstream(err, "error updating member role")
	}
	target.Role = newRole

	s.recordActivity(ctx, groupID, actorID, models.ActionUpdatedMemberRole, models.EntityMember,
		&targetUserID, models.MemberActivityDetails{
			TargetUserID: targetUserID,
			Role:         newRole,
			PreviousRole: previousRole,
		})

	return target, nil
}

func (s *DefaultService) RemoveMember(ctx context.Context, actorID, groupID, targetUserID string) error {
	actorRole, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return err
	}

	target, err := s.repo.GetMember(ctx, groupID, targetUserID)
	if err != nil {
		return upstream(err, "error getting target membership")
	}
	if target == nil {
		return apperrors.New(apperrors.NotFound, "membership not found")
	}

	if !authz.CanManageMember(actorRole, target.Role, actorID, targetUserID) {
		return errUnauthorized("remove this member")
	}

	if err := s.repo.RemoveMember(ctx, groupID, targetUserID); err != nil {
		return upstream(err, "error removing member")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionRemovedMember, models.EntityMember,
		&targetUserID, models.MemberActivityDetails{
			TargetUserID: targetUserID,
			PreviousRole: target.Role,
		})

	return nil
}

// addMember creates a membership row. The only legitimate callers are group
// creation (owner path) and invitation acceptance (invited path); the
// repository's composite key rejects duplicates with a Conflict.
func (s *DefaultService) addMember(ctx context.Context, groupID, userID string, role models.Role, familyRole *models.FamilyRole) (*models.Member, error) {
	member := &models.Member{
		GroupID:    groupID,
		UserID:     userID,
		Role:       role,
		FamilyRole: familyRole,
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, upstream(err, "error adding member")
	}
	return member, nil
}
