package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// invitationTTL is how long an invitation stays acceptable. Expiry is
// enforced lazily at acceptance time; there is no background sweep.
const invitationTTL = 7 * 24 * time.Hour

// Invitation operations

// InviteMember issues a token-bearing invitation to an email address. The
// address does not have to belong to an existing account. Token generation
// prefers the store's privileged procedure and falls back to a locally
// generated opaque string; uniqueness is the only hard requirement since
// the token is single-use and time-boxed.
func (s *DefaultService) InviteMember(ctx context.Context, actorID, groupID string, req models.InviteRequest) (*models.Invitation, error) {
	actorRole, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanInvite(actorRole, req.Role) {
		return nil, errUnauthorized("invite members with this role")
	}

	token, err := s.repo.GenerateInviteToken(ctx)
	if err != nil {
		slog.Warn("server-side token generation unavailable, using local fallback", "error", err)
		token = localInviteToken()
	}

	var familyRole *string
	if req.FamilyRole != "" {
		if !models.ValidFamilyRole(models.FamilyRole(req.FamilyRole)) {
			return nil, apperrors.New(apperrors.InvalidState, "invalid family role %q", req.FamilyRole)
		}
		familyRole = &req.FamilyRole
	}

	invitation := &models.Invitation{
		GroupID:    groupID,
		InvitedBy:  actorID,
		Email:      req.Email,
		Role:       req.Role,
		Status:     models.InvitationPending,
		Token:      token,
		FamilyRole: familyRole,
		ExpiresAt:  time.Now().UTC().Add(invitationTTL),
	}

	if err := s.repo.CreateInvitation(ctx, invitation); err != nil {
		return nil, upstream(err, "error creating invitation")
	}

	s.recordActivity(ctx, groupID, actorID, models.ActionInvitedMember, models.EntityInvitation,
		&invitation.ID, models.InvitationActivityDetails{Email: req.Email, Role: req.Role})

	slog.Info("invitation issued", "group_id", groupID, "invited_by", actorID, "role", req.Role)
	return invitation, nil
}

// LookupInvitation retrieves an invitation by its token, with denormalized
// group display fields. Unauthenticated: the invitee is not a member yet and
// may not even have an account.
func (s *DefaultService) LookupInvitation(ctx context.Context, token string) (*models.InvitationWithGroup, error) {
	invitation, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, upstream(err, "error looking up invitation")
	}
	if invitation == nil {
		return nil, apperrors.New(apperrors.NotFound, "invitation not found")
	}
	return invitation, nil
}

// ListInvitationsForEmail returns all pending invitations addressed to the
// email, newest first. An empty email is an empty result, not an error.
func (s *DefaultService) ListInvitationsForEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	if email == "" {
		return []models.Invitation{}, nil
	}

	invitations, err := s.repo.ListPendingInvitationsByEmail(ctx, email)
	if err != nil {
		return nil, upstream(err, "error listing invitations")
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}
	return invitations, nil
}

// AcceptInvitation transitions a pending invitation to accepted, creating
// the membership with the invitation's role first. If the membership insert
// fails the invitation stays pending and remains retryable. Accepting an
// already-accepted invitation is InvalidState, never silent success.
func (s *DefaultService) AcceptInvitation(ctx context.Context, token, userID string) (*models.Invitation, error) {
	found, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, upstream(err, "error looking up invitation")
	}
	if found == nil {
		return nil, apperrors.New(apperrors.NotFound, "invitation not found")
	}
	invitation := found.Invitation

	if invitation.Status != models.InvitationPending {
		return nil, apperrors.New(apperrors.InvalidState, "invitation is no longer valid")
	}

	if time.Now().UTC().After(invitation.ExpiresAt) {
		// Lazy expiry: this is the only place expiry is enforced.
		if updErr := s.repo.UpdateInvitationStatus(ctx, invitation.ID, models.InvitationExpired); updErr != nil {
			slog.Warn("failed to mark invitation expired", "invitation_id", invitation.ID, "error", updErr)
		}
		return nil, apperrors.New(apperrors.Expired, "invitation has expired")
	}

	// Invalid or malformed family-role metadata is treated as absent; it
	// never fails the accept.
	var familyRole *models.FamilyRole
	if invitation.FamilyRole != nil {
		if fr := models.FamilyRole(*invitation.FamilyRole); models.ValidFamilyRole(fr) {
			familyRole = &fr
		}
	}

	// Membership first: if this fails (e.g. the user is already a member)
	// the error propagates and the invitation status is untouched.
	if _, err := s.addMember(ctx, invitation.GroupID, userID, invitation.Role, familyRole); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInvitationStatus(ctx, invitation.ID, models.InvitationAccepted); err != nil {
		return nil, upstream(err, "error updating invitation status")
	}
	invitation.Status = models.InvitationAccepted

	s.recordActivity(ctx, invitation.GroupID, userID, models.ActionJoinedGroup, models.EntityMember,
		&userID, models.MemberActivityDetails{TargetUserID: userID, Role: invitation.Role})

	slog.Info("invitation accepted", "invitation_id", invitation.ID, "user_id", userID)
	return &invitation, nil
}

// RejectInvitation transitions a pending invitation to rejected. No expiry
// check: rejecting an expired invitation is harmless.
func (s *DefaultService) RejectInvitation(ctx context.Context, token string) (*models.Invitation, error) {
	found, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, upstream(err, "error looking up invitation")
	}
	if found == nil {
		return nil, apperrors.New(apperrors.NotFound, "invitation not found")
	}
	invitation := found.Invitation

	if invitation.Status != models.InvitationPending {
		return nil, apperrors.New(apperrors.InvalidState, "invitation is no longer valid")
	}

	if err := s.repo.UpdateInvitationStatus(ctx, invitation.ID, models.InvitationRejected); err != nil {
		return nil, upstream(err, "error updating invitation status")
	}
	invitation.Status = models.InvitationRejected

	return &invitation, nil
}

// localInviteToken builds a high-entropy opaque token without the store's
// help. Not meant to be cryptographically strong, just unguessable and
// unique enough for a single-use, time-boxed invitation.
func localInviteToken() string {
	raw := uuid.New().String() + uuid.New().String()
	return strings.ReplaceAll(raw, "-", "")
}
