package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/models"
	"github.com/ewei/budgetgroups-server/internal/repository"
	"github.com/ewei/budgetgroups-server/internal/service"
)

func TestInviteAndAccept(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	inviteeID := seedUser(t, repo, "Bob", "bob@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	invitation, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "bob@example.com",
		Role:  models.RoleMember,
	})
	require.NoError(t, err)
	require.NotEmpty(t, invitation.Token)
	assert.Equal(t, models.InvitationPending, invitation.Status)
	assert.Equal(t, ownerID, invitation.InvitedBy)

	accepted, err := svc.AcceptInvitation(ctx, invitation.Token, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, accepted.Status)

	member, err := repo.GetMember(ctx, group.ID, inviteeID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, models.RoleMember, member.Role)
}

func TestInviteDeniedForMember(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	memberID := seedUser(t, repo, "Bob", "bob@example.com")
	group := seedGroup(t, svc, ownerID, "Household")
	seedMember(t, repo, group.ID, memberID, models.RoleMember)

	_, err := svc.InviteMember(ctx, memberID, group.ID, models.InviteRequest{
		Email: "carol@example.com",
		Role:  models.RoleMember,
	})
	assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
}

func TestInviteNeverCarriesOwnerRole(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	_, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "carol@example.com",
		Role:  models.RoleOwner,
	})
	assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
}

func TestInviteRejectsInvalidFamilyRole(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	_, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email:      "carol@example.com",
		Role:       models.RoleMember,
		FamilyRole: "sibling",
	})
	assert.True(t, apperrors.Is(err, apperrors.InvalidState))
}

func TestInviteFallsBackToLocalToken(t *testing.T) {
	mem := repository.NewMemoryRepository()
	fr := &failRepo{Repository: mem, generateTokenErr: assert.AnError}
	svc := service.NewDefaultService(fr, testJWTSecret)
	ctx := context.Background()
	ownerID := seedUser(t, mem, "Alice", "alice@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	invitation, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "bob@example.com",
		Role:  models.RoleMember,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, invitation.Token)
	assert.NotContains(t, invitation.Token, "-")
}

func TestLookupInvitationIncludesGroupInfo(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	invitation, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "bob@example.com",
		Role:  models.RoleViewer,
	})
	require.NoError(t, err)

	found, err := svc.LookupInvitation(ctx, invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, "Household", found.GroupName)
	assert.Equal(t, models.RoleViewer, found.Role)
}

func TestLookupInvitationUnknownToken(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.LookupInvitation(context.Background(), "no-such-token")
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestListInvitationsForEmail(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	_, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "bob@example.com",
		Role:  models.RoleMember,
	})
	require.NoError(t, err)

	invitations, err := svc.ListInvitationsForEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	assert.Equal(t, group.ID, invitations[0].GroupID)

	// An empty email is an empty result, not an error.
	empty, err := svc.ListInvitationsForEmail(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAcceptExpiredInvitation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	inviteeID := seedUser(t, repo, "Bob", "bob@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	seedInvitation(t, repo, &models.Invitation{
		GroupID:   group.ID,
		InvitedBy: ownerID,
		Email:     "bob@example.com",
		Role:      models.RoleMember,
		Token:     "expired-token",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	})

	_, err := svc.AcceptInvitation(ctx, "expired-token", inviteeID)
	assert.True(t, apperrors.Is(err, apperrors.Expired))

	// Lazy expiry flipped the stored status.
	found, err := repo.GetInvitationByToken(ctx, "expired-token")
	require.NoError(t, err)
	assert.Equal(t, models.InvitationExpired, found.Status)

	// No membership was created.
	member, err := repo.GetMember(ctx, group.ID, inviteeID)
	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestAcceptInvitationTwice(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	inviteeID := seedUser(t, repo, "Bob", "bob@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	invitation, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "bob@example.com",
		Role:  models.RoleMember,
	})
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, invitation.Token, inviteeID)
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, invitation.Token, inviteeID)
	assert.True(t, apperrors.Is(err, apperrors.InvalidState))

	members, err := repo.ListMembers(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2, "owner plus one invitee, no duplicate")
}

func TestAcceptStaysPendingWhenMembershipFails(t *testing.T) {
	mem := repository.NewMemoryRepository()
	ctx := context.Background()
	ownerID := seedUser(t, mem, "Alice", "alice@example.com")
	inviteeID := seedUser(t, mem, "Bob", "bob@example.com")

	plainSvc := service.NewDefaultService(mem, testJWTSecret)
	group := seedGroup(t, plainSvc, ownerID, "Household")
	invitation, err := plainSvc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "bob@example.com",
		Role:  models.RoleMember,
	})
	require.NoError(t, err)

	fr := &failRepo{Repository: mem, addMemberErr: assert.AnError}
	failingSvc := service.NewDefaultService(fr, testJWTSecret)

	_, err = failingSvc.AcceptInvitation(ctx, invitation.Token, inviteeID)
	require.Error(t, err)

	// Still pending and retryable against a healthy store.
	found, err := mem.GetInvitationByToken(ctx, invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, found.Status)

	accepted, err := plainSvc.AcceptInvitation(ctx, invitation.Token, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, accepted.Status)
}

func TestAcceptTreatsInvalidFamilyRoleAsAbsent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	inviteeID := seedUser(t, repo, "Bob", "bob@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	bogus := "stepcousin"
	seedInvitation(t, repo, &models.Invitation{
		GroupID:    group.ID,
		InvitedBy:  ownerID,
		Email:      "bob@example.com",
		Role:       models.RoleMember,
		Token:      "bogus-family-role",
		FamilyRole: &bogus,
	})

	_, err := svc.AcceptInvitation(ctx, "bogus-family-role", inviteeID)
	require.NoError(t, err)

	member, err := repo.GetMember(ctx, group.ID, inviteeID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Nil(t, member.FamilyRole)
}

func TestAcceptCarriesValidFamilyRole(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	inviteeID := seedUser(t, repo, "Bob", "bob@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	invitation, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email:      "bob@example.com",
		Role:       models.RoleMember,
		FamilyRole: "parent",
	})
	require.NoError(t, err)

	_, err = svc.AcceptInvitation(ctx, invitation.Token, inviteeID)
	require.NoError(t, err)

	member, err := repo.GetMember(ctx, group.ID, inviteeID)
	require.NoError(t, err)
	require.NotNil(t, member)
	require.NotNil(t, member.FamilyRole)
	assert.Equal(t, models.FamilyRoleParent, *member.FamilyRole)
}

func TestRejectInvitation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ownerID := seedUser(t, repo, "Alice", "alice@example.com")
	group := seedGroup(t, svc, ownerID, "Household")

	invitation, err := svc.InviteMember(ctx, ownerID, group.ID, models.InviteRequest{
		Email: "bob@example.com",
		Role:  models.RoleMember,
	})
	require.NoError(t, err)

	rejected, err := svc.RejectInvitation(ctx, invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationRejected, rejected.Status)

	// A rejected invitation cannot be accepted afterwards.
	inviteeID := seedUser(t, repo, "Bob", "bob@example.com")
	_, err = svc.AcceptInvitation(ctx, invitation.Token, inviteeID)
	assert.True(t, apperrors.Is(err, apperrors.InvalidState))
}
