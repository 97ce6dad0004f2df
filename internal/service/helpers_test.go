package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ewei/budgetgroups-server/internal/models"
	"github.com/ewei/budgetgroups-server/internal/repository"
	"github.com/ewei/budgetgroups-server/internal/service"
)

const testJWTSecret = "test-secret"

// failRepo wraps a real repository and lets individual tests inject failures
// into specific calls without faking the whole interface.
type failRepo struct {
	repository.Repository

	addMemberErr      error
	getUsersByIDsErr  error
	insertActivityErr error
	generateTokenErr  error

	insertActivityCalls int
}

func (f *failRepo) AddMember(ctx context.Context, member *models.Member) error {
	if f.addMemberErr != nil {
		return f.addMemberErr
	}
	return f.Repository.AddMember(ctx, member)
}

func (f *failRepo) GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	if f.getUsersByIDsErr != nil {
		return nil, f.getUsersByIDsErr
	}
	return f.Repository.GetUsersByIDs(ctx, ids)
}

func (f *failRepo) InsertActivity(ctx context.Context, entry *models.ActivityEntry) error {
	f.insertActivityCalls++
	if f.insertActivityErr != nil {
		return f.insertActivityErr
	}
	return f.Repository.InsertActivity(ctx, entry)
}

func (f *failRepo) GenerateInviteToken(ctx context.Context) (string, error) {
	if f.generateTokenErr != nil {
		return "", f.generateTokenErr
	}
	return f.Repository.GenerateInviteToken(ctx)
}

func newTestService() (service.Service, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository()
	return service.NewDefaultService(repo, testJWTSecret), repo
}

func seedUser(t *testing.T, repo repository.Repository, name, email string) string {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "irrelevant"}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user.ID
}

func seedGroup(t *testing.T, svc service.Service, ownerID, name string) *models.Group {
	t.Helper()
	group, err := svc.CreateGroup(context.Background(), ownerID, models.CreateGroupRequest{Name: name})
	require.NoError(t, err)
	return group
}

// seedMember inserts a membership directly, bypassing the invitation flow.
func seedMember(t *testing.T, repo repository.Repository, groupID, userID string, role models.Role) {
	t.Helper()
	require.NoError(t, repo.AddMember(context.Background(), &models.Member{
		GroupID: groupID,
		UserID:  userID,
		Role:    role,
	}))
}

// seedInvitation inserts an invitation row directly so tests can control the
// token, status and expiry.
func seedInvitation(t *testing.T, repo repository.Repository, inv *models.Invitation) {
	t.Helper()
	if inv.Status == "" {
		inv.Status = models.InvitationPending
	}
	if inv.ExpiresAt.IsZero() {
		inv.ExpiresAt = time.Now().UTC().Add(time.Hour)
	}
	require.NoError(t, repo.CreateInvitation(context.Background(), inv))
}
