package service

import (
	"context"
	"time"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/models"
	"github.com/ewei/budgetgroups-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Group operations
	CreateGroup(ctx context.Context, userID string, req models.CreateGroupRequest) (*models.Group, error)
	GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context, userID string) ([]models.GroupWithRole, error)
	UpdateGroup(ctx context.Context, userID, groupID string, req models.UpdateGroupRequest) (*models.Group, error)
	DeleteGroup(ctx context.Context, userID, groupID string) error

	// Membership operations
	ListMembers(ctx context.Context, userID, groupID string) ([]models.MemberWithUser, error)
	UpdateMemberRole(ctx context.Context, actorID, groupID, targetUserID string, role models.Role) (*models.Member, error)
	RemoveMember(ctx context.Context, actorID, groupID, targetUserID string) error

	// Invitation operations
	InviteMember(ctx context.Context, actorID, groupID string, req models.InviteRequest) (*models.Invitation, error)
	LookupInvitation(ctx context.Context, token string) (*models.InvitationWithGroup, error)
	ListInvitationsForEmail(ctx context.Context, email string) ([]models.Invitation, error)
	AcceptInvitation(ctx context.Context, token, userID string) (*models.Invitation, error)
	RejectInvitation(ctx context.Context, token string) (*models.Invitation, error)

	// Shared transaction operations
	CreateTransaction(ctx context.Context, actorID, groupID string, req models.CreateTransactionRequest) (*models.Transaction, error)
	ListTransactions(ctx context.Context, actorID, groupID string) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, actorID, groupID, txnID string, req models.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, actorID, groupID, txnID string) error

	// Shared budget operations
	CreateBudget(ctx context.Context, actorID, groupID string, req models.CreateBudgetRequest) (*models.Budget, error)
	ListBudgets(ctx context.Context, actorID, groupID string, activeOnly bool) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, actorID, groupID, budgetID string, req models.UpdateBudgetRequest) (*models.Budget, error)
	DeleteBudget(ctx context.Context, actorID, groupID, budgetID string) error

	// Aggregation
	BudgetProgress(ctx context.Context, actorID, groupID, budgetID string) (*models.BudgetProgress, error)
	TransactionSummary(ctx context.Context, actorID, groupID string) (*models.TransactionSummary, error)

	// Activity log
	ListActivity(ctx context.Context, actorID, groupID string, limit int) ([]models.ActivityEntryWithActor, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// actorRole resolves the actor's role in the group. A missing membership is
// NotFound and means no access; it never defaults to a role.
func (s *DefaultService) actorRole(ctx context.Context, groupID, userID string) (models.Role, error) {
	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return "", apperrors.Wrap(apperrors.Upstream, err, "error checking membership")
	}
	if member == nil {
		return "", apperrors.New(apperrors.NotFound, "user is not a member of this group")
	}
	return member.Role, nil
}

// errUnauthorized builds the Unauthorized error returned whenever the
// evaluator denies an operation.
func errUnauthorized(what string) error {
	return apperrors.New(apperrors.Unauthorized, "you don't have permission to %s", what)
}

// upstream wraps a repository error as Upstream unless the repository
// already classified it (e.g. Conflict on a uniqueness violation).
func upstream(err error, msg string) error {
	if err == nil {
		return nil
	}
	if apperrors.KindOf(err) != apperrors.Unknown {
		return err
	}
	return apperrors.Wrap(apperrors.Upstream, err, "%s", msg)
}
