package repository

import (
	"context"
	"time"

	"github.com/ewei/budgetgroups-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy.
//
// Lookup methods return (nil, nil) when the row does not exist; services
// translate that into a NotFound error kind. Uniqueness violations are
// returned as Conflict-kinded errors by every implementation.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error)

	// Group operations
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, groupID string) error
	GetUserGroups(ctx context.Context, userID string) ([]models.GroupWithRole, error)

	// Membership operations
	AddMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, groupID, userID string) (*models.Member, error)
	UpdateMemberRole(ctx context.Context, groupID, userID string, role models.Role) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	ListMembers(ctx context.Context, groupID string) ([]models.Member, error)

	// Invitation operations
	CreateInvitation(ctx context.Context, invitation *models.Invitation) error
	GetInvitationByToken(ctx context.Context, token string) (*models.InvitationWithGroup, error)
	ListPendingInvitationsByEmail(ctx context.Context, email string) ([]models.Invitation, error)
	UpdateInvitationStatus(ctx context.Context, invitationID string, status models.InvitationStatus) error

	// GenerateInviteToken asks the store for a server-side generated token.
	// Callers fall back to a locally generated token when this path is
	// unavailable.
	GenerateInviteToken(ctx context.Context) (string, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransaction(ctx context.Context, txnID string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, txnID string) error
	ListTransactions(ctx context.Context, groupID string) ([]models.Transaction, error)

	// Budget operations
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetBudget(ctx context.Context, budgetID string) (*models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
	ListBudgets(ctx context.Context, groupID string) ([]models.Budget, error)
	ListActiveBudgets(ctx context.Context, groupID string, asOf time.Time) ([]models.Budget, error)

	// Activity log operations. The log is append-only; there is no update
	// or delete.
	InsertActivity(ctx context.Context, entry *models.ActivityEntry) error
	ListActivity(ctx context.Context, groupID string, limit int) ([]models.ActivityEntry, error)
}
