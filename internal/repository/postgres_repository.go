package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate membership, duplicate invitation token, ...).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// User repository methods

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Password, user.AvatarURL, user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, err, "user with email %s already exists", user.Email)
	}

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	if len(ids) == 0 {
		return map[string]models.User{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// Group repository methods

func (r *PostgresRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (id, name, description, created_by, is_active, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if group.ID == "" {
		group.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now
	group.IsActive = true

	_, err := r.db.ExecContext(ctx, query,
		group.ID, group.Name, group.Description, group.CreatedBy,
		group.IsActive, group.AvatarURL, group.CreatedAt, group.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	query := `SELECT * FROM groups WHERE id = $1`

	var group models.Group
	err := r.db.GetContext(ctx, &group, query, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Group not found
		}
		return nil, err
	}

	return &group, nil
}

func (r *PostgresRepository) UpdateGroup(ctx context.Context, group *models.Group) error {
	query := `
		UPDATE groups
		SET name = $2, description = $3, is_active = $4, avatar_url = $5, updated_at = $6
		WHERE id = $1
	`

	group.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		group.ID, group.Name, group.Description, group.IsActive, group.AvatarURL, group.UpdatedAt)

	return err
}

func (r *PostgresRepository) DeleteGroup(ctx context.Context, groupID string) error {
	// Memberships, invitations, shared transactions/budgets and activity
	// rows go with the group via ON DELETE CASCADE.
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, groupID)
	return err
}

func (r *PostgresRepository) GetUserGroups(ctx context.Context, userID string) ([]models.GroupWithRole, error) {
	query := `
		SELECT g.*, gm.role, gm.joined_at FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = $1
		ORDER BY gm.joined_at DESC
	`

	var groups []models.GroupWithRole
	err := r.db.SelectContext(ctx, &groups, query, userID)
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// Membership repository methods

func (r *PostgresRepository) AddMember(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO group_members (group_id, user_id, role, family_role, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		member.GroupID, member.UserID, member.Role, member.FamilyRole, member.JoinedAt)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, err,
			"user %s is already a member of group %s", member.UserID, member.GroupID)
	}

	return err
}

func (r *PostgresRepository) GetMember(ctx context.Context, groupID, userID string) (*models.Member, error) {
	query := `SELECT * FROM group_members WHERE group_id = $1 AND user_id = $2`

	var member models.Member
	err := r.db.GetContext(ctx, &member, query, groupID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not a member
		}
		return nil, err
	}

	return &member, nil
}

func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.Role) error {
	query := `UPDATE group_members SET role = $3 WHERE group_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, groupID, userID, role)
	return err
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, groupID, userID)
	return err
}

func (r *PostgresRepository) ListMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	query := `SELECT * FROM group_members WHERE group_id = $1 ORDER BY joined_at ASC`

	var members []models.Member
	err := r.db.SelectContext(ctx, &members, query, groupID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

// Invitation repository methods

func (r *PostgresRepository) CreateInvitation(ctx context.Context, invitation *models.Invitation) error {
	query := `
		INSERT INTO group_invitations (id, group_id, invited_by, email, role, status, token, family_role, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if invitation.ID == "" {
		invitation.ID = uuid.New().String()
	}
	invitation.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		invitation.ID, invitation.GroupID, invitation.InvitedBy, invitation.Email,
		invitation.Role, invitation.Status, invitation.Token, invitation.FamilyRole,
		invitation.ExpiresAt, invitation.CreatedAt)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, err, "invitation token already exists")
	}

	return err
}

func (r *PostgresRepository) GetInvitationByToken(ctx context.Context, token string) (*models.InvitationWithGroup, error) {
	query := `
		SELECT i.*, g.name AS group_name, g.description AS group_description, g.avatar_url AS group_avatar_url
		FROM group_invitations i
		JOIN groups g ON g.id = i.group_id
		WHERE i.token = $1
	`

	var invitation models.InvitationWithGroup
	err := r.db.GetContext(ctx, &invitation, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Invitation not found
		}
		return nil, err
	}

	return &invitation, nil
}

func (r *PostgresRepository) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	query := `
		SELECT * FROM group_invitations
		WHERE email = $1 AND status = $2
		ORDER BY created_at DESC
	`

	var invitations []models.Invitation
	err := r.db.SelectContext(ctx, &invitations, query, email, models.InvitationPending)
	if err != nil {
		return nil, err
	}

	return invitations, nil
}

func (r *PostgresRepository) UpdateInvitationStatus(ctx context.Context, invitationID string, status models.InvitationStatus) error {
	query := `UPDATE group_invitations SET status = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, invitationID, status)
	return err
}

func (r *PostgresRepository) GenerateInviteToken(ctx context.Context) (string, error) {
	// generate_invite_token() runs with server-side privileges; callers
	// fall back to a local token when the function is unavailable.
	var token string
	err := r.db.QueryRowContext(ctx, `SELECT generate_invite_token()`).Scan(&token)
	if err != nil {
		return "", err
	}

	return token, nil
}

// Transaction repository methods

func (r *PostgresRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO group_transactions (id, group_id, created_by, category_id, type, amount, description, transaction_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.GroupID, txn.CreatedBy, txn.CategoryID, txn.Type,
		txn.Amount, txn.Description, txn.TransactionDate, txn.CreatedAt, txn.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, txnID string) (*models.Transaction, error) {
	query := `SELECT * FROM group_transactions WHERE id = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, txnID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Transaction not found
		}
		return nil, err
	}

	return &txn, nil
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		UPDATE group_transactions
		SET category_id = $2, type = $3, amount = $4, description = $5, transaction_date = $6, updated_at = $7
		WHERE id = $1
	`

	txn.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.CategoryID, txn.Type, txn.Amount, txn.Description, txn.TransactionDate, txn.UpdatedAt)

	return err
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, txnID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM group_transactions WHERE id = $1`, txnID)
	return err
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, groupID string) ([]models.Transaction, error) {
	query := `SELECT * FROM group_transactions WHERE group_id = $1 ORDER BY transaction_date DESC, created_at DESC`

	var txns []models.Transaction
	err := r.db.SelectContext(ctx, &txns, query, groupID)
	if err != nil {
		return nil, err
	}

	return txns, nil
}

// Budget repository methods

func (r *PostgresRepository) CreateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		INSERT INTO group_budgets (id, group_id, created_by, category_id, name, amount, period, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	budget.CreatedAt = now
	budget.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		budget.ID, budget.GroupID, budget.CreatedBy, budget.CategoryID, budget.Name,
		budget.Amount, budget.Period, budget.StartDate, budget.EndDate, budget.CreatedAt, budget.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetBudget(ctx context.Context, budgetID string) (*models.Budget, error) {
	query := `SELECT * FROM group_budgets WHERE id = $1`

	var budget models.Budget
	err := r.db.GetContext(ctx, &budget, query, budgetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Budget not found
		}
		return nil, err
	}

	return &budget, nil
}

func (r *PostgresRepository) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		UPDATE group_budgets
		SET category_id = $2, name = $3, amount = $4, period = $5, start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $1
	`

	budget.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		budget.ID, budget.CategoryID, budget.Name, budget.Amount, budget.Period,
		budget.StartDate, budget.EndDate, budget.UpdatedAt)

	return err
}

func (r *PostgresRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM group_budgets WHERE id = $1`, budgetID)
	return err
}

func (r *PostgresRepository) ListBudgets(ctx context.Context, groupID string) ([]models.Budget, error) {
	query := `SELECT * FROM group_budgets WHERE group_id = $1 ORDER BY start_date DESC`

	var budgets []models.Budget
	err := r.db.SelectContext(ctx, &budgets, query, groupID)
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

func (r *PostgresRepository) ListActiveBudgets(ctx context.Context, groupID string, asOf time.Time) ([]models.Budget, error) {
	// Open-ended budgets have a NULL end date, hence the disjunction.
	query := `
		SELECT * FROM group_budgets
		WHERE group_id = $1 AND start_date <= $2 AND (end_date IS NULL OR end_date >= $2)
		ORDER BY start_date DESC
	`

	var budgets []models.Budget
	err := r.db.SelectContext(ctx, &budgets, query, groupID, asOf)
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

// Activity log repository methods

func (r *PostgresRepository) InsertActivity(ctx context.Context, entry *models.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (id, group_id, user_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	details := entry.Details
	if details == nil {
		details = []byte(`{}`)
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.GroupID, entry.UserID, entry.Action, entry.EntityType,
		entry.EntityID, details, entry.CreatedAt)

	return err
}

func (r *PostgresRepository) ListActivity(ctx context.Context, groupID string, limit int) ([]models.ActivityEntry, error) {
	query := `
		SELECT * FROM activity_log
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var entries []models.ActivityEntry
	err := r.db.SelectContext(ctx, &entries, query, groupID, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
