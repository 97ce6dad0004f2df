package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// MemoryRepository implements the Repository interface in memory. It backs
// the test suites and local development without a Postgres instance, and
// enforces the same uniqueness rules as the SQL schema.
type MemoryRepository struct {
	mu           sync.Mutex
	users        map[string]models.User
	groups       map[string]models.Group
	members      map[string]map[string]models.Member // groupID -> userID -> member
	invitations  map[string]models.Invitation        // by ID
	transactions map[string]models.Transaction
	budgets      map[string]models.Budget
	activity     []models.ActivityEntry
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]models.User),
		groups:       make(map[string]models.Group),
		members:      make(map[string]map[string]models.Member),
		invitations:  make(map[string]models.Invitation),
		transactions: make(map[string]models.Transaction),
		budgets:      make(map[string]models.Budget),
	}
}

// User methods

func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.New(apperrors.Conflict, "user with email %s already exists", user.Email)
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			byID[id] = u
		}
	}
	return byID, nil
}

// Group methods

func (r *MemoryRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now
	group.IsActive = true

	r.groups[group.ID] = *group
	return nil
}

func (r *MemoryRepository) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.groups[groupID]; ok {
		group := g
		return &group, nil
	}
	return nil, nil
}

func (r *MemoryRepository) UpdateGroup(ctx context.Context, group *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[group.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "group %s not found", group.ID)
	}
	group.UpdatedAt = time.Now().UTC()
	r.groups[group.ID] = *group
	return nil
}

func (r *MemoryRepository) DeleteGroup(ctx context.Context, groupID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.groups, groupID)
	delete(r.members, groupID)

	// Cascade, mirroring the SQL schema.
	for id, inv := range r.invitations {
		if inv.GroupID == groupID {
			delete(r.invitations, id)
		}
	}
	for id, txn := range r.transactions {
		if txn.GroupID == groupID {
			delete(r.transactions, id)
		}
	}
	for id, b := range r.budgets {
		if b.GroupID == groupID {
			delete(r.budgets, id)
		}
	}
	kept := r.activity[:0]
	for _, e := range r.activity {
		if e.GroupID != groupID {
			kept = append(kept, e)
		}
	}
	r.activity = kept

	return nil
}

func (r *MemoryRepository) GetUserGroups(ctx context.Context, userID string) ([]models.GroupWithRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var groups []models.GroupWithRole
	for groupID, byUser := range r.members {
		m, ok := byUser[userID]
		if !ok {
			continue
		}
		g, ok := r.groups[groupID]
		if !ok {
			continue
		}
		groups = append(groups, models.GroupWithRole{Group: g, Role: m.Role, JoinedAt: m.JoinedAt})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].JoinedAt.After(groups[j].JoinedAt)
	})
	return groups, nil
}

// Membership methods

func (r *MemoryRepository) AddMember(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byUser, ok := r.members[member.GroupID]
	if !ok {
		byUser = make(map[string]models.Member)
		r.members[member.GroupID] = byUser
	}
	if _, exists := byUser[member.UserID]; exists {
		return apperrors.New(apperrors.Conflict,
			"user %s is already a member of group %s", member.UserID, member.GroupID)
	}

	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	byUser[member.UserID] = *member
	return nil
}

func (r *MemoryRepository) GetMember(ctx context.Context, groupID, userID string) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.members[groupID][userID]; ok {
		member := m
		return &member, nil
	}
	return nil, nil
}

func (r *MemoryRepository) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[groupID][userID]
	if !ok {
		return apperrors.New(apperrors.NotFound, "membership not found")
	}
	m.Role = role
	r.members[groupID][userID] = m
	return nil
}

func (r *MemoryRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members[groupID], userID)
	return nil
}

func (r *MemoryRepository) ListMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var members []models.Member
	for _, m := range r.members[groupID] {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members, nil
}

// Invitation methods

func (r *MemoryRepository) CreateInvitation(ctx context.Context, invitation *models.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inv := range r.invitations {
		if inv.Token == invitation.Token {
			return apperrors.New(apperrors.Conflict, "invitation token already exists")
		}
	}

	if invitation.ID == "" {
		invitation.ID = uuid.New().String()
	}
	invitation.CreatedAt = time.Now().UTC()

	r.invitations[invitation.ID] = *invitation
	return nil
}

func (r *MemoryRepository) GetInvitationByToken(ctx context.Context, token string) (*models.InvitationWithGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inv := range r.invitations {
		if inv.Token != token {
			continue
		}
		result := models.InvitationWithGroup{Invitation: inv}
		if g, ok := r.groups[inv.GroupID]; ok {
			result.GroupName = g.Name
			result.GroupDescription = g.Description
			result.GroupAvatarURL = g.AvatarURL
		}
		return &result, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var invitations []models.Invitation
	for _, inv := range r.invitations {
		if inv.Email == email && inv.Status == models.InvitationPending {
			invitations = append(invitations, inv)
		}
	}
	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})
	return invitations, nil
}

func (r *MemoryRepository) UpdateInvitationStatus(ctx context.Context, invitationID string, status models.InvitationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.invitations[invitationID]
	if !ok {
		return apperrors.New(apperrors.NotFound, "invitation %s not found", invitationID)
	}
	inv.Status = status
	r.invitations[invitationID] = inv
	return nil
}

func (r *MemoryRepository) GenerateInviteToken(ctx context.Context) (string, error) {
	return uuid.New().String() + uuid.New().String(), nil
}

// Transaction methods

func (r *MemoryRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	r.transactions[txn.ID] = *txn
	return nil
}

func (r *MemoryRepository) GetTransaction(ctx context.Context, txnID string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.transactions[txnID]; ok {
		txn := t
		return &txn, nil
	}
	return nil, nil
}

func (r *MemoryRepository) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[txn.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "transaction %s not found", txn.ID)
	}
	txn.UpdatedAt = time.Now().UTC()
	r.transactions[txn.ID] = *txn
	return nil
}

func (r *MemoryRepository) DeleteTransaction(ctx context.Context, txnID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.transactions, txnID)
	return nil
}

func (r *MemoryRepository) ListTransactions(ctx context.Context, groupID string) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var txns []models.Transaction
	for _, t := range r.transactions {
		if t.GroupID == groupID {
			txns = append(txns, t)
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].TransactionDate.After(txns[j].TransactionDate)
	})
	return txns, nil
}

// Budget methods

func (r *MemoryRepository) CreateBudget(ctx context.Context, budget *models.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	budget.CreatedAt = now
	budget.UpdatedAt = now

	r.budgets[budget.ID] = *budget
	return nil
}

func (r *MemoryRepository) GetBudget(ctx context.Context, budgetID string) (*models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.budgets[budgetID]; ok {
		budget := b
		return &budget, nil
	}
	return nil, nil
}

func (r *MemoryRepository) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.budgets[budget.ID]; !ok {
		return apperrors.New(apperrors.NotFound, "budget %s not found", budget.ID)
	}
	budget.UpdatedAt = time.Now().UTC()
	r.budgets[budget.ID] = *budget
	return nil
}

func (r *MemoryRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.budgets, budgetID)
	return nil
}

func (r *MemoryRepository) ListBudgets(ctx context.Context, groupID string) ([]models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var budgets []models.Budget
	for _, b := range r.budgets {
		if b.GroupID == groupID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].StartDate.After(budgets[j].StartDate)
	})
	return budgets, nil
}

func (r *MemoryRepository) ListActiveBudgets(ctx context.Context, groupID string, asOf time.Time) ([]models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var budgets []models.Budget
	for _, b := range r.budgets {
		if b.GroupID != groupID {
			continue
		}
		if b.StartDate.After(asOf) {
			continue
		}
		if b.EndDate != nil && b.EndDate.Before(asOf) {
			continue
		}
		budgets = append(budgets, b)
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].StartDate.After(budgets[j].StartDate)
	})
	return budgets, nil
}

// Activity log methods

func (r *MemoryRepository) InsertActivity(ctx context.Context, entry *models.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	r.activity = append(r.activity, *entry)
	return nil
}

func (r *MemoryRepository) ListActivity(ctx context.Context, groupID string, limit int) ([]models.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []models.ActivityEntry
	for _, e := range r.activity {
		if e.GroupID == groupID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
