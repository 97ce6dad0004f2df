package models

import (
	"encoding/json"
	"time"
)

// Role is a member's role within a budget group.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// ValidRole reports whether r is one of the four group roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// FamilyRole is optional display-only metadata on a membership. It carries
// no authorization weight.
type FamilyRole string

const (
	FamilyRoleParent   FamilyRole = "parent"
	FamilyRoleChild    FamilyRole = "child"
	FamilyRoleGuardian FamilyRole = "guardian"
	FamilyRoleOther    FamilyRole = "other"
)

// ValidFamilyRole reports whether f is one of the allowed family roles.
func ValidFamilyRole(f FamilyRole) bool {
	switch f {
	case FamilyRoleParent, FamilyRoleChild, FamilyRoleGuardian, FamilyRoleOther:
		return true
	}
	return false
}

// InvitationStatus is the state of an invitation. Pending is the only
// non-terminal state.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
	InvitationExpired  InvitationStatus = "expired"
)

// TransactionType distinguishes income from expense rows.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// BudgetPeriod is the recurrence period of a budget.
type BudgetPeriod string

const (
	BudgetDaily   BudgetPeriod = "daily"
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

// ValidBudgetPeriod reports whether p is one of the allowed periods.
func ValidBudgetPeriod(p BudgetPeriod) bool {
	switch p {
	case BudgetDaily, BudgetWeekly, BudgetMonthly, BudgetYearly:
		return true
	}
	return false
}

// User represents a user account.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Group represents a shared budget group.
type Group struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	AvatarURL   *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// GroupWithRole is a group annotated with the requesting user's membership.
// Used when listing the groups a user belongs to.
type GroupWithRole struct {
	Group
	Role     Role      `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joinedAt"`
}

// Member represents a user's membership in a group. The (GroupID, UserID)
// pair is unique; a membership is created either as the owner side effect of
// group creation or by accepting an invitation.
type Member struct {
	GroupID    string      `db:"group_id" json:"groupId"`
	UserID     string      `db:"user_id" json:"userId"`
	Role       Role        `db:"role" json:"role"`
	FamilyRole *FamilyRole `db:"family_role" json:"familyRole,omitempty"`
	JoinedAt   time.Time   `db:"joined_at" json:"joinedAt"`
}

// MemberUser is the display info attached to a membership. When enrichment
// fails only ID is populated.
type MemberUser struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Email     string  `json:"email,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// MemberWithUser is a membership enriched with user display info.
type MemberWithUser struct {
	Member
	User MemberUser `json:"user"`
}

// Invitation represents a token-bearing, time-limited invitation to join a
// group. The token is the sole lookup key for unauthenticated retrieval.
type Invitation struct {
	ID         string           `db:"id" json:"id"`
	GroupID    string           `db:"group_id" json:"groupId"`
	InvitedBy  string           `db:"invited_by" json:"invitedBy"`
	Email      string           `db:"email" json:"email"`
	Role       Role             `db:"role" json:"role"`
	Status     InvitationStatus `db:"status" json:"status"`
	Token      string           `db:"token" json:"token"`
	FamilyRole *string          `db:"family_role" json:"familyRole,omitempty"`
	ExpiresAt  time.Time        `db:"expires_at" json:"expiresAt"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
}

// InvitationWithGroup is an invitation with denormalized group display
// fields, shown to the invitee before they have joined.
type InvitationWithGroup struct {
	Invitation
	GroupName        string  `db:"group_name" json:"groupName"`
	GroupDescription string  `db:"group_description" json:"groupDescription"`
	GroupAvatarURL   *string `db:"group_avatar_url" json:"groupAvatarUrl,omitempty"`
}

// Transaction represents a shared transaction scoped to a group.
type Transaction struct {
	ID              string          `db:"id" json:"id"`
	GroupID         string          `db:"group_id" json:"groupId"`
	CreatedBy       string          `db:"created_by" json:"createdBy"`
	CategoryID      *string         `db:"category_id" json:"categoryId,omitempty"`
	Type            TransactionType `db:"type" json:"type"`
	Amount          float64         `db:"amount" json:"amount"`
	Description     string          `db:"description" json:"description"`
	TransactionDate time.Time       `db:"transaction_date" json:"transactionDate"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// Budget represents a shared budget scoped to a group. A nil EndDate means
// the budget is open-ended.
type Budget struct {
	ID         string       `db:"id" json:"id"`
	GroupID    string       `db:"group_id" json:"groupId"`
	CreatedBy  string       `db:"created_by" json:"createdBy"`
	CategoryID *string      `db:"category_id" json:"categoryId,omitempty"`
	Name       string       `db:"name" json:"name"`
	Amount     float64      `db:"amount" json:"amount"`
	Period     BudgetPeriod `db:"period" json:"period"`
	StartDate  time.Time    `db:"start_date" json:"startDate"`
	EndDate    *time.Time   `db:"end_date" json:"endDate,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updatedAt"`
}

// ActivityEntry is an append-only audit record of a mutating action.
// Application code never updates or deletes these rows.
type ActivityEntry struct {
	ID         string          `db:"id" json:"id"`
	GroupID    string          `db:"group_id" json:"groupId"`
	UserID     string          `db:"user_id" json:"userId"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entityType"`
	EntityID   *string         `db:"entity_id" json:"entityId,omitempty"`
	Details    json.RawMessage `db:"details" json:"details,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

// ActivityEntryWithActor is an activity entry enriched with the actor's
// display info. On enrichment failure the actor fields stay empty and the
// bare UserID is all the caller gets.
type ActivityEntryWithActor struct {
	ActivityEntry
	ActorName      string  `json:"actorName,omitempty"`
	ActorAvatarURL *string `json:"actorAvatarUrl,omitempty"`
}
