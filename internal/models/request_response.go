package models

import "time"

// Request models
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	AvatarURL   *string `json:"avatarUrl"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	AvatarURL   *string `json:"avatarUrl"`
}

type InviteRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Role       Role   `json:"role" binding:"required,oneof=admin member viewer"`
	FamilyRole string `json:"familyRole" binding:"omitempty,oneof=parent child guardian other"`
}

type UpdateMemberRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=owner admin member viewer"`
}

type CreateTransactionRequest struct {
	Type            TransactionType `json:"type" binding:"required,oneof=income expense"`
	Amount          float64         `json:"amount" binding:"required,gt=0"`
	Description     string          `json:"description"`
	CategoryID      *string         `json:"categoryId"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
}

type UpdateTransactionRequest struct {
	Type            *TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	Amount          *float64         `json:"amount" binding:"omitempty,gt=0"`
	Description     *string          `json:"description"`
	CategoryID      *string          `json:"categoryId"`
	TransactionDate *time.Time       `json:"transactionDate"`
}

type CreateBudgetRequest struct {
	Name       string       `json:"name" binding:"required"`
	Amount     float64      `json:"amount" binding:"required,gt=0"`
	Period     BudgetPeriod `json:"period" binding:"required,oneof=daily weekly monthly yearly"`
	CategoryID *string      `json:"categoryId"`
	StartDate  time.Time    `json:"startDate" binding:"required"`
	EndDate    *time.Time   `json:"endDate"`
}

type UpdateBudgetRequest struct {
	Name       *string       `json:"name"`
	Amount     *float64      `json:"amount" binding:"omitempty,gt=0"`
	Period     *BudgetPeriod `json:"period" binding:"omitempty,oneof=daily weekly monthly yearly"`
	CategoryID *string       `json:"categoryId"`
	StartDate  *time.Time    `json:"startDate"`
	EndDate    *time.Time    `json:"endDate"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type GroupResponse struct {
	Status string `json:"status"`
	Group  *Group `json:"group,omitempty"`
}

type GroupListResponse struct {
	Status string          `json:"status"`
	Groups []GroupWithRole `json:"groups"`
}

type MemberListResponse struct {
	Status  string           `json:"status"`
	Members []MemberWithUser `json:"members"`
}

type MemberResponse struct {
	Status string  `json:"status"`
	Member *Member `json:"member,omitempty"`
}

type InvitationResponse struct {
	Status     string      `json:"status"`
	Invitation *Invitation `json:"invitation,omitempty"`
}

type InvitationLookupResponse struct {
	Status     string               `json:"status"`
	Invitation *InvitationWithGroup `json:"invitation,omitempty"`
}

type InvitationListResponse struct {
	Status      string       `json:"status"`
	Invitations []Invitation `json:"invitations"`
}

type TransactionResponse struct {
	Status      string       `json:"status"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

type TransactionListResponse struct {
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"`
}

type BudgetResponse struct {
	Status string  `json:"status"`
	Budget *Budget `json:"budget,omitempty"`
}

type BudgetListResponse struct {
	Status  string   `json:"status"`
	Budgets []Budget `json:"budgets"`
}

// BudgetProgress is the derived spend-vs-budget figure for one budget.
// ProgressPercentage is clamped to [0,100] for display; IsOverBudget uses
// the unclamped comparison so callers can tell "at 100%" apart from
// "actually over".
type BudgetProgress struct {
	BudgetID           string  `json:"budgetId"`
	BudgetAmount       float64 `json:"budgetAmount"`
	SpentAmount        float64 `json:"spentAmount"`
	RemainingAmount    float64 `json:"remainingAmount"`
	ProgressPercentage float64 `json:"progressPercentage"`
	IsOverBudget       bool    `json:"isOverBudget"`
}

type BudgetProgressResponse struct {
	Status   string          `json:"status"`
	Progress *BudgetProgress `json:"progress,omitempty"`
}

// TransactionSummary is the derived income/expense/balance figure for a
// group's entire transaction history.
type TransactionSummary struct {
	GroupID       string  `json:"groupId"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}

type TransactionSummaryResponse struct {
	Status  string              `json:"status"`
	Summary *TransactionSummary `json:"summary,omitempty"`
}

type ActivityListResponse struct {
	Status  string                   `json:"status"`
	Entries []ActivityEntryWithActor `json:"entries"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
