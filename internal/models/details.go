package models

import "encoding/json"

// Activity actions recorded by the services. The action string together with
// EntityType determines the shape of the Details payload.
const (
	ActionCreatedGroup       = "created_group"
	ActionUpdatedGroup       = "updated_group"
	ActionDeletedGroup       = "deleted_group"
	ActionInvitedMember      = "invited_member"
	ActionJoinedGroup        = "joined_group"
	ActionUpdatedMemberRole  = "updated_member_role"
	ActionRemovedMember      = "removed_member"
	ActionAddedTransaction   = "added_transaction"
	ActionUpdatedTransaction = "updated_transaction"
	ActionDeletedTransaction = "deleted_transaction"
	ActionAddedBudget        = "added_budget"
	ActionUpdatedBudget      = "updated_budget"
	ActionDeletedBudget      = "deleted_budget"
)

// Entity types referenced by activity entries.
const (
	EntityGroup       = "group"
	EntityMember      = "member"
	EntityInvitation  = "invitation"
	EntityTransaction = "transaction"
	EntityBudget      = "budget"
)

// GroupActivityDetails is the payload for group create/update/delete entries.
type GroupActivityDetails struct {
	Name string `json:"name,omitempty"`
}

// MemberActivityDetails is the payload for membership entries.
type MemberActivityDetails struct {
	TargetUserID string `json:"targetUserId,omitempty"`
	Role         Role   `json:"role,omitempty"`
	PreviousRole Role   `json:"previousRole,omitempty"`
}

// InvitationActivityDetails is the payload for invitation entries.
type InvitationActivityDetails struct {
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// TransactionActivityDetails is the payload for transaction entries.
type TransactionActivityDetails struct {
	Amount float64         `json:"amount"`
	Type   TransactionType `json:"type"`
}

// BudgetActivityDetails is the payload for budget entries.
type BudgetActivityDetails struct {
	Name   string       `json:"name,omitempty"`
	Amount float64      `json:"amount"`
	Period BudgetPeriod `json:"period,omitempty"`
}

// EncodeDetails marshals a typed details payload for storage. A payload
// that fails to marshal is recorded as an empty object rather than
// propagating the error into the write path.
func EncodeDetails(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
