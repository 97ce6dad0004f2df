// Package authz provides the pure authorization rules for budget groups.
//
// Authorization rules:
//   - Owners and admins manage group settings and deletion
//   - Owners can change or remove any member except themselves
//   - Admins can change or remove only members and viewers, never owners
//     or other admins
//   - Owners and admins invite; an invitation can never carry the owner role
//   - Owners, admins and members create transactions and budgets; viewers
//     cannot
//   - Anyone who created a transaction or budget can still edit or delete
//     it, whatever their current role
//   - Every member of a group, viewers included, can read
//
// The package performs no I/O; callers resolve the actor's role first and
// pass it in explicitly.
package authz

import "github.com/ewei/budgetgroups-server/internal/models"

// CanManageGroup reports whether actor may change group settings or delete
// the group.
func CanManageGroup(actor models.Role) bool {
	switch actor {
	case models.RoleOwner, models.RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageMember reports whether actor may change the role of, or remove,
// the target membership. The same matrix covers both operations.
func CanManageMember(actorRole, targetRole models.Role, actorID, targetID string) bool {
	switch actorRole {
	case models.RoleOwner:
		// An owner manages everyone but themselves; there is no
		// self-demotion path for the sole owner.
		return actorID != targetID
	case models.RoleAdmin:
		switch targetRole {
		case models.RoleMember, models.RoleViewer:
			return true
		default:
			return false
		}
	default:
		return false
	}
}

// CanInvite reports whether actor may issue an invitation carrying the given
// role. Invitations never re-create an owner.
func CanInvite(actor, invited models.Role) bool {
	if actor != models.RoleOwner && actor != models.RoleAdmin {
		return false
	}
	switch invited {
	case models.RoleAdmin, models.RoleMember, models.RoleViewer:
		return true
	default:
		return false
	}
}

// CanCreateEntry reports whether actor may create a shared transaction or
// budget in the group.
func CanCreateEntry(actor models.Role) bool {
	switch actor {
	case models.RoleOwner, models.RoleAdmin, models.RoleMember:
		return true
	default:
		return false
	}
}

// CanModifyEntry reports whether actor may edit or delete an existing
// transaction or budget. Owners and admins always can; the original creator
// keeps that ability regardless of their current role.
func CanModifyEntry(actorRole models.Role, actorID, creatorID string) bool {
	if actorRole == models.RoleOwner || actorRole == models.RoleAdmin {
		return true
	}
	return actorID == creatorID
}

// CanRead reports whether actor may read group data (members, transactions,
// budgets, activity). Any membership role suffices.
func CanRead(actor models.Role) bool {
	return models.ValidRole(actor)
}
