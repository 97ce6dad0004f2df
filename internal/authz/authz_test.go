package authz_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/models"
)

var allRoles = []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleMember, models.RoleViewer}

func TestCanManageGroup(t *testing.T) {
	expected := map[models.Role]bool{
		models.RoleOwner:  true,
		models.RoleAdmin:  true,
		models.RoleMember: false,
		models.RoleViewer: false,
	}

	for _, role := range allRoles {
		assert.Equal(t, expected[role], authz.CanManageGroup(role), "role %s", role)
	}
}

func TestCanManageMember(t *testing.T) {
	// Full actor x target matrix, distinct users.
	expected := map[models.Role]map[models.Role]bool{
		models.RoleOwner: {
			models.RoleOwner:  true,
			models.RoleAdmin:  true,
			models.RoleMember: true,
			models.RoleViewer: true,
		},
		models.RoleAdmin: {
			models.RoleOwner:  false,
			models.RoleAdmin:  false,
			models.RoleMember: true,
			models.RoleViewer: true,
		},
		models.RoleMember: {
			models.RoleOwner:  false,
			models.RoleAdmin:  false,
			models.RoleMember: false,
			models.RoleViewer: false,
		},
		models.RoleViewer: {
			models.RoleOwner:  false,
			models.RoleAdmin:  false,
			models.RoleMember: false,
			models.RoleViewer: false,
		},
	}

	for _, actor := range allRoles {
		for _, target := range allRoles {
			t.Run(fmt.Sprintf("%s_manages_%s", actor, target), func(t *testing.T) {
				got := authz.CanManageMember(actor, target, "actor-1", "target-1")
				assert.Equal(t, expected[actor][target], got)
			})
		}
	}
}

func TestCanManageMemberSelf(t *testing.T) {
	// An owner never manages their own membership.
	assert.False(t, authz.CanManageMember(models.RoleOwner, models.RoleOwner, "u1", "u1"))

	// Admins are blocked from admin targets anyway, self included.
	assert.False(t, authz.CanManageMember(models.RoleAdmin, models.RoleAdmin, "u1", "u1"))
}

func TestCanInvite(t *testing.T) {
	invitable := []models.Role{models.RoleAdmin, models.RoleMember, models.RoleViewer}

	for _, actor := range allRoles {
		canAct := actor == models.RoleOwner || actor == models.RoleAdmin

		// An invitation can never carry the owner role, whoever asks.
		assert.False(t, authz.CanInvite(actor, models.RoleOwner), "actor %s inviting owner", actor)

		for _, invited := range invitable {
			assert.Equal(t, canAct, authz.CanInvite(actor, invited), "actor %s inviting %s", actor, invited)
		}
	}
}

func TestCanCreateEntry(t *testing.T) {
	expected := map[models.Role]bool{
		models.RoleOwner:  true,
		models.RoleAdmin:  true,
		models.RoleMember: true,
		models.RoleViewer: false,
	}

	for _, role := range allRoles {
		assert.Equal(t, expected[role], authz.CanCreateEntry(role), "role %s", role)
	}
}

func TestCanModifyEntry(t *testing.T) {
	// Owners and admins can modify anything.
	assert.True(t, authz.CanModifyEntry(models.RoleOwner, "u1", "u2"))
	assert.True(t, authz.CanModifyEntry(models.RoleAdmin, "u1", "u2"))

	// Members and viewers only touch their own rows. A viewer who created
	// a row while they still had a writing role keeps edit rights.
	assert.True(t, authz.CanModifyEntry(models.RoleMember, "u1", "u1"))
	assert.False(t, authz.CanModifyEntry(models.RoleMember, "u1", "u2"))
	assert.True(t, authz.CanModifyEntry(models.RoleViewer, "u1", "u1"))
	assert.False(t, authz.CanModifyEntry(models.RoleViewer, "u1", "u2"))
}

func TestCanRead(t *testing.T) {
	for _, role := range allRoles {
		assert.True(t, authz.CanRead(role), "role %s", role)
	}
	assert.False(t, authz.CanRead(models.Role("stranger")))
	assert.False(t, authz.CanRead(models.Role("")))
}
