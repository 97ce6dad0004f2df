package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewei/budgetgroups-server/internal/api/testutils"
	"github.com/ewei/budgetgroups-server/internal/models"
)

func createGroup(t *testing.T, testCtx *testutils.TestContext, token, name string) *models.Group {
	t.Helper()

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/groups",
		models.CreateGroupRequest{Name: name}, testutils.AuthHeaders(token))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.GroupResponse
	testutils.Decode(t, w, &resp)
	require.NotNil(t, resp.Group)
	return resp.Group
}

func TestGroupLifecycle(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	ownerID, ownerToken := testCtx.NewUser(t, "Alice", "alice@example.com")

	// Test case 1: Create a group, creator becomes owner
	group := createGroup(t, testCtx, ownerToken, "Household")
	assert.Equal(t, ownerID, group.CreatedBy)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/groups", nil,
		testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp models.GroupListResponse
	testutils.Decode(t, w, &listResp)
	require.Len(t, listResp.Groups, 1)
	assert.Equal(t, models.RoleOwner, listResp.Groups[0].Role)

	// Test case 2: Update the group
	newName := "Family"
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/groups/"+group.ID,
		models.UpdateGroupRequest{Name: &newName}, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	var groupResp models.GroupResponse
	testutils.Decode(t, w, &groupResp)
	assert.Equal(t, "Family", groupResp.Group.Name)

	// Test case 3: Delete the group
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/groups/"+group.ID,
		nil, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/groups/"+group.ID,
		nil, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGroupAccessDeniedForNonMember(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	_, ownerToken := testCtx.NewUser(t, "Alice", "alice@example.com")
	_, outsiderToken := testCtx.NewUser(t, "Bob", "bob@example.com")

	group := createGroup(t, testCtx, ownerToken, "Household")

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/groups/"+group.ID,
		nil, testutils.AuthHeaders(outsiderToken))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/groups/"+group.ID+"/members",
		nil, testutils.AuthHeaders(outsiderToken))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemberManagement(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	ownerID, ownerToken := testCtx.NewUser(t, "Alice", "alice@example.com")
	memberID, memberToken := testCtx.NewUser(t, "Bob", "bob@example.com")

	group := createGroup(t, testCtx, ownerToken, "Household")
	joinGroup(t, testCtx, ownerToken, memberToken, group.ID, "bob@example.com", models.RoleMember)

	// Test case 1: Members are listed with display info
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet,
		fmt.Sprintf("/api/groups/%s/members", group.ID), nil, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp models.MemberListResponse
	testutils.Decode(t, w, &listResp)
	require.Len(t, listResp.Members, 2)

	// Test case 2: Owner promotes the member to admin
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut,
		fmt.Sprintf("/api/groups/%s/members/%s", group.ID, memberID),
		models.UpdateMemberRoleRequest{Role: models.RoleAdmin}, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	var memberResp models.MemberResponse
	testutils.Decode(t, w, &memberResp)
	assert.Equal(t, models.RoleAdmin, memberResp.Member.Role)

	// Test case 3: The admin cannot demote the owner
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut,
		fmt.Sprintf("/api/groups/%s/members/%s", group.ID, ownerID),
		models.UpdateMemberRoleRequest{Role: models.RoleViewer}, testutils.AuthHeaders(memberToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Test case 4: Owner removes the member
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete,
		fmt.Sprintf("/api/groups/%s/members/%s", group.ID, memberID),
		nil, testutils.AuthHeaders(ownerToken))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/groups/"+group.ID,
		nil, testutils.AuthHeaders(memberToken))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
