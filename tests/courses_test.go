package tests

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCourse(t *testing.T, title string) uuid.UUID {
	t.Helper()

	status, result := doRequest(t, "POST", "/api/admin/courses", adminToken, map[string]interface{}{
		"title":     title,
		"is_active": true,
	})
	require.Equal(t, fiber.StatusOK, status)

	course := result["course"].(map[string]interface{})
	id, err := uuid.Parse(course["id"].(string))
	require.NoError(t, err)
	return id
}

func createTestRole(t *testing.T, name string) uuid.UUID {
	t.Helper()

	status, result := doRequest(t, "POST", "/api/admin/roles", adminToken, map[string]string{
		"name": name,
	})
	require.Equal(t, fiber.StatusOK, status)

	role := result["role"].(map[string]interface{})
	id, err := uuid.Parse(role["id"].(string))
	require.NoError(t, err)
	return id
}

func assignUserToCourse(t *testing.T, courseID, userID uuid.UUID) {
	t.Helper()

	status, _ := doRequest(t, "POST", fmt.Sprintf("/api/admin/courses/%s/users", courseID), adminToken,
		map[string]string{"user_id": userID.String()})
	require.Equal(t, fiber.StatusOK, status)
}

func assignRoleToCourse(t *testing.T, courseID, roleID uuid.UUID) {
	t.Helper()

	status, _ := doRequest(t, "POST", fmt.Sprintf("/api/admin/courses/%s/roles", courseID), adminToken,
		map[string]string{"role_id": roleID.String()})
	require.Equal(t, fiber.StatusOK, status)
}

func TestCreateCourse(t *testing.T) {
	status, result := doRequest(t, "POST", "/api/admin/courses", adminToken, map[string]interface{}{
		"title":       "Onboarding",
		"description": "Intro course",
		"is_active":   true,
	})

	assert.Equal(t, fiber.StatusOK, status)
	course := result["course"].(map[string]interface{})
	assert.Equal(t, "Onboarding", course["title"])
	assert.Equal(t, float64(1), course["current_cycle"])
}

func TestUpdateCoursePartial(t *testing.T) {
	courseID := createTestCourse(t, "Partial Update")

	status, result := doRequest(t, "PUT", fmt.Sprintf("/api/admin/courses/%s", courseID), adminToken,
		map[string]string{"description": "Only the description changes"})

	assert.Equal(t, fiber.StatusOK, status)
	course := result["course"].(map[string]interface{})
	// Поля, которых нет в запросе, остаются прежними
	assert.Equal(t, "Partial Update", course["title"])
	assert.Equal(t, "Only the description changes", course["description"])
	assert.Equal(t, true, course["is_active"])
}

func TestCourseNotFound(t *testing.T) {
	status, _ := doRequest(t, "PUT", fmt.Sprintf("/api/admin/courses/%s", uuid.New()), adminToken,
		map[string]string{"title": "Ghost"})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAssignedUsersUnion(t *testing.T) {
	courseID := createTestCourse(t, "Membership Union")
	roleID := createTestRole(t, "engineers")

	direct := createTestUser("DirectOnly", false, nil)
	roleOnly := createTestUser("RoleOnly", false, &roleID)
	both := createTestUser("BothWays", false, &roleID)

	assignUserToCourse(t, courseID, direct.ID)
	assignUserToCourse(t, courseID, both.ID)
	assignRoleToCourse(t, courseID, roleID)

	status, users := doRequestList(t, "GET", fmt.Sprintf("/api/admin/courses/%s/assigned", courseID), adminToken)
	require.Equal(t, fiber.StatusOK, status)

	seen := map[string]int{}
	for _, u := range users {
		seen[u.(map[string]interface{})["id"].(string)]++
	}

	assert.Len(t, users, 3)
	// Пользователь, назначенный и напрямую, и через роль, встречается один раз
	assert.Equal(t, 1, seen[direct.ID.String()])
	assert.Equal(t, 1, seen[roleOnly.ID.String()])
	assert.Equal(t, 1, seen[both.ID.String()])
}

func TestGetMyCourses(t *testing.T) {
	courseID := createTestCourse(t, "My Courses Direct")
	roleID := createTestRole(t, "analysts")
	roleCourseID := createTestCourse(t, "My Courses Via Role")
	assignRoleToCourse(t, roleCourseID, roleID)

	user := createTestUser("MyCoursesUser", false, &roleID)
	assignUserToCourse(t, courseID, user.ID)

	status, courses := doRequestList(t, "GET", "/api/courses/my", tokenFor(user))
	require.Equal(t, fiber.StatusOK, status)

	ids := map[string]bool{}
	for _, c := range courses {
		ids[c.(map[string]interface{})["id"].(string)] = true
	}
	assert.True(t, ids[courseID.String()])
	assert.True(t, ids[roleCourseID.String()])
}

func TestIncrementCycle(t *testing.T) {
	courseID := createTestCourse(t, "Cycle Course")

	status, result := doRequest(t, "POST", fmt.Sprintf("/api/admin/courses/%s/cycle", courseID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	course := result["course"].(map[string]interface{})
	assert.Equal(t, float64(2), course["current_cycle"])

	status, result = doRequest(t, "POST", fmt.Sprintf("/api/admin/courses/%s/cycle", courseID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(3), result["course"].(map[string]interface{})["current_cycle"])
}

func TestCourseProgressEmptyCourse(t *testing.T) {
	courseID := createTestCourse(t, "No Members Yet")

	status, result := doRequest(t, "GET", fmt.Sprintf("/api/courses/%s/progress", courseID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	// Пустой курс отдаёт пустой список, а не null
	rows, ok := result["progress"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, rows, 0)
}

func TestProgressRequiresAdmin(t *testing.T) {
	courseID := createTestCourse(t, "Progress Access")
	user := createTestUser("NonAdminProgress", false, nil)

	status, _ := doRequest(t, "GET", fmt.Sprintf("/api/courses/%s/progress", courseID), tokenFor(user), nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}
