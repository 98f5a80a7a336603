package tests

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	status, result := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"name":     "New User",
		"email":    "newuser@example.com",
		"password": "password123",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	status, _ := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Short Pass",
		"email":    "shortpass@example.com",
		"password": "short",
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestLogin(t *testing.T) {
	user := createTestUser("LoginUser", false, nil)

	status, result := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "password123",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])
	assert.Equal(t, user.Name, result["user"].(map[string]interface{})["name"])
}

func TestLoginWrongPassword(t *testing.T) {
	user := createTestUser("WrongPass", false, nil)

	status, _ := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "not-the-password",
	})

	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGetProfile(t *testing.T) {
	user := createTestUser("ProfileUser", false, nil)

	status, result := doRequest(t, "GET", "/api/user/profile", tokenFor(user), nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, user.Name, result["name"])
	assert.Equal(t, user.Email, result["email"])
}

func TestAdminRouteRequiresAdmin(t *testing.T) {
	user := createTestUser("Regular", false, nil)

	status, _ := doRequest(t, "GET", "/api/admin/users", tokenFor(user), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doRequest(t, "GET", "/api/admin/users", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
}
