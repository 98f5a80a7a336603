package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"trainhub/backend/config"
	"trainhub/backend/models"
	"trainhub/backend/routes"
	"trainhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	app        *fiber.App
	db         *gorm.DB
	cfg        *config.Config
	adminUser  models.User
	adminToken string
	userSeq    int
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "trainhub_test",
		DBSSLMode:  "disable",
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	var err error
	db, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	adminUser = createTestUser("Admin", true, nil)
	adminToken = tokenFor(adminUser)
}

func teardown() {
	db.Migrator().DropTable(
		"course_user_links",
		"course_role_links",
	)
	db.Migrator().DropTable(
		&models.QuizAttempt{},
		&models.QuizQuestion{},
		&models.Quiz{},
		&models.Course{},
		&models.Notification{},
		&models.User{},
		&models.Role{},
	)
}

func createTestUser(name string, isAdmin bool, roleID *uuid.UUID) models.User {
	userSeq++
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s%d@example.com", name, userSeq),
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		IsActive:     true,
		RoleID:       roleID,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(err)
	}
	return user
}

func tokenFor(user models.User) string {
	token, err := utils.GenerateJWTToken(user.ID, cfg)
	if err != nil {
		panic(err)
	}
	return token
}

// doRequest выполняет запрос к тестовому приложению и декодирует JSON ответ
func doRequest(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		json.Unmarshal(raw, &result)
	}
	return resp.StatusCode, result
}

func doRequestList(t *testing.T, method, path, token string) (int, []interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result []interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}
