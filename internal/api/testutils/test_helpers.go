package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewei/budgetgroups-server/internal/api"
	"github.com/ewei/budgetgroups-server/internal/models"
	"github.com/ewei/budgetgroups-server/internal/repository"
	"github.com/ewei/budgetgroups-server/internal/service"
)

const testJWTSecret = "test-secret-key"

// TestContext holds all dependencies for API tests. The router runs over an
// in-memory repository, so tests need no database.
type TestContext struct {
	Router     *gin.Engine
	Repository *repository.MemoryRepository
	Service    service.Service
	JWTSecret  []byte
}

// SetupTestContext builds a router with a fresh in-memory repository.
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	repo := repository.NewMemoryRepository()
	svc := service.NewDefaultService(repo, testJWTSecret)
	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(testJWTSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	return &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		JWTSecret:  []byte(testJWTSecret),
	}
}

// NewUser creates a user directly in the repository and returns its ID and a
// valid bearer token.
func (tc *TestContext) NewUser(t *testing.T, name, email string) (string, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
	}
	require.NoError(t, tc.Repository.CreateUser(context.Background(), user))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	tokenString, err := token.SignedString(tc.JWTSecret)
	require.NoError(t, err)

	return user.ID, tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// Decode unmarshals a recorded JSON response body into out.
func Decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
