package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/config"
	"github.com/recipeshare/internal/db"
	"github.com/recipeshare/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"
)

var handlerDBSeq atomic.Int64

func setupTestDB(t *testing.T) (*API, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", handlerDBSeq.Add(1)))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	gdb.Logger = logger.Discard
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := RegisterValidators(); err != nil {
		t.Fatalf("failed to register validators: %v", err)
	}

	cfg := config.AppConfig{
		UploadDir:          t.TempDir(),
		MaxUploadBytes:     1 << 20,
		BcryptCost:         bcrypt.MinCost,
		RecentRecipeWindow: 24 * time.Hour,
	}

	return NewAPI(gdb, cfg), func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// newSessionEngine 构造带会话中间件的最小引擎，供需要 cookie 的用例使用
func newSessionEngine(api *API) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(api.CurrentUser())
	return r
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func seedUser(t *testing.T, api *API, username string) *db.User {
	t.Helper()
	user, err := api.users.Register(context.Background(), service.RegisterInput{
		Email:    username + "@example.com",
		Username: username,
		Password: "pw-" + username,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedRecipe(t *testing.T, api *API, userID uint, title string, ingredients ...string) *db.Recipe {
	t.Helper()
	recipe, err := api.recipes.Create(context.Background(), service.RecipeInput{
		Title:       title,
		Description: title + " description",
		MealType:    "breakfast",
		UserID:      userID,
		Ingredients: ingredients,
	})
	if err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return recipe
}
