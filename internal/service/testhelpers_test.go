package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/recipeshare/internal/db"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", testDBSeq.Add(1))
	gdb, err := db.Open(dsn)
	require.NoError(t, err)
	gdb.Logger = logger.Discard
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func mustRegister(t *testing.T, users *UserService, username string) *db.User {
	t.Helper()
	user, err := users.Register(context.Background(), RegisterInput{
		Email:    username + "@example.com",
		Username: username,
		Password: "secret-" + username,
	})
	require.NoError(t, err)
	return user
}

func mustCreateRecipe(t *testing.T, recipes *RecipeService, userID uint, title string, ingredients ...string) *db.Recipe {
	t.Helper()
	recipe, err := recipes.Create(context.Background(), RecipeInput{
		Title:       title,
		Description: title + " description",
		MealType:    "breakfast",
		UserID:      userID,
		Ingredients: ingredients,
	})
	require.NoError(t, err)
	return recipe
}

func newTestUserService(gdb *gorm.DB) *UserService {
	return NewUserService(gdb, bcrypt.MinCost)
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
