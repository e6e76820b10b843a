package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/recipeshare/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceRegisterAndAuthenticate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	users := newTestUserService(gdb)
	ctx := context.Background()

	user, err := users.Register(ctx, RegisterInput{Email: "cook@example.com", Username: "cook", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, user.ID, user.Profile.UserID)
	assert.NotEqual(t, "pw", string(user.PasswordHash))

	got, err := users.Authenticate(ctx, "cook", "pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = users.Authenticate(ctx, "cook", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = users.Authenticate(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceRegisterRejectsMissingFields(t *testing.T) {
	users := newTestUserService(setupServiceTestDB(t))
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterInput{Email: " ", Username: "cook", Password: "pw"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = users.Register(ctx, RegisterInput{Email: "cook@example.com", Username: "cook"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestUserServiceRegisterRejectsDuplicateIdentity(t *testing.T) {
	users := newTestUserService(setupServiceTestDB(t))
	ctx := context.Background()

	mustRegister(t, users, "cook")

	_, err := users.Register(ctx, RegisterInput{Email: "other@example.com", Username: "cook", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	_, err = users.Register(ctx, RegisterInput{Email: "cook@example.com", Username: "other", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
	assert.ErrorIs(t, err, ErrConflict)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserUniqueIndexTranslatesToDuplicateKey(t *testing.T) {
	gdb := setupServiceTestDB(t)
	users := newTestUserService(gdb)
	mustRegister(t, users, "cook")

	err := gdb.Create(&db.User{Email: "cook@example.com", Username: "second", PasswordHash: "x"}).Error
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))
}

func TestUserServiceUpdate(t *testing.T) {
	users := newTestUserService(setupServiceTestDB(t))
	ctx := context.Background()

	cook := mustRegister(t, users, "cook")
	mustRegister(t, users, "baker")

	updated, err := users.Update(ctx, cook.ID, UserPatch{Username: strPtr("chef"), Password: strPtr("new-pw")})
	require.NoError(t, err)
	assert.Equal(t, "chef", updated.Username)

	_, err = users.Authenticate(ctx, "chef", "new-pw")
	require.NoError(t, err)

	_, err = users.Update(ctx, cook.ID, UserPatch{Email: strPtr("baker@example.com")})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	_, err = users.Update(ctx, cook.ID, UserPatch{Username: strPtr("  ")})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = users.Update(ctx, 999, UserPatch{Username: strPtr("ghost")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceUpdateAvatarGoesThroughProfile(t *testing.T) {
	gdb := setupServiceTestDB(t)
	users := newTestUserService(gdb)
	ctx := context.Background()

	cook := mustRegister(t, users, "cook")

	updated, err := users.Update(ctx, cook.ID, UserPatch{Avatar: strPtr("https://img.example.com/a.png")})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile)
	require.NotNil(t, updated.Profile.Avatar)
	assert.Equal(t, "https://img.example.com/a.png", *updated.Profile.Avatar)
	assert.Nil(t, updated.Avatar)
	assert.Equal(t, "https://img.example.com/a.png", updated.DisplayAvatar())

	// 没有资料时头像直接写入用户
	require.NoError(t, NewProfileService(gdb).Delete(ctx, updated.Profile.ID))
	updated, err = users.Update(ctx, cook.ID, UserPatch{Avatar: strPtr("b.png")})
	require.NoError(t, err)
	assert.Nil(t, updated.Profile)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "b.png", *updated.Avatar)
}

func TestUserServiceDeleteCascades(t *testing.T) {
	gdb := setupServiceTestDB(t)
	users := newTestUserService(gdb)
	recipes := NewRecipeService(gdb)
	engagement := NewEngagementService(gdb)
	ctx := context.Background()

	cook := mustRegister(t, users, "cook")
	guest := mustRegister(t, users, "guest")

	own := mustCreateRecipe(t, recipes, cook.ID, "Pancakes", "Flour", "Eggs")
	other := mustCreateRecipe(t, recipes, guest.ID, "Omelette", "Eggs")

	// guest 对 cook 的菜谱留下的互动应随菜谱一起删除
	_, err := engagement.Favorite(ctx, guest.ID, own.ID)
	require.NoError(t, err)
	_, err = engagement.Rate(ctx, own.ID, RatingInput{UserID: guest.ID, Rating: floatPtr(4)})
	require.NoError(t, err)

	// cook 对 guest 菜谱的互动应随用户一起删除
	_, err = engagement.Favorite(ctx, cook.ID, other.ID)
	require.NoError(t, err)
	_, err = engagement.Rate(ctx, other.ID, RatingInput{UserID: cook.ID, Rating: floatPtr(5)})
	require.NoError(t, err)
	_, err = engagement.Comment(ctx, cook.ID, other.ID, "tasty")
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&db.JournalEntry{Title: "day", Content: "cooked", UserID: cook.ID}).Error)

	require.NoError(t, users.Delete(ctx, cook.ID))

	_, err = users.Get(ctx, cook.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = recipes.Get(ctx, own.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	counts := map[string]interface{}{
		"favorites": &db.FavoriteRecipe{},
		"ratings":   &db.RecipeRating{},
		"comments":  &db.Comment{},
		"journal":   &db.JournalEntry{},
		"profiles":  &db.Profile{},
	}
	for name, model := range counts {
		var count int64
		require.NoError(t, gdb.Model(model).Where("user_id = ?", cook.ID).Count(&count).Error)
		assert.Zero(t, count, name)
	}

	var orphans int64
	require.NoError(t, gdb.Model(&db.FavoriteRecipe{}).Where("recipe_id = ?", own.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	remaining, err := recipes.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining.Comments)
	assert.Empty(t, remaining.Ratings)
	assert.Equal(t, []string{"Eggs"}, remaining.IngredientNames())

	// 配料表本身不受影响
	ingredients, err := recipes.ListIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, ingredients, 2)

	assert.ErrorIs(t, users.Delete(ctx, cook.ID), ErrUserNotFound)
}

func TestUserServiceDeleteFreesIdentity(t *testing.T) {
	users := newTestUserService(setupServiceTestDB(t))
	ctx := context.Background()

	cook := mustRegister(t, users, "cook")
	require.NoError(t, users.Delete(ctx, cook.ID))

	again := mustRegister(t, users, "cook")
	assert.NotZero(t, again.ID)
}

func TestUserServiceExists(t *testing.T) {
	users := newTestUserService(setupServiceTestDB(t))
	ctx := context.Background()

	cook := mustRegister(t, users, "cook")
	ok, err := users.Exists(ctx, cook.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Exists(ctx, cook.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserJSONNeverContainsPasswordHash(t *testing.T) {
	users := newTestUserService(setupServiceTestDB(t))
	cook := mustRegister(t, users, "cook")

	_, err := json.Marshal(cook)
	assert.ErrorIs(t, err, db.ErrPasswordHashExposed)
}
