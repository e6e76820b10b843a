package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/recipeshare/internal/db"
	"github.com/recipeshare/internal/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const demoPassword = "recipeshare123"

var demoAvatars = []string{
	"/avatars/donut.png",
	"/avatars/fried-egg.png",
	"/avatars/gummy-bear.png",
	"/avatars/taco.png",
}

var demoUsernames = []string{
	"alice", "bruno", "chen", "dana", "emeka",
	"farah", "goran", "hana", "ivan", "julia",
}

var ingredientVocabulary = []string{
	"Salt", "Pepper", "Sugar", "Flour", "Eggs",
	"Milk", "Butter", "Oil", "Onion", "Garlic",
	"Tomato", "Chicken", "Beef", "Pasta", "Rice",
	"Cheese", "Broccoli", "Spinach", "Lemon", "Cucumber",
}

type seedResult struct {
	Users       int
	Ingredients int64
	Recipes     int
}

// seed 写入示例用户、配料与菜谱。重复执行不会产生重复数据。
func seed(ctx context.Context, gdb *gorm.DB, cost int) (seedResult, error) {
	var result seedResult

	users := service.NewUserService(gdb, cost)
	recipes := service.NewRecipeService(gdb)

	var owner *db.User
	for i, name := range demoUsernames {
		avatar := demoAvatars[i%len(demoAvatars)]
		user, err := users.Register(ctx, service.RegisterInput{
			Email:    name + "@example.com",
			Username: name,
			Password: demoPassword,
			Avatar:   &avatar,
		})
		switch {
		case err == nil:
			result.Users++
		case errors.Is(err, service.ErrDuplicateIdentity):
			continue
		default:
			return result, fmt.Errorf("seed user %s: %w", name, err)
		}
		if owner == nil {
			owner = user
		}
	}

	rows := make([]db.Ingredient, 0, len(ingredientVocabulary))
	for _, name := range ingredientVocabulary {
		rows = append(rows, db.Ingredient{Name: name})
	}
	if err := gdb.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return result, fmt.Errorf("seed ingredients: %w", err)
	}
	if err := gdb.WithContext(ctx).Model(&db.Ingredient{}).Count(&result.Ingredients).Error; err != nil {
		return result, fmt.Errorf("count ingredients: %w", err)
	}

	var existing int64
	if err := gdb.WithContext(ctx).Model(&db.Recipe{}).Where("title = ?", "Vegetable Salad").Count(&existing).Error; err != nil {
		return result, fmt.Errorf("check sample recipe: %w", err)
	}
	if existing > 0 {
		return result, nil
	}
	if owner == nil {
		first, err := users.List(ctx)
		if err != nil {
			return result, err
		}
		if len(first) == 0 {
			return result, errors.New("no user available to own the sample recipe")
		}
		owner = &first[0]
	}

	if _, err := recipes.Create(ctx, service.RecipeInput{
		Title:        "Vegetable Salad",
		Description:  "A refreshing and healthy vegetable salad.",
		Instructions: "1. Chop the vegetables.\n2. Mix them in a bowl.\n3. Serve on a white ceramic plate.",
		ImageURL:     "https://www.pexels.com/photo/vegetable-salad-on-white-ceramic-plate-1211887/",
		MealType:     "lunch",
		UserID:       owner.ID,
		Ingredients:  []string{"Tomato", "Cucumber", "Spinach", "Onion", "Lemon"},
	}); err != nil {
		return result, fmt.Errorf("seed sample recipe: %w", err)
	}
	result.Recipes++

	return result, nil
}
