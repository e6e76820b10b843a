package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recipeshare/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService wraps recipe and ingredient operations.
type RecipeService struct {
	db  *gorm.DB
	now func() time.Time
}

// RecipeInput represents fields accepted when creating a recipe.
type RecipeInput struct {
	Title        string
	Description  string
	Instructions string
	ImageURL     string
	MealType     string
	UserID       uint
	Ingredients  []string
}

// RecipePatch lists the patchable recipe fields; nil means untouched.
// Ingredients, when present, replaces the whole ingredient list.
type RecipePatch struct {
	Title        *string
	Description  *string
	Instructions *string
	ImageURL     *string
	MealType     *string
	Ingredients  *[]string
}

// NewRecipeService creates a RecipeService instance.
func NewRecipeService(gdb *gorm.DB) *RecipeService {
	return &RecipeService{db: gdb, now: time.Now}
}

// List returns all recipes with ingredients and ratings preloaded.
func (s *RecipeService) List(ctx context.Context) ([]db.Recipe, error) {
	var recipes []db.Recipe
	if err := s.listQuery(ctx).Order("recipes.id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// ListRecent returns recipes created within window. An empty slice means none qualified.
func (s *RecipeService) ListRecent(ctx context.Context, window time.Duration) ([]db.Recipe, error) {
	since := s.now().Add(-window)

	recipes := []db.Recipe{}
	if err := s.listQuery(ctx).Where("recipes.created_at >= ?", since).Order("recipes.created_at desc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recent recipes: %w", err)
	}
	return recipes, nil
}

// Get fetches a recipe with every association needed by the detail view.
func (s *RecipeService) Get(ctx context.Context, id uint) (*db.Recipe, error) {
	var recipe db.Recipe
	err := conn(ctx, s.db).
		Preload("User").
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB { return tx.Order("ingredients.name asc") }).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("comments.id asc") }).
		Preload("Ratings", func(tx *gorm.DB) *gorm.DB { return tx.Order("recipe_ratings.id asc") }).
		Preload("Favorites").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

// Create persists a recipe and its ingredients in one transaction.
// Ingredients are matched by exact name and reused when they already exist.
func (s *RecipeService) Create(ctx context.Context, input RecipeInput) (*db.Recipe, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || strings.TrimSpace(input.MealType) == "" || input.UserID == 0 {
		return nil, fmt.Errorf("%w: title, description, meal_type and user_id are required", ErrMissingField)
	}

	mealType, err := db.ParseMealType(input.MealType)
	if err != nil {
		return nil, ErrInvalidMealType
	}

	recipe := db.Recipe{
		Title:        title,
		Description:  description,
		Instructions: strings.TrimSpace(input.Instructions),
		ImageURL:     strings.TrimSpace(input.ImageURL),
		MealType:     mealType,
		UserID:       input.UserID,
	}

	err = runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := ensureUserExists(tx, input.UserID); err != nil {
			return err
		}

		ingredients, err := resolveIngredients(tx, input.Ingredients)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}

		if len(ingredients) > 0 {
			if err := tx.Model(&recipe).Association("Ingredients").Append(ingredients); err != nil {
				return fmt.Errorf("attach ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

// Update applies a whitelisted patch. meal_type is validated like on create.
func (s *RecipeService) Update(ctx context.Context, id uint, patch RecipePatch) (*db.Recipe, error) {
	err := runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		var recipe db.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("find recipe: %w", err)
		}

		updates := map[string]interface{}{}
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return fmt.Errorf("%w: title cannot be empty", ErrMissingField)
			}
			updates["title"] = title
		}
		if patch.Description != nil {
			description := strings.TrimSpace(*patch.Description)
			if description == "" {
				return fmt.Errorf("%w: description cannot be empty", ErrMissingField)
			}
			updates["description"] = description
		}
		if patch.Instructions != nil {
			updates["instructions"] = strings.TrimSpace(*patch.Instructions)
		}
		if patch.ImageURL != nil {
			updates["image_url"] = strings.TrimSpace(*patch.ImageURL)
		}
		if patch.MealType != nil {
			mealType, err := db.ParseMealType(*patch.MealType)
			if err != nil {
				return ErrInvalidMealType
			}
			updates["meal_type"] = mealType
		}

		if patch.Ingredients != nil {
			ingredients, err := resolveIngredients(tx, *patch.Ingredients)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Ingredients").Replace(ingredients); err != nil {
				return fmt.Errorf("replace ingredients: %w", err)
			}
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&db.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a recipe together with its comments, ratings, favorites and
// ingredient links. Ingredients themselves are kept.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("find recipe: %w", err)
		}
		if count == 0 {
			return ErrRecipeNotFound
		}
		return purgeRecipes(tx, []uint{id})
	})
}

// ListIngredients returns every ingredient ordered by name.
func (s *RecipeService) ListIngredients(ctx context.Context) ([]db.Ingredient, error) {
	var ingredients []db.Ingredient
	if err := conn(ctx, s.db).Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *RecipeService) listQuery(ctx context.Context) *gorm.DB {
	return conn(ctx, s.db).
		Model(&db.Recipe{}).
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB { return tx.Order("ingredients.name asc") }).
		Preload("Ratings")
}

// resolveIngredients 按名称查找或创建配料。
// 名称先去除首尾空白、丢弃空值并去重；插入使用 ON CONFLICT DO NOTHING，
// 并发创建同名配料时唯一索引保证最终只有一行。
func resolveIngredients(tx *gorm.DB, names []string) ([]db.Ingredient, error) {
	normalized := normalizeIngredientNames(names)
	if len(normalized) == 0 {
		return []db.Ingredient{}, nil
	}

	rows := make([]db.Ingredient, 0, len(normalized))
	for _, name := range normalized {
		rows = append(rows, db.Ingredient{Name: name})
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("create ingredients: %w", err)
	}

	var found []db.Ingredient
	if err := tx.Where("name IN ?", normalized).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}

	byName := make(map[string]db.Ingredient, len(found))
	for _, ingredient := range found {
		byName[ingredient.Name] = ingredient
	}

	ordered := make([]db.Ingredient, 0, len(normalized))
	for _, name := range normalized {
		ingredient, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("ingredient %q missing after upsert", name)
		}
		ordered = append(ordered, ingredient)
	}
	return ordered, nil
}

func normalizeIngredientNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

// purgeRecipes 删除菜谱及其全部从属记录，调用方负责提供事务。
func purgeRecipes(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	if err := tx.Where("recipe_id IN ?", ids).Delete(&db.Comment{}).Error; err != nil {
		return fmt.Errorf("delete recipe comments: %w", err)
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&db.RecipeRating{}).Error; err != nil {
		return fmt.Errorf("delete recipe ratings: %w", err)
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&db.FavoriteRecipe{}).Error; err != nil {
		return fmt.Errorf("delete recipe favorites: %w", err)
	}
	if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id IN ?", ids).Error; err != nil {
		return fmt.Errorf("delete recipe ingredients: %w", err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&db.Recipe{}).Error; err != nil {
		return fmt.Errorf("delete recipes: %w", err)
	}
	return nil
}

func ensureUserExists(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&db.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

func ensureRecipeExists(tx *gorm.DB, recipeID uint) error {
	var count int64
	if err := tx.Model(&db.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return fmt.Errorf("find recipe: %w", err)
	}
	if count == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
