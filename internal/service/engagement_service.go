package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/recipeshare/internal/db"
	"gorm.io/gorm"
)

var commentPolicy = bluemonday.StrictPolicy()

// EngagementService 负责收藏、评分与评论
type EngagementService struct {
	db *gorm.DB
}

// RatingInput 描述一次评分请求，Rating 为 nil 表示未提交
type RatingInput struct {
	UserID uint
	Rating *float64
}

// RatingSummary 汇总某个菜谱的全部评分
type RatingSummary struct {
	Count   int64
	Average float64
}

// NewEngagementService creates an EngagementService instance.
func NewEngagementService(gdb *gorm.DB) *EngagementService {
	return &EngagementService{db: gdb}
}

// Favorite 收藏菜谱。重复收藏返回 ErrAlreadyFavorited，唯一索引兜底并发插入。
func (s *EngagementService) Favorite(ctx context.Context, userID, recipeID uint) (*db.FavoriteRecipe, error) {
	favorite := db.FavoriteRecipe{UserID: userID, RecipeID: recipeID}

	err := runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := ensureUserExists(tx, userID); err != nil {
			return err
		}
		if err := ensureRecipeExists(tx, recipeID); err != nil {
			return err
		}

		exists, err := favoriteExists(tx, userID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyFavorited
		}

		var profile db.Profile
		if err := tx.Where("user_id = ?", userID).Limit(1).Find(&profile).Error; err != nil {
			return fmt.Errorf("find profile: %w", err)
		}
		if profile.ID != 0 {
			favorite.ProfileID = &profile.ID
		}

		if err := tx.Create(&favorite).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyFavorited
			}
			return fmt.Errorf("create favorite: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Unfavorite 取消收藏，未收藏时返回 ErrNotFavorited
func (s *EngagementService) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	return runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := ensureUserExists(tx, userID); err != nil {
			return err
		}
		if err := ensureRecipeExists(tx, recipeID); err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&db.FavoriteRecipe{})
		if result.Error != nil {
			return fmt.Errorf("delete favorite: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFavorited
		}
		return nil
	})
}

// IsFavorited 判断用户是否收藏了菜谱
func (s *EngagementService) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	return favoriteExists(conn(ctx, s.db), userID, recipeID)
}

// ListFavorites 返回用户收藏的菜谱，按收藏时间排序
func (s *EngagementService) ListFavorites(ctx context.Context, userID uint) ([]db.Recipe, error) {
	tx := conn(ctx, s.db)
	if err := ensureUserExists(tx, userID); err != nil {
		return nil, err
	}

	recipes := []db.Recipe{}
	err := tx.Model(&db.Recipe{}).
		Joins("JOIN favorite_recipes ON favorite_recipes.recipe_id = recipes.id").
		Where("favorite_recipes.user_id = ?", userID).
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB { return tx.Order("ingredients.name asc") }).
		Preload("Ratings", func(tx *gorm.DB) *gorm.DB { return tx.Order("recipe_ratings.id asc") }).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("comments.id asc") }).
		Order("favorite_recipes.timestamp asc").
		Order("favorite_recipes.id asc").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return recipes, nil
}

// Rate 为菜谱新增一条评分记录。同一用户多次评分会保留多条记录。
func (s *EngagementService) Rate(ctx context.Context, recipeID uint, input RatingInput) (*db.RecipeRating, error) {
	if input.Rating == nil || input.UserID == 0 {
		return nil, fmt.Errorf("%w: rating and user_id are required", ErrMissingField)
	}
	if !db.ValidRating(*input.Rating) {
		return nil, ErrInvalidRating
	}

	rating := db.RecipeRating{Rating: *input.Rating, RecipeID: recipeID, UserID: input.UserID}

	err := runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := ensureRecipeExists(tx, recipeID); err != nil {
			return err
		}
		if err := ensureUserExists(tx, input.UserID); err != nil {
			return err
		}

		if err := tx.Create(&rating).Error; err != nil {
			if isCheckViolation(err) {
				return ErrInvalidRating
			}
			return fmt.Errorf("create rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListRatings 返回菜谱的全部评分
func (s *EngagementService) ListRatings(ctx context.Context, recipeID uint) ([]db.RecipeRating, error) {
	tx := conn(ctx, s.db)
	if err := ensureRecipeExists(tx, recipeID); err != nil {
		return nil, err
	}

	ratings := []db.RecipeRating{}
	if err := tx.Where("recipe_id = ?", recipeID).Order("id asc").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// RatingSummary 计算全部评分记录的数量与平均值
func (s *EngagementService) RatingSummary(ctx context.Context, recipeID uint) (RatingSummary, error) {
	tx := conn(ctx, s.db)
	if err := ensureRecipeExists(tx, recipeID); err != nil {
		return RatingSummary{}, err
	}

	var summary RatingSummary
	if err := tx.Model(&db.RecipeRating{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("recipe_id = ?", recipeID).
		Scan(&summary).Error; err != nil {
		return RatingSummary{}, fmt.Errorf("summarize ratings: %w", err)
	}
	return summary, nil
}

// Comment 以指定用户身份评论菜谱。先校验用户与菜谱存在，
// 文本会去除 HTML 标签，清理后为空视为无效。
func (s *EngagementService) Comment(ctx context.Context, userID, recipeID uint, text string) (*db.Comment, error) {
	comment := db.Comment{Text: sanitizeCommentText(text), RecipeID: recipeID, UserID: &userID}

	err := runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := ensureUserExists(tx, userID); err != nil {
			return err
		}
		if err := ensureRecipeExists(tx, recipeID); err != nil {
			return err
		}
		if comment.Text == "" {
			return ErrEmptyText
		}
		if err := tx.Create(&comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments 返回菜谱下的评论
func (s *EngagementService) ListComments(ctx context.Context, recipeID uint) ([]db.Comment, error) {
	tx := conn(ctx, s.db)
	if err := ensureRecipeExists(tx, recipeID); err != nil {
		return nil, err
	}

	comments := []db.Comment{}
	if err := tx.Where("recipe_id = ?", recipeID).Order("id asc").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func favoriteExists(tx *gorm.DB, userID, recipeID uint) (bool, error) {
	var favorite db.FavoriteRecipe
	err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&favorite).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("find favorite: %w", err)
}

func sanitizeCommentText(text string) string {
	return strings.TrimSpace(html.UnescapeString(commentPolicy.Sanitize(text)))
}
