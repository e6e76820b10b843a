package db

import "time"

// FavoriteRecipe 表示某个用户收藏了某个菜谱，(user_id, recipe_id) 唯一
type FavoriteRecipe struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"autoCreateTime"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index"`
	ProfileID *uint     `gorm:"index"`
}
