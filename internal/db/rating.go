package db

import "time"

const (
	// MinRating 与 MaxRating 为评分的闭区间边界
	MinRating = 0.0
	MaxRating = 5.0
)

// RecipeRating 定义了菜谱评分，每次评分都会新增一条记录
type RecipeRating struct {
	ID        uint    `gorm:"primaryKey"`
	Rating    float64 `gorm:"not null;check:chk_recipe_ratings_range,rating >= 0 AND rating <= 5"`
	RecipeID  uint    `gorm:"not null;index"`
	UserID    uint    `gorm:"not null;index"`
	CreatedAt time.Time
}

// ValidRating 判断评分是否落在 [0, 5] 区间内
func ValidRating(value float64) bool {
	return value >= MinRating && value <= MaxRating
}
