package db

import "time"

// Recipe 定义了菜谱模型
type Recipe struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	Instructions string `gorm:"type:text"`
	ImageURL     string
	MealType     MealType  `gorm:"size:16;not null"`
	UserID       uint      `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time

	User        *User            `gorm:"constraint:OnDelete:CASCADE;"`
	Ingredients []Ingredient     `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE;"`
	Comments    []Comment        `gorm:"constraint:OnDelete:CASCADE;"`
	Ratings     []RecipeRating   `gorm:"constraint:OnDelete:CASCADE;"`
	Favorites   []FavoriteRecipe `gorm:"constraint:OnDelete:CASCADE;"`
}

// IngredientNames 返回已预加载的配料名称
func (r Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ingredient := range r.Ingredients {
		names = append(names, ingredient.Name)
	}
	return names
}

// AverageRating 计算已预加载评分的平均值，没有评分时返回 0 与 false
func (r Recipe) AverageRating() (float64, bool) {
	if len(r.Ratings) == 0 {
		return 0, false
	}
	var sum float64
	for _, rating := range r.Ratings {
		sum += rating.Rating
	}
	return sum / float64(len(r.Ratings)), true
}
