package db

// Ingredient 定义了配料模型，名称全局唯一
type Ingredient struct {
	ID      uint     `gorm:"primaryKey"`
	Name    string   `gorm:"size:120;uniqueIndex;not null"`
	Recipes []Recipe `gorm:"many2many:recipe_ingredients;"`
}
