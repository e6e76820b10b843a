package db

import "time"

// Comment 定义了菜谱评论，UserID 记录作者（可为空以兼容旧数据）
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"type:text;not null"`
	RecipeID  uint   `gorm:"not null;index"`
	UserID    *uint  `gorm:"index"`
	CreatedAt time.Time
}
