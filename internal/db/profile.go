package db

import "time"

// Profile 是用户的 1:1 扩展资料
type Profile struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	Avatar    *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Favorites []FavoriteRecipe `gorm:"constraint:OnDelete:SET NULL;"`
}

// UpdateAvatar 设置资料头像，空字符串表示清除
func (p *Profile) UpdateAvatar(avatar string) {
	if avatar == "" {
		p.Avatar = nil
		return
	}
	p.Avatar = &avatar
}
