package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recipeshare/internal/db"
	"gorm.io/gorm"
)

// ProfileService 负责维护用户资料（1:1 扩展）
// 头像修改统一经由 UpdateAvatar，用户服务也复用这条路径
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// ProfilePatch 描述允许更新的资料字段
// 目前只有头像，user_id 等外键不可修改
type ProfilePatch struct {
	Avatar *string
}

// Get 根据主键获取资料
func (s *ProfileService) Get(ctx context.Context, id uint) (*db.Profile, error) {
	var profile db.Profile
	if err := conn(ctx, s.db).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// GetByUser 获取指定用户的资料
func (s *ProfileService) GetByUser(ctx context.Context, userID uint) (*db.Profile, error) {
	var profile db.Profile
	if err := conn(ctx, s.db).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile by user: %w", err)
	}
	return &profile, nil
}

// Update 应用资料补丁
func (s *ProfileService) Update(ctx context.Context, id uint, patch ProfilePatch) (*db.Profile, error) {
	if patch.Avatar == nil {
		return s.Get(ctx, id)
	}
	return s.UpdateAvatar(ctx, id, *patch.Avatar)
}

// UpdateAvatar 更新资料头像，空字符串会清除头像
func (s *ProfileService) UpdateAvatar(ctx context.Context, id uint, avatar string) (*db.Profile, error) {
	var profile db.Profile
	err := runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		if err := tx.First(&profile, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("find profile: %w", err)
		}

		profile.UpdateAvatar(strings.TrimSpace(avatar))
		if err := tx.Model(&db.Profile{}).Where("id = ?", profile.ID).Update("avatar", profile.Avatar).Error; err != nil {
			return fmt.Errorf("update profile avatar: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Delete 删除资料，引用它的收藏记录保留并解除关联
func (s *ProfileService) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		var profile db.Profile
		if err := tx.First(&profile, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("find profile: %w", err)
		}

		if err := tx.Model(&db.FavoriteRecipe{}).Where("profile_id = ?", id).Update("profile_id", nil).Error; err != nil {
			return fmt.Errorf("detach profile favorites: %w", err)
		}
		if err := tx.Delete(&profile).Error; err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		return nil
	})
}

func (s *ProfileService) createForUser(ctx context.Context, userID uint) (*db.Profile, error) {
	profile := db.Profile{UserID: userID}
	if err := conn(ctx, s.db).Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &profile, nil
}
