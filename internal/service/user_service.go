package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/recipeshare/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 负责账号注册、认证与资料维护
type UserService struct {
	db       *gorm.DB
	profiles *ProfileService
	cost     int

	dummyOnce sync.Once
	dummyHash db.PasswordHash
}

// RegisterInput 描述注册时提交的字段
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Avatar   *string
}

// UserPatch 列出允许被 PATCH 的字段，nil 表示未提交
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	Avatar   *string
}

// NewUserService creates a UserService. cost 为 0 时使用 bcrypt 默认值。
func NewUserService(gdb *gorm.DB, cost int) *UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{db: gdb, profiles: NewProfileService(gdb), cost: cost}
}

// Register 创建用户并同时创建其资料，用户名或邮箱重复时返回 ErrDuplicateIdentity
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*db.User, error) {
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)
	if email == "" || username == "" {
		return nil, fmt.Errorf("%w: email and username cannot be left empty", ErrMissingField)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrMissingField)
	}

	hashed, err := db.HashPassword(input.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Avatar:       normalizeOptional(input.Avatar),
	}

	err = runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		taken, err := identityTaken(tx, username, email, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateIdentity
		}

		if err := tx.Omit("Profile").Create(&user).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateIdentity
			}
			return fmt.Errorf("create user: %w", err)
		}

		profile, err := s.profiles.createForUser(ctx, user.ID)
		if err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate 校验用户名与密码。用户不存在与密码错误返回同一个错误，避免枚举账号。
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrMissingField)
	}

	var user db.User
	if err := conn(ctx, s.db).Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 依旧执行一次比较，使两种失败路径耗时相近
			s.dummy().Matches(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.PasswordHash.Matches(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get 根据主键获取用户
func (s *UserService) Get(ctx context.Context, id uint) (*db.User, error) {
	var user db.User
	if err := conn(ctx, s.db).Preload("Profile").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// List 返回全部用户
func (s *UserService) List(ctx context.Context) ([]db.User, error) {
	var users []db.User
	if err := conn(ctx, s.db).Preload("Profile").Order("id asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update 按白名单逐项更新用户字段。
// 修改用户名或邮箱时会重新检查唯一性；存在资料时头像写入资料，否则写入用户本身。
func (s *UserService) Update(ctx context.Context, id uint, patch UserPatch) (*db.User, error) {
	err := runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		var user db.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("find user: %w", err)
		}

		updates := map[string]interface{}{}

		username, email := "", ""
		if patch.Username != nil {
			username = strings.TrimSpace(*patch.Username)
			if username == "" {
				return fmt.Errorf("%w: username cannot be left empty", ErrMissingField)
			}
			updates["username"] = username
		}
		if patch.Email != nil {
			email = strings.TrimSpace(*patch.Email)
			if email == "" {
				return fmt.Errorf("%w: email cannot be left empty", ErrMissingField)
			}
			updates["email"] = email
		}
		if username != "" || email != "" {
			taken, err := identityTaken(tx, username, email, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateIdentity
			}
		}

		if patch.Password != nil {
			if *patch.Password == "" {
				return fmt.Errorf("%w: password cannot be left empty", ErrMissingField)
			}
			hashed, err := db.HashPassword(*patch.Password, s.cost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			updates["password_hash"] = hashed
		}

		if patch.Avatar != nil {
			profile, err := s.profiles.GetByUser(ctx, user.ID)
			switch {
			case err == nil:
				if _, err := s.profiles.UpdateAvatar(ctx, profile.ID, *patch.Avatar); err != nil {
					return err
				}
			case errors.Is(err, ErrProfileNotFound):
				updates["avatar"] = normalizeOptional(patch.Avatar)
			default:
				return err
			}
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&db.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateIdentity
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete 删除用户及其全部从属数据：菜谱（连同菜谱的评论、配料关联、评分、收藏）、
// 收藏、评分、评论、日志与资料，全部在同一事务内完成。
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		var user db.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("find user: %w", err)
		}

		var recipeIDs []uint
		if err := tx.Model(&db.Recipe{}).Where("user_id = ?", id).Pluck("id", &recipeIDs).Error; err != nil {
			return fmt.Errorf("list user recipes: %w", err)
		}
		if err := purgeRecipes(tx, recipeIDs); err != nil {
			return err
		}

		dependents := []struct {
			model interface{}
			name  string
		}{
			{&db.FavoriteRecipe{}, "favorites"},
			{&db.RecipeRating{}, "ratings"},
			{&db.Comment{}, "comments"},
			{&db.JournalEntry{}, "journal entries"},
			{&db.Profile{}, "profile"},
		}
		for _, dep := range dependents {
			if err := tx.Where("user_id = ?", id).Delete(dep.model).Error; err != nil {
				return fmt.Errorf("delete user %s: %w", dep.name, err)
			}
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// Exists 判断用户是否仍然存在，用于校验会话
func (s *UserService) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := conn(ctx, s.db).Model(&db.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return count > 0, nil
}

func (s *UserService) dummy() db.PasswordHash {
	s.dummyOnce.Do(func() {
		hashed, err := db.HashPassword("recipeshare-dummy-password", s.cost)
		if err == nil {
			s.dummyHash = hashed
		}
	})
	return s.dummyHash
}

// identityTaken 检查用户名或邮箱是否已被 excludeID 以外的用户占用。空值不参与检查。
func identityTaken(tx *gorm.DB, username, email string, excludeID uint) (bool, error) {
	query := tx.Model(&db.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return false, nil
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check identity: %w", err)
	}
	return count > 0, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
