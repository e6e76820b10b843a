package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrPasswordHashExposed 在任何代码尝试序列化密码哈希时返回
var ErrPasswordHashExposed = errors.New("password hashes may not be viewed")

// PasswordHash 保存 bcrypt 哈希。它只能被比较，不能被序列化或打印。
type PasswordHash string

// MarshalJSON 总是失败：密码哈希出现在响应里属于编程错误。
func (PasswordHash) MarshalJSON() ([]byte, error) {
	return nil, ErrPasswordHashExposed
}

// String 避免哈希通过 %v / %s 泄露到日志中
func (PasswordHash) String() string {
	return "[redacted]"
}

// GoString 同 String，覆盖 %#v
func (PasswordHash) GoString() string {
	return "[redacted]"
}

// Matches 以常量时间比较明文密码与哈希
func (h PasswordHash) Matches(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(password)) == nil
}

// HashPassword 使用给定 cost 生成 bcrypt 哈希
func HashPassword(password string, cost int) (PasswordHash, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return PasswordHash(hashed), nil
}

// User 定义了用户模型
type User struct {
	ID           uint         `gorm:"primaryKey"`
	Email        string       `gorm:"size:120;uniqueIndex;not null"`
	Username     string       `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash PasswordHash `gorm:"column:password_hash;not null"`
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile        *Profile         `gorm:"constraint:OnDelete:CASCADE;"`
	Favorites      []FavoriteRecipe `gorm:"constraint:OnDelete:CASCADE;"`
	Ratings        []RecipeRating   `gorm:"constraint:OnDelete:CASCADE;"`
	Comments       []Comment        `gorm:"constraint:OnDelete:CASCADE;"`
	JournalEntries []JournalEntry   `gorm:"constraint:OnDelete:CASCADE;"`
}

// DisplayAvatar 优先返回资料页头像，其次是用户自身头像
func (u User) DisplayAvatar() string {
	if u.Profile != nil && u.Profile.Avatar != nil && strings.TrimSpace(*u.Profile.Avatar) != "" {
		return *u.Profile.Avatar
	}
	if u.Avatar != nil {
		return *u.Avatar
	}
	return ""
}

// EnsureUser 存在性检查：若提供的用户名、邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户及其资料。
func EnsureUser(username, email, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedEmail := strings.TrimSpace(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := HashPassword(trimmedPassword, bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Transaction(func(tx *gorm.DB) error {
			user := User{Username: trimmedUser, Email: trimmedEmail, PasswordHash: hashed}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&Profile{UserID: user.ID}).Error
		})
	}

	return nil
}
