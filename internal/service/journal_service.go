package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/recipeshare/internal/db"
	"github.com/recipeshare/internal/storage"
	"gorm.io/gorm"
)

// JournalImageFolder 是日志图片在上传目录中的子目录
const JournalImageFolder = "journal_images"

// ImageStore 抽象图片的持久化，默认实现为 storage.LocalStore
type ImageStore interface {
	Save(folder string, r io.Reader) (string, error)
	Remove(folder, filename string) error
	List(folder string) ([]string, error)
}

// JournalService 负责用户日志
type JournalService struct {
	db     *gorm.DB
	images ImageStore
}

// JournalInput 描述一次日志提交，Image 为 nil 表示没有附图
type JournalInput struct {
	Title   string
	Content string
	Image   io.Reader
}

// NewJournalService creates a JournalService instance.
func NewJournalService(gdb *gorm.DB, images ImageStore) *JournalService {
	return &JournalService{db: gdb, images: images}
}

// Add 以当前登录用户身份新增日志。未登录返回 ErrNotLoggedIn。
// 图片先写入存储，数据库写入失败时会删除已保存的文件。
func (s *JournalService) Add(ctx context.Context, input JournalInput) (*db.JournalEntry, error) {
	userID, ok := CurrentUserID(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrMissingField)
	}

	if err := ensureUserExists(conn(ctx, s.db), userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	entry := db.JournalEntry{Title: title, Content: content, UserID: userID}

	if input.Image != nil {
		if s.images == nil {
			return nil, errors.New("image storage not configured")
		}
		filename, err := s.images.Save(JournalImageFolder, input.Image)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidImage) || errors.Is(err, storage.ErrTooLarge) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
			}
			return nil, fmt.Errorf("save journal image: %w", err)
		}
		entry.ImageFilename = filename
	}

	if err := conn(ctx, s.db).Create(&entry).Error; err != nil {
		if entry.ImageFilename != "" {
			_ = s.images.Remove(JournalImageFolder, entry.ImageFilename)
		}
		return nil, fmt.Errorf("create journal entry: %w", err)
	}
	return &entry, nil
}

// Get 根据主键获取日志
func (s *JournalService) Get(ctx context.Context, id uint) (*db.JournalEntry, error) {
	var entry db.JournalEntry
	if err := conn(ctx, s.db).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return &entry, nil
}

// ListForUser 返回用户的日志，最新的在前
func (s *JournalService) ListForUser(ctx context.Context, userID uint) ([]db.JournalEntry, error) {
	entries := []db.JournalEntry{}
	if err := conn(ctx, s.db).Where("user_id = ?", userID).Order("timestamp desc").Order("id desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// ImageFilenames 返回已上传的日志图片文件名
func (s *JournalService) ImageFilenames(ctx context.Context) ([]string, error) {
	if s.images == nil {
		return []string{}, nil
	}
	names, err := s.images.List(JournalImageFolder)
	if err != nil {
		return nil, fmt.Errorf("list journal images: %w", err)
	}
	return names, nil
}
