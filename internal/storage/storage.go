// Package storage 将上传的图片保存到本地目录，并按 folder/filename 取回。
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidImage = errors.New("file is not a supported image")
	ErrTooLarge     = errors.New("file exceeds upload limit")
	ErrInvalidName  = errors.New("invalid folder or file name")
	ErrNotFound     = errors.New("file not found")
)

var folderPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var formatExtensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// LocalStore 将文件保存在 root/<folder>/ 下
type LocalStore struct {
	root     string
	maxBytes int64
}

// NewLocalStore 构造 LocalStore，maxBytes <= 0 表示不限制大小
func NewLocalStore(root string, maxBytes int64) *LocalStore {
	return &LocalStore{root: root, maxBytes: maxBytes}
}

// Save 校验内容确实是图片后写入磁盘，返回生成的文件名。
// 扩展名取自解码出的图片格式，而不是客户端提交的文件名。
func (s *LocalStore) Save(folder string, r io.Reader) (string, error) {
	if !folderPattern.MatchString(folder) {
		return "", ErrInvalidName
	}

	reader := r
	if s.maxBytes > 0 {
		reader = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	ext, ok := formatExtensions[format]
	if !ok {
		return "", ErrInvalidImage
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filename, nil
}

// Path 返回文件的本地路径，文件不存在时返回 ErrNotFound
func (s *LocalStore) Path(folder, filename string) (string, error) {
	if !folderPattern.MatchString(folder) || !validFilename(filename) {
		return "", ErrInvalidName
	}

	path := filepath.Join(s.root, folder, filename)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("stat upload: %w", err)
	}
	if info.IsDir() {
		return "", ErrNotFound
	}
	return path, nil
}

// List 返回目录下的文件名，按名称排序；目录不存在时返回空列表
func (s *LocalStore) List(folder string) ([]string, error) {
	if !folderPattern.MatchString(folder) {
		return nil, ErrInvalidName
	}

	entries, err := os.ReadDir(filepath.Join(s.root, folder))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Remove 删除文件，文件不存在不视为错误
func (s *LocalStore) Remove(folder, filename string) error {
	if !folderPattern.MatchString(folder) || !validFilename(filename) {
		return ErrInvalidName
	}
	if err := os.Remove(filepath.Join(s.root, folder, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && name[0] != '.'
}
