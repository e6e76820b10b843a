package db

import "time"

// JournalEntry 定义了用户日志，可附带一张图片
type JournalEntry struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Content       string `gorm:"type:text;not null"`
	ImageFilename string
	Timestamp     time.Time `gorm:"autoCreateTime"`
	UserID        uint      `gorm:"not null;index"`
}
