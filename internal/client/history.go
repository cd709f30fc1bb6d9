package client

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/espresso-labs/espresso-gateway/internal/chat"
)

// Turn is one row of the local conversation transcript the CLI keeps so it
// can replay recent context with each request.
type Turn struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PodcastSlug string    `gorm:"type:varchar(64);index;not null" json:"podcast_slug"`
	Role        string    `gorm:"type:varchar(16);not null" json:"role"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Turn) TableName() string { return "chat_turns" }

type HistoryStore struct {
	db *gorm.DB
}

func OpenHistoryStore(path string) (*HistoryStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Turn{}); err != nil {
		return nil, err
	}
	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Append(ctx context.Context, slug, role, content string) error {
	return s.db.WithContext(ctx).Create(&Turn{
		PodcastSlug: slug,
		Role:        role,
		Content:     content,
	}).Error
}

// Recent returns the newest turns for a podcast in chronological order.
func (s *HistoryStore) Recent(ctx context.Context, slug string, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 10
	}
	var turns []Turn
	if err := s.db.WithContext(ctx).
		Where("podcast_slug = ?", slug).
		Order("id DESC").
		Limit(limit).
		Find(&turns).Error; err != nil {
		return nil, err
	}

	// reverse to ASC (oldest -> newest)
	out := make([]chat.Message, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		out = append(out, chat.Message{Role: turns[i].Role, Content: turns[i].Content})
	}
	return out, nil
}

func (s *HistoryStore) Clear(ctx context.Context, slug string) error {
	return s.db.WithContext(ctx).Where("podcast_slug = ?", slug).Delete(&Turn{}).Error
}
