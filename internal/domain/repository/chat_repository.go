package repository

import (
	"context"
	"time"

	"barterhub/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// FindByParticipants returns (nil, nil) when no chat exists for the pair.
	FindByParticipants(ctx context.Context, userA, userB string) (*entity.Chat, error)
	Update(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id string) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessageByID(ctx context.Context, chatID, messageID string) (*entity.Message, error)
	UpdateMessage(ctx context.Context, chatID string, message *entity.Message) error
	DeleteMessage(ctx context.Context, chatID, messageID string) error
	// ListMessages returns messages newer than after, newest first.
	ListMessages(ctx context.Context, chatID string, after time.Time, limit, offset int) ([]*entity.Message, int64, error)
}
