package usecase

import (
	"context"
	"encoding/json"
	"time"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/internal/infrastructure/ratelimit"
	ws "barterhub/internal/infrastructure/websocket"
	"barterhub/pkg/errors"
	"barterhub/pkg/logger"
)

const messageEditWindow = 24 * time.Hour

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type CreateChatInput struct {
	RecipientID    string
	InitialMessage string
}

type SendMessageInput struct {
	ChatID  string
	Content string
	Images  []string
}

type ChatResponse struct {
	*entity.Chat
	OtherUser *entity.User `json:"other_user,omitempty"`
}

// CreateChat returns the existing conversation with the recipient when one
// exists (restoring it if the caller had soft-deleted it), otherwise a new one.
func (uc *ChatUseCase) CreateChat(ctx context.Context, userID string, input CreateChatInput) (*ChatResponse, error) {
	if input.RecipientID == userID {
		return nil, errors.BadRequest("You cannot start a chat with yourself", nil)
	}

	if allowed, _ := uc.rateLimiter.Allow(userID, "create_chat"); !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before creating another chat", nil)
	}

	recipient, err := uc.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}

	chat, err := uc.chatRepo.FindByParticipants(ctx, userID, input.RecipientID)
	if err != nil {
		return nil, err
	}

	if chat != nil {
		if _, deleted := chat.Watermark(userID); deleted {
			delete(chat.DeletedFor, userID)
			if err := uc.chatRepo.Update(ctx, chat); err != nil {
				return nil, err
			}
		}
	} else {
		chat = &entity.Chat{
			Participants: []string{userID, input.RecipientID},
			UnreadCount:  map[string]int{userID: 0, input.RecipientID: 0},
		}
		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, err
		}
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, userID, SendMessageInput{
			ChatID:  chat.ID,
			Content: input.InitialMessage,
		}); err != nil {
			return nil, err
		}
		chat, err = uc.chatRepo.GetByID(ctx, chat.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ChatResponse{Chat: chat, OtherUser: recipient}, nil
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*entity.Message, error) {
	if input.Content == "" && len(input.Images) == 0 {
		return nil, errors.BadRequest("Message must have content or images", nil)
	}

	if allowed, _ := uc.rateLimiter.Allow(userID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please slow down", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	if !chat.IsParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message := &entity.Message{
		ChatID:   chat.ID,
		SenderID: userID,
		Content:  input.Content,
		Images:   input.Images,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = input.Content
	if chat.LastMessage == "" {
		chat.LastMessage = "[image]"
	}
	chat.LastMessageAt = message.CreatedAt

	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	for _, p := range chat.Participants {
		if p != userID {
			chat.UnreadCount[p]++
		}
	}

	// Sending revives the conversation for the sender only. Other
	// participants keep their deletion watermark and simply see
	// messages newer than it.
	if _, deleted := chat.Watermark(userID); deleted {
		delete(chat.DeletedFor, userID)
	}

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}

	uc.pushMessage(chat, message)

	return message, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, page, limit int) ([]*ChatResponse, int64, error) {
	chats, _, err := uc.chatRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	var visible []*entity.Chat
	for _, chat := range chats {
		if chat.VisibleTo(userID) {
			visible = append(visible, chat)
		}
	}

	total := int64(len(visible))

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	if offset >= len(visible) {
		return []*ChatResponse{}, total, nil
	}
	end := offset + limit
	if end > len(visible) || limit <= 0 {
		end = len(visible)
	}

	responses := make([]*ChatResponse, 0, end-offset)
	for _, chat := range visible[offset:end] {
		resp := &ChatResponse{Chat: chat}
		if other, err := uc.userRepo.GetByID(ctx, chat.OtherParticipant(userID)); err == nil {
			resp.OtherUser = other
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

// GetMessages returns the caller's visible slice of the conversation and, as
// a read side effect, marks the other side's messages seen and zeroes the
// caller's unread counter.
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, chatID string, page, limit int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !chat.IsParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant in this chat", nil)
	}

	watermark, _ := chat.Watermark(userID)

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	messages, total, err := uc.chatRepo.ListMessages(ctx, chatID, watermark, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, message := range messages {
		if message.SenderID != userID && !message.Seen {
			message.Seen = true
			if err := uc.chatRepo.UpdateMessage(ctx, chatID, message); err != nil {
				logger.Warn("Failed to mark message %s seen: %v", message.ID, err)
			}
		}
	}

	if chat.UnreadCount[userID] != 0 {
		chat.UnreadCount[userID] = 0
		if err := uc.chatRepo.Update(ctx, chat); err != nil {
			logger.Warn("Failed to reset unread count for chat %s: %v", chatID, err)
		}
	}

	return messages, total, nil
}

func (uc *ChatUseCase) EditMessage(ctx context.Context, userID, chatID, messageID, content string) (*entity.Message, error) {
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message, err := uc.chatRepo.GetMessageByID(ctx, chatID, messageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID != userID {
		return nil, errors.Forbidden("You can only edit your own messages", nil)
	}
	if time.Since(message.CreatedAt) > messageEditWindow {
		return nil, errors.BadRequest("Messages can only be edited within 24 hours", nil)
	}

	message.Content = content
	message.Edited = true

	if err := uc.chatRepo.UpdateMessage(ctx, chatID, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (uc *ChatUseCase) DeleteMessage(ctx context.Context, userID, chatID, messageID string) error {
	message, err := uc.chatRepo.GetMessageByID(ctx, chatID, messageID)
	if err != nil {
		return err
	}

	if message.SenderID != userID {
		return errors.Forbidden("You can only delete your own messages", nil)
	}

	return uc.chatRepo.DeleteMessage(ctx, chatID, messageID)
}

// DeleteChat soft-deletes for the caller; the document is physically removed
// once every participant has deleted it.
func (uc *ChatUseCase) DeleteChat(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.IsParticipant(userID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	if chat.DeletedFor == nil {
		chat.DeletedFor = make(map[string]time.Time)
	}
	chat.DeletedFor[userID] = time.Now()

	if chat.DeletedByAll() {
		return uc.chatRepo.Delete(ctx, chatID)
	}

	return uc.chatRepo.Update(ctx, chat)
}

func (uc *ChatUseCase) pushMessage(chat *entity.Chat, message *entity.Message) {
	if uc.wsManager == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":    "new_message",
		"chat_id": chat.ID,
		"message": message,
	})
	if err != nil {
		logger.Warn("Failed to encode message event: %v", err)
		return
	}

	for _, p := range chat.Participants {
		if p != message.SenderID {
			uc.wsManager.SendToUser(p, payload)
		}
	}
}
