package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barterhub/pkg/errors"
)

func newChatFixture() (*ChatUseCase, *fakeChatRepo, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	chatRepo := newFakeChatRepo()
	uc := NewChatUseCase(chatRepo, userRepo, nil)
	return uc, chatRepo, userRepo
}

func TestCreateChat(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})

	require.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, chat.Participants)
	require.NotNil(t, chat.OtherUser)
	assert.Equal(t, "bob", chat.OtherUser.ID)
}

func TestCreateChatWithSelfRejected(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")

	_, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "alice"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateChatReturnsExisting(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	first, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	second, err := uc.CreateChat(context.Background(), "bob", CreateChatInput{RecipientID: "alice"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestCreateChatWithInitialMessage(t *testing.T) {
	uc, chatRepo, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{
		RecipientID:    "bob",
		InitialMessage: "hi there",
	})

	require.NoError(t, err)
	assert.Equal(t, "hi there", chat.LastMessage)

	messages, total, err := chatRepo.ListMessages(context.Background(), chat.ID, time.Time{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
	assert.Equal(t, "alice", messages[0].SenderID)
}

func TestSendMessage(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.SendMessage(context.Background(), "stranger", SendMessageInput{ChatID: chat.ID, Content: "hi"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	message, err := uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", message.Content)

	// Recipient's unread counter bumped, sender's untouched
	assert.Equal(t, 1, chat.UnreadCount["bob"])
	assert.Equal(t, 0, chat.UnreadCount["alice"])
	assert.Equal(t, "hello", chat.LastMessage)
}

func TestSendImageOnlyMessage(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{
		ChatID: chat.ID,
		Images: []string{"https://cdn.example.com/pic.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[image]", chat.LastMessage)
}

func TestDeleteChatHidesUntilNewMessage(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "before"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteChat(context.Background(), "bob", chat.ID))

	chats, total, err := uc.ListChats(context.Background(), "bob", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, chats)

	// The other participant still sees it
	chats, total, err = uc.ListChats(context.Background(), "alice", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, chats, 1)

	// A new message surfaces the chat again for bob
	time.Sleep(2 * time.Millisecond)
	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "after"})
	require.NoError(t, err)

	chats, total, err = uc.ListChats(context.Background(), "bob", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, chats, 1)
}

func TestWatermarkHidesOldMessages(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "old"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteChat(context.Background(), "bob", chat.ID))

	time.Sleep(2 * time.Millisecond)
	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "new"})
	require.NoError(t, err)

	// Bob only sees what came after his deletion
	messages, total, err := uc.GetMessages(context.Background(), "bob", chat.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
	assert.Equal(t, "new", messages[0].Content)

	// Alice still sees the full history
	messages, total, err = uc.GetMessages(context.Background(), "alice", chat.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, messages, 2)
}

func TestDeleteByBothParticipantsRemovesChat(t *testing.T) {
	uc, chatRepo, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteChat(context.Background(), "alice", chat.ID))
	require.NoError(t, uc.DeleteChat(context.Background(), "bob", chat.ID))

	// Both deleted: the document is physically gone
	_, err = chatRepo.GetByID(context.Background(), chat.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessageClearsSenderWatermark(t *testing.T) {
	uc, chatRepo, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "bob", SendMessageInput{ChatID: chat.ID, Content: "keep alive"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteChat(context.Background(), "alice", chat.ID))

	time.Sleep(2 * time.Millisecond)
	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "back again"})
	require.NoError(t, err)

	stored, err := chatRepo.GetByID(context.Background(), chat.ID)
	require.NoError(t, err)
	_, aliceDeleted := stored.Watermark("alice")
	assert.False(t, aliceDeleted)
}

func TestGetMessagesMarksSeenAndResetsUnread(t *testing.T) {
	uc, chatRepo, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "one"})
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "two"})
	require.NoError(t, err)

	messages, _, err := uc.GetMessages(context.Background(), "bob", chat.ID, 1, 10)
	require.NoError(t, err)
	for _, message := range messages {
		assert.True(t, message.Seen)
	}

	stored, err := chatRepo.GetByID(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UnreadCount["bob"])
}

func TestEditMessage(t *testing.T) {
	uc, chatRepo, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	message, err := uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "typo"})
	require.NoError(t, err)

	_, err = uc.EditMessage(context.Background(), "bob", chat.ID, message.ID, "hijack")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	edited, err := uc.EditMessage(context.Background(), "alice", chat.ID, message.ID, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "fixed", edited.Content)
	assert.True(t, edited.Edited)

	// Outside the edit window
	message.CreatedAt = time.Now().Add(-25 * time.Hour)
	require.NoError(t, chatRepo.UpdateMessage(context.Background(), chat.ID, message))
	_, err = uc.EditMessage(context.Background(), "alice", chat.ID, message.ID, "too late")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestDeleteMessage(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	message, err := uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "oops"})
	require.NoError(t, err)

	err = uc.DeleteMessage(context.Background(), "bob", chat.ID, message.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.DeleteMessage(context.Background(), "alice", chat.ID, message.ID))

	err = uc.DeleteMessage(context.Background(), "alice", chat.ID, message.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessageRateLimited(t *testing.T) {
	uc, _, userRepo := newChatFixture()
	seedUser(userRepo, "alice", "alice")
	seedUser(userRepo, "bob", "bob")

	chat, err := uc.CreateChat(context.Background(), "alice", CreateChatInput{RecipientID: "bob"})
	require.NoError(t, err)

	var limited bool
	for i := 0; i < 15; i++ {
		_, err := uc.SendMessage(context.Background(), "alice", SendMessageInput{ChatID: chat.ID, Content: "spam"})
		if errors.Is(err, "TOO_MANY_REQUESTS") {
			limited = true
			break
		}
		require.NoError(t, err)
	}
	assert.True(t, limited)
}
