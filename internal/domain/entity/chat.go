package entity

import "time"

type Chat struct {
	ID           string   `json:"id" firestore:"id"`
	Participants []string `json:"participants" firestore:"participants"`

	// DeletedFor maps a participant to the moment they soft-deleted the
	// chat. The timestamp doubles as a visibility watermark: that user
	// only sees messages sent after it.
	DeletedFor map[string]time.Time `json:"deleted_for,omitempty" firestore:"deletedFor,omitempty"`

	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Chat) IsParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// Watermark returns the user's deletion timestamp and whether one exists.
func (c *Chat) Watermark(userID string) (time.Time, bool) {
	if c.DeletedFor == nil {
		return time.Time{}, false
	}
	t, ok := c.DeletedFor[userID]
	return t, ok
}

// VisibleTo reports whether the chat should appear in the user's list:
// either never deleted, or holding a message newer than their watermark.
func (c *Chat) VisibleTo(userID string) bool {
	watermark, deleted := c.Watermark(userID)
	if !deleted {
		return true
	}
	return c.LastMessageAt.After(watermark)
}

// DeletedByAll reports whether every participant has soft-deleted the chat,
// at which point the document can be physically removed.
func (c *Chat) DeletedByAll() bool {
	if len(c.DeletedFor) < len(c.Participants) {
		return false
	}
	for _, p := range c.Participants {
		if _, ok := c.DeletedFor[p]; !ok {
			return false
		}
	}
	return true
}
