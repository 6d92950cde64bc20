package entity

import "time"

type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Content   string    `json:"content,omitempty" firestore:"content,omitempty"`
	Images    []string  `json:"images,omitempty" firestore:"images,omitempty"`
	Seen      bool      `json:"seen" firestore:"seen"`
	Edited    bool      `json:"edited" firestore:"edited"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
