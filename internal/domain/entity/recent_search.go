package entity

import "time"

type RecentSearch struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Query     string    `json:"query" firestore:"query"`
	ProductID string    `json:"product_id,omitempty" firestore:"productId,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
