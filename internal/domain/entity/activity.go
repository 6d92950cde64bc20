package entity

import (
	"fmt"
	"time"
)

const (
	ActivityProductLike              = "product_like"
	ActivityProfileLike              = "profile_like"
	ActivityReview                   = "review"
	ActivityPurchaseRequest          = "purchase_request"
	ActivityProductPurchased         = "product_purchased"
	ActivityPurchaseRequestAccepted  = "purchase_request_accepted"
	ActivityPurchaseRequestCancelled = "purchase_request_cancelled"
	ActivityReviewPrompt             = "review_prompt"
)

// Activity is a notification addressed to UserID about SenderID's action.
// At most one document exists per (user, type, sender, product) tuple.
type Activity struct {
	ID         string    `json:"id" firestore:"id"`
	UserID     string    `json:"user_id" firestore:"userId"`
	Type       string    `json:"type" firestore:"type"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	Content    string    `json:"content" firestore:"content"`
	ProductID  string    `json:"product_id,omitempty" firestore:"productId,omitempty"`
	Read       bool      `json:"read" firestore:"read"`
	ReviewDone bool      `json:"review_done" firestore:"reviewDone"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ActivityKey builds the deterministic document ID that enforces the
// at-most-one-per-tuple invariant.
func ActivityKey(userID, activityType, senderID, productID string) string {
	if productID == "" {
		return fmt.Sprintf("%s_%s_%s", userID, activityType, senderID)
	}
	return fmt.Sprintf("%s_%s_%s_%s", userID, activityType, senderID, productID)
}
