package entity

import (
	"fmt"
	"time"
)

type Review struct {
	ID         string    `json:"id" firestore:"id"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	RevieweeID string    `json:"reviewee_id" firestore:"revieweeId"`
	ProductID  string    `json:"product_id" firestore:"productId"`
	Rating     int       `json:"rating" firestore:"rating"`
	Comment    string    `json:"comment" firestore:"comment"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ReviewKey is the deterministic document ID; one review per tuple.
func ReviewKey(reviewerID, revieweeID, productID string) string {
	return fmt.Sprintf("%s_%s_%s", reviewerID, revieweeID, productID)
}
