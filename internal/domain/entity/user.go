package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	FullName string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Bio      string `json:"bio" firestore:"bio"`
	PhotoURL string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Role     string `json:"role" firestore:"role"`
	Status   string `json:"status" firestore:"status"`

	Balance float64 `json:"balance" firestore:"balance"`

	// Rating is kept as an integer sum plus count; the float average is
	// derived on read so repeated create/delete cycles round-trip exactly.
	RatingSum     int     `json:"-" firestore:"ratingSum"`
	ReviewCount   int     `json:"review_count" firestore:"reviewCount"`
	AverageRating float64 `json:"average_rating" firestore:"-"`

	LikedProducts []string `json:"liked_products" firestore:"likedProducts"`
	LikedUsers    []string `json:"liked_users" firestore:"likedUsers"`
	Likes         []string `json:"likes" firestore:"likes"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Recalculate refreshes the derived average after a read or aggregate change.
func (u *User) Recalculate() {
	if u.ReviewCount > 0 {
		u.AverageRating = float64(u.RatingSum) / float64(u.ReviewCount)
	} else {
		u.AverageRating = 0
	}
}

func (u *User) HasLikedProduct(productID string) bool {
	for _, id := range u.LikedProducts {
		if id == productID {
			return true
		}
	}
	return false
}

func (u *User) HasLikedUser(userID string) bool {
	for _, id := range u.LikedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
