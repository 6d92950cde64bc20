package entity

import (
	"time"
)

const (
	ProductStatusAvailable = "available"
	ProductStatusPending   = "pending"
	ProductStatusSold      = "sold"
)

var ProductCategories = []string{
	"electronics", "clothing", "books", "home", "sports", "toys", "vehicles", "other",
}

var ProductConditions = []string{
	"new", "like_new", "good", "fair", "poor",
}

type ProductImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

// PurchaseRequest is present only while a buyer's request is pending.
type PurchaseRequest struct {
	BuyerID     string    `json:"buyer_id" firestore:"buyerId"`
	RequestedAt time.Time `json:"requested_at" firestore:"requestedAt"`
	Status      string    `json:"status" firestore:"status"`
}

// SaleInfo is present once the listing is finalized. Terminal.
type SaleInfo struct {
	To     string    `json:"to" firestore:"to"`
	SoldAt time.Time `json:"sold_at" firestore:"soldAt"`
}

type Product struct {
	ID          string         `json:"id" firestore:"id"`
	SellerID    string         `json:"seller_id" firestore:"sellerId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Price       float64        `json:"price" firestore:"price"`
	Category    string         `json:"category" firestore:"category"`
	Condition   string         `json:"condition" firestore:"condition"`
	Images      []ProductImage `json:"images" firestore:"images"`
	Likes       []string       `json:"likes" firestore:"likes"`

	// Status is the single source of truth for the lifecycle;
	// PurchaseRequest and Sold carry the per-state detail.
	Status          string           `json:"status" firestore:"status"`
	PurchaseRequest *PurchaseRequest `json:"purchase_request,omitempty" firestore:"purchaseRequest,omitempty"`
	Sold            *SaleInfo        `json:"sold,omitempty" firestore:"sold,omitempty"`

	Views     int        `json:"views" firestore:"views"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

func (p *Product) IsSold() bool {
	return p.Status == ProductStatusSold
}

func (p *Product) HasPendingRequest() bool {
	return p.PurchaseRequest != nil && p.PurchaseRequest.Status == "pending"
}

func (p *Product) IsLikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

func ValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidCondition(condition string) bool {
	for _, c := range ProductConditions {
		if c == condition {
			return true
		}
	}
	return false
}
