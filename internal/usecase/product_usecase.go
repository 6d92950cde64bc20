package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/internal/infrastructure/ratelimit"
	"barterhub/pkg/errors"
	"barterhub/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	activities  *ActivityUseCase
	rateLimiter *ratelimit.RateLimiter
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	activities *ActivityUseCase,
) *ProductUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		activities:  activities,
		rateLimiter: rateLimiter,
	}
}

type CreateProductInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
}

type UpdateProductInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
}

type ProductImageInput struct {
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input CreateProductInput, images []ProductImageInput) (*entity.Product, error) {
	// Validate seller
	if _, err := uc.userRepo.GetByID(ctx, sellerID); err != nil {
		return nil, errors.BadRequest("Invalid seller", err)
	}

	if !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest("Invalid category", nil)
	}
	if !entity.ValidCondition(input.Condition) {
		return nil, errors.BadRequest("Invalid condition", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price must not be negative", nil)
	}

	product := &entity.Product{
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Images:      convertImages(images),
		Likes:       []string{},
		Status:      entity.ProductStatusAvailable,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, sellerID string, input UpdateProductInput, images []ProductImageInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to update this product", nil)
	}

	if product.IsSold() {
		return nil, errors.Conflict("Sold products can no longer be edited")
	}

	// Partial update: empty fields keep their current value
	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price must not be negative", nil)
		}
		product.Price = *input.Price
	}
	if input.Category != "" {
		if !entity.ValidCategory(input.Category) {
			return nil, errors.BadRequest("Invalid category", nil)
		}
		product.Category = input.Category
	}
	if input.Condition != "" {
		if !entity.ValidCondition(input.Condition) {
			return nil, errors.BadRequest("Invalid condition", nil)
		}
		product.Condition = input.Condition
	}

	// New images append to the existing list, never replace it
	if len(images) > 0 {
		product.Images = append(product.Images, convertImages(images)...)
	}

	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string, sellerID string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.SellerID != sellerID {
		return errors.Forbidden("You don't have permission to delete this product", nil)
	}

	// Sold products are part of the buyer's purchase history
	if product.IsSold() {
		return errors.Conflict("Sold products can no longer be deleted")
	}

	return uc.productRepo.SoftDelete(ctx, id)
}

func (uc *ProductUseCase) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Increment view counter (async)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = uc.productRepo.IncrementViews(ctx, id)
	}()

	return product, nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, category, condition, productStatus, sort string, page, limit int) ([]*entity.Product, int64, error) {
	filter := make(map[string]interface{})

	if category != "" {
		filter["category"] = category
	}
	if condition != "" {
		filter["condition"] = condition
	}
	if productStatus != "" {
		filter["status"] = productStatus
	} else {
		filter["status"] = entity.ProductStatusAvailable
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.List(ctx, filter, sort, limit, offset)
}

func (uc *ProductUseCase) SearchProducts(ctx context.Context, query, category string, page, limit int) ([]*entity.Product, int64, error) {
	filter := make(map[string]interface{})
	if category != "" {
		filter["category"] = category
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.SearchByTitle(ctx, query, filter, limit, offset)
}

func (uc *ProductUseCase) ListBySellerID(ctx context.Context, sellerID, productStatus string, limit, offset int) ([]*entity.Product, int64, error) {
	if _, err := uc.userRepo.GetByID(ctx, sellerID); err != nil {
		return nil, 0, errors.BadRequest("Invalid seller", err)
	}

	return uc.productRepo.ListBySellerID(ctx, sellerID, productStatus, limit, offset)
}

func (uc *ProductUseCase) ListLikedProducts(ctx context.Context, userID string) ([]*entity.Product, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return uc.productRepo.ListByIDs(ctx, user.LikedProducts)
}

// RequestPurchase opens a pending purchase request on an available listing.
func (uc *ProductUseCase) RequestPurchase(ctx context.Context, buyerID, productID string) (*entity.Product, error) {
	if allowed, _ := uc.rateLimiter.Allow(buyerID, "purchase_request"); !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending more purchase requests", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot request to buy your own listing", nil)
	}
	if product.IsSold() {
		return nil, errors.BadRequest("Product is already sold", nil)
	}
	if product.HasPendingRequest() {
		return nil, errors.BadRequest("Product already has a pending purchase request", nil)
	}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	product.PurchaseRequest = &entity.PurchaseRequest{
		BuyerID:     buyerID,
		RequestedAt: time.Now(),
		Status:      "pending",
	}
	product.Status = entity.ProductStatusPending

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	content := fmt.Sprintf("%s wants to buy \"%s\"", buyer.Username, product.Title)
	if err := uc.activities.Notify(ctx, product.SellerID, entity.ActivityPurchaseRequest, buyerID, content, productID); err != nil {
		logger.LogActivityError(entity.ActivityPurchaseRequest, product.SellerID, err)
	}

	return product, nil
}

// PurchaseProduct finalizes a sale directly, bypassing negotiation.
func (uc *ProductUseCase) PurchaseProduct(ctx context.Context, buyerID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot buy your own listing", nil)
	}
	if product.IsSold() {
		return nil, errors.BadRequest("Product is already sold", nil)
	}
	if product.HasPendingRequest() {
		return nil, errors.BadRequest("Product has a pending purchase request", nil)
	}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	uc.finalizeSale(product, buyerID)

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	content := fmt.Sprintf("%s bought \"%s\"", buyer.Username, product.Title)
	if err := uc.activities.Notify(ctx, product.SellerID, entity.ActivityProductPurchased, buyerID, content, productID); err != nil {
		logger.LogActivityError(entity.ActivityProductPurchased, product.SellerID, err)
	}
	uc.promptReview(ctx, buyerID, product)

	return product, nil
}

// AcceptPurchaseRequest lets the seller turn the pending request into a sale.
func (uc *ProductUseCase) AcceptPurchaseRequest(ctx context.Context, sellerID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can accept a purchase request", nil)
	}
	if !product.HasPendingRequest() {
		return nil, errors.BadRequest("No pending purchase request to accept", nil)
	}

	buyerID := product.PurchaseRequest.BuyerID
	uc.finalizeSale(product, buyerID)

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Your purchase request for \"%s\" was accepted", product.Title)
	if err := uc.activities.Notify(ctx, buyerID, entity.ActivityPurchaseRequestAccepted, sellerID, content, productID); err != nil {
		logger.LogActivityError(entity.ActivityPurchaseRequestAccepted, buyerID, err)
	}
	uc.promptReview(ctx, buyerID, product)

	return product, nil
}

// CancelPurchaseRequest returns the listing to available. Either party may
// cancel; the other one is notified.
func (uc *ProductUseCase) CancelPurchaseRequest(ctx context.Context, callerID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.PurchaseRequest == nil {
		return nil, errors.BadRequest("No purchase request to cancel", nil)
	}

	buyerID := product.PurchaseRequest.BuyerID
	if callerID != product.SellerID && callerID != buyerID {
		return nil, errors.Forbidden("Only the seller or the requesting buyer can cancel", nil)
	}

	product.PurchaseRequest = nil
	product.Status = entity.ProductStatusAvailable

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	otherParty := buyerID
	if callerID == buyerID {
		otherParty = product.SellerID
	}

	content := fmt.Sprintf("The purchase request for \"%s\" was cancelled", product.Title)
	if err := uc.activities.Notify(ctx, otherParty, entity.ActivityPurchaseRequestCancelled, callerID, content, productID); err != nil {
		logger.LogActivityError(entity.ActivityPurchaseRequestCancelled, otherParty, err)
	}

	return product, nil
}

// finalizeSale moves the product to its terminal state. The pending request
// is cleared so sold and pending can never coexist.
func (uc *ProductUseCase) finalizeSale(product *entity.Product, buyerID string) {
	product.Sold = &entity.SaleInfo{
		To:     buyerID,
		SoldAt: time.Now(),
	}
	product.PurchaseRequest = nil
	product.Status = entity.ProductStatusSold
}

func (uc *ProductUseCase) promptReview(ctx context.Context, buyerID string, product *entity.Product) {
	content := fmt.Sprintf("How was your purchase of \"%s\"? Leave a review", product.Title)
	if err := uc.activities.Notify(ctx, buyerID, entity.ActivityReviewPrompt, product.SellerID, content, product.ID); err != nil {
		logger.LogActivityError(entity.ActivityReviewPrompt, buyerID, err)
	}
}

func convertImages(images []ProductImageInput) []entity.ProductImage {
	productImages := make([]entity.ProductImage, len(images))
	for i, img := range images {
		productImages[i] = entity.ProductImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}
	return productImages
}
