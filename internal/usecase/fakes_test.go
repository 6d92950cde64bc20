package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"barterhub/internal/domain/entity"
	"barterhub/pkg/errors"
)

// In-memory repository fakes mirroring the Firestore adapters' behavior:
// creates assign IDs and timestamps, deterministic keys dedupe activities
// and reviews, and lookups return NOT_FOUND app errors.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	user.Recalculate()
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func removeValue(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func (r *fakeUserRepo) AddLikedProduct(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.LikedProducts = appendUnique(user.LikedProducts, productID)
	return nil
}

func (r *fakeUserRepo) RemoveLikedProduct(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.LikedProducts = removeValue(user.LikedProducts, productID)
	return nil
}

func (r *fakeUserRepo) AddLikedUser(ctx context.Context, userID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.LikedUsers = appendUnique(user.LikedUsers, targetID)
	return nil
}

func (r *fakeUserRepo) RemoveLikedUser(ctx context.Context, userID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.LikedUsers = removeValue(user.LikedUsers, targetID)
	return nil
}

func (r *fakeUserRepo) AddProfileLike(ctx context.Context, userID, likerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Likes = appendUnique(user.Likes, likerID)
	return nil
}

func (r *fakeUserRepo) RemoveProfileLike(ctx context.Context, userID, likerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Likes = removeValue(user.Likes, likerID)
	return nil
}

func (r *fakeUserRepo) ApplyRatingDelta(ctx context.Context, userID string, sumDelta, countDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.RatingSum += sumDelta
	user.ReviewCount += countDelta
	user.Recalculate()
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}

func (r *fakeProductRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Product
	for _, product := range r.products {
		if product.DeletedAt != nil {
			continue
		}
		if v, ok := filter["category"]; ok && product.Category != v {
			continue
		}
		if v, ok := filter["condition"]; ok && product.Condition != v {
			continue
		}
		if v, ok := filter["status"]; ok && product.Status != v {
			continue
		}
		matched = append(matched, product)
	}
	return paginateProducts(matched, limit, offset)
}

func (r *fakeProductRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.DeletedAt == nil {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	now := time.Now()
	product.DeletedAt = &now
	return nil
}

func (r *fakeProductRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product, ok := r.products[id]; ok {
		product.Views++
	}
	return nil
}

func (r *fakeProductRepo) SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Product
	for _, product := range r.products {
		if product.DeletedAt != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(product.Title), strings.ToLower(query)) {
			continue
		}
		if v, ok := filter["category"]; ok && product.Category != v {
			continue
		}
		matched = append(matched, product)
	}
	return paginateProducts(matched, limit, offset)
}

func (r *fakeProductRepo) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Product
	for _, product := range r.products {
		if product.DeletedAt != nil || product.SellerID != sellerID {
			continue
		}
		if status != "" && product.Status != status {
			continue
		}
		matched = append(matched, product)
	}
	return paginateProducts(matched, limit, offset)
}

func (r *fakeProductRepo) AddLike(ctx context.Context, productID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.Likes = appendUnique(product.Likes, userID)
	return nil
}

func (r *fakeProductRepo) RemoveLike(ctx context.Context, productID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.Likes = removeValue(product.Likes, userID)
	return nil
}

func paginateProducts(matched []*entity.Product, limit, offset int) ([]*entity.Product, int64, error) {
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.Product{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

type fakeActivityRepo struct {
	mu         sync.Mutex
	activities map[string]*entity.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[string]*entity.Activity)}
}

func (r *fakeActivityRepo) Upsert(ctx context.Context, activity *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if activity.ID == "" {
		activity.ID = entity.ActivityKey(activity.UserID, activity.Type, activity.SenderID, activity.ProductID)
	}
	now := time.Now()
	if existing, ok := r.activities[activity.ID]; ok {
		existing.Content = activity.Content
		existing.Read = false
		existing.UpdatedAt = now
		return nil
	}
	activity.CreatedAt = now
	activity.UpdatedAt = now
	r.activities[activity.ID] = activity
	return nil
}

func (r *fakeActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok {
		return nil, errors.NotFound("Activity", nil)
	}
	return activity, nil
}

func (r *fakeActivityRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Activity, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Activity
	for _, activity := range r.activities {
		if activity.UserID == userID {
			matched = append(matched, activity)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.Activity{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (r *fakeActivityRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, activity := range r.activities {
		if activity.UserID == userID && !activity.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeActivityRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok {
		return errors.NotFound("Activity", nil)
	}
	activity.Read = true
	return nil
}

func (r *fakeActivityRepo) MarkAllRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, activity := range r.activities {
		if activity.UserID == userID {
			activity.Read = true
		}
	}
	return nil
}

func (r *fakeActivityRepo) MarkReviewDone(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok {
		return errors.NotFound("Activity", nil)
	}
	activity.ReviewDone = true
	return nil
}

func (r *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[id]; !ok {
		return errors.NotFound("Activity", nil)
	}
	delete(r.activities, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == "" {
		review.ID = entity.ReviewKey(review.ReviewerID, review.RevieweeID, review.ProductID)
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	return review, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return errors.NotFound("Review", nil)
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ListByReviewee(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Review
	for _, review := range r.reviews {
		if review.RevieweeID == revieweeID {
			matched = append(matched, review)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.Review{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	r.chats[chat.ID] = chat
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

func (r *fakeChatRepo) FindByParticipants(ctx context.Context, userA, userB string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chat := range r.chats {
		if chat.IsParticipant(userA) && chat.IsParticipant(userB) {
			return chat, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.UpdatedAt = time.Now()
	r.chats[chat.ID] = chat
	return nil
}

func (r *fakeChatRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[id]; !ok {
		return errors.NotFound("Chat", nil)
	}
	delete(r.chats, id)
	delete(r.messages, id)
	return nil
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Chat
	for _, chat := range r.chats {
		if chat.IsParticipant(userID) {
			matched = append(matched, chat)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].LastMessageAt.After(matched[j].LastMessageAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) && offset > 0 {
		return []*entity.Chat{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	r.messages[message.ChatID] = append(r.messages[message.ChatID], message)
	return nil
}

func (r *fakeChatRepo) GetMessageByID(ctx context.Context, chatID, messageID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[chatID] {
		if message.ID == messageID {
			return message, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *fakeChatRepo) UpdateMessage(ctx context.Context, chatID string, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages[chatID] {
		if m.ID == message.ID {
			r.messages[chatID][i] = message
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *fakeChatRepo) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := r.messages[chatID]
	for i, m := range messages {
		if m.ID == messageID {
			r.messages[chatID] = append(messages[:i], messages[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string, after time.Time, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Message
	for _, message := range r.messages[chatID] {
		if message.CreatedAt.After(after) {
			matched = append(matched, message)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) && offset > 0 {
		return []*entity.Message{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

type fakeRecentSearchRepo struct {
	mu       sync.Mutex
	searches []*entity.RecentSearch
}

func newFakeRecentSearchRepo() *fakeRecentSearchRepo {
	return &fakeRecentSearchRepo{}
}

func (r *fakeRecentSearchRepo) Create(ctx context.Context, search *entity.RecentSearch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if search.ID == "" {
		search.ID = uuid.New().String()
	}
	search.CreatedAt = time.Now()
	r.searches = append(r.searches, search)
	return nil
}

func (r *fakeRecentSearchRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.RecentSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.RecentSearch
	for i := len(r.searches) - 1; i >= 0; i-- {
		if r.searches[i].UserID == userID {
			matched = append(matched, r.searches[i])
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func (r *fakeRecentSearchRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.searches[:0]
	for _, search := range r.searches {
		if search.UserID != userID {
			kept = append(kept, search)
		}
	}
	r.searches = kept
	return nil
}

func seedUser(repo *fakeUserRepo, id, username string) *entity.User {
	user := &entity.User{
		ID:            id,
		Email:         id + "@example.com",
		Username:      username,
		LikedProducts: []string{},
		LikedUsers:    []string{},
		Likes:         []string{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	_ = repo.Create(context.Background(), user)
	return user
}

func seedProduct(repo *fakeProductRepo, id, sellerID, title string) *entity.Product {
	product := &entity.Product{
		ID:        id,
		SellerID:  sellerID,
		Title:     title,
		Price:     100,
		Category:  "electronics",
		Condition: "good",
		Likes:     []string{},
		Status:    entity.ProductStatusAvailable,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_ = repo.Create(context.Background(), product)
	return product
}
