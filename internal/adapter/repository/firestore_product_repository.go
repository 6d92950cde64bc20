package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barterhub/internal/domain/entity"
	"barterhub/internal/domain/repository"
	"barterhub/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		doc := r.client.Collection("products").NewDoc()
		product.ID = doc.ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	if product.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}

	return &product, nil
}

func (r *firestoreProductRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	query = query.Where("deletedAt", "==", nil)

	if sort != "" {
		parts := strings.Split(sort, "_")
		field := parts[0]
		order := firestore.Asc
		if len(parts) > 1 && parts[1] == "desc" {
			order = firestore.Desc
		}
		query = query.OrderBy(field, order)
	} else {
		query = query.OrderBy("createdAt", firestore.Desc)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count products", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate products", err)
		}
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, total, nil
}

func (r *firestoreProductRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var products []*entity.Product
	// Firestore batch gets are capped at 30 refs
	for i := 0; i < len(ids); i += 30 {
		end := i + 30
		if end > len(ids) {
			end = len(ids)
		}

		docRefs := make([]*firestore.DocumentRef, 0, end-i)
		for _, id := range ids[i:end] {
			docRefs = append(docRefs, r.client.Collection("products").Doc(id))
		}

		docs, err := r.client.GetAll(ctx, docRefs)
		if err != nil {
			return nil, errors.Internal("Failed to batch fetch products", err)
		}

		for _, doc := range docs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				continue
			}
			if product.DeletedAt != nil {
				continue
			}
			products = append(products, &product)
		}
	}

	return products, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("products").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to soft delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("products").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment product views", err)
	}

	return nil
}

func (r *firestoreProductRepository) SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Product, int64, error) {
	// Firestore has no full-text search; filter in memory over the
	// candidate set the way a dedicated search service would index it.
	query = strings.ToLower(query)

	baseQuery := r.client.Collection("products").Query.Where("deletedAt", "==", nil)

	for key, value := range filter {
		baseQuery = baseQuery.Where(key, "==", value)
	}

	docs, err := baseQuery.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search products", err)
	}

	var matched []*entity.Product
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(product.Title), query) {
			matched = append(matched, &product)
		}
	}

	total := int64(len(matched))

	start := offset
	end := offset + limit
	if start >= len(matched) {
		return []*entity.Product{}, total, nil
	}
	if end > len(matched) || limit <= 0 {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *firestoreProductRepository) ListBySellerID(ctx context.Context, sellerID string, productStatus string, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Query.Where("sellerId", "==", sellerID).Where("deletedAt", "==", nil)

	if productStatus != "" {
		query = query.Where("status", "==", productStatus)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count seller products", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate seller products", err)
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, total, nil
}

func (r *firestoreProductRepository) AddLike(ctx context.Context, productID, userID string) error {
	return r.likeUpdate(ctx, productID, firestore.ArrayUnion(userID))
}

func (r *firestoreProductRepository) RemoveLike(ctx context.Context, productID, userID string) error {
	return r.likeUpdate(ctx, productID, firestore.ArrayRemove(userID))
}

func (r *firestoreProductRepository) likeUpdate(ctx context.Context, productID string, value interface{}) error {
	_, err := r.client.Collection("products").Doc(productID).Update(ctx, []firestore.Update{
		{Path: "likes", Value: value},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product likes", err)
	}
	return nil
}
