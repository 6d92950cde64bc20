package handler

import (
	"github.com/labstack/echo/v4"

	"barterhub/internal/usecase"
	"barterhub/pkg/errors"
	"barterhub/pkg/logger"
	"barterhub/pkg/response"
	"barterhub/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	searchUseCase  *usecase.SearchUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase, searchUseCase *usecase.SearchUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		searchUseCase:  searchUseCase,
	}
}

type productImageRequest struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type createProductRequest struct {
	Title       string                `json:"title" validate:"required,min=3"`
	Description string                `json:"description"`
	Price       float64               `json:"price" validate:"gte=0"`
	Category    string                `json:"category" validate:"required"`
	Condition   string                `json:"condition" validate:"required"`
	Images      []productImageRequest `json:"images"`
}

type updateProductRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Price       *float64              `json:"price" validate:"omitempty,gte=0"`
	Category    string                `json:"category"`
	Condition   string                `json:"condition"`
	Images      []productImageRequest `json:"images"`
}

func toImageInputs(images []productImageRequest) []usecase.ProductImageInput {
	inputs := make([]usecase.ProductImageInput, len(images))
	for i, img := range images {
		inputs[i] = usecase.ProductImageInput{
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}
	return inputs
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	product, err := h.productUseCase.CreateProduct(
		c.Request().Context(),
		sellerID,
		usecase.CreateProductInput{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			Condition:   req.Condition,
		},
		toImageInputs(req.Images),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	product, err := h.productUseCase.UpdateProduct(
		c.Request().Context(),
		id,
		sellerID,
		usecase.UpdateProductInput{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			Condition:   req.Condition,
		},
		toImageInputs(req.Images),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")

	product, err := h.productUseCase.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	category := c.QueryParam("category")
	condition := c.QueryParam("condition")
	status := c.QueryParam("status")
	sort := c.QueryParam("sort")

	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(
		c.Request().Context(),
		category,
		condition,
		status,
		sort,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.Error(c, errors.BadRequest("Search query is required", nil))
	}

	category := c.QueryParam("category")
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.SearchProducts(
		c.Request().Context(),
		query,
		category,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	// Remember the query for signed-in users.
	if uid, ok := c.Get("uid").(string); ok && uid != "" {
		if _, err := h.searchUseCase.RecordSearch(c.Request().Context(), uid, query, ""); err != nil {
			logger.Warn("Failed to record search for user %s: %v", uid, err)
		}
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)
	status := c.QueryParam("status")

	products, total, err := h.productUseCase.ListBySellerID(
		c.Request().Context(),
		sellerID,
		status,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) ListUserProducts(c echo.Context) error {
	sellerID := c.Param("id")

	pagination := utils.GetPaginationParams(c)
	status := c.QueryParam("status")

	products, total, err := h.productUseCase.ListBySellerID(
		c.Request().Context(),
		sellerID,
		status,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	sellerID := c.Get("uid").(string)

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), id, sellerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted successfully",
	})
}

func (h *ProductHandler) RequestPurchase(c echo.Context) error {
	id := c.Param("id")
	buyerID := c.Get("uid").(string)

	product, err := h.productUseCase.RequestPurchase(c.Request().Context(), buyerID, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) PurchaseProduct(c echo.Context) error {
	id := c.Param("id")
	buyerID := c.Get("uid").(string)

	product, err := h.productUseCase.PurchaseProduct(c.Request().Context(), buyerID, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) AcceptPurchaseRequest(c echo.Context) error {
	id := c.Param("id")
	sellerID := c.Get("uid").(string)

	product, err := h.productUseCase.AcceptPurchaseRequest(c.Request().Context(), sellerID, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) CancelPurchaseRequest(c echo.Context) error {
	id := c.Param("id")
	callerID := c.Get("uid").(string)

	product, err := h.productUseCase.CancelPurchaseRequest(c.Request().Context(), callerID, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}
