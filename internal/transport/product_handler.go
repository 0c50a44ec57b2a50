package transport

import (
	"net/http"
	"strconv"

	"product-catalog/internal/domain"
	"product-catalog/internal/middleware"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest represents the create payload. Category is required
// for meaningful use but not enforced at this layer; name is optional.
type CreateProductRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// UpdateProductRequest represents the update payload. Category and name are
// full-replace values: whatever is sent overwrites the stored fields.
type UpdateProductRequest struct {
	ID       int64  `json:"id" validate:"required"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// ProductListRequest represents the paged list payload. Page is zero-based.
type ProductListRequest struct {
	Category string `json:"category"`
	Page     int    `json:"page"`
	Size     int    `json:"size"`
}

// ProductListResponse is the paged list envelope
type ProductListResponse struct {
	Products      []*domain.Product `json:"products"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	Page          int               `json:"page"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/create/product", h.CreateProduct)
	r.Get("/get/product/by/{productID}", h.GetProductByID)
	r.Post("/update/product", h.UpdateProduct)
	r.Post("/delete/product/{productID}", h.DeleteProduct)
	r.Post("/product/list", h.ListProductsByCategory)
	r.Get("/product/category/list", h.ListUniqueCategories)
}

// CreateProduct handles product creation
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondFailure(w, r, "decodeError", err)
		return
	}

	product, err := h.productService.Create(r.Context(), req.Category, req.Name)
	if err != nil {
		h.respondFailure(w, r, "createError", err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// GetProductByID handles fetching a single product
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		h.respondFailure(w, r, "pathParamError", err)
		return
	}

	product, err := h.productService.GetByID(r.Context(), productID)
	if err != nil {
		h.respondFailure(w, r, "getError", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// UpdateProduct handles full-replace updates of category and name
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			h.logger.Error("Update validation failed",
				zap.Int("status", http.StatusInternalServerError),
				zap.String("errorType", "validationError"),
				zap.Any("errorCause", validationErrors),
			)
			middleware.RespondWithInternalError(w)
			return
		}
		h.respondFailure(w, r, "decodeError", err)
		return
	}

	product, err := h.productService.Update(r.Context(), req.ID, req.Category, req.Name)
	if err != nil {
		h.respondFailure(w, r, "updateError", err)
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct handles product deletion, answering a bare true on success
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		h.respondFailure(w, r, "pathParamError", err)
		return
	}

	if err := h.productService.DeleteByID(r.Context(), productID); err != nil {
		h.respondFailure(w, r, "deleteError", err)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", productID))
	middleware.RespondWithJSON(w, http.StatusOK, true)
}

// ListProductsByCategory handles the paged category listing
func (h *ProductHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	var req ProductListRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondFailure(w, r, "decodeError", err)
		return
	}

	page, err := h.productService.ListByCategory(r.Context(), req.Category, req.Page, req.Size)
	if err != nil {
		h.respondFailure(w, r, "listError", err)
		return
	}

	response := ProductListResponse{
		Products:      page.Products,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		Page:          page.Page,
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// ListUniqueCategories handles the distinct category listing
func (h *ProductHandler) ListUniqueCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.ListUniqueCategories(r.Context())
	if err != nil {
		h.respondFailure(w, r, "categoryListError", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// respondFailure collapses every failure, not-found included, to a bare 500
// with no body. Callers cannot tell a bad ID from a server fault; the
// distinction only exists in the log fields.
func (h *ProductHandler) respondFailure(w http.ResponseWriter, r *http.Request, errorType string, err error) {
	h.logger.Error("Request failed",
		zap.Int("status", http.StatusInternalServerError),
		zap.String("errorType", errorType),
		zap.String("errorCause", err.Error()),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	middleware.RespondWithInternalError(w)
}
