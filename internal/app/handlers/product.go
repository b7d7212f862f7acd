package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/tuuze-market/internal/domain/models"
	"github.com/linemk/tuuze-market/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/tuuze-market/internal/lib/api"
	"github.com/linemk/tuuze-market/internal/service"
	"github.com/linemk/tuuze-market/internal/storage"
)

// AddProductRequest представляет входной JSON для создания товара.
type AddProductRequest struct {
	MerchantID  string  `json:"merchant_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// AddProductResponse — ответ при успешном создании.
type AddProductResponse struct {
	Message      string `json:"message"`
	RowsAffected int64  `json:"rowsAffected"`
}

// ProductListResponse — ответ списка: каталог лежит в поле message,
// как того ждут оба клиента
type ProductListResponse struct {
	Message []*models.Product `json:"message"`
}

// MessageResponse — общий ответ вида {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateProductRequest — входной JSON для обновления товара.
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
}

// AddProductHandler обрабатывает запрос POST /AddProduct.
// merchant_id берётся из тела запроса, а не из аутентифицированной сессии —
// см. DESIGN.md
func AddProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddProductHandler"
		logger := log.With(slog.String("op", op))

		var req AddProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			api.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			api.WriteError(w, http.StatusBadRequest, "validation error")
			return
		}

		product := &models.Product{
			MerchantID:  req.MerchantID,
			Name:        req.Name,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Category:    req.Category,
			Quantity:    req.Quantity,
			Price:       req.Price,
		}
		affected, err := catalogService.Create(r.Context(), product)
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			api.WriteError(w, http.StatusInternalServerError, "An error occurred while creating the product.")
			return
		}

		api.WriteJSON(w, http.StatusOK, AddProductResponse{
			Message:      "Product created successfully",
			RowsAffected: affected,
		})
	}
}

// GetProductsHandler обрабатывает запрос GET /getProducts: весь каталог без
// фильтра по продавцу, общий путь чтения витрины и консоли.
func GetProductsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := catalogService.List(r.Context())
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			api.WriteError(w, http.StatusInternalServerError, "Server Error")
			return
		}
		if products == nil {
			products = []*models.Product{}
		}

		api.WriteJSON(w, http.StatusOK, ProductListResponse{Message: products})
	}
}

// MerchantProductsHandler обрабатывает запрос GET /merchant/products:
// каталог аутентифицированного продавца, идентификатор берётся из JWT.
func MerchantProductsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MerchantProductsHandler"
		logger := log.With(slog.String("op", op))

		merchantID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("merchantID not found in context")
			api.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		products, err := catalogService.ListByMerchant(r.Context(), merchantID)
		if err != nil {
			logger.Error("failed to list merchant products", slog.Any("error", err))
			api.WriteError(w, http.StatusInternalServerError, "Server Error")
			return
		}
		if products == nil {
			products = []*models.Product{}
		}

		api.WriteJSON(w, http.StatusOK, ProductListResponse{Message: products})
	}
}

// UpdateProductHandler обрабатывает запрос PUT /updateProduct/{id}.
func UpdateProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			logger.Error("id parameter is missing")
			api.WriteError(w, http.StatusBadRequest, "id parameter is required")
			return
		}

		var req UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			api.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		product := &models.Product{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Price:       req.Price,
			Category:    req.Category,
			Quantity:    req.Quantity,
		}
		if err := catalogService.Update(r.Context(), product); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				api.WriteError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to update product", slog.Any("error", err))
			api.WriteError(w, http.StatusInternalServerError, "An error occurred while updating the product.")
			return
		}

		api.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Product updated successfully"})
	}
}

// DeleteProductHandler обрабатывает запрос DELETE /deleteProduct/{id}.
func DeleteProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			logger.Error("id parameter is missing")
			api.WriteError(w, http.StatusBadRequest, "id parameter is required")
			return
		}

		if err := catalogService.Delete(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				api.WriteError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to delete product", slog.Any("error", err))
			api.WriteError(w, http.StatusInternalServerError, "An error occurred while deleting the product.")
			return
		}

		api.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
	}
}
