package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/tuuze-market/internal/domain/models"
	"github.com/linemk/tuuze-market/internal/storage"
)

// CatalogService определяет CRUD-операции над каталогом товаров.
type CatalogService interface {
	Create(ctx context.Context, product *models.Product) (int64, error)
	List(ctx context.Context) ([]*models.Product, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage) CatalogService {
	return &catalogService{
		log:         log,
		productRepo: productRepo,
	}
}

// Create вставляет новую позицию каталога и возвращает число затронутых строк.
// merchant_id приходит от вызывающей стороны, а не из сессии — см. DESIGN.md
func (s *catalogService) Create(ctx context.Context, product *models.Product) (int64, error) {
	const op = "service.CatalogService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("merchantID", product.MerchantID))

	product.ID = uuid.NewString()
	affected, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to create product: %w", op, err)
	}

	logger.Info("product created", slog.String("productID", product.ID))
	return affected, nil
}

// List возвращает весь каталог: этот путь чтения общий для витрины и консоли продавца
func (s *catalogService) List(ctx context.Context) ([]*models.Product, error) {
	const op = "service.CatalogService.List"

	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list products: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) ListByMerchant(ctx context.Context, merchantID string) ([]*models.Product, error) {
	const op = "service.CatalogService.ListByMerchant"

	products, err := s.productRepo.GetProductsByMerchantID(ctx, merchantID)
	if err != nil {
		s.log.Error("failed to list merchant products",
			slog.String("op", op), slog.String("merchantID", merchantID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list merchant products: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) Update(ctx context.Context, product *models.Product) error {
	const op = "service.CatalogService.Update"
	logger := s.log.With(slog.String("op", op), slog.String("productID", product.ID))

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		logger.Error("failed to update product", slog.Any("error", err))
		return fmt.Errorf("%s: failed to update product: %w", op, err)
	}
	logger.Info("product updated")
	return nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	const op = "service.CatalogService.Delete"
	logger := s.log.With(slog.String("op", op), slog.String("productID", id))

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		logger.Error("failed to delete product", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete product: %w", op, err)
	}
	logger.Info("product deleted")
	return nil
}
