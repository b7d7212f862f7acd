package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/tuuze-market/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage описывает методы для работы с таблицей Products.
type ProductStorage interface {
	// CreateProduct вставляет новую позицию каталога и возвращает число затронутых строк.
	CreateProduct(ctx context.Context, product *models.Product) (int64, error)
	// GetProducts возвращает весь каталог без фильтра по продавцу.
	GetProducts(ctx context.Context) ([]*models.Product, error)
	// GetProductsByMerchantID возвращает каталог одного продавца.
	GetProductsByMerchantID(ctx context.Context, merchantID string) ([]*models.Product, error)
	// UpdateProduct обновляет позицию по id; ноль затронутых строк — ErrProductNotFound.
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct удаляет позицию по id; ноль затронутых строк — ErrProductNotFound.
	DeleteProduct(ctx context.Context, id string) error
}

// productRepository — конкретная реализация ProductStorage.
type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт новый репозиторий каталога.
func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (int64, error) {
	query := `INSERT INTO Products (id, merchant_id, imageUrl, name, description, category, quantity, price)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	res, err := r.db.ExecContext(ctx, query,
		product.ID, product.MerchantID, product.ImageURL, product.Name,
		product.Description, product.Category, product.Quantity, product.Price)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return res.RowsAffected()
}

// GetProducts возвращает каталог с JOIN на wallets, чтобы каждая позиция
// несла актуальный адрес кошелька владельца (нужен витрине при оформлении заказа)
func (r *productRepository) GetProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.merchant_id, p.imageUrl, p.name, p.description, p.category, p.quantity, p.price,
		       COALESCE(w.wallet_address, '')
		FROM Products p
		LEFT JOIN wallets w ON w.merchant_id = p.merchant_id`
	return r.queryProducts(ctx, query)
}

func (r *productRepository) GetProductsByMerchantID(ctx context.Context, merchantID string) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.merchant_id, p.imageUrl, p.name, p.description, p.category, p.quantity, p.price,
		       COALESCE(w.wallet_address, '')
		FROM Products p
		LEFT JOIN wallets w ON w.merchant_id = p.merchant_id
		WHERE p.merchant_id = $1`
	return r.queryProducts(ctx, query, merchantID)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.MerchantID, &p.ImageURL, &p.Name, &p.Description,
			&p.Category, &p.Quantity, &p.Price, &p.WalletAddress); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE Products SET name = $1, description = $2, imageUrl = $3, price = $4, category = $5, quantity = $6
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.ImageURL, product.Price,
		product.Category, product.Quantity, product.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// «строки нет» и «строка есть, но не изменилась» здесь не различаются
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM Products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
