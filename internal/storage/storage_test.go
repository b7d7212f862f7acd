package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/tuuze-market/internal/domain/models"
	"github.com/linemk/tuuze-market/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestGetMerchantByEmail_Success(t *testing.T) {
	// Создаем sqlmock для эмуляции базы данных.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMerchantRepository(db)
	ctx := context.Background()
	email := "merchant@example.com"

	rows := sqlmock.NewRows([]string{"merchant_id", "merchantUserName", "merchantEmail", "password"}).
		AddRow("3f1d2c9e-0000-0000-0000-000000000001", "amina", email, []byte("hashed-password"))

	mock.ExpectQuery("SELECT merchant_id, merchantUserName, merchantEmail, password FROM merchants WHERE merchantEmail = \\$1").
		WithArgs(email).WillReturnRows(rows)

	merchant, err := repo.GetMerchantByEmail(ctx, email)
	assert.NoError(t, err, "Expected no error when merchant is found")
	assert.Equal(t, "amina", merchant.Username)
	assert.Equal(t, email, merchant.Email)
	assert.Equal(t, []byte("hashed-password"), merchant.PassHash)

	// Проверяем, что все ожидания sqlmock выполнены.
	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestGetMerchantByEmail_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMerchantRepository(db)
	ctx := context.Background()

	// Эмулируем ситуацию, когда запрос возвращает 0 строк.
	rows := sqlmock.NewRows([]string{"merchant_id", "merchantUserName", "merchantEmail", "password"})
	mock.ExpectQuery("SELECT merchant_id, merchantUserName, merchantEmail, password FROM merchants WHERE merchantEmail = \\$1").
		WithArgs("missing@example.com").WillReturnRows(rows)

	merchant, err := repo.GetMerchantByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrMerchantNotFound)
	assert.Nil(t, merchant, "Merchant should be nil when not found")

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestEmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMerchantRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM merchants WHERE merchantEmail = \\$1").
		WithArgs("taken@example.com").WillReturnRows(rows)

	exists, err := repo.EmailExists(ctx, "taken@example.com")
	assert.NoError(t, err)
	assert.True(t, exists, "Expected email to be reported as taken")

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestCreateWallet_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewWalletRepository(db)
	ctx := context.Background()

	wallet := &models.Wallet{
		ID:         "6a8c0d7e-0000-0000-0000-000000000001",
		MerchantID: "3f1d2c9e-0000-0000-0000-000000000001",
		Address:    "0xABC",
	}

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(wallet.ID, wallet.MerchantID, wallet.Address).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.CreateWallet(ctx, wallet)
	assert.NoError(t, err, "Expected insert to succeed for a fresh address")

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestCreateWallet_DuplicateAddress(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewWalletRepository(db)
	ctx := context.Background()

	wallet := &models.Wallet{
		ID:         "6a8c0d7e-0000-0000-0000-000000000002",
		MerchantID: "3f1d2c9e-0000-0000-0000-000000000002",
		Address:    "0xABC",
	}

	// ON CONFLICT DO NOTHING: ноль затронутых строк — адрес уже существовал.
	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(wallet.ID, wallet.MerchantID, wallet.Address).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.CreateWallet(ctx, wallet)
	assert.ErrorIs(t, err, storage.ErrWalletExists, "Zero affected rows must be reported as a duplicate")

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestGetWalletByMerchantID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewWalletRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "merchant_id", "wallet_address"})
	mock.ExpectQuery("SELECT id, merchant_id, wallet_address FROM wallets WHERE merchant_id = \\$1").
		WithArgs("no-such-merchant").WillReturnRows(rows)

	wallet, err := repo.GetWalletByMerchantID(ctx, "no-such-merchant")
	assert.ErrorIs(t, err, storage.ErrWalletNotFound)
	assert.Nil(t, wallet)

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)
	ctx := context.Background()

	product := &models.Product{
		ID:       "missing-id",
		Name:     "lamp",
		Price:    10,
		Quantity: 1,
	}

	mock.ExpectExec("UPDATE Products SET").
		WithArgs(product.Name, product.Description, product.ImageURL, product.Price,
			product.Category, product.Quantity, product.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateProduct(ctx, product)
	assert.ErrorIs(t, err, storage.ErrProductNotFound, "Zero affected rows must map to not found")

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestDeleteProduct_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM Products WHERE id = \\$1").
		WithArgs("existing-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.DeleteProduct(ctx, "existing-id")
	assert.NoError(t, err)

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM Products WHERE id = \\$1").
		WithArgs("missing-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteProduct(ctx, "missing-id")
	assert.ErrorIs(t, err, storage.ErrProductNotFound)

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestGetProducts_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)
	ctx := context.Background()

	// Каталог читается с JOIN на wallets, последняя колонка — адрес владельца.
	rows := sqlmock.NewRows([]string{"id", "merchant_id", "imageUrl", "name", "description", "category", "quantity", "price", "wallet_address"}).
		AddRow("p1", "m1", "https://img/1.png", "basket", "hand-woven", "decor", 3, 24.5, "0xABC").
		AddRow("p2", "m2", "https://img/2.png", "mug", "ceramic", "kitchen", 10, 8.0, "")

	mock.ExpectQuery("SELECT p.id, p.merchant_id, p.imageUrl, p.name, p.description, p.category, p.quantity, p.price").
		WillReturnRows(rows)

	products, err := repo.GetProducts(ctx)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "basket", products[0].Name)
	assert.Equal(t, "0xABC", products[0].WalletAddress)
	assert.Equal(t, "", products[1].WalletAddress, "Merchant without wallet yields empty address")

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestMarkWelcomed_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMerchantRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE merchants SET is_welcomed = true WHERE merchant_id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkWelcomed(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrMerchantNotFound)

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}

func TestCreateMerchant_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMerchantRepository(db)
	ctx := context.Background()

	merchant := &models.Merchant{
		ID:       "3f1d2c9e-0000-0000-0000-000000000003",
		Username: "amina",
		Email:    "merchant@example.com",
		PassHash: []byte("hash"),
	}

	mock.ExpectExec("INSERT INTO merchants").
		WithArgs(merchant.ID, merchant.Username, merchant.Email, merchant.PassHash).
		WillReturnError(errors.New("db error"))

	created, err := repo.CreateMerchant(ctx, merchant)
	assert.Error(t, err, "Expected error when insert fails")
	assert.Nil(t, created)

	err = mock.ExpectationsWereMet()
	assert.NoError(t, err)
}
