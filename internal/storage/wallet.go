package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/tuuze-market/internal/domain/models"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletExists — адрес уже зарегистрирован другим (или этим же) продавцом
	ErrWalletExists = errors.New("wallet address already registered")
)

// WalletStorage описывает методы для работы с таблицей wallets.
type WalletStorage interface {
	// CreateWallet выполняет атомарный check-and-insert адреса.
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	// GetWalletByMerchantID возвращает кошелёк продавца.
	GetWalletByMerchantID(ctx context.Context, merchantID string) (*models.Wallet, error)
}

type walletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) WalletStorage {
	return &walletRepository{db: db}
}

// CreateWallet вставляет адрес под уникальным ограничением wallet_address.
// ON CONFLICT DO NOTHING молча пропускает вставку при дубликате, поэтому
// ноль затронутых строк означает, что адрес уже существовал — отдельной
// проверки перед вставкой нет, гонки check/insert не возникает
func (r *walletRepository) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	query := `INSERT INTO wallets (id, merchant_id, wallet_address)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (wallet_address) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, wallet.ID, wallet.MerchantID, wallet.Address)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWalletExists
	}
	return nil
}

func (r *walletRepository) GetWalletByMerchantID(ctx context.Context, merchantID string) (*models.Wallet, error) {
	wallet := &models.Wallet{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, merchant_id, wallet_address FROM wallets WHERE merchant_id = $1", merchantID)
	if err := row.Scan(&wallet.ID, &wallet.MerchantID, &wallet.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}
