package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/tuuze-market/internal/domain/models"
	"github.com/linemk/tuuze-market/internal/storage"
)

// ErrWalletFieldsRequired — не заданы merchant_id или wallet_address
var ErrWalletFieldsRequired = errors.New("merchant_id and wallet_address are required")

// WalletService определяет регистрацию и поиск платёжного адреса продавца.
type WalletService interface {
	Register(ctx context.Context, merchantID, address string) (*models.Wallet, error)
	GetByMerchant(ctx context.Context, merchantID string) (*models.Wallet, error)
}

type walletService struct {
	log        *slog.Logger
	walletRepo storage.WalletStorage
}

func NewWalletService(log *slog.Logger, walletRepo storage.WalletStorage) WalletService {
	return &walletService{
		log:        log,
		walletRepo: walletRepo,
	}
}

// Register регистрирует адрес за продавцом. Единственная защита от
// одновременной регистрации одного адреса — уникальное ограничение в БД:
// при конкурентных попытках ровно одна вставка выигрывает, остальные
// получают storage.ErrWalletExists
func (s *walletService) Register(ctx context.Context, merchantID, address string) (*models.Wallet, error) {
	const op = "service.WalletService.Register"
	logger := s.log.With(slog.String("op", op), slog.String("merchantID", merchantID))

	if merchantID == "" || address == "" {
		logger.Warn("missing required fields")
		return nil, ErrWalletFieldsRequired
	}

	wallet := &models.Wallet{
		ID:         uuid.NewString(),
		MerchantID: merchantID,
		Address:    address,
	}
	if err := s.walletRepo.CreateWallet(ctx, wallet); err != nil {
		if errors.Is(err, storage.ErrWalletExists) {
			logger.Warn("wallet address already registered")
			return nil, err
		}
		logger.Error("failed to create wallet", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create wallet: %w", op, err)
	}

	logger.Info("wallet registered", slog.String("walletID", wallet.ID))
	return wallet, nil
}

func (s *walletService) GetByMerchant(ctx context.Context, merchantID string) (*models.Wallet, error) {
	const op = "service.WalletService.GetByMerchant"

	wallet, err := s.walletRepo.GetWalletByMerchantID(ctx, merchantID)
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			return nil, err
		}
		s.log.Error("failed to get wallet",
			slog.String("op", op), slog.String("merchantID", merchantID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get wallet: %w", op, err)
	}
	return wallet, nil
}
