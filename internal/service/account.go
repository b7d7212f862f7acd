package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/tuuze-market/internal/domain/models"
	security "github.com/linemk/tuuze-market/internal/jwt-new"
	"github.com/linemk/tuuze-market/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken — email уже зарегистрирован другим продавцом
	ErrEmailTaken = errors.New("email is already registered")
	// ErrPasswordRequired — пустой пароль при регистрации
	ErrPasswordRequired = errors.New("password is required")
	// ErrInvalidCredentials — неверная пара email/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AccountService struct {
	log          *slog.Logger
	merchantRepo storage.MerchantStorage
	tokenTTL     time.Duration
}

func NewAccountService(log *slog.Logger, merchantRepo storage.MerchantStorage, tokenTTL time.Duration) *AccountService {
	return &AccountService{
		log:          log,
		merchantRepo: merchantRepo,
		tokenTTL:     tokenTTL,
	}
}

type AccountServiceInterface interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

// Register создаёт аккаунт продавца: проверка занятости email (read-then-write,
// окно гонки закрывается уникальным индексом на merchantEmail), bcrypt-хэш
// пароля, свежий uuid в качестве идентификатора
func (a *AccountService) Register(ctx context.Context, username, email, password string) error {
	const op = "account.Register"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("registering merchant")

	if password == "" {
		logger.Warn("empty password")
		return ErrPasswordRequired
	}

	exists, err := a.merchantRepo.EmailExists(ctx, email)
	if err != nil {
		logger.Error("failed to check email", slog.Any("error", err))
		return fmt.Errorf("%s: failed to check email: %w", op, err)
	}
	if exists {
		logger.Warn("email already registered")
		return ErrEmailTaken
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	merchant := &models.Merchant{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		PassHash: passHash,
	}
	if _, err := a.merchantRepo.CreateMerchant(ctx, merchant); err != nil {
		logger.Error("failed to create merchant", slog.Any("error", err))
		return fmt.Errorf("%s: failed to create merchant: %w", op, err)
	}

	logger.Info("merchant registered", slog.String("merchantID", merchant.ID))
	return nil
}

// Login осуществляет аутентификацию продавца: пароль сравнивается с bcrypt-хэшем,
// при успехе генерируется JWT-токен с идентификатором и именем продавца
// (секрет для подписи берётся из переменной окружения JWT_SECRET)
func (a *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "account.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking merchant")

	merchant, err := a.merchantRepo.GetMerchantByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrMerchantNotFound) {
			logger.Warn("merchant not found")
			return "", ErrInvalidCredentials
		}
		logger.Error("failed to get merchant", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to get merchant: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(merchant.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", ErrInvalidCredentials
	}

	token, err := security.NewToken(ctx, merchant, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("merchant logged in successfully", slog.String("merchantID", merchant.ID))
	return token, nil
}
