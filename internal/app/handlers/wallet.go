package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/tuuze-market/internal/domain/models"
	"github.com/linemk/tuuze-market/internal/lib/api"
	"github.com/linemk/tuuze-market/internal/service"
	"github.com/linemk/tuuze-market/internal/storage"
)

// SaveWalletRequest представляет входной JSON для регистрации кошелька.
type SaveWalletRequest struct {
	MerchantID string `json:"merchant_id" validate:"required"`
	Address    string `json:"wallet_address" validate:"required"`
}

// SaveWalletResponse — ответ при успешной регистрации адреса.
type SaveWalletResponse struct {
	Message string         `json:"message"`
	Data    *models.Wallet `json:"data"`
}

// walletError — тело ошибки кошелька; эти эндпоинты отвечают полем
// message, а не error
type walletError struct {
	Message string `json:"message"`
}

// GetWalletResponse — ответ GET /getWallet/{id}.
type GetWalletResponse struct {
	WalletAddress string `json:"wallet_address"`
}

// SaveWalletHandler обрабатывает запрос POST /saveWallet.
func SaveWalletHandler(log *slog.Logger, walletService service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SaveWalletHandler"
		logger := log.With(slog.String("op", op))

		var req SaveWalletRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			api.WriteJSON(w, http.StatusBadRequest, walletError{Message: "invalid request"})
			return
		}

		wallet, err := walletService.Register(r.Context(), req.MerchantID, req.Address)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrWalletFieldsRequired):
				api.WriteJSON(w, http.StatusBadRequest, walletError{Message: "merchant_id and wallet_address are required"})
			case errors.Is(err, storage.ErrWalletExists):
				logger.Warn("duplicate wallet address")
				api.WriteJSON(w, http.StatusConflict, walletError{Message: "Wallet address is already registered"})
			default:
				logger.Error("failed to register wallet", slog.Any("error", err))
				api.WriteJSON(w, http.StatusInternalServerError, walletError{Message: "An error occurred while saving the wallet."})
			}
			return
		}

		api.WriteJSON(w, http.StatusCreated, SaveWalletResponse{
			Message: "Wallet saved successfully",
			Data:    wallet,
		})
	}
}

// GetWalletHandler обрабатывает запрос GET /getWallet/{id}, где id — идентификатор продавца.
func GetWalletHandler(log *slog.Logger, walletService service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetWalletHandler"
		logger := log.With(slog.String("op", op))

		merchantID := chi.URLParam(r, "id")
		if merchantID == "" {
			logger.Error("id parameter is missing")
			api.WriteJSON(w, http.StatusBadRequest, walletError{Message: "id parameter is required"})
			return
		}

		wallet, err := walletService.GetByMerchant(r.Context(), merchantID)
		if err != nil {
			if errors.Is(err, storage.ErrWalletNotFound) {
				api.WriteJSON(w, http.StatusNotFound, walletError{Message: "Wallet not found"})
				return
			}
			logger.Error("failed to get wallet", slog.Any("error", err))
			api.WriteJSON(w, http.StatusInternalServerError, walletError{Message: "An error occurred while fetching the wallet."})
			return
		}

		api.WriteJSON(w, http.StatusOK, GetWalletResponse{WalletAddress: wallet.Address})
	}
}
