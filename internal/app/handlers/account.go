package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/tuuze-market/internal/lib/api"
	"github.com/linemk/tuuze-market/internal/service"
)

// SignupRequest представляет структуру запроса регистрации с тегами валидации
type SignupRequest struct {
	Username string `json:"merchantUserName" validate:"required"`
	Email    string `json:"merchantEmail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse — ответ при успешной регистрации.
type SignupResponse struct {
	Message string `json:"message"`
}

// LoginRequest — структура запроса аутентификации.
type LoginRequest struct {
	Email    string `json:"merchantEmail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse — ответ с JWT-токеном.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

var validate = validator.New()

// SignupHandler обрабатывает запрос POST /signup.
func SignupHandler(log *slog.Logger, accountService service.AccountServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SignupHandler"
		logger := log.With(slog.String("op", op))

		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			api.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			api.WriteError(w, http.StatusBadRequest, "validation error")
			return
		}

		if err := accountService.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				api.WriteError(w, http.StatusBadRequest, "Email is already registered")
			case errors.Is(err, service.ErrPasswordRequired):
				api.WriteError(w, http.StatusBadRequest, "Password is required")
			default:
				logger.Error("signup failed", slog.Any("error", err))
				api.WriteError(w, http.StatusInternalServerError, "The user account was not created.")
			}
			return
		}

		api.WriteJSON(w, http.StatusOK, SignupResponse{Message: "Account created successfully"})
	}
}

// LoginHandler обрабатывает запрос POST /auth/login.
func LoginHandler(log *slog.Logger, accountService service.AccountServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
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

		token, err := accountService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				logger.Warn("login failed: invalid credentials")
				api.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			logger.Error("login failed", slog.Any("error", err))
			api.WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		api.WriteJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
	}
}
