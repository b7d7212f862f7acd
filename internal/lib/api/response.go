// Package api содержит вспомогательные функции для JSON-ответов.
package api

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse — JSON-тело ошибки вида {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON сериализует v с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError отправляет JSON-тело ошибки с указанным статусом.
// Ни одна ошибка не роняет процесс запроса — всё конвертируется здесь
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}
