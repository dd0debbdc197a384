// Package handlers общие помощники HTTP слоя: декодирование запросов
// и единый формат ошибок
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Коды ошибок API
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeResourceNotFound  = "RESOURCE_NOT_FOUND"
	CodeBookingNotAllowed = "BOOKING_NOT_ALLOWED"
	CodeSlotNotAvailable  = "SLOT_NOT_AVAILABLE"
	CodeInvalidState      = "INVALID_STATE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в out
func DecodeJSON(r *http.Request, out interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON пишет успешный ответ с телом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest некорректный запрос (400, VALIDATION_ERROR)
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidationError, message)
}

// RespondNotFound ресурс не найден (404, RESOURCE_NOT_FOUND)
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeResourceNotFound, message)
}

// RespondBookingNotAllowed бронирование запрещено правилами (422)
func RespondBookingNotAllowed(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, CodeBookingNotAllowed, message)
}

// RespondSlotNotAvailable слот занят, запрос можно повторить (409)
func RespondSlotNotAvailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeSlotNotAvailable, message)
}

// RespondInvalidState недопустимый переход статуса (409)
func RespondInvalidState(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeInvalidState, message)
}

// RespondInternalError внутренняя ошибка сервера (500)
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "внутренняя ошибка сервера")
}
