package httpx

import (
	"encoding/json"
	"net/http"
)

// El writeJSON local por módulo se repitió en demasiados handlers,
// así que vive acá como helper común.

type errorBody struct {
	Error string `json:"error"`
}

// FieldError es un error de validación ligado a un campo del request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type fieldErrorsBody struct {
	Errors []FieldError `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error responde {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// FieldErrors responde 400 con {"errors": [...]}.
func FieldErrors(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, fieldErrorsBody{Errors: errs})
}
