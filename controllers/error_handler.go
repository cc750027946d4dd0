package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"creditsystem/apperrors"
	"github.com/go-playground/validator/v10"
)

// ExceptionDetails представляет тело ответа для всех ошибочных путей
type ExceptionDetails struct {
	Title     string            `json:"title"`
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Exception string            `json:"exception"`
	Details   map[string]string `json:"details"`
}

const (
	titleBadRequest  = "Bad Request! Consult the documentation"
	titleConflict    = "Conflict exception! Consult the documentation"
	titleServerError = "INTERNAL SERVER ERROR! Contact admin"
)

// writeError транслирует доменную ошибку в HTTP-ответ.
// Единственное место, где ошибки превращаются в статус-коды
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *apperrors.ValidationError
		businessErr   *apperrors.BusinessError
		conflictErr   *apperrors.ConflictError
		authErr       *apperrors.AuthorizationError
	)

	var details ExceptionDetails

	switch {
	case errors.As(err, &validationErr):
		details = ExceptionDetails{
			Title:     titleBadRequest,
			Status:    http.StatusBadRequest,
			Exception: "creditsystem/apperrors.ValidationError",
			Details:   validationErr.Details,
		}
	case errors.As(err, &businessErr):
		details = ExceptionDetails{
			Title:     titleBadRequest,
			Status:    http.StatusBadRequest,
			Exception: "creditsystem/apperrors.BusinessError",
			Details:   map[string]string{"cause": businessErr.Message},
		}
	case errors.As(err, &conflictErr):
		details = ExceptionDetails{
			Title:     titleConflict,
			Status:    http.StatusConflict,
			Exception: "creditsystem/apperrors.ConflictError",
			Details:   map[string]string{conflictErr.Cause: conflictErr.Message},
		}
	case errors.As(err, &authErr):
		details = ExceptionDetails{
			Title:     titleServerError,
			Status:    http.StatusInternalServerError,
			Exception: "creditsystem/apperrors.AuthorizationError",
			Details:   map[string]string{"cause": authErr.Message},
		}
	default:
		details = ExceptionDetails{
			Title:     titleServerError,
			Status:    http.StatusInternalServerError,
			Exception: "error",
			Details:   map[string]string{"cause": err.Error()},
		}
	}

	details.Timestamp = time.Now()
	writeJSON(w, details.Status, details)
}

// writeJSON отправляет ответ в формате JSON
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// buildValidationError конвертирует ошибки валидатора в доменную
// ошибку валидации: по одному сообщению на каждое невалидное поле
func buildValidationError(err error) *apperrors.ValidationError {
	details := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				details[e.Field()] = "field is required"
			case "min":
				details[e.Field()] = "field must be at least " + e.Param() + " characters"
			case "max":
				details[e.Field()] = "field must be at most " + e.Param()
			case "len":
				details[e.Field()] = "field must be exactly " + e.Param() + " characters"
			case "email":
				details[e.Field()] = "field must be a valid email"
			case "numeric":
				details[e.Field()] = "field must contain only digits"
			case "gt":
				details[e.Field()] = "field must be greater than " + e.Param()
			case "gte":
				details[e.Field()] = "field must be greater than or equal to " + e.Param()
			case "datetime":
				details[e.Field()] = "field must be a date in format " + e.Param()
			default:
				details[e.Field()] = "field is invalid"
			}
		}
	} else {
		details["body"] = err.Error()
	}

	return apperrors.NewValidationError(details)
}

// newValidator создает валидатор, использующий имена полей из json-тегов
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
