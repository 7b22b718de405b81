package dto

import "github.com/go-playground/validator/v10"

// ErrorResponse cuerpo de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

var validate = validator.New()

// Validate valida un DTO según sus tags `validate`.
func Validate(v any) error {
	return validate.Struct(v)
}
