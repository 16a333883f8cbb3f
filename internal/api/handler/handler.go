package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/colorkit/coloring-book-api/internal/api/response"
)

var validate = validator.New()

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, writing the error response itself. Returns false when the
// request was rejected.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.ValidationFailed(w, "invalid request body", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			response.ValidationFailed(w, "request validation failed", validationFields(validationErrors))
			return false
		}
		response.ValidationFailed(w, err.Error(), nil)
		return false
	}

	return true
}

func validationFields(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			fields[field] = "field is required"
		case "email":
			fields[field] = "invalid email format"
		case "url":
			fields[field] = "must be a valid URL"
		case "min":
			fields[field] = "must be at least " + e.Param() + " characters"
		case "max":
			fields[field] = "must be at most " + e.Param() + " characters"
		case "oneof":
			fields[field] = "must be one of: " + e.Param()
		default:
			fields[field] = "validation failed on " + e.Tag()
		}
	}
	return fields
}
