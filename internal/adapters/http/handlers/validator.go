// Package handlers contains HTTP handlers for the REST API.
//
// A handler accepts the HTTP request, binds and validates it, calls the
// directory and writes the outcome envelope back as the response body.
package handlers

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Haleralex/orghub/internal/pkg/apiresp"
)

var setupOnce sync.Once

// SetupValidator registers custom validators with Gin's binding engine.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			// Report field names from json tags in validation errors
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("department_name", validateDepartmentName)
		}
	})
}

// validateDepartmentName rejects blank names and names over 128 characters.
func validateDepartmentName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	return name != "" && len(name) <= 128
}

// HandleValidationErrors answers a binding failure with a 400 failure
// envelope whose message lists the offending fields.
func HandleValidationErrors(c *gin.Context, err error) {
	var parts []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			parts = append(parts, fieldErr.Field()+": "+getValidationMessage(fieldErr))
		}
	}

	message := "invalid request"
	if len(parts) > 0 {
		message = "invalid request: " + strings.Join(parts, "; ")
	}

	writeEnvelope(c, http.StatusBadRequest, apiresp.Error(-1, message).ToJSON())
}

// getValidationMessage returns a human readable message for a field error.
func getValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "uuid":
		return "invalid UUID format"
	case "min":
		return "value is too short (minimum: " + fe.Param() + ")"
	case "max":
		return "value is too long (maximum: " + fe.Param() + ")"
	case "department_name":
		return "invalid department name (must be non-blank, at most 128 characters)"
	default:
		return "invalid value"
	}
}

// BindJSON binds the JSON request body. Returns false if binding failed
// and the error response was already written.
func BindJSON[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// BindURI binds URI parameters.
func BindURI[T any](c *gin.Context, req *T) bool {
	if err := c.ShouldBindUri(req); err != nil {
		HandleValidationErrors(c, err)
		return false
	}
	return true
}

// writeEnvelope writes a pre-serialized outcome envelope as the response body.
func writeEnvelope(c *gin.Context, status int, body string) {
	c.Data(status, "application/json; charset=utf-8", []byte(body))
}
