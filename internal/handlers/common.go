package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/greenops/lawncare-api/internal/response"
)

// parseIDParam parses the :id URL parameter.
func parseIDParam(c *gin.Context) (uint64, *response.APIError) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, response.NewAPIError(http.StatusBadRequest, "Invalid id parameter.")
	}
	return id, nil
}

// bindingError turns a gin binding failure into a validation APIError with
// field-level details where the validator provides them.
func bindingError(err error) *response.APIError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return response.Validation("Validation failed.", details)
	}
	return response.Validation("Invalid request body.", nil)
}
