package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/services"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// respondServiceError maps typed service errors to HTTP statuses.
// Anything unexpected is logged with the operation name and returned as
// a generic 500 without internal detail.
func respondServiceError(c *gin.Context, operation string, err error) {
	var notFound *services.NotFoundError
	var validation *services.ValidationError
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &notFound):
		utils.NotFound(c, notFound.Error())
	case errors.As(err, &conflict):
		utils.BadRequest(c, "The dentist has a conflicting appointment during this time slot")
	case errors.As(err, &validation):
		utils.BadRequest(c, validation.Error())
	case errors.Is(err, services.ErrPastDate):
		utils.BadRequest(c, "Date cannot be in the past")
	case errors.Is(err, utils.ErrInvalidFormat), errors.Is(err, utils.ErrInvalidValue):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("%s: %v", operation, err)
		utils.InternalServerError(c, "Internal server error")
	}
}
