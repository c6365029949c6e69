package handlers

import (
	"errors"

	"daotrack/internal/core/domain"
	"daotrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// fail maps a domain error to its HTTP status. Storage failures stay
// opaque to the caller.
func fail(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return response.BadRequest(c, vErr.Error())
	}

	switch domain.CategoryOf(err) {
	case domain.ErrNotFound:
		return response.NotFound(c, err.Error())
	case domain.ErrConflict:
		return response.Conflict(c, err.Error())
	case domain.ErrInvalidReference:
		return response.UnprocessableEntity(c, err.Error())
	case domain.ErrForbidden:
		return response.Forbidden(c, err.Error())
	case domain.ErrValidation:
		return response.BadRequest(c, err.Error())
	case domain.ErrUnauthorized:
		return response.Unauthorized(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
