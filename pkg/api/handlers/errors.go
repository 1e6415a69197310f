package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dbm-eval/benchboard/pkg/store"
)

// storeError maps store errors onto the HTTP boundary: validation failures
// become 400, missing records 404, anything else is a storage fault (500).
func storeError(err error, fallback string) error {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}
