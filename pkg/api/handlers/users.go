package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dbm-eval/benchboard/pkg/models"
	"github.com/dbm-eval/benchboard/pkg/store"
)

// UserHandlers provides CRUD over dashboard users.
type UserHandlers struct {
	store store.Store
}

func NewUserHandlers(s store.Store) *UserHandlers {
	return &UserHandlers{store: s}
}

func (h *UserHandlers) CreateUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.store.CreateUser(&input)
	if err != nil {
		return storeError(err, "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.store.ListUsers()
	if err != nil {
		return storeError(err, "Failed to list users")
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

func (h *UserHandlers) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.store.GetUser(id)
	if err != nil {
		return storeError(err, "Failed to get user")
	}
	return c.JSON(user)
}

func (h *UserHandlers) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	var patch models.UpdateUserInput
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.store.UpdateUser(id, &patch)
	if err != nil {
		return storeError(err, "Failed to update user")
	}
	return c.JSON(user)
}

func (h *UserHandlers) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.store.DeleteUser(id); err != nil {
		return storeError(err, "Failed to delete user")
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}
