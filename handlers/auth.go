package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellcheck/wellcheck-api/models"
	"github.com/wellcheck/wellcheck-api/store"
)

// Login authenticates a patient by user id and password and returns a
// bearer token. Only PATIENT accounts may log in through the portal.
func (h *Handler) Login(c *fiber.Ctx) error {
	var body struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	ctx, cancel := opContext()
	defer cancel()

	var user models.User
	err := h.store.FindOne(ctx, collUsers, bson.M{"_id": body.UserID}, &user)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		return h.storeError(c, "login", err)
	}

	if user.Role != models.RolePatient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access restricted to patients"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid password"})
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("cannot sign token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Cannot generate token"})
	}

	return c.JSON(fiber.Map{"token": token})
}

// Logout revokes the presented bearer token for the process lifetime.
func (h *Handler) Logout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("token").(string)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token provided"})
	}

	h.tokens.Revoke(tokenString)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
