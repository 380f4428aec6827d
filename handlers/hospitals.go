package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/wellcheck/wellcheck-api/models"
	"github.com/wellcheck/wellcheck-api/store"
)

// Hospital metadata and the sickness reference list feed the client's
// appointment form. Neither requires authentication.

func (h *Handler) GetHospitals(c *fiber.Ctx) error {
	ctx, cancel := opContext()
	defer cancel()

	var hospitals []models.Hospital
	if err := h.store.Find(ctx, collHospitals, bson.M{}, &hospitals); err != nil {
		return h.storeError(c, "get hospitals", err)
	}

	return c.JSON(hospitals)
}

func (h *Handler) GetHospital(c *fiber.Ctx) error {
	hospitalID := c.Params("id")

	ctx, cancel := opContext()
	defer cancel()

	var hospital models.Hospital
	err := h.store.FindOne(ctx, collHospitals, bson.M{"hospitalId": hospitalID}, &hospital)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Hospital not found"})
	}
	if err != nil {
		return h.storeError(c, "get hospital", err)
	}

	return c.JSON(hospital)
}

func (h *Handler) GetSickness(c *fiber.Ctx) error {
	ctx, cancel := opContext()
	defer cancel()

	var sicknesses []models.Sickness
	if err := h.store.Find(ctx, collSickness, bson.M{}, &sicknesses); err != nil {
		return h.storeError(c, "get sickness", err)
	}

	return c.JSON(sicknesses)
}
