package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/wellcheck/wellcheck-api/models"
	"github.com/wellcheck/wellcheck-api/store"
)

// AddSymptom records a symptom report against the calling patient's
// assigned doctor. Symptoms live in their own collection, referencing the
// patient by id.
func (h *Handler) AddSymptom(c *fiber.Ctx) error {
	var body struct {
		SymptomDescription string `json:"symptomDescription"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if strings.TrimSpace(body.SymptomDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	userID := identityFromLocals(c)

	ctx, cancel := opContext()
	defer cancel()

	var patient models.Patient
	err := h.store.FindOne(ctx, collPatients, bson.M{"_id": userID}, &patient)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}
	if err != nil {
		return h.storeError(c, "add symptom", err)
	}
	if patient.AssignedDoctor == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assigned doctor not found"})
	}

	symptom := models.Symptom{
		SymptomID:          uuid.New().String(),
		UserID:             userID,
		DoctorID:           patient.AssignedDoctor,
		SymptomDescription: body.SymptomDescription,
		Timestamp:          time.Now(),
	}
	if err := h.store.Insert(ctx, collSymptoms, symptom); err != nil {
		return h.storeError(c, "add symptom", err)
	}

	return c.JSON(fiber.Map{"message": "Symptom added successfully", "symptom": symptom})
}

func (h *Handler) GetSymptoms(c *fiber.Ctx) error {
	userID := c.Params("userId")

	ctx, cancel := opContext()
	defer cancel()

	var symptoms []models.Symptom
	if err := h.store.Find(ctx, collSymptoms, bson.M{"userId": userID}, &symptoms); err != nil {
		return h.storeError(c, "get symptoms", err)
	}

	return c.JSON(symptoms)
}

func (h *Handler) UpdateSymptom(c *fiber.Ctx) error {
	var body struct {
		SymptomID          string `json:"symptomId"`
		SymptomDescription string `json:"symptomDescription"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if body.SymptomID == "" || strings.TrimSpace(body.SymptomDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	ctx, cancel := opContext()
	defer cancel()

	matched, err := h.store.UpdateOne(ctx, collSymptoms,
		bson.M{"symptomId": body.SymptomID},
		bson.M{"$set": bson.M{"symptomDescription": body.SymptomDescription}},
	)
	if err != nil {
		return h.storeError(c, "update symptom", err)
	}
	if matched == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Symptom not found"})
	}

	return c.JSON(fiber.Map{"message": "Symptom updated successfully"})
}

func (h *Handler) DeleteSymptom(c *fiber.Ctx) error {
	symptomID := c.Params("symptomId")

	ctx, cancel := opContext()
	defer cancel()

	deleted, err := h.store.DeleteOne(ctx, collSymptoms, bson.M{"symptomId": symptomID})
	if err != nil {
		return h.storeError(c, "delete symptom", err)
	}
	if deleted == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Symptom not found"})
	}

	return c.JSON(fiber.Map{"message": "Symptom deleted successfully"})
}
