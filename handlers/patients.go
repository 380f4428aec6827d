package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/wellcheck/wellcheck-api/models"
	"github.com/wellcheck/wellcheck-api/store"
)

// GetPatient returns the profile fields of a patient record.
func (h *Handler) GetPatient(c *fiber.Ctx) error {
	userID := c.Params("userId")

	ctx, cancel := opContext()
	defer cancel()

	var patient models.Patient
	err := h.store.FindOne(ctx, collPatients, bson.M{"_id": userID}, &patient)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}
	if err != nil {
		return h.storeError(c, "get patient", err)
	}

	return c.JSON(fiber.Map{
		"name":             patient.Name,
		"address":          patient.Address,
		"contact":          patient.Contact,
		"emergencyContact": patient.EmergencyContact,
		"assigned_doctor":  patient.AssignedDoctor,
	})
}

// listNested shapes the shared outcome of listing one of a patient's
// nested collections: parent missing and field missing are both
// client-visible 404s, an empty mapping is a 200 with an empty array.
func (h *Handler) listNested(c *fiber.Ctx, userID, path, emptyMessage string) error {
	ctx, cancel := opContext()
	defer cancel()

	entries, err := h.patients.List(ctx, userID, path)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}
	if errors.Is(err, store.ErrEmptyCollection) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": emptyMessage})
	}
	if err != nil {
		return h.storeError(c, "list "+path, err)
	}

	return c.JSON(entries)
}

func (h *Handler) GetPrescriptions(c *fiber.Ctx) error {
	return h.listNested(c, c.Params("userId"), pathPrescriptions,
		"No prescriptions found for this patient.")
}

func (h *Handler) GetPredictions(c *fiber.Ctx) error {
	return h.listNested(c, c.Params("userId"), pathPredictions,
		"No predictions found for this patient")
}

func (h *Handler) GetHealthStatus(c *fiber.Ctx) error {
	return h.listNested(c, c.Params("userId"), pathHealthStatus,
		"No healthstatus found for this patient")
}

// DeleteHealthStatus removes a single health-status entry by id.
func (h *Handler) DeleteHealthStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")
	entryID := c.Params("healthStatusId")

	ctx, cancel := opContext()
	defer cancel()

	err := h.patients.Delete(ctx, userID, pathHealthStatus, entryID)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Health status entry not found"})
	}
	if err != nil {
		return h.storeError(c, "delete health status", err)
	}

	return c.JSON(fiber.Map{"message": "Health status entry deleted"})
}

// AddPrediction appends a prediction entry to the calling patient's record.
func (h *Handler) AddPrediction(c *fiber.Ctx) error {
	var body struct {
		DiagnosisList   []string  `json:"diagnosisList" validate:"required,min=1"`
		ProbabilityList []float64 `json:"probabilityList" validate:"required,min=1"`
		SymptomsList    []string  `json:"symptomsList" validate:"required,min=1"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	userID := identityFromLocals(c)

	entry := bson.M{
		"diagnosisList":   body.DiagnosisList,
		"probabilityList": body.ProbabilityList,
		"symptomsList":    body.SymptomsList,
		"timestamp":       time.Now(),
	}

	ctx, cancel := opContext()
	defer cancel()

	entryID, err := h.patients.Append(ctx, userID, pathPredictions, entry)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}
	if err != nil {
		return h.storeError(c, "add prediction", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Prediction saved successfully",
		"predictionId": entryID,
		"prediction":   entry,
	})
}
