package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/wellcheck/wellcheck-api/auth"
	"github.com/wellcheck/wellcheck-api/store"
)

const (
	collUsers        = "users"
	collPatients     = "patients"
	collSymptoms     = "symptoms"
	collAppointments = "appointments"
	collHospitals    = "hospitals"
	collSickness     = "sickness"
)

// Dot paths of the nested collections inside a patient document.
const (
	pathPrescriptions = "prescriptions"
	pathHealthStatus  = "healthStatus"
	pathPredictions   = "predictions"
)

type Handler struct {
	store    store.Store
	patients *store.Nested
	tokens   *auth.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(s store.Store, tokens *auth.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    s,
		patients: store.NewNested(s, collPatients),
		tokens:   tokens,
		validate: validator.New(),
		log:      logger,
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// storeError logs the underlying cause and returns a generic 500 to the
// client.
func (h *Handler) storeError(c *fiber.Ctx, op string, err error) error {
	h.log.Error().Err(err).Str("op", op).Msg("store operation failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

func identityFromLocals(c *fiber.Ctx) string {
	identity, _ := c.Locals("userId").(string)
	return identity
}
