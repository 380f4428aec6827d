package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/wellcheck/wellcheck-api/models"
	"github.com/wellcheck/wellcheck-api/store"
)

func (h *Handler) GetAppointments(c *fiber.Ctx) error {
	userID := c.Params("userId")

	ctx, cancel := opContext()
	defer cancel()

	var appointments []models.Appointment
	if err := h.store.Find(ctx, collAppointments, bson.M{"userId": userID}, &appointments); err != nil {
		return h.storeError(c, "get appointments", err)
	}

	return c.JSON(appointments)
}

// CreateAppointment books a slot for the calling patient. A second
// appointment on the same (patient, date, time) triple is rejected with a
// 409.
func (h *Handler) CreateAppointment(c *fiber.Ctx) error {
	var body struct {
		AppointmentDate       string   `json:"appointmentDate" validate:"required"`
		AppointmentTime       string   `json:"appointmentTime" validate:"required"`
		Duration              int      `json:"duration" validate:"required"`
		TypeOfSickness        string   `json:"typeOfSickness" validate:"required"`
		AdditionalNotes       string   `json:"additionalNotes"`
		Email                 string   `json:"email" validate:"required,email"`
		InsurancePolicyNumber string   `json:"insurancePolicyNumber"`
		AppointmentCost       *float64 `json:"appointmentCost" validate:"required"`
		HospitalID            string   `json:"hospitalId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(body); err != nil {
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
		return h.storeError(c, "create appointment", err)
	}
	if patient.AssignedDoctor == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assigned doctor not found"})
	}

	var existing models.Appointment
	err = h.store.FindOne(ctx, collAppointments, bson.M{
		"userId":          userID,
		"appointmentDate": body.AppointmentDate,
		"appointmentTime": body.AppointmentTime,
	}, &existing)
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Appointment already exists for the selected date and time",
		})
	}
	if !errors.Is(err, store.ErrNotFound) {
		return h.storeError(c, "create appointment", err)
	}

	appointment := models.Appointment{
		AppointmentID:         uuid.New().String(),
		UserID:                userID,
		DoctorID:              patient.AssignedDoctor,
		HospitalID:            body.HospitalID,
		AppointmentDate:       body.AppointmentDate,
		AppointmentTime:       body.AppointmentTime,
		Duration:              body.Duration,
		TypeOfSickness:        body.TypeOfSickness,
		AdditionalNotes:       body.AdditionalNotes,
		InsurancePolicyNumber: body.InsurancePolicyNumber,
		Email:                 body.Email,
		AppointmentCost:       *body.AppointmentCost,
		StatusPayment:         models.StatusNotPaid,
		StatusAppointment:     models.StatusNotApproved,
		Timestamp:             time.Now(),
	}
	if err := h.store.Insert(ctx, collAppointments, appointment); err != nil {
		return h.storeError(c, "create appointment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Appointment created successfully",
		"appointment": appointment,
	})
}

// UpdateAppointment changes the mutable fields of an existing appointment.
// Moving it to an already-booked (date, time) slot is rejected like a
// duplicate creation.
func (h *Handler) UpdateAppointment(c *fiber.Ctx) error {
	appointmentID := c.Params("id")

	var body struct {
		AppointmentDate       string   `json:"appointmentDate"`
		AppointmentTime       string   `json:"appointmentTime"`
		Duration              int      `json:"duration"`
		TypeOfSickness        string   `json:"typeOfSickness"`
		AdditionalNotes       string   `json:"additionalNotes"`
		Email                 string   `json:"email"`
		InsurancePolicyNumber string   `json:"insurancePolicyNumber"`
		AppointmentCost       *float64 `json:"appointmentCost"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	set := bson.M{}
	if body.AppointmentDate != "" {
		set["appointmentDate"] = body.AppointmentDate
	}
	if body.AppointmentTime != "" {
		set["appointmentTime"] = body.AppointmentTime
	}
	if body.Duration != 0 {
		set["duration"] = body.Duration
	}
	if body.TypeOfSickness != "" {
		set["typeOfSickness"] = body.TypeOfSickness
	}
	if body.AdditionalNotes != "" {
		set["additionalNotes"] = body.AdditionalNotes
	}
	if body.Email != "" {
		set["email"] = body.Email
	}
	if body.InsurancePolicyNumber != "" {
		set["insurancePolicyNumber"] = body.InsurancePolicyNumber
	}
	if body.AppointmentCost != nil {
		set["appointmentCost"] = *body.AppointmentCost
	}
	if len(set) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No fields to update"})
	}

	ctx, cancel := opContext()
	defer cancel()

	var current models.Appointment
	err := h.store.FindOne(ctx, collAppointments, bson.M{"appointmentId": appointmentID}, &current)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if err != nil {
		return h.storeError(c, "update appointment", err)
	}

	if body.AppointmentDate != "" || body.AppointmentTime != "" {
		newDate := current.AppointmentDate
		newTime := current.AppointmentTime
		if body.AppointmentDate != "" {
			newDate = body.AppointmentDate
		}
		if body.AppointmentTime != "" {
			newTime = body.AppointmentTime
		}

		var clash models.Appointment
		err = h.store.FindOne(ctx, collAppointments, bson.M{
			"userId":          current.UserID,
			"appointmentDate": newDate,
			"appointmentTime": newTime,
		}, &clash)
		if err == nil && clash.AppointmentID != appointmentID {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Appointment already exists for the selected date and time",
			})
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return h.storeError(c, "update appointment", err)
		}
	}

	matched, err := h.store.UpdateOne(ctx, collAppointments,
		bson.M{"appointmentId": appointmentID},
		bson.M{"$set": set},
	)
	if err != nil {
		return h.storeError(c, "update appointment", err)
	}
	if matched == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}

	return c.JSON(fiber.Map{"message": "Appointment updated successfully"})
}

// UpdateAppointmentStatus changes the payment and approval status fields
// independently of the booking details.
func (h *Handler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	appointmentID := c.Params("id")

	var body struct {
		StatusPayment     string `json:"statusPayment"`
		StatusAppointment string `json:"statusAppointment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	set := bson.M{}
	if body.StatusPayment != "" {
		set["statusPayment"] = body.StatusPayment
	}
	if body.StatusAppointment != "" {
		set["statusAppointment"] = body.StatusAppointment
	}
	if len(set) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No fields to update"})
	}

	ctx, cancel := opContext()
	defer cancel()

	matched, err := h.store.UpdateOne(ctx, collAppointments,
		bson.M{"appointmentId": appointmentID},
		bson.M{"$set": set},
	)
	if err != nil {
		return h.storeError(c, "update appointment status", err)
	}
	if matched == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}

	return c.JSON(fiber.Map{"message": "Appointment status updated successfully"})
}

func (h *Handler) DeleteAppointment(c *fiber.Ctx) error {
	appointmentID := c.Params("id")

	ctx, cancel := opContext()
	defer cancel()

	deleted, err := h.store.DeleteOne(ctx, collAppointments, bson.M{"appointmentId": appointmentID})
	if err != nil {
		return h.storeError(c, "delete appointment", err)
	}
	if deleted == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}

	return c.JSON(fiber.Map{"message": "Appointment deleted successfully"})
}
