package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wellcheck/wellcheck-api/auth"
	"github.com/wellcheck/wellcheck-api/config"
	"github.com/wellcheck/wellcheck-api/handlers"
	"github.com/wellcheck/wellcheck-api/middleware"
	"github.com/wellcheck/wellcheck-api/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("cannot reach MongoDB")
	}

	tokens := auth.NewService(cfg.JWTSecret)
	h := handlers.NewHandler(store.NewMongo(client, cfg.DatabaseName), tokens, logger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Public routes
	app.Post("/login", h.Login)
	app.Get("/hospitals", h.GetHospitals)
	app.Get("/hospitals/:id", h.GetHospital)
	app.Get("/sickness", h.GetSickness)

	// Every route below requires a valid bearer token.
	app.Use(middleware.RequireAuth(tokens))

	app.Post("/logout", h.Logout)
	app.Get("/patient/:userId", h.GetPatient)
	app.Get("/prescriptions/:userId", h.GetPrescriptions)
	app.Get("/predictions/:userId", h.GetPredictions)
	app.Post("/predictions2", h.AddPrediction)
	app.Get("/healthstatus/:userId", h.GetHealthStatus)
	app.Delete("/healthstatus/:userId/:healthStatusId", h.DeleteHealthStatus)
	app.Post("/add-symptom", h.AddSymptom)
	app.Get("/symptoms/:userId", h.GetSymptoms)
	app.Put("/update-symptom", h.UpdateSymptom)
	app.Delete("/delete-symptom/:symptomId", h.DeleteSymptom)
	app.Get("/appointments/:userId", h.GetAppointments)
	app.Post("/appointments", h.CreateAppointment)
	app.Put("/update-appointment/:id", h.UpdateAppointment)
	app.Put("/appointments/:id/status", h.UpdateAppointmentStatus)
	app.Delete("/delete-appointment/:id", h.DeleteAppointment)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	logger.Fatal().Err(app.Listen(":" + cfg.Port)).Msg("server stopped")
}
