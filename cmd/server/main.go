package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"kommotirio/internal/api"
	"kommotirio/internal/auth"
	"kommotirio/internal/config"
	"kommotirio/internal/logger"
	"kommotirio/internal/repository"
	"kommotirio/internal/schedule"
	"kommotirio/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer lg.Sync()

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("failed to open DB", zap.Error(err))
	}
	if err := database.Ping(); err != nil {
		lg.Fatal("failed to connect to DB", zap.Error(err))
	}

	salonLoc, err := time.LoadLocation(cfg.Salon.Timezone)
	if err != nil {
		lg.Warn("unknown salon timezone, falling back to EET", zap.String("timezone", cfg.Salon.Timezone))
		salonLoc = time.FixedZone("EET", 2*60*60)
	}

	hours := schedule.DefaultBusinessHours()

	appointmentRepo := repository.NewAppointmentRepository(database)
	blockedSlotRepo := repository.NewBlockedSlotRepository(database)
	serviceRepo := repository.NewServiceRepository(database)
	newsletterRepo := repository.NewNewsletterRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)
	jobRepo := repository.NewJobRepository(database)

	senderSvc := service.NewSenderService(cfg, salonLoc, lg)
	availabilitySvc := service.NewAvailabilityService(hours, blockedSlotRepo, appointmentRepo, lg)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, serviceRepo, availabilitySvc, senderSvc, salonLoc, lg)
	contactSvc := service.NewContactService(newsletterRepo, senderSvc, lg)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, cfg.JWT)
	jobSvc := service.NewJobService(jobRepo, lg)

	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc)
	appointmentHandler := api.NewAppointmentHandler(appointmentSvc)
	contactHandler := api.NewContactHandler(contactSvc)
	adminHandler := api.NewAdminHandler(appointmentSvc, blockedSlotRepo)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()
	r.Use(logger.RequestMiddleware(lg))

	// Public endpoints
	r.HandleFunc("/api/services", appointmentHandler.ListServices).Methods("GET")
	r.HandleFunc("/api/availability", availabilityHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/availability/next", availabilityHandler.NextAvailable).Methods("GET")
	r.HandleFunc("/api/appointments", appointmentHandler.CreateAppointment).Methods("POST")
	r.HandleFunc("/api/appointments/{code}", appointmentHandler.GetAppointment).Methods("POST")
	r.HandleFunc("/api/appointments/{code}", appointmentHandler.CancelAppointment).Methods("DELETE")
	r.HandleFunc("/api/contact", contactHandler.Contact).Methods("POST")
	r.HandleFunc("/api/newsletter", contactHandler.Subscribe).Methods("POST")

	// Admin endpoints (protected)
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWT.Secret))
	admin.HandleFunc("/register", adminAuthHandler.CreateAdmin).Methods("POST")
	admin.HandleFunc("/appointments", adminHandler.ListAppointments).Methods("GET")
	admin.HandleFunc("/appointments/{code}/confirm", adminHandler.ConfirmAppointment).Methods("PUT")
	admin.HandleFunc("/blocked-slots", adminHandler.ListBlockedSlots).Methods("GET")
	admin.HandleFunc("/blocked-slots", adminHandler.CreateBlockedSlot).Methods("POST")
	admin.HandleFunc("/blocked-slots/{id}", adminHandler.DeleteBlockedSlot).Methods("DELETE")

	c := cron.New()
	c.AddFunc("@every 15m", func() {
		if err := jobSvc.CompletePastAppointments(context.Background()); err != nil {
			lg.Error("cron: complete past appointments failed", zap.Error(err))
		}
	})
	c.AddFunc("@daily", func() {
		if _, err := jobSvc.PurgeStalePending(context.Background(), time.Now().Add(-24*time.Hour)); err != nil {
			lg.Error("cron: purge stale pending failed", zap.Error(err))
		}
	})
	c.Start()
	defer c.Stop()

	corsMiddleware := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	lg.Info("server running", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := http.ListenAndServe(addr, corsMiddleware(r)); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}
