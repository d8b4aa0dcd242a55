package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/infrastructure/config"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/infrastructure/persistence"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/interface/handler"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/interface/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/usecase"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flights API")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Connect to the reservation (CDD) and departure-control sources
	log.Info("Connecting to CDD database")
	cddDB, err := persistence.NewPostgres(cfg.CddDSN)
	if err != nil {
		log.Fatal("Failed to connect to CDD database", "error", err)
	}

	log.Info("Connecting to airport database")
	airportDB, err := persistence.NewPostgres(cfg.AirportDSN)
	if err != nil {
		log.Fatal("Failed to connect to airport database", "error", err)
	}

	m := metrics.NewMetrics("flights")

	// Shared HTTP clients, constructed once with process-wide lifetime
	statusClient := &http.Client{Timeout: cfg.StatusAPITimeout}
	whatsappClient := &http.Client{Timeout: 30 * time.Second}
	relayClient := &http.Client{Timeout: cfg.CheckinRelayTimeout}

	// Set up repositories
	scheduleRepo := repository.NewGormScheduleRepository(cddDB, cfg.CarrierCode, log)
	departureControlRepo := repository.NewGormDepartureControlRepository(airportDB, cfg.CarrierCode, log)
	statusRepo := repository.NewStatusProviderRepository(statusClient, cfg.StatusAPIBaseURL, cfg.StatusAPIKey, cfg.CarrierCode, log)
	whatsappRepo := repository.NewWhatsappRepository(whatsappClient, cfg.WhatsappBaseURL, cfg.WhatsappToken, cfg.WhatsappChannelID, log)
	relayRepo := repository.NewCheckinRelayRepository(relayClient, cfg.CheckinRelayBaseURL, log)

	// Set up usecases
	enricher := usecase.NewFlightEnricher(scheduleRepo, statusRepo, m, log)
	binder := usecase.NewTemplateBinder(log)
	dispatcher := usecase.NewNotificationDispatcher(whatsappRepo, binder, cfg.UnifiedTemplate, cfg.UnifiedTemplateLanguage, m, log)
	reminders := usecase.NewReminderDispatcher(relayRepo, cfg.CarrierCode, cfg.CheckinRelayTimeout, cfg.ReminderWorkers, cfg.ReminderQueueSize, m, log)

	// Set up HTTP surface
	flightsHandler := handler.NewFlightsHandler(enricher, scheduleRepo, departureControlRepo, reminders, log)
	whatsappHandler := handler.NewWhatsAppHandler(dispatcher, log)
	router := handler.NewRouter(flightsHandler, whatsappHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	// Drain in-flight reminder batches before exiting
	reminders.Close()

	log.Info("Flights API stopped")
}
