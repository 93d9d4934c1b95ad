package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/config"
	"github.com/propertypro/leads-backend/internal/entity"
	"github.com/propertypro/leads-backend/internal/infra/database"
	"github.com/propertypro/leads-backend/internal/infra/http/handlers"
	"github.com/propertypro/leads-backend/internal/infra/http/middleware"
	"github.com/propertypro/leads-backend/internal/infra/mail"
	"github.com/propertypro/leads-backend/internal/infra/queue"
	"github.com/propertypro/leads-backend/internal/infra/storage"
	"github.com/propertypro/leads-backend/internal/observability"
	"github.com/propertypro/leads-backend/internal/usecase"
)

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// 1. Stores
	settingsStore, err := storage.NewFileSettingsStore(cfg.Storage.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to init settings store", zap.Error(err))
	}

	var leadStore entity.LeadStore
	var db *sql.DB

	fileLeads, err := storage.NewFileLeadStore(cfg.Storage.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to init lead store", zap.Error(err))
	}
	leadStore = fileLeads

	if cfg.Database.URL != "" {
		db, err = database.NewConnection(cfg.Database.URL)
		if err != nil {
			logger.Fatal("failed to connect to Postgres", zap.Error(err))
		}
		defer db.Close()

		pgStore := database.NewPostgresLeadStore(db, logger)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			logger.Fatal("failed to ensure leads schema", zap.Error(err))
		}
		leadStore = pgStore
	}

	// 2. Optional event queue
	var events usecase.EventPublisherInterface
	var rabbitConn *amqp.Connection

	if cfg.Queue.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.Queue.URL)
		if err != nil {
			logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		events = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	// 3. Transport factory: fresh sender per operation, settings may change
	senderFactory := func(smtp entity.SMTPSettings) usecase.MailSender {
		return mail.NewSender(smtp)
	}

	// 4. UseCases
	submitLeadUC := usecase.NewSubmitLeadUseCase(leadStore, settingsStore, senderFactory, events, logger)
	adminUC := usecase.NewAdministerLeadsUseCase(leadStore, settingsStore, senderFactory, logger)
	campaignUC := usecase.NewSendCampaignUseCase(leadStore, settingsStore, senderFactory, events, cfg.Campaign.Workers, logger)

	// 5. Handlers
	intakeHandler := handlers.NewIntakeHandler(submitLeadUC)
	adminHandler := handlers.NewAdminHandler(adminUC)
	campaignHandler := handlers.NewCampaignHandler(campaignUC)
	healthHandler := handlers.NewHealthHandler(cfg.Storage.DataDir, settingsStore, db, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/submit-form", intakeHandler.HandleSubmitForm)

	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/leads", adminHandler.HandleListLeads)
		r.Put("/leads/{id}", adminHandler.HandleUpdateLead)
		r.Delete("/leads/{id}", adminHandler.HandleDeleteLead)
		r.Get("/settings", adminHandler.HandleGetSettings)
		r.Put("/settings", adminHandler.HandlePutSettings)
		r.Post("/test-smtp", adminHandler.HandleTestSMTP)
		r.Post("/send-campaign", campaignHandler.HandleSendCampaign)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := cfg.App.Addr()
	logger.Info("🔥 leads backend listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
