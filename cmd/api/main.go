package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/solarleads/internal/config"
	"github.com/xavierca1/solarleads/internal/entity"
	"github.com/xavierca1/solarleads/internal/infra/database"
	"github.com/xavierca1/solarleads/internal/infra/http/handlers"
	"github.com/xavierca1/solarleads/internal/infra/http/middleware"
	"github.com/xavierca1/solarleads/internal/infra/integration/ollama"
	"github.com/xavierca1/solarleads/internal/infra/integration/whatsapp"
	"github.com/xavierca1/solarleads/internal/infra/lock"
	"github.com/xavierca1/solarleads/internal/infra/queue"
	"github.com/xavierca1/solarleads/internal/infra/worker"
	"github.com/xavierca1/solarleads/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ Configuração inválida: %v", err)
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("❌ Erro ao conectar no PostgreSQL: %v", err)
	}
	defer db.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	messageRepo := database.NewMessageRepository(db)

	var rules usecase.RuleProvider = usecase.StaticRules(entity.DefaultFollowUpRules())
	if cfg.FollowUp.RulesSource == config.RulesSourceDatabase {
		rules = usecase.NewDatabaseRules(database.NewRuleRepository(db, logger), usecase.StaticRules(entity.DefaultFollowUpRules()), logger)
	}

	// 2. Integrações
	httpTimeout := cfg.FollowUp.HTTPTimeout()
	waClient := whatsapp.NewClient(cfg.WhatsAppServiceURL, httpTimeout, logger)
	llmClient := ollama.NewClient(cfg.OllamaHost, cfg.OllamaModel, httpTimeout)

	// 3. UseCase de follow-up
	followUpUC := usecase.NewFollowUpUseCase(
		leadRepo,
		messageRepo,
		rules,
		usecase.NewMessagePersonalizer(llmClient, logger),
		waClient,
		logger,
	)
	followUpUC.LeadTimeout = cfg.FollowUp.LeadTimeout()
	followUpUC.Concurrency = cfg.FollowUp.Concurrency
	followUpUC.Recorder = middleware.FollowUpRecorder{}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		followUpUC.Locker = lock.NewLeadLocker(rdb, cfg.FollowUp.LockTTL())
		logger.Info("🔒 Lock por lead habilitado (redis)")
	}

	// 4. Worker periódico
	followUpWorker := worker.NewFollowUpWorker(followUpUC, cfg.FollowUp.Interval(), logger)

	var (
		rabbitConn handlers.ConnectionChecker
		triggerPub handlers.TriggerPublisher
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatalf("❌ %v", err)
		}
		defer rabbitMQ.Close()

		producer := queue.NewProducer(rabbitMQ.Ch)
		followUpUC.Events = producer
		triggerPub = producer
		rabbitConn = rabbitMQ.Conn

		consumer := queue.NewTriggerConsumer(rabbitMQ.Ch, func(ctx context.Context) {
			followUpWorker.RunNow(ctx)
		}, logger)
		go func() {
			if err := consumer.Start(ctx, queue.TriggerQueueName); err != nil {
				logger.WithError(err).Error("❌ Consumidor de gatilhos parou")
			}
		}()
	}

	go followUpWorker.Start(ctx)
	defer followUpWorker.Stop()

	// 5. Handlers
	followUpHandler := handlers.NewFollowUpHandler(followUpWorker, triggerPub)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, llmClient, waClient)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/follow-up/trigger", followUpHandler.Trigger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"interval": cfg.FollowUp.Interval().String(),
		"rules":    cfg.FollowUp.RulesSource,
	}).Info("🔥 Serviço de follow-up rodando")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("❌ Servidor HTTP parou: %v", err)
	}
}
