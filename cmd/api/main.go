package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BradenHooton/folio/internal/auth"
	"github.com/BradenHooton/folio/internal/background"
	"github.com/BradenHooton/folio/internal/config"
	"github.com/BradenHooton/folio/internal/handlers"
	"github.com/BradenHooton/folio/internal/metrics"
	middlewareCustom "github.com/BradenHooton/folio/internal/middleware"
	"github.com/BradenHooton/folio/internal/routes"
	"github.com/BradenHooton/folio/internal/services"
	pkghttp "github.com/BradenHooton/folio/pkg/http"
	pkglogger "github.com/BradenHooton/folio/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	bootLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger, logCloser := pkglogger.New(pkglogger.Options{
		Level:    cfg.Server.LogLevel,
		FilePath: cfg.Server.LogFile,
	})
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("version", cfg.Server.Version))

	appMetrics := metrics.New()
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}

	// Access guard owns login lockouts and admin sessions
	guardConfig := services.DefaultAccessGuardConfig(cfg.Admin.Username, cfg.Admin.PasswordHash)
	guardConfig.MaxAttempts = cfg.Admin.MaxLoginAttempts
	guardConfig.LockoutDuration = cfg.Admin.LockoutDuration
	guardConfig.SessionDuration = cfg.Admin.SessionDuration
	guard := services.NewAccessGuard(guardConfig, time.Now)

	rateLimiter := services.NewRateLimiter()

	auditLogger := pkglogger.NewAuditLogger(logger, cfg.Server.Env)
	auditService := services.NewAuditService(auditLogger, appMetrics, time.Now)

	timingDelay := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelay:      time.Duration(cfg.Admin.TimingDelayBaseMs) * time.Millisecond,
		RandomDelay:    time.Duration(cfg.Admin.TimingDelayRandomMs) * time.Millisecond,
		DelayOnSuccess: cfg.Admin.TimingDelayOnSuccess,
	})

	// Contact notifications are optional; submissions are still recorded without them
	var notifier services.ContactNotifier
	if cfg.Email.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		sesNotifier, err := services.NewSESNotifier(ctx, cfg.Email.AWSRegion, cfg.Email.FromAddress, cfg.Email.ContactRecipient, logger)
		cancel()
		if err != nil {
			logger.Error("failed to initialize email notifier", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = sesNotifier
	} else {
		logger.Warn("email notifications disabled: AWS_REGION, EMAIL_FROM or CONTACT_RECIPIENT not set")
	}

	knowledgeBase, err := services.LoadKnowledgeBase(cfg.Chat.KnowledgeBaseFile)
	if err != nil {
		logger.Error("failed to load knowledge base", slog.Any("error", err))
		os.Exit(1)
	}

	var completer services.Completer
	if cfg.Chat.Configured() {
		completer = services.NewOpenAICompleter(services.CompleterConfig{
			APIKey:      cfg.Chat.APIKey,
			BaseURL:     cfg.Chat.BaseURL,
			Model:       cfg.Chat.Model,
			MaxTokens:   cfg.Chat.MaxTokens,
			Temperature: cfg.Chat.Temperature,
			Timeout:     cfg.Chat.Timeout,
		})
	} else {
		logger.Warn("chat completions disabled: OPENROUTER_API_KEY not set")
	}

	// Initialize services
	contactService := services.NewContactService(rateLimiter, cfg.RateLimit.ContactCooldown, notifier, auditService, logger, time.Now)
	chatService := services.NewChatService(knowledgeBase, completer, rateLimiter, services.ChatServiceConfig{
		Cooldown:        cfg.RateLimit.ChatCooldown,
		ConversationTTL: cfg.Chat.ConversationTTL,
	}, appMetrics, logger, time.Now)
	adminService := services.NewAdminService(guard, auditService, chatService, timingDelay, logger)

	// Initialize handlers
	appHandlers := routes.Handlers{
		Admin:   handlers.NewAdminHandler(adminService, ipConfig),
		Contact: handlers.NewContactHandler(contactService, ipConfig, appMetrics),
		Chat:    handlers.NewChatHandler(chatService, ipConfig, appMetrics),
		Health: handlers.NewHealthHandler(handlers.HealthConfig{
			Version:         cfg.Server.Version,
			Environment:     cfg.Server.Env,
			Region:          cfg.Email.AWSRegion,
			EmailConfigured: cfg.Email.Configured(),
			ChatConfigured:  cfg.Chat.Configured(),
		}, time.Now),
		Metrics: appMetrics.Handler(),
	}

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewareCustom.SecureLogger(logger, ipConfig))
	router.Use(middleware.Recoverer)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.RateLimitByIdentity(middlewareCustom.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	}, ipConfig, appMetrics))

	routes.RegisterRoutes(router, appHandlers)

	// Background sweeps bound memory; expiry is still enforced on every read
	cleanupManager := background.NewCleanupManager(logger, cfg.RateLimit.CleanupInterval,
		background.Task{Name: "login_records", Sweep: func() int {
			records, sessions := guard.Sweep()
			return records + sessions
		}},
		background.Task{Name: "cooldowns", Sweep: func() int { return rateLimiter.Sweep(time.Now()) }},
		background.Task{Name: "conversations", Sweep: chatService.Sweep},
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		return
	}

	logger.Info("server stopped gracefully")
}
