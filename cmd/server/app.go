package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskai/internal/config"
	"github.com/phrazzld/taskai/internal/domain"
	"github.com/phrazzld/taskai/internal/events"
	"github.com/phrazzld/taskai/internal/platform/gemini"
	"github.com/phrazzld/taskai/internal/platform/memstore"
	"github.com/phrazzld/taskai/internal/reminder"
	"github.com/phrazzld/taskai/internal/service"
	"github.com/phrazzld/taskai/internal/service/auth"
	"github.com/phrazzld/taskai/internal/store"
	"github.com/phrazzld/taskai/internal/suggestion"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (interfaces so tests can substitute implementations)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordHasher    auth.PasswordHasher
	passwordVerifier  auth.PasswordVerifier
	suggestionService *service.SuggestionService

	// Background reminder evaluation
	reminderEvaluator *reminder.Evaluator
	reminderEmitter   *events.InMemoryReminderEmitter
}

// newApplication creates an application instance with all dependencies
// initialized. Storage is in-memory and volatile: every start begins with
// an empty store and IDs restart from 1.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	taskStore := memstore.NewTaskStore(logger)
	app.userStore = memstore.NewUserStore(logger)
	app.taskStore = taskStore

	// The suggestion provider is optional: without an API key the
	// service degrades to fallback behavior instead of failing startup.
	var suggester suggestion.Suggester
	if cfg.LLM.GeminiAPIKey != "" {
		geminiSuggester, err := gemini.NewSuggester(
			ctx,
			logger.With("component", "llm_suggester"),
			cfg.LLM,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize suggestion provider: %w", err)
		}
		suggester = geminiSuggester
		logger.Info("suggestion provider initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Warn("no Gemini API key configured, suggestions will degrade to fallbacks")
	}
	app.suggestionService = service.NewSuggestionService(suggester, logger)

	app.reminderEvaluator = setupReminderEvaluator(app, taskStore)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	app.reminderEvaluator.Start(ctx)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupReminderEvaluator wires the reminder evaluator to the task store
// through the event emitter. Fired reminders become events; a logging
// handler consumes them.
func setupReminderEvaluator(app *application, source reminder.TaskSource) *reminder.Evaluator {
	emitter := events.NewInMemoryReminderEmitter(app.logger)
	emitter.RegisterHandler(newLogReminderHandler(app.logger))
	app.reminderEmitter = emitter

	notifier := reminder.NotifierFunc(func(ctx context.Context, task *domain.Task, alertAt time.Time) {
		event := events.NewReminderEvent(*task, alertAt, time.Now().UTC())
		if err := emitter.EmitReminder(ctx, event); err != nil {
			app.logger.Error("reminder event delivery failed",
				slog.String("error", err.Error()),
				slog.Int64("task_id", task.ID))
		}
	})

	cfg := reminder.EvaluatorConfig{
		PollInterval: time.Duration(app.config.Reminder.PollIntervalSeconds) * time.Second,
		Tolerance:    time.Duration(app.config.Reminder.ToleranceSeconds) * time.Second,
	}

	return reminder.NewEvaluator(source, notifier, cfg, app.logger)
}

// newLogReminderHandler returns a handler that surfaces fired reminders
// in the application log.
func newLogReminderHandler(log *slog.Logger) events.ReminderHandler {
	log = log.With(slog.String("component", "reminder_log_handler"))
	return events.ReminderHandlerFunc(func(ctx context.Context, event *events.ReminderEvent) error {
		log.Info("task reminder due",
			slog.Int64("task_id", event.Task.ID),
			slog.Int64("user_id", event.Task.UserID),
			slog.String("title", event.Task.Title),
			slog.Time("alert_at", event.AlertAt))
		return nil
	})
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.reminderEvaluator != nil {
		app.reminderEvaluator.Stop()
	}

	app.logger.Info("application shutdown completed")
}
