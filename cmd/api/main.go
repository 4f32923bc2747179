package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"debthelp-backend/cmd"
	"debthelp-backend/internal/api"
	"debthelp-backend/internal/chat"
	"debthelp-backend/internal/database"
	"debthelp-backend/internal/notify"
)

type APIConfig struct {
	DatabaseURL string `env:"DATABASE_URL,notEmpty,required"`
	APIPort     string `env:"API_PORT" envDefault:"8080"`

	OpenAIAPIKey    string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string  `env:"OPENAI_BASE_URL"`
	ChatModel       string  `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	ChatMaxTokens   int64   `env:"CHAT_MAX_TOKENS" envDefault:"500"`
	ChatTemperature float64 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`
	HistoryWindow   int     `env:"CHAT_HISTORY_WINDOW" envDefault:"10"`

	AdminAPIKey       string `env:"ADMIN_API_KEY"`
	ContactWebhookURL string `env:"CONTACT_WEBHOOK_URL"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Without a key the chat endpoint reports a configuration error on
	// every call instead of making upstream requests.
	var completer chat.Completer
	if cfg.OpenAIAPIKey != "" {
		completer = chat.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel, cfg.ChatMaxTokens, cfg.ChatTemperature)
	} else {
		log.Println("OPENAI_API_KEY is not set, chat requests will fail")
	}

	var notifier notify.Notifier
	if cfg.ContactWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.ContactWebhookURL)
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSAllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", api.RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	r.Route("/api/v1", func(r chi.Router) {
		api.NewChatService(db, completer, cfg.HistoryWindow).AddRoutes(r)
		api.NewToolService(db).AddRoutes(r)
		api.NewGlossaryService(db).AddRoutes(r)
		api.NewProfileService(db).AddRoutes(r)
		api.NewContactService(db, notifier).AddRoutes(r)
		api.NewAdminService(db, cfg.AdminAPIKey).AddRoutes(r)
	})

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
