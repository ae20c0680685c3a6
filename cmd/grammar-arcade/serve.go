package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/grammar-arcade/internal/chat"
	"github.com/vovakirdan/grammar-arcade/internal/config"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
	"github.com/vovakirdan/grammar-arcade/internal/server"
	"github.com/vovakirdan/grammar-arcade/internal/storage"
)

var (
	flagServeConfig string
	flagListen      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API that serves questions, per-user progress and the
filtered chat proxy.

Endpoints:
  GET  /healthz
  GET  /api/questions/{mode}
  GET  /api/progress/{userID}/{mode}
  POST /api/results
  POST /api/chat

Configuration is read from a YAML file (see --config); built-in
defaults apply when none is found. Questions come from Postgres when
db.postgres_url is set, otherwise from the SQLite database. Setting
redis.addr enables the question cache. The chat proxy reads its API
key from the environment variable named by chat.api_key_env.

Examples:
  grammar-arcade serve
  grammar-arcade serve --listen :9000
  grammar-arcade serve --config ./server.yaml`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to server config YAML")
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-api",
	})

	cfg, err := config.LoadServer(flagServeConfig)
	if err != nil {
		logger.Warn("could not load server config, using defaults", "error", err)
		cfg = config.DefaultServerConfig()
	}

	listen := cfg.Listen
	if flagListen != "" {
		listen = flagListen
	}

	// SQLite backs progress tracking and is the question fallback.
	store, err := storage.Open(cfg.DB.SQLitePath)
	if err != nil {
		logger.Error("cannot open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var source quiz.Source = store

	// Postgres takes over question serving when configured.
	if cfg.DB.PostgresURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, poolErr := pgxpool.Connect(ctx, cfg.DB.PostgresURL)
		cancel()
		if poolErr != nil {
			logger.Error("cannot connect to postgres", "error", poolErr)
			os.Exit(1)
		}
		defer pool.Close()
		source = quiz.NewPostgresSource(pool)
		logger.Info("serving questions from postgres")
	}

	// Optional Redis cache in front of the question source
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		source = quiz.NewCachedSource(client, source, ttl)
		logger.Info("question cache enabled", "addr", cfg.Redis.Addr, "ttl", ttl)
	}

	// Chat proxy needs an upstream and a key to be useful
	var chatHandler http.Handler
	if cfg.Chat.UpstreamURL != "" {
		apiKey := os.Getenv(cfg.Chat.APIKeyEnv)
		if apiKey == "" {
			logger.Warn("chat API key not set, /api/chat disabled", "env", cfg.Chat.APIKeyEnv)
		} else {
			client := chat.NewClient(cfg.Chat.UpstreamURL, cfg.Chat.Model, apiKey)
			chatHandler = chat.NewHandler(chat.NewFilter(), client)
		}
	}

	srv := server.New(server.Options{
		Source:         source,
		Store:          store,
		Chat:           chatHandler,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	logger.Info("starting HTTP API", "listen", listen)
	if err := http.ListenAndServe(listen, srv.Handler()); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
