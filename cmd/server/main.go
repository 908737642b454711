package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ayush/sourcing-assistant/backend/internal/browser"
	"github.com/ayush/sourcing-assistant/backend/internal/chat"
	"github.com/ayush/sourcing-assistant/backend/internal/config"
	"github.com/ayush/sourcing-assistant/backend/internal/extract"
	"github.com/ayush/sourcing-assistant/backend/internal/logger"
	"github.com/ayush/sourcing-assistant/backend/internal/middleware"
	"github.com/ayush/sourcing-assistant/backend/internal/research"
	"github.com/ayush/sourcing-assistant/backend/internal/settings"
	"github.com/ayush/sourcing-assistant/backend/internal/store"
	"github.com/ayush/sourcing-assistant/backend/internal/synth"
	"github.com/ayush/sourcing-assistant/backend/internal/tasks"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// ── Key-value store ──────────────────────────────────────
	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		zlog.Fatal("kv store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeKV()

	// ── Settings & tasks ─────────────────────────────────────
	var sealer *settings.Sealer
	if cfg.SettingsSecret != "" {
		if sealer, err = settings.NewSealer(cfg.SettingsSecret); err != nil {
			zlog.Fatal("settings sealer", zap.Error(err))
		}
	}
	settingsSvc := settings.NewService(kv, sealer)
	tasksSvc := tasks.NewService(kv)

	// ── Browser ──────────────────────────────────────────────
	registry := extract.Default()
	var (
		drv       browser.Browser
		snapshots research.SnapshotStore
	)
	switch cfg.BrowserDriver {
	case config.BrowserSnapshot:
		minioStore, err := store.NewMinioStore(ctx, store.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			Prefix:    cfg.MinioPrefix,
		})
		if err != nil {
			zlog.Fatal("minio connect", zap.Error(err))
		}
		sb := browser.NewSnapshotBrowser(minioStore, registry)
		drv, snapshots = sb, sb
	case config.BrowserRod:
		rb, err := browser.NewRodBrowser(ctx, cfg.ChromeControlURL, cfg.Headless, registry)
		if err != nil {
			zlog.Fatal("chrome connect", zap.Error(err))
		}
		defer rb.Close()
		drv = rb
	default:
		var opts []browser.FetchOption
		if cfg.FetchAllowPrivate {
			zlog.Warn("fetch driver may reach private network addresses")
			opts = append(opts, browser.AllowPrivateNetworks())
		}
		drv = browser.NewFetchBrowser(registry, cfg.FetchTimeout, opts...)
	}
	zlog.Info("browser driver ready", zap.String("driver", cfg.BrowserDriver))

	// ── Research & chat ──────────────────────────────────────
	researchSvc := research.NewService(drv, registry, synth.New(), cfg.ExtractTimeout, zlog.Named("research"))
	completion := chat.NewCompletionClient(cfg.CompletionURL, cfg.CompletionModel, cfg.CompletionTimeout)
	assistant := chat.NewAssistant(researchSvc, completion, tasksSvc, settingsSvc, zlog.Named("chat"))

	// ── Handlers ─────────────────────────────────────────────
	researchHandler := research.NewHandler(researchSvc, snapshots, zlog.Named("research"))
	chatHandler := chat.NewHandler(assistant, zlog.Named("chat"))
	settingsHandler := settings.NewHandler(settingsSvc, zlog.Named("settings"))
	tasksHandler := tasks.NewHandler(tasksSvc, zlog.Named("tasks"))

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(zlog.Named("http")))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/research", researchHandler.Scrape)
		r.Get("/modes", chatHandler.Modes)
		r.With(middleware.RequireAPIKey(settingsSvc, zlog)).Post("/chat", chatHandler.Chat)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Update)
			r.Post("/reset", settingsHandler.Reset)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", tasksHandler.List)
			r.Post("/", tasksHandler.Create)
			r.Get("/stats", tasksHandler.Stats)
			r.Get("/context", tasksHandler.Context)
			r.Post("/{id}/toggle", tasksHandler.Toggle)
			r.Delete("/{id}", tasksHandler.Delete)
		})

		r.Route("/tabs", func(r chi.Router) {
			r.Post("/detect", researchHandler.Detect)
			r.Put("/{id}/snapshot", researchHandler.PutSnapshot)
			r.Delete("/{id}/snapshot", researchHandler.DeleteSnapshot)
		})
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		zlog.Info("backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}

// openKV connects the configured settings/tasks backend and returns a
// function that releases it.
func openKV(ctx context.Context, cfg *config.Config) (store.KV, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		kv := store.NewPostgresKV(pgPool)
		if err := kv.Migrate(ctx); err != nil {
			pgPool.Close()
			return nil, nil, err
		}
		return kv, pgPool.Close, nil

	case config.StoreMongo:
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		kv := store.NewMongoKV(mongoClient.Database(cfg.MongoDB))
		return kv, func() { mongoClient.Disconnect(context.Background()) }, nil

	case config.StoreMemory:
		return store.NewMemoryKV(), func() {}, nil
	}

	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}
	return store.NewRedisKV(rdb, cfg.RedisPrefix), func() { rdb.Close() }, nil
}
