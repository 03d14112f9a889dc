package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"syscall"
	"time"

	"aasaasi/config"
	"aasaasi/controllers"
	"aasaasi/db"
	"aasaasi/internal/llm"
	"aasaasi/internal/logger"
	"aasaasi/internal/ratelimit"
	"aasaasi/internal/tts"
	"aasaasi/middlewares"
	"aasaasi/routes"
	"aasaasi/services"
	"aasaasi/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

var vercelOrigin = regexp.MustCompile(`^https://[a-z0-9-]+\.vercel\.app$`)

func main() {
	// Load the configuration; CONFIG_PATH may point at a YAML file, the
	// environment alone is enough otherwise.
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Server.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logr.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("Failed to open data source", "backend", cfg.DataSource.Backend, "error", err)
	}
	defer st.Close(context.Background())
	logr.Info("Data source ready", "backend", st.Backend())

	limiter, rdb := connectLimiter(ctx, cfg, logr)
	if rdb != nil {
		defer rdb.Close()
	}

	ai, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		logr.Fatal("Failed to create AI provider", "provider", cfg.AI.Provider, "error", err)
	}
	if !llm.Configured(ai) {
		logr.Warn("No AI provider key configured, AI endpoints will answer 401", "provider", cfg.AI.Provider)
	}

	speaker, err := tts.NewClient(tts.Options{
		CacheDir: cfg.TTS.CacheDir,
		AudioDir: cfg.TTS.AudioDir,
		APIKey:   cfg.TTS.GoogleAPIKey,
	}, logr)
	if err != nil {
		logr.Fatal("Failed to create TTS client", "error", err)
	}

	router := setupRouter(cfg, logr, st, ai, speaker, limiter)
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("Graceful shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config, logr *logger.Logger) (store.Store, error) {
	if cfg.DataSource.Backend == config.BackendStatic {
		return store.NewStaticStore(cfg.DataSource.DataDir)
	}

	client, database, err := db.ConnectMongoDB(ctx, cfg.DataSource)
	if err != nil {
		return nil, err
	}
	ms := store.NewMongoStore(client, database)
	if err := ms.EnsureIndexes(ctx); err != nil {
		logr.Warn("Failed to ensure indexes", "error", err)
	}
	return ms, nil
}

// connectLimiter returns a nil limiter, which allows everything, when
// Redis is not configured or not reachable.
func connectLimiter(ctx context.Context, cfg *config.Config, logr *logger.Logger) (*ratelimit.Limiter, *redis.Client) {
	if cfg.Redis.Addr == "" {
		logr.Info("REDIS_ADDR not set, chat rate limit disabled")
		return nil, nil
	}
	rdb, err := ratelimit.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logr.Warn("Redis unavailable, chat rate limit disabled", "error", err)
		return nil, nil
	}
	return ratelimit.New(rdb, "chat", cfg.AI.ChatLimit, cfg.AI.ChatWindow), rdb
}

func setupRouter(cfg *config.Config, logr *logger.Logger, st store.Store, ai llm.Provider, speaker controllers.Speaker, limiter *ratelimit.Limiter) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger(logr))

	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		logr.Warn("Failed to set trusted proxies", "error", err)
	}

	// Configure CORS for the configured frontends and Vercel previews
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowOriginFunc: func(origin string) bool {
			return vercelOrigin.MatchString(origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.SessionHeader},
		AllowCredentials: true,
	}))

	timeout := cfg.AI.Timeout
	routes.SetupAPIRoutes(router, routes.Controllers{
		Health:      controllers.NewHealthController(st, logr),
		EnglishTest: controllers.NewEnglishTestController(services.NewEnglishTestService(st), logr),
		Dictionary:  controllers.NewDictionaryController(services.NewDictionaryService(st, ai, timeout, logr), logr),
		Content: controllers.NewContentController(
			services.NewWordOfDayService(st, logr),
			services.NewIdiomService(st, ai, timeout, logr),
			logr,
		),
		Learning:  controllers.NewLearningController(services.NewLearningService(st), logr),
		Analytics: controllers.NewAnalyticsController(services.NewAnalyticsService(st, logr), logr),
		AI:        controllers.NewAIController(services.NewTutorService(st, ai, timeout, logr), logr),
		TTS:       controllers.NewTTSController(speaker, logr),
		ChatLimit: middlewares.RateLimit(limiter, logr),
	})

	return router
}
