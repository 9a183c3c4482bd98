package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/audit"
	"github.com/yeremiapane/ambatoeat-api/broker"
	"github.com/yeremiapane/ambatoeat-api/cache"
	"github.com/yeremiapane/ambatoeat-api/config"
	"github.com/yeremiapane/ambatoeat-api/database"
	"github.com/yeremiapane/ambatoeat-api/events"
	"github.com/yeremiapane/ambatoeat-api/router"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.ConfigureLogger(cfg.Log.Level, cfg.Log.Format)
	utils.InitJWT(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	if cfg.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	if _, err := database.SeedAdmin(db, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}

	ctx := context.Background()
	deps := router.Dependencies{
		DB:            db,
		CacheTTL:      cfg.Redis.TTL,
		Uploader:      utils.NewUploader(cfg.Upload.Dir, cfg.Upload.MaxSize),
		AllowedOrigin: cfg.Server.AllowedOrigin,
	}

	var store cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisStore := cache.NewRedisStore(cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisStore.Ping(ctx); err != nil {
			utils.ErrorLogger.Errorf("Redis unavailable, using in-process cache: %v", err)
		} else {
			store = redisStore
			utils.InfoLogger.Printf("Connected to Redis at %s", cfg.Redis.Addr)
		}
	}
	defer store.Close()
	deps.Cache = store

	if cfg.RabbitMQ.URL != "" {
		pub, err := broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			utils.ErrorLogger.Errorf("RabbitMQ unavailable, events stay local: %v", err)
		} else {
			defer pub.Close()
			deps.Publishers = append(deps.Publishers, pub)
			utils.InfoLogger.Printf("Publishing events to exchange %s", cfg.RabbitMQ.Exchange)
		}
	}

	if cfg.MongoDB.URI != "" {
		auditStore, err := audit.NewMongoStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Collection)
		if err != nil {
			utils.ErrorLogger.Errorf("MongoDB unavailable, audit trail disabled: %v", err)
		} else {
			defer auditStore.Close(context.Background())
			deps.Publishers = append(deps.Publishers, events.Publisher(auditStore))
			deps.Audit = auditStore
		}
	}

	r := router.SetupRouter(deps)
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		utils.ErrorLogger.Errorf("Invalid trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
}
