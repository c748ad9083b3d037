package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appaccount "github.com/tkforgeworks/cookconnect/backend/internal/application/account"
	apprecipe "github.com/tkforgeworks/cookconnect/backend/internal/application/recipe"
	appsocial "github.com/tkforgeworks/cookconnect/backend/internal/application/social"
	recipeacl "github.com/tkforgeworks/cookconnect/backend/internal/domain/recipe/acl"
	socialacl "github.com/tkforgeworks/cookconnect/backend/internal/domain/social/acl"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/config"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/event"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/identity"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/logger"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/peer"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/persistence"
	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/resilience"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/handler"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/middleware"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CookConnect backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Event bus with an audit trail of every domain event
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	exec := resilience.NewExecutor(cfg.Resilience.Policies, log)

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	socialRepo := persistence.NewGormSocialRecordRepository(db.DB)
	cookbookRepo := persistence.NewGormCookbookRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	ingredientRepo := persistence.NewGormIngredientRepository(db.DB)
	instructionRepo := persistence.NewGormInstructionRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)

	// Account context
	keycloak := identity.NewKeycloakClient(cfg.Identity, log)
	accountService := appaccount.NewAccountService(accountRepo, eventBus, log)
	provisioningService := appaccount.NewProvisioningService(accountRepo, keycloak, exec, eventBus, log)

	// The social and recipe contexts reach the account context through
	// a directory. In-process deployments wire it directly; split
	// deployments go over the internal HTTP surface.
	var directory socialacl.AccountDirectory
	var accountReader recipeacl.AccountReader
	switch cfg.Peer.Mode {
	case "http":
		httpDir := peer.NewHTTPDirectory(cfg.Peer, log)
		directory = httpDir
		accountReader = httpDir
		log.Info("Peer directory in HTTP mode", zap.String("base_url", cfg.Peer.AccountBaseURL))
	default:
		localDir := peer.NewLocalDirectory(accountService)
		directory = localDir
		accountReader = localDir
		log.Info("Peer directory in local mode")
	}

	// Social and recipe contexts
	socialService := appsocial.NewSocialService(socialRepo, directory, exec, eventBus, log)
	cookbookService := appsocial.NewCookbookService(socialRepo, cookbookRepo, log)
	recipeService := apprecipe.NewRecipeService(
		recipeRepo, ingredientRepo, instructionRepo, tagRepo,
		accountReader, socialService, exec, eventBus, log,
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))

	auth := middleware.Auth(cfg.JWT)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAccountHandler(provisioningService, accountService, auth))
	r.Register(handler.NewSocialHandler(socialService, auth))
	r.Register(handler.NewCookbookHandler(cookbookService, auth))
	r.Register(handler.NewRecipeHandler(recipeService, auth))
	r.RegisterRoot(handler.NewSystemHandler(db, cfg.App.Name, version))
	r.RegisterRoot(handler.NewPeerHandler(accountService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
