package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docstream/document-platform/internal/api/handler"
	"github.com/docstream/document-platform/internal/api/middleware"
	"github.com/docstream/document-platform/internal/core/domain"
	"github.com/docstream/document-platform/internal/core/service"
	"github.com/docstream/document-platform/internal/infrastructure/config"
	mongodb "github.com/docstream/document-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/docstream/document-platform/internal/infrastructure/db/redis"
	"github.com/docstream/document-platform/internal/infrastructure/hash"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// queue receives committed ingestion requests for asynchronous processor
// submission.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, queue service.ProcessorQueue, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("docplatform"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	docRepo := mongodb.NewDocumentRepository(db)
	ingestionRepo := mongodb.NewIngestionRepository(db)
	txRunner := mongodb.NewTxRunner(client)
	throttle := redisdb.NewLoginThrottle(rdb)

	issuer := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	authService := service.NewAuthService(authRepo, hash.NewBcryptHasher(0), issuer, throttle, log)
	docService := service.NewDocumentService(docRepo, log)
	ingestionService := service.NewIngestionService(ingestionRepo, docRepo, txRunner, queue, log)

	authHandler := handler.NewAuthHandler(authService)
	docHandler := handler.NewDocumentHandler(docService)
	ingestionHandler := handler.NewIngestionHandler(ingestionService)

	authn := middleware.Auth(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	writers := middleware.RBAC(domain.RoleAdmin, domain.RoleEditor)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authn)
	auth.POST("/set-role", authHandler.SetRole, authn, adminOnly)

	// --- Document routes ---
	docs := e.Group("/api/documents", authn)
	docs.GET("", docHandler.List)
	docs.GET("/:id", docHandler.Get)
	docs.POST("", docHandler.Create, writers)
	docs.PUT("/:id", docHandler.Update, writers)
	docs.DELETE("/:id", docHandler.Delete, adminOnly)

	// --- Ingestion routes ---
	ingestion := e.Group("/api/ingestion", authn, writers)
	ingestion.GET("", ingestionHandler.List)
	ingestion.POST("", ingestionHandler.Trigger)
	ingestion.PATCH("/:id", ingestionHandler.UpdateStatus)

	// --- Observability and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
