package routes

import (
	"net/http"

	"tasknotes/internal/adapter/http/handler"
	"tasknotes/internal/adapter/http/middleware"
	"tasknotes/internal/core/port"
	"tasknotes/internal/core/telemetry"
	"tasknotes/pkg/config"
	"tasknotes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	TaskHandler *handler.TaskHandler
	NoteHandler *handler.NoteHandler
	Tokens      port.TokenIssuer
	HealthCheck func() error
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, log *logger.Logger, cfg *config.AppConfig) *gin.Engine {
	router := gin.New()

	httpsEnforcer := config.NewHTTPSEnforcer(cfg, log.Logger.Logger)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(log.ServiceName))
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(log))

	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	setupRoutes(router, handlers)

	return router
}

// SetupRouterForTests wires the routes without telemetry or HTTPS enforcement.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	router.GET("/health", health(handlers.HealthCheck))

	api := router.Group("/api")

	if handlers.AuthHandler != nil {
		public := api.Group("/auth")
		{
			public.POST("/register", handlers.AuthHandler.Register)
			public.POST("/login", handlers.AuthHandler.Login)
		}

		session := api.Group("/auth")
		session.Use(middleware.Authenticate(handlers.Tokens))
		{
			session.GET("/me", handlers.AuthHandler.Me)
			session.PUT("/update-password", handlers.AuthHandler.UpdatePassword)
		}
	}

	protected := api.Group("/")
	protected.Use(middleware.Authenticate(handlers.Tokens))

	if handlers.TaskHandler != nil {
		protected.GET("/tasks", handlers.TaskHandler.List)
		protected.POST("/tasks", handlers.TaskHandler.Create)
		protected.PUT("/tasks/:id", handlers.TaskHandler.Update)
		protected.DELETE("/tasks/:id", handlers.TaskHandler.Delete)
	}

	if handlers.NoteHandler != nil {
		protected.GET("/notes", handlers.NoteHandler.List)
		protected.POST("/notes", handlers.NoteHandler.Create)
		protected.PUT("/notes/:id", handlers.NoteHandler.Update)
		protected.DELETE("/notes/:id", handlers.NoteHandler.Delete)
	}
}

func health(check func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
