package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "local-secret")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 3*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, CacheMemory, cfg.Cache.Driver)
	assert.Equal(t, "local-secret", cfg.JWT.Secret)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "placeholder")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "Secret")
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/tasknotes")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, CacheRedis, cfg.Cache.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
}

func TestValidate(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = DriverPostgres
	assert.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.Cache.Driver = "memcached"
	assert.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionSecret(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Environment = "production"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = strings.Repeat("k", 32)
	assert.NoError(t, cfg.Validate())
}

func TestHTTPSEnforcer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(enabled bool) *gin.Engine {
		cfg := GetDefaultConfig()
		cfg.EnforceHTTPS = enabled

		router := gin.New()
		router.Use(NewHTTPSEnforcer(cfg, zap.NewNop()).HTTPSMiddleware())
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("should redirect plain http when enabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://api.example.com/health", nil)
		w := httptest.NewRecorder()

		newRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "https://api.example.com/health", w.Header().Get("Location"))
	})

	t.Run("should trust a forwarded proto", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://api.example.com/health", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		w := httptest.NewRecorder()

		newRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should pass through when disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://api.example.com/health", nil)
		w := httptest.NewRecorder()

		newRouter(false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
