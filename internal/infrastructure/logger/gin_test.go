package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupGinTest() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddleware(t *testing.T) {
	setupGinTest()

	t.Run("logs successful request at info level", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)

		router := gin.New()
		router.Use(GinMiddleware(logger))
		router.GET("/api/v1/logs", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?page=1", nil)
		router.ServeHTTP(w, req)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "HTTP Request", logs[0].Message)
		assert.Equal(t, zapcore.InfoLevel, logs[0].Level)

		fields := logs[0].ContextMap()
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "/api/v1/logs", fields["path"])
		assert.Equal(t, "page=1", fields["query"])
	})

	t.Run("logs client error at warn level", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)

		router := gin.New()
		router.Use(GinMiddleware(logger))
		router.POST("/api/v1/production/runs", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/production/runs", nil)
		router.ServeHTTP(w, req)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("logs server error at error level", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)

		router := gin.New()
		router.Use(GinMiddleware(logger))
		router.GET("/boom", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		router.ServeHTTP(w, req)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("stores request-scoped logger in gin context", func(t *testing.T) {
		core, _ := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)

		router := gin.New()
		router.Use(GinMiddleware(logger))
		router.GET("/check", func(c *gin.Context) {
			assert.NotNil(t, GetGinLogger(c))
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/check", nil)
		router.ServeHTTP(w, req)
	})
}

func TestRecovery(t *testing.T) {
	setupGinTest()

	core, recorded := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(Recovery(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("unexpected state")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "Panic recovered", logs[0].Message)
}

func TestGetGinLogger_Missing(t *testing.T) {
	setupGinTest()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	logger := GetGinLogger(c)
	require.NotNil(t, logger)
	logger.Info("should not panic")
}
