package server

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	ginmiddleware "github.com/slok/go-http-metrics/middleware/gin"

	"github.com/at-ishikawa/textsaver/internal/server/dto"
)

const indexFile = "index.html"

type RouterConfig struct {
	AllowedOrigins []string
	// Static holds the built web bundle. It must contain index.html.
	Static fs.FS
	// Registry receives HTTP metrics and backs /metrics. A new registry is used when nil.
	Registry *prometheus.Registry
}

func NewRouter(cfg RouterConfig, handler *Handler) *gin.Engine {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	mdlw := middleware.New(middleware.Config{
		Recorder: metrics.NewRecorder(metrics.Config{Registry: registry}),
	})
	measured := func(handlerID string) gin.HandlerFunc {
		return ginmiddleware.Handler(handlerID, mdlw)
	}

	router := gin.New()
	router.Use(recovery())
	router.Use(requestLogger())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.GET("/health", measured("/api/health"), handler.Health)
		api.GET("/history", measured("/api/history"), handler.History)
		api.POST("/suggest", measured("/api/suggest"), handler.Suggest)
		api.POST("/ask", measured("/api/ask"), handler.Ask)
	}

	router.NoRoute(singlePageApp(cfg.Static))
	return router
}

// singlePageApp serves files from the bundle and answers any other GET with index.html.
func singlePageApp(static fs.FS) gin.HandlerFunc {
	var fileServer http.Handler
	if static != nil {
		fileServer = http.FileServer(http.FS(static))
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(messageNotFound))
			return
		}
		if static == nil {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(messageNotFound))
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
		if name != "" && name != indexFile {
			if info, err := fs.Stat(static, name); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(c.Writer, c.Request)
				return
			}
		}

		index, err := fs.ReadFile(static, indexFile)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "read index.html", "error", err)
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(messageNotFound))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}
}
