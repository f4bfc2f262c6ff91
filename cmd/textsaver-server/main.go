package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/textsaver/internal/activity"
	"github.com/at-ishikawa/textsaver/internal/assistant"
	"github.com/at-ishikawa/textsaver/internal/bootstrap"
	"github.com/at-ishikawa/textsaver/internal/config"
	"github.com/at-ishikawa/textsaver/internal/database"
	"github.com/at-ishikawa/textsaver/internal/inference"
	"github.com/at-ishikawa/textsaver/internal/inference/openai"
	"github.com/at-ishikawa/textsaver/internal/server"
	"github.com/at-ishikawa/textsaver/web"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "textsaver-server",
		Short:         "Text saver HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, debugMode)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	rootCmd.Flags().Int("port", 0, "port to listen on (overrides PORT)")
	rootCmd.Flags().String("static-dir", "", "directory of a built frontend bundle (overrides the embedded one)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func run(ctx context.Context, cmd *cobra.Command, debugMode bool) error {
	app := bootstrap.New()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		slog.InfoContext(ctx, "Closing database")
		return db.Close()
	})

	repository := activity.NewDBRepository(db)
	if err := repository.InitSchema(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("repository.InitSchema() > %w", err)
	}

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.MaxRetryAttempts)
	app.AddShutdownHook(func(ctx context.Context) error {
		return openaiClient.Close()
	})
	var client inference.Client
	if openaiClient.HasCredentials() {
		client = openaiClient
	}
	service := assistant.NewService(client, repository, cfg.OpenAI)

	static, err := staticFiles(cfg.Server.StaticDir)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("staticFiles() > %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
		Static:         static,
		Registry:       registry,
	}, server.NewHandler(service, db))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	app.AddShutdownHook(func(ctx context.Context) error {
		if shutdownTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
		}
		return srv.Shutdown(ctx)
	})

	return app.Run(ctx, func(ctx context.Context) error {
		slog.InfoContext(ctx, "Starting server",
			"addr", srv.Addr,
			"driver", cfg.Database.Driver,
			"model", cfg.OpenAI.Model,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	if err := loader.BindFlags(cmd.Flags(), map[string]string{
		"server.port":       "port",
		"server.static_dir": "static-dir",
	}); err != nil {
		return nil, fmt.Errorf("loader.BindFlags() > %w", err)
	}
	return loader.Load()
}

// staticFiles returns the on-disk bundle when dir is set and the embedded one otherwise.
func staticFiles(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	return web.Dist()
}
