package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"expenseanalyzer/docs"
	"expenseanalyzer/internal/config"
	handlers "expenseanalyzer/internal/http/handler"
	"expenseanalyzer/internal/http/middleware"
	"expenseanalyzer/internal/llm"
	"expenseanalyzer/internal/otel"
	"expenseanalyzer/internal/service"
)

// formOverhead leaves room for the text field and multipart framing on top of the file limit.
const formOverhead = 1 << 20

// @title Expense Analyzer API
// @version 1.0
// @BasePath /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("expense analyzer stopped", "error", err)
		os.Exit(1)
	}
}

// loadConfig gates startup: without a resolvable credential nothing else is built.
func loadConfig() (*config.AppConfig, error) {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			return nil, fmt.Errorf("%s: %w", service.MsgMissingCredential, err)
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func run(logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("tracing shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	analyzer, err := llm.NewOpenAI(cfg.OpenAI)
	if err != nil {
		return fmt.Errorf("init analyzer: %w", err)
	}

	analysisMetrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register analysis metrics: %w", err)
	}
	analysisSvc := service.NewAnalysisService(analyzer, cfg.OpenAI, analysisMetrics)

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.MaxBytes() + formOverhead,
	})

	// Register global middleware
	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, analysisSvc, reg,
		middleware.RateLimit(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst))

	if cfg.Swagger {
		// Swagger UI with dynamic host and scheme
		app.Get("/swagger/*", func(c *fiber.Ctx) error {
			scheme := c.Protocol()
			if proto := c.Get("X-Forwarded-Proto"); proto != "" {
				scheme = strings.Split(proto, ",")[0]
			}

			docs.SwaggerInfo.Host = c.Get("Host")
			docs.SwaggerInfo.Schemes = []string{scheme}

			return swagger.HandlerDefault(c)
		})
	}

	addr := ":" + cfg.Port

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", addr, "app_host", cfg.AppHost, "model", cfg.OpenAI.Model)
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done() // Wait for OS signal or listener failure

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("stopped server")
	return nil
}
