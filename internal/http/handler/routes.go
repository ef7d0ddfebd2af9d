package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"expenseanalyzer/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// limiter guards the endpoints that spend the API credential; nil disables it.
func RegisterRoutes(app *fiber.App, svc service.AnalysisService, gatherer prometheus.Gatherer, limiter fiber.Handler) {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	app.Get("/", IndexPage())
	app.Post("/analyze", limiter, AnalyzeForm(svc))
	app.Post("/api/analyses", limiter, AnalyzeAPI(svc))

	app.Get("/health", HealthCheck(svc))
	app.Get("/healthz", LivenessProbe())

	if gatherer != nil {
		app.Get("/metrics", Metrics(gatherer))
	}
}
