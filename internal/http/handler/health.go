package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"expenseanalyzer/internal/service"
)

// HealthCheck reports readiness. The process never starts without a credential,
// so a running instance is ready.
//
// @Summary Readiness probe
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"model":  svc.Model(),
		})
	}
}

// LivenessProbe is a simple liveness probe.
//
// @Summary Liveness probe
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics exposes the collectors gathered by g in the Prometheus text format.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
