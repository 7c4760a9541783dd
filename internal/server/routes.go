package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rumorwatch/internal/handlers/api"
	"rumorwatch/internal/service"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Service *service.Service
	Storage string     // storage driver name reported by the health check
	Pinger  api.Pinger // nil for in-process storage
	// Gatherer serves /metrics. Nil skips the endpoint.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	reportHandler := api.NewReportHandler(deps.Service)
	keywordHandler := api.NewKeywordHandler(deps.Service)
	riskHandler := api.NewRiskHandler(deps.Service)
	healthHandler := api.NewHealthHandler(deps.Storage, deps.Pinger)

	apiGroup := s.App.Group("/api")

	apiGroup.Get("/health", healthHandler.Check)

	rumors := apiGroup.Group("/rumors")
	rumors.Post("/", reportHandler.Create)
	rumors.Get("/", reportHandler.List)
	// Must precede /:id
	rumors.Get("/area", reportHandler.Area)
	rumors.Get("/:id", reportHandler.Get)
	rumors.Patch("/:id/status", reportHandler.UpdateStatus)
	rumors.Delete("/:id", reportHandler.Delete)

	keywords := apiGroup.Group("/keywords")
	keywords.Post("/", keywordHandler.Create)
	keywords.Post("/batch", keywordHandler.Batch)
	keywords.Get("/", keywordHandler.List)
	keywords.Get("/stats/all", keywordHandler.Stats)
	keywords.Get("/category/:category", keywordHandler.ByCategory)
	keywords.Patch("/:id/weight", keywordHandler.UpdateWeight)
	keywords.Delete("/:id", keywordHandler.Delete)

	risk := apiGroup.Group("/risk")
	risk.Post("/calculate", riskHandler.Calculate)
	risk.Get("/analyze/:id", riskHandler.Analyze)
	risk.Get("/stats", riskHandler.Stats)

	if deps.Gatherer != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
}
