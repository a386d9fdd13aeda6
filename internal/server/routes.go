package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"hackhub/internal/catalog"
	"hackhub/internal/handlers/api"
	"hackhub/internal/jsearch"
	"hackhub/internal/langid"
	"hackhub/internal/middleware"
)

// AIProxy holds what the aiproxy routes need.
type AIProxy struct {
	Jobs        *jsearch.Service
	Language    *langid.Service
	Health      *api.HealthHandler
	Diagnostics *api.DiagnosticsHandler // nil disables /api/v1/test
	Auth        *middleware.BearerAuth  // nil leaves admin routes open
}

// RegisterAIProxyRoutes registers the job search and language detection API.
func (s *Server) RegisterAIProxyRoutes(d AIProxy) {
	requireAdmin := passThrough
	if d.Auth != nil {
		requireAdmin = d.Auth.RequireToken
	} else {
		slog.Warn("OIDC_ISSUER not set, admin routes are not protected")
	}

	s.registerHealthRoutes(d.Health)

	v1 := s.App.Group("/api/v1")

	jobs := api.NewJobHandler(d.Jobs)
	v1.Get("/jobs/search", jobs.Search)
	v1.Get("/jobs/details/:jobId", jobs.Details)
	v1.Get("/jobs/all", jobs.List)
	v1.Get("/jobs/deleted", jobs.ListDeleted)
	v1.Get("/jobs/:id", jobs.Get)
	v1.Put("/jobs/:id", jobs.Update)
	v1.Delete("/jobs/:id", jobs.Delete)
	v1.Patch("/jobs/:id/restore", jobs.Restore)

	lang := api.NewLanguageHandler(d.Language)
	v1.Post("/language/detect", lang.Detect)
	v1.Get("/language/detections", lang.List)
	v1.Get("/language/detections/deleted", lang.ListDeleted)
	v1.Get("/language/detections/:id", lang.Get)
	v1.Put("/language/detections/:id", lang.Update)
	v1.Delete("/language/detections/:id/permanent", requireAdmin, lang.PermanentDelete)
	v1.Delete("/language/detections/:id", lang.Delete)
	v1.Patch("/language/detections/:id/restore", lang.Restore)

	if d.Diagnostics != nil {
		test := v1.Group("/test", requireAdmin)
		test.Get("/jsearch-config", d.Diagnostics.JSearchConfig)
		test.Get("/jsearch-connection", d.Diagnostics.JSearchConnection)
		test.Get("/jsearch-raw-response", d.Diagnostics.JSearchRawResponse)
		test.Get("/jsearch-test-parsing", d.Diagnostics.JSearchTestParsing)
		test.Get("/storage-info", d.Diagnostics.StorageInfo)
		test.Get("/language-test", d.Diagnostics.LanguageTest)
		test.Get("/jsearch-test-countries", d.Diagnostics.JSearchTestCountries)
	}
}

// RegisterCatalogRoutes registers the product CRUD API.
func (s *Server) RegisterCatalogRoutes(svc *catalog.Service, health *api.HealthHandler) {
	s.registerHealthRoutes(health)

	productos := api.NewProductoHandler(svc)
	s.App.Get("/api/productos", productos.List)
	s.App.Get("/api/productos/buscar", productos.Search)
	s.App.Get("/api/productos/:id", productos.Get)
	s.App.Post("/api/productos", productos.Create)
	s.App.Put("/api/productos/:id", productos.Update)
	s.App.Delete("/api/productos/:id", productos.Delete)
}

func (s *Server) registerHealthRoutes(h *api.HealthHandler) {
	s.App.Get("/api/health", h.Health)
	s.App.Get("/api/info", h.Info)
}

func passThrough(c fiber.Ctx) error {
	return c.Next()
}
