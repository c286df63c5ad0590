package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsmarketplace/internal/config"
	"newsmarketplace/internal/db"
	"newsmarketplace/internal/handlers/api"
	"newsmarketplace/internal/middleware"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/moderation"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	DB         *db.DB
	Dispatcher moderation.Dispatcher
	Kinds      *config.YAMLConfig // optional per-kind overrides
	Metrics    moderation.Recorder
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Deps) {
	auth := middleware.NewAuthMiddleware(s.Cfg.JWTSecret, s.Cfg.JWTIssuer)

	s.App.Get("/healthz", api.NewHealthHandler(d.DB).Healthz)
	if d.Gatherer != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	r := s.App.Group("/api")

	api.NewNotificationHandler(d.DB, s.limits(config.KindSettings{})).Register(r, auth.RequireAuth)

	registerKind[models.Podcaster](s, r, auth, d, models.PodcasterKind)
	registerKind[models.Career](s, r, auth, d, models.CareerKind)
	registerKind[models.PowerlistNomination](s, r, auth, d, models.PowerlistNominationKind)
	registerKind[models.Radio](s, r, auth, d, models.RadioKind)
	registerKind[models.RealEstateProfessional](s, r, auth, d, models.RealEstateProfessionalKind)

	s.App.Use(func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})
}

// registerKind wires the store, moderation service and handler of one kind.
func registerKind[T any, PT interface {
	*T
	models.Entity
}](s *Server, r fiber.Router, auth *middleware.AuthMiddleware, d Deps, kind models.Kind) {
	settings := d.Kinds.Kind(kind.Slug)

	notifyModerators := s.Cfg.EmailNotifyModeratorsOnSubmit
	if settings.NotifyModerators != nil {
		notifyModerators = *settings.NotifyModerators
	}

	store := db.NewStore[T, PT](d.DB, kind)
	svc := moderation.NewService[PT](kind, store, moderation.Options{
		Dispatcher:       d.Dispatcher,
		Metrics:          d.Metrics,
		Logger:           d.Logger,
		NotifyModerators: notifyModerators,
	})
	api.NewListingHandler[T](svc, store, s.limits(settings)).Register(r, auth)
}

// limits resolves page sizes: per-kind YAML first, then the global settings.
func (s *Server) limits(k config.KindSettings) api.Limits {
	def := s.Cfg.DefaultPageSize
	if k.DefaultLimit > 0 {
		def = k.DefaultLimit
	}
	public := def
	if k.PublicLimit > 0 {
		public = k.PublicLimit
	}
	return api.Limits{
		Public:  public,
		Default: def,
		Max:     s.Cfg.MaxPageSize,
	}
}
