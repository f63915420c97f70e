package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/service"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/health"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httputil"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/middleware"
)

const (
	serviceName     = "LS Resort Backend"
	publicCacheTime = 5 * time.Minute
)

// Services bundles the application services the router dispatches to.
type Services struct {
	Auth    *service.AuthService
	Admin   *service.AdminService
	Search  *service.SearchService
	Contact *service.ContactService
	Catalog *service.CatalogService
	Review  *service.ReviewService
}

// RouterConfig carries the cross-cutting pieces of the HTTP stack.
type RouterConfig struct {
	CORS     middleware.CORSConfig
	Limiter  middleware.Limiter
	Metrics  *middleware.HTTPMetrics
	Gatherer prometheus.Gatherer
}

// NewRouter creates a chi router with every API route registered.
func NewRouter(svc Services, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Tracing())
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	limit := func(scope string) func(http.Handler) http.Handler {
		if cfg.Limiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.RateLimit(cfg.Limiter, scope, cfg.Metrics, logger)
	}

	authn := middleware.Auth(func(ctx context.Context, token string) (*middleware.Claims, error) {
		u, err := svc.Auth.ResolveCurrentUser(ctx, token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: u.ID, Role: u.Role, Principal: u}, nil
	})
	adminOnly := chi.Chain(authn, middleware.RequireRole(domain.RoleAdmin))

	authHandler := NewAuthHandler(svc.Auth, logger)
	adminHandler := NewAdminHandler(svc.Admin, logger)
	searchHandler := NewSearchHandler(svc.Search, logger)
	contactHandler := NewContactHandler(svc.Contact, logger)
	catalogHandler := NewCatalogHandler(svc.Catalog, logger)
	reviewHandler := NewReviewHandler(svc.Review, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/auth", func(r chi.Router) {
			r.With(limit("auth")).Post("/register", authHandler.Register)
			r.With(limit("auth")).Post("/login", authHandler.Login)
			r.With(limit("auth")).Post("/google/verify", authHandler.GoogleVerify)
			r.With(authn).Get("/me", authHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly...)
				r.Get("/users", adminHandler.ListUsers)
				r.Get("/users/{id}", adminHandler.GetUser)
				r.Delete("/users/{id}", adminHandler.DeleteUser)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(limit("auth")).Post("/bootstrap", adminHandler.Bootstrap)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly...)
				r.Get("/users", adminHandler.ListUsers)
				r.Get("/users/{id}", adminHandler.GetUser)
				r.Delete("/users/{id}", adminHandler.DeleteUser)
			})
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/suggest", searchHandler.Suggest)
			r.Post("/log", searchHandler.Log)
		})

		r.Route("/contact", func(r chi.Router) {
			r.With(middleware.CacheControl(publicCacheTime)).Get("/info", contactHandler.Info)
			r.With(limit("contact")).Post("/send", contactHandler.Send)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly...)
				r.Get("/all", contactHandler.List)
				r.Get("/{id}", contactHandler.Get)
				r.Patch("/{id}", contactHandler.Update)
				r.Delete("/{id}", contactHandler.Delete)
			})
		})

		r.With(middleware.CacheControl(publicCacheTime)).Get("/services", catalogHandler.List)

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.List)
			r.With(limit("reviews")).Post("/", reviewHandler.Create)
			r.With(adminOnly...).Get("/all", reviewHandler.ListAll)
			r.Get("/{id}", reviewHandler.Get)
			r.With(adminOnly...).Patch("/{id}", reviewHandler.Patch)
			r.With(adminOnly...).Delete("/{id}", reviewHandler.Delete)
		})
	})

	return r
}
