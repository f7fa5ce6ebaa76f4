package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xknRiya/cats-api/internal/auth"
	"github.com/xknRiya/cats-api/internal/config"
	"github.com/xknRiya/cats-api/internal/http/handlers"
	"github.com/xknRiya/cats-api/internal/http/respond"
	"github.com/xknRiya/cats-api/internal/middleware"
	"github.com/xknRiya/cats-api/internal/models"
	"github.com/xknRiya/cats-api/internal/service"
)

const maxBodyBytes = 1 << 20

// Deps are the collaborators the route table is built from.
type Deps struct {
	Store   handlers.Pinger
	Tokens  middleware.TokenVerifier
	Auth    *service.AuthService
	Catalog *service.CatalogService
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps, logger *slog.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, deps, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
	return &Server{inner: httpServer}
}

// NewRouter builds the route table. Every protected route names its gates.
func NewRouter(cfg config.Config, deps Deps, logger *slog.Logger) http.Handler {
	health := handlers.NewHealthHandler(time.Now(), deps.Store, logger)
	authH := handlers.NewAuthHandler(deps.Auth, logger)
	catalog := handlers.NewCatalogHandler(deps.Catalog, logger)

	authenticate := middleware.Authenticate(deps.Tokens, logger)
	adminOnly := middleware.RequireRoles(auth.NewRoleSet(models.RoleAdmin), logger)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.Recover(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.BodyLimit(maxBodyBytes),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	r.Get("/health", health.Handle)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.HandleRegister)
		r.Post("/login", authH.HandleLogin)
		r.With(authenticate, adminOnly).Get("/me", authH.HandleMe)
	})

	r.Route("/breeds", func(r chi.Router) {
		r.Get("/", catalog.ListBreeds)
		r.Get("/{id}", catalog.GetBreed)
		r.With(authenticate).Post("/", catalog.CreateBreed)
		r.With(authenticate).Patch("/{id}", catalog.UpdateBreed)
		r.With(authenticate).Delete("/{id}", catalog.DeleteBreed)
	})

	r.Route("/cats", func(r chi.Router) {
		r.Get("/", catalog.ListCats)
		r.Get("/{id}", catalog.GetCat)
		r.With(authenticate).Post("/", catalog.CreateCat)
		r.With(authenticate).Patch("/{id}", catalog.UpdateCat)
		r.With(authenticate).Delete("/{id}", catalog.DeleteCat)
	})

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
