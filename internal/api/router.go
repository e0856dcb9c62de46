package api

import (
	"net/http"
	"time"

	"newsdesk/internal/api/handler"
	"newsdesk/internal/api/middleware"
	"newsdesk/internal/app/service"
	"newsdesk/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(
	logger *zap.Logger,
	authService *service.AuthService,
	userService *service.UserService,
	categoryService *service.CategoryService,
	articleService *service.ArticleService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present and puts claims in context. Public
	// routes stay reachable without a token; Authenticator enforces presence
	// where required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public): register, token, token/refresh
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// User routes (login public, rest authenticated)
		userHandler := handler.NewUserHandler(userService, authService)
		v1.Route("/users", userHandler.RegisterRoutes)

		// Category routes (reads public, writes authenticated)
		categoryHandler := handler.NewCategoryHandler(categoryService)
		v1.Route("/categories", categoryHandler.RegisterRoutes)

		// Article routes (reads public and visibility-filtered, writes authenticated)
		articleHandler := handler.NewArticleHandler(articleService)
		v1.Route("/articles", articleHandler.RegisterRoutes)
	})

	return r
}
