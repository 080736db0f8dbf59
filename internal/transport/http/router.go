package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter wires the public HTTP surface. Auth endpoints themselves belong
// to the external provider and are not mounted here.
func NewRouter(posts port.Posts, comments port.Comments, resolver port.SessionResolver, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	authenticated := RequireAuth(resolver, domain.RoleUser, domain.RoleAdmin)
	adminOnly := RequireAuth(resolver, domain.RoleAdmin)

	postHandler := NewPostHandler(posts)
	commentHandler := NewCommentHandler(comments)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.With(authenticated).Get("/my-posts", postHandler.MyPosts)
		r.With(authenticated).Post("/", postHandler.Create)
		r.Get("/{postId}", postHandler.Get)
		r.With(authenticated).Patch("/{postId}", postHandler.Update)
		r.With(authenticated).Delete("/{postId}", postHandler.Delete)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{commentId}", commentHandler.Get)
		r.Get("/author/{authorId}", commentHandler.ListByAuthor)
		r.With(authenticated).Post("/", commentHandler.Create)
		r.With(authenticated).Patch("/{commentId}", commentHandler.Update)
		r.With(adminOnly).Patch("/{commentId}/moderate", commentHandler.Moderate)
		r.With(authenticated).Delete("/{commentId}", commentHandler.Delete)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, "inkpost")
}
