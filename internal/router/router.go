package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-docs-api/internal/config"
	"go-docs-api/internal/handler"
	"go-docs-api/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Document *handler.DocumentHandler
	Upload   *handler.UploadHandler
	Notify   *handler.NotifyHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, publicRoot string) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Uploaded files are served directly from the public root.
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(publicRoot))))

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/users", func(users chi.Router) {
			users.Post("/register", h.Auth.Register)
			users.Post("/login", h.Auth.Login)

			users.With(authMiddleware.RequireAuth).Post("/", h.User.Create)
			users.With(authMiddleware.RequireAuth).Get("/", h.User.List)
			users.With(authMiddleware.RequireAuth).Get("/{id}", h.User.Get)
			users.With(authMiddleware.RequireAuth).Patch("/{id}", h.User.Update)
			users.With(authMiddleware.RequireAuth).Delete("/{id}", h.User.Delete)
		})

		api.Route("/documents", func(docs chi.Router) {
			docs.Use(authMiddleware.RequireAuth)

			docs.Post("/", h.Document.Create)
			docs.Get("/", h.Document.List)
			docs.Get("/type/{type}", h.Document.ListByType)
			docs.Get("/user/{userId}", h.Document.ListByUser)
			docs.Get("/{id}", h.Document.Get)
			docs.Patch("/{id}", h.Document.Update)
			docs.Delete("/{id}", h.Document.Delete)
		})

		api.Route("/upload", func(upload chi.Router) {
			upload.Use(authMiddleware.RequireAuth)

			upload.Post("/", h.Upload.Upload)
			upload.Get("/", h.Upload.List)
			upload.Delete("/{fileName}", h.Upload.Delete)
		})

		api.Get("/notify", h.Notify.Relay)
	})

	return r
}
