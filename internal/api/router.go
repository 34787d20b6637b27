package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/studygo-backend/internal/api/handlers"
	"github.com/baharkarakas/studygo-backend/internal/api/httpx"
	"github.com/baharkarakas/studygo-backend/internal/auth"
	"github.com/baharkarakas/studygo-backend/internal/config"
	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/middleware"
	"github.com/baharkarakas/studygo-backend/internal/services"
)

const serviceName = "studygo-backend"

type RouterDeps struct {
	Cfg         config.Config
	Tokens      *auth.TokenManager
	UserSvc     *services.UserService
	PostSvc     *services.PostService
	ProgressSvc *services.ProgressService
	UploadSvc   *services.UploadService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog, middleware.HTTPMetrics, middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{d.Cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	authn := middleware.NewAuthMiddleware(d.Tokens)
	ah := handlers.NewAuthHandler(d.UserSvc)
	uh := handlers.NewUserHandler(d.UserSvc)
	ph := handlers.NewPostHandler(d.PostSvc)
	pr := handlers.NewProgressHandler(d.ProgressSvc)
	fh := handlers.NewFileHandler(d.UploadSvc, d.Cfg.UploadMaxBytes)

	// liveness, health & metrics
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "service": serviceName})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Get("/files/{name}", fh.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", ah.Register)
		r.Post("/login", ah.Login)
		r.Get("/posts", ph.List)

		r.Group(func(r chi.Router) {
			r.Use(authn.Auth)

			r.Get("/me", uh.Me)
			r.Patch("/me", uh.UpdateMe)

			r.Post("/upload", fh.Upload)

			r.Post("/posts", ph.Create)
			r.Delete("/posts/{id}", ph.Delete)

			r.Get("/progress", pr.List)
			r.Post("/progress", pr.Upsert)
		})
	})

	return r
}
