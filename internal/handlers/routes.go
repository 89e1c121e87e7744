package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes mounts the middleware stack, the auth endpoints and every
// resource on r. Paths accept an optional trailing slash.
func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, resources ...Resource) huma.API {
	reportValidationAsBadRequest()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(authHandler.AuthMiddleware)

	config := huma.DefaultConfig("Tourism API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authTag := tagged("Auth")
	huma.Post(api, "/token", authHandler.HandleLogin, authTag)
	huma.Post(api, "/user-login", authHandler.HandleLogin, authTag)
	huma.Post(api, "/token/refresh", authHandler.HandleRefresh, authTag)
	huma.Post(api, "/logout", authHandler.HandleLogout, authTag, noContent)

	for _, res := range resources {
		res.Register(api)
	}
	return api
}
