package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/export"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/importcsv"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/records"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/settings"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/summary"
)

type Options struct {
	// JWTSecret enables bearer-token auth on /api/v1 when set.
	JWTSecret      string
	AllowedOrigins []string
}

func New(
	opts Options,
	fleetV1 *fleet.Handler,
	recordsV1 *records.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	summaryV1 *summary.Handler,
	settingsV1 *settings.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(RequireToken(opts.JWTSecret))
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			fleetV1.Routes(r)
		})

		r.Route("/records", func(r chi.Router) {
			r.Get("/export", exportV1.CSV)
			r.Route("/import", importV1.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				recordsV1.Routes(r)
			})
		})

		r.Route("/reports", exportV1.Routes)

		summaryV1.Routes(r)

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			settingsV1.Routes(r)
		})
	})

	return router
}
