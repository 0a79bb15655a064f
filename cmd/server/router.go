package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fleetwise/driver-service/internal/api"
	apiMiddleware "github.com/fleetwise/driver-service/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	carHandler := api.NewCarHandler(app.carService, app.logger)
	driverHandler := api.NewDriverHandler(app.driverService, app.logger)

	r.Group(func(r chi.Router) {
		if app.config.Auth.Enabled {
			authMiddleware := apiMiddleware.NewAuthMiddleware(app.config.Auth.JWTSecret)
			r.Use(authMiddleware.Authenticate)
		}

		r.Route("/cars", func(r chi.Router) {
			r.Get("/", carHandler.ListCars)
			r.Post("/", carHandler.CreateCar)
			r.Get("/{id}", carHandler.GetCar)
			r.Put("/{id}", carHandler.UpdateCar)
			r.Delete("/{id}", carHandler.DeleteCar)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Get("/", driverHandler.ListDrivers)
			r.Post("/", driverHandler.CreateDriver)
			r.Get("/{id}", driverHandler.GetDriver)
			r.Put("/{id}", driverHandler.UpdateDriver)
			r.Delete("/{id}", driverHandler.DeleteDriver)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
