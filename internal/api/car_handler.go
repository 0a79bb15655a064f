// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/fleetwise/driver-service/internal/api/shared"
	"github.com/fleetwise/driver-service/internal/platform/logger"
	"github.com/fleetwise/driver-service/internal/service"
)

// CarHandler handles car-related HTTP requests
type CarHandler struct {
	carService service.CarService
	logger     *slog.Logger
}

// NewCarHandler creates a new CarHandler
func NewCarHandler(carService service.CarService, log *slog.Logger) *CarHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CarHandler")
	}

	return &CarHandler{
		carService: carService,
		logger:     log.With(slog.String("component", "car_handler")),
	}
}

// GetCar handles GET /cars/{id} requests
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid car id in path", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	car, err := h.carService.GetCar(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, carToResponse(car))
}

// ListCars handles GET /cars requests
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carService.ListCars(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := CarListResponse{Cars: make([]CarResponse, 0, len(cars))}
	for _, car := range cars {
		resp.Cars = append(resp.Cars, carToResponse(car))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateCar handles POST /cars requests
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CarRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	car, err := h.carService.CreateCar(r.Context(), req.toDomainCar())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("car created", slog.Int64("car_id", car.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, carToResponse(car))
}

// UpdateCar handles PUT /cars/{id} requests
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid car id in path", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	var req CarRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	car, err := h.carService.UpdateCar(r.Context(), id, req.toDomainCar())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, carToResponse(car))
}

// DeleteCar handles DELETE /cars/{id} requests
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid car id in path", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	if err := h.carService.DeleteCar(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
