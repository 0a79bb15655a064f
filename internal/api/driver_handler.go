package api

import (
	"log/slog"
	"net/http"

	"github.com/fleetwise/driver-service/internal/api/shared"
	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/platform/logger"
	"github.com/fleetwise/driver-service/internal/service"
)

// DriverHandler handles driver-related HTTP requests
type DriverHandler struct {
	driverService service.DriverService
	logger        *slog.Logger
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(driverService service.DriverService, log *slog.Logger) *DriverHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DriverHandler")
	}

	return &DriverHandler{
		driverService: driverService,
		logger:        log.With(slog.String("component", "driver_handler")),
	}
}

// GetDriver handles GET /drivers/{id} requests.
// The response embeds the driver's referenced car.
func (h *DriverHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid driver id in path", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	driver, err := h.driverService.GetDriver(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, driverToResponseWithCar(driver))
}

// ListDrivers handles GET /drivers requests
func (h *DriverHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.driverService.ListDrivers(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := DriverListResponse{Drivers: make([]DriverResponse, 0, len(drivers))}
	for _, driver := range drivers {
		resp.Drivers = append(resp.Drivers, driverToResponse(driver))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateDriver handles POST /drivers requests.
// On success the driver is persisted and a creation notification has been
// published; a 502 means the driver was persisted but the notification
// could not be delivered.
func (h *DriverHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DriverRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	driver, err := h.driverService.CreateDriver(r.Context(), req.CarID, req.toDomainDriver())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("driver created", slog.Int64("driver_id", driver.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, driverToResponse(driver))
}

// UpdateDriver handles PUT /drivers/{id} requests
func (h *DriverHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid driver id in path", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	var req DriverRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	driver := req.toDomainDriver()
	driver.Car = &domain.Car{ID: req.CarID}

	updated, err := h.driverService.UpdateDriver(r.Context(), id, driver)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, driverToResponse(updated))
}

// DeleteDriver handles DELETE /drivers/{id} requests
func (h *DriverHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid driver id in path", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	if err := h.driverService.DeleteDriver(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
