package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/movira/vehicle_rental_app/internal/apperrors"
	portssvc "github.com/movira/vehicle_rental_app/internal/core/ports/services"
	"github.com/movira/vehicle_rental_app/internal/dto"
	"github.com/movira/vehicle_rental_app/internal/middleware"
)

// vehicleHandler handles HTTP requests related to the vehicle catalog.
type vehicleHandler struct {
	vehicleService portssvc.VehicleSvcFacade
}

func newVehicleHandler(vs portssvc.VehicleSvcFacade) *vehicleHandler {
	return &vehicleHandler{vehicleService: vs}
}

// registerVehicleRoutes registers routes related to vehicles.
func registerVehicleRoutes(rg *gin.RouterGroup, vehicleService portssvc.VehicleSvcFacade) {
	h := newVehicleHandler(vehicleService)

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("", h.listVehicles)
		vehicles.GET("/mine", h.listOwnVehicles)
		vehicles.GET("/:id", h.getVehicleByID)
		vehicles.PUT("/:id", h.updateVehicle)
		vehicles.PUT("/:id/maintenance", h.setMaintenance)
		vehicles.DELETE("/:id", h.deactivateVehicle)
	}
}

// createVehicle godoc
// @Summary Register a new vehicle
// @Description Adds a vehicle to the catalog, owned by the caller.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Plate number already registered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles [post]
func (h *vehicleHandler) createVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), ownerID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Plate number already registered"})
		default:
			logger.Error("Failed to create vehicle", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create vehicle"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToVehicleResponse(vehicle))
}

// listVehicles godoc
// @Summary List vehicles
// @Description Retrieves a paginated list of vehicles in the catalog.
// @Tags vehicles
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Param onlyAvailable query bool false "Only vehicles currently available"
// @Success 200 {object} dto.ListVehiclesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles [get]
func (h *vehicleHandler) listVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListVehiclesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.vehicleService.ListVehicles(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list vehicles", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list vehicles"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listOwnVehicles godoc
// @Summary List own vehicles
// @Description Retrieves all vehicles registered by the caller.
// @Tags vehicles
// @Produce json
// @Success 200 {array} dto.VehicleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/mine [get]
func (h *vehicleHandler) listOwnVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vehicles, err := h.vehicleService.ListVehiclesByOwner(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list own vehicles", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list vehicles"})
		return
	}

	resp := make([]dto.VehicleResponse, len(vehicles))
	for i := range vehicles {
		resp[i] = dto.ToVehicleResponse(&vehicles[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getVehicleByID godoc
// @Summary Get a vehicle by ID
// @Description Retrieves details for a specific vehicle.
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *vehicleHandler) getVehicleByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID := c.Param("id")

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vehicle not found"})
			return
		}
		logger.Error("Failed to get vehicle", slog.String("error", err.Error()), slog.String("vehicle_id", vehicleID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get vehicle"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// updateVehicle godoc
// @Summary Update a vehicle
// @Description Updates catalog details of a vehicle owned by the caller.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param vehicle body dto.UpdateVehicleRequest true "Vehicle details"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [put]
func (h *vehicleHandler) updateVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID := c.Param("id")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), ownerID, vehicleID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vehicle not found"})
		default:
			logger.Error("Failed to update vehicle", slog.String("error", err.Error()), slog.String("vehicle_id", vehicleID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// setMaintenance godoc
// @Summary Set vehicle maintenance state
// @Description Moves a vehicle between AVAILABLE and MAINTENANCE.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param maintenance body dto.SetMaintenanceRequest true "Maintenance flag"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Vehicle state does not permit the change"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id}/maintenance [put]
func (h *vehicleHandler) setMaintenance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID := c.Param("id")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SetMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	vehicle, err := h.vehicleService.SetVehicleMaintenance(c.Request.Context(), ownerID, vehicleID, *req.UnderMaintenance)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vehicle not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to change maintenance state", slog.String("error", err.Error()), slog.String("vehicle_id", vehicleID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to change maintenance state"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// deactivateVehicle godoc
// @Summary Deactivate a vehicle
// @Description Retires a vehicle from the catalog. Deactivation is terminal.
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Vehicle has an active reservation"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [delete]
func (h *vehicleHandler) deactivateVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID := c.Param("id")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.vehicleService.DeactivateVehicle(c.Request.Context(), ownerID, vehicleID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vehicle not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to deactivate vehicle", slog.String("error", err.Error()), slog.String("vehicle_id", vehicleID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate vehicle"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
