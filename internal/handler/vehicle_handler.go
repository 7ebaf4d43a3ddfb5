package handler

import (
	"net/http"

	"github.com/fleetrent/scheduling-service/internal/dto"
	"github.com/fleetrent/scheduling-service/internal/service"
	"github.com/labstack/echo/v4"
)

type VehicleHandler struct {
	svc service.VehicleService
}

func NewVehicleHandler(svc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

func (h *VehicleHandler) RegisterRoutes(e *echo.Echo) {
	vehicles := e.Group("/api/v1/vehicles")
	vehicles.POST("", h.CreateVehicle)
	vehicles.GET("", h.ListVehicles)
	vehicles.GET("/:id", h.GetVehicle)
	vehicles.PUT("/:id", h.UpdateVehicle)
	vehicles.DELETE("/:id", h.DeleteVehicle)
	vehicles.GET("/:id/status-logs", h.StatusLogs)
}

func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	var req dto.VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	vehicle, err := h.svc.CreateVehicle(c.Request().Context(), service.CreateVehicleInput{
		CompanyID:       req.CompanyID,
		LicensePlate:    req.LicensePlate,
		Brand:           req.Brand,
		YearManufacture: req.YearManufacture,
		Mileage:         req.Mileage,
		PurchaseDate:    req.PurchaseDate,
		PricePerDay:     req.PricePerDay,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) GetVehicle(c echo.Context) error {
	vehicle, err := h.svc.GetVehicle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) ListVehicles(c echo.Context) error {
	vehicles, err := h.svc.ListVehicles(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) UpdateVehicle(c echo.Context) error {
	var req dto.VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	vehicle, err := h.svc.UpdateVehicle(c.Request().Context(), c.Param("id"), service.UpdateVehicleInput{
		CompanyID:       req.CompanyID,
		LicensePlate:    req.LicensePlate,
		Brand:           req.Brand,
		YearManufacture: req.YearManufacture,
		Mileage:         req.Mileage,
		PurchaseDate:    req.PurchaseDate,
		Status:          req.Status,
		PricePerDay:     req.PricePerDay,
		ActorID:         req.ActorID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c echo.Context) error {
	if err := h.svc.DeleteVehicle(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VehicleHandler) StatusLogs(c echo.Context) error {
	logs, err := h.svc.StatusLogs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, logs)
}
