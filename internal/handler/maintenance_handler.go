package handler

import (
	"net/http"

	"github.com/fleetrent/scheduling-service/internal/dto"
	"github.com/fleetrent/scheduling-service/internal/service"
	"github.com/labstack/echo/v4"
)

type MaintenanceHandler struct {
	svc service.MaintenanceService
}

func NewMaintenanceHandler(svc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

func (h *MaintenanceHandler) RegisterRoutes(e *echo.Echo) {
	maintenances := e.Group("/api/v1/maintenances")
	maintenances.POST("", h.CreateMaintenance)
	maintenances.GET("", h.ListMaintenances)
	maintenances.GET("/:id", h.GetMaintenance)
	maintenances.DELETE("/:id", h.DeleteMaintenance)
	maintenances.POST("/:id/logs", h.AddLog)
	maintenances.GET("/:id/logs", h.ListLogs)
}

func (h *MaintenanceHandler) CreateMaintenance(c echo.Context) error {
	var req dto.CreateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	m, err := h.svc.CreateMaintenance(c.Request().Context(), service.CreateMaintenanceInput{
		VehicleID:     req.VehicleID,
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MaintenanceHandler) GetMaintenance(c echo.Context) error {
	m, err := h.svc.GetMaintenance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) ListMaintenances(c echo.Context) error {
	ms, err := h.svc.ListMaintenances(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ms)
}

func (h *MaintenanceHandler) DeleteMaintenance(c echo.Context) error {
	if err := h.svc.DeleteMaintenance(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MaintenanceHandler) AddLog(c echo.Context) error {
	var req dto.CreateMaintenanceLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, err := h.svc.AddLog(c.Request().Context(), service.AddMaintenanceLogInput{
		MaintenanceID: c.Param("id"),
		Action:        req.Action,
		Note:          req.Note,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *MaintenanceHandler) ListLogs(c echo.Context) error {
	logs, err := h.svc.ListLogs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, logs)
}
