package handler

import (
	"net/http"

	"github.com/fleetrent/scheduling-service/internal/dto"
	"github.com/fleetrent/scheduling-service/internal/service"
	"github.com/labstack/echo/v4"
)

type PricingHandler struct {
	svc service.PricingService
}

func NewPricingHandler(svc service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

func (h *PricingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/vehicles/:id/pricing-rules", h.GetActiveRules)
	e.PUT("/api/v1/vehicles/:id/pricing-rules", h.ReplaceRules)
}

func (h *PricingHandler) ReplaceRules(c echo.Context) error {
	var req []dto.PricingRuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rules := make([]service.PricingRuleInput, len(req))
	for i, r := range req {
		rules[i] = service.PricingRuleInput{
			PricePerDay:       r.PricePerDay,
			HolidayMultiplier: r.HolidayMultiplier,
			EffectiveDate:     r.EffectiveDate,
			ExpiryDate:        r.ExpiryDate,
		}
	}

	created, err := h.svc.ReplaceRules(c.Request().Context(), c.Param("id"), rules)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.PricingRuleResponse, len(created))
	for i := range created {
		resp[i] = dto.ToPricingRuleResponse(&created[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) GetActiveRules(c echo.Context) error {
	rules, err := h.svc.GetActiveRules(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.PricingRuleResponse, len(rules))
	for i := range rules {
		resp[i] = dto.ToPricingRuleResponse(&rules[i])
	}
	return c.JSON(http.StatusOK, resp)
}
