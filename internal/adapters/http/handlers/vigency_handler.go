package handlers

import (
	"slices"
	"strings"

	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/core/vigency"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VigencyHandler handles expiry tracking endpoints
type VigencyHandler struct {
	vigencyService *services.VigencyService
	cronService    *services.CronService
}

// NewVigencyHandler creates a new vigency handler
func NewVigencyHandler(vigencyService *services.VigencyService, cronService *services.CronService) *VigencyHandler {
	return &VigencyHandler{
		vigencyService: vigencyService,
		cronService:    cronService,
	}
}

// Summary returns status counts per record kind
// @Summary Vigency summary
// @Description Count courses, equipment issuances and documents per vigency status as of today
// @Tags Vigency
// @Produce json
// @Success 200 {object} response.Response
// @Router /vigency/summary [get]
func (h *VigencyHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.vigencyService.Summary(c.Context())
	if err != nil {
		return fail(c, err, "Failed to get vigency summary")
	}

	return response.Success(c, "Vigency summary retrieved successfully", summary)
}

// Alerts returns the records in the requested statuses
// @Summary Vigency alerts
// @Description Records per kind whose status is in the list; defaults to NEAR_EXPIRY,EXPIRED
// @Tags Vigency
// @Produce json
// @Param status query string false "Comma separated statuses"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /vigency/alerts [get]
func (h *VigencyHandler) Alerts(c *fiber.Ctx) error {
	statuses, err := parseStatuses(c.Query("status"))
	if err != nil {
		return fail(c, err, "Failed to get vigency alerts")
	}

	alerts, err := h.vigencyService.Alerts(c.Context(), statuses)
	if err != nil {
		return fail(c, err, "Failed to get vigency alerts")
	}

	return response.Success(c, "Vigency alerts retrieved successfully", fiber.Map{
		"alerts": alerts,
		"total":  alerts.Count(),
	})
}

// Sweep runs the daily sweep immediately
// @Summary Run vigency sweep
// @Description Fill blank cached expiry dates, refresh gauges and send the digest
// @Tags Vigency
// @Produce json
// @Success 200 {object} response.Response
// @Router /vigency/sweep [post]
func (h *VigencyHandler) Sweep(c *fiber.Ctx) error {
	result, err := h.cronService.RunNow(c.Context())
	if err != nil {
		return fail(c, err, "Failed to run vigency sweep")
	}

	return response.Success(c, "Vigency sweep completed", result)
}

// parseStatuses reads a comma separated list; empty means the service default
func parseStatuses(raw string) ([]vigency.Status, error) {
	var statuses []vigency.Status
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		status, ok := vigency.ParseStatus(strings.ToUpper(part))
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		if !slices.Contains(statuses, status) {
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}
