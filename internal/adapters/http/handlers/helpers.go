package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a numeric path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// queryUint reads an optional numeric query parameter
func queryUint(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}
	id := uint(v)
	return &id, nil
}

// recordFilter reads worker_id and type_id
func recordFilter(c *fiber.Ctx) (repositories.RecordFilter, error) {
	var filter repositories.RecordFilter
	var err error
	if filter.WorkerID, err = queryUint(c, "worker_id"); err != nil {
		return filter, err
	}
	if filter.TypeID, err = queryUint(c, "type_id"); err != nil {
		return filter, err
	}
	return filter, nil
}

// vigencyQuery reads the optional ?vigency=STATUS filter
func vigencyQuery(c *fiber.Ctx) (*vigency.Status, error) {
	raw := strings.TrimSpace(c.Query("vigency"))
	if raw == "" {
		return nil, nil
	}
	status, ok := vigency.ParseStatus(strings.ToUpper(raw))
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	return &status, nil
}

// fail maps a service error onto a response envelope
func fail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, capitalize(err.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, capitalize(err.Error()))
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Already exists")
	case errors.Is(err, domain.ErrInsufficientStock):
		return response.Conflict(c, "Insufficient stock")
	}

	log.Printf("❌ %s: %v", fallback, err)
	return response.InternalServerError(c, fallback)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
