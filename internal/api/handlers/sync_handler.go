package handlers

import (
	"strconv"

	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/pkg/syncer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SyncHandler interface {
		TriggerSync(c *fiber.Ctx) error
		GetSyncRuns(c *fiber.Ctx) error
	}

	syncHandler struct {
		syncService syncer.SyncService
		validator   *validator.Validate
	}
)

func NewSyncHandler(syncService syncer.SyncService, validator *validator.Validate) SyncHandler {
	return &syncHandler{
		syncService: syncService,
		validator:   validator,
	}
}

// TriggerSync runs one sync batch. Without an explicit strategy the smart
// strategy selection decides based on the current store size.
func (h *syncHandler) TriggerSync(c *fiber.Ctx) error {
	req := new(domain.SyncRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSync, err)
	}

	var (
		report domain.SyncReport
		err    error
	)
	switch req.Strategy {
	case domain.StrategyQuick, domain.StrategyRandom:
		count := req.Count
		if count <= 0 {
			count = 10
		}
		report, err = h.syncService.SyncRandom(c.Context(), count)
	case domain.StrategyCategory:
		count := req.Count
		if count <= 0 {
			count = 20
		}
		report, err = h.syncService.SyncByCategory(c.Context(), count)
	case domain.StrategyArea:
		count := req.Count
		if count <= 0 {
			count = 20
		}
		report, err = h.syncService.SyncByArea(c.Context(), count)
	default:
		report, err = h.syncService.SmartSync(c.Context())
	}
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSync, err)
	}

	return presenters.SuccessResponse(c, report, fiber.StatusOK, domain.MessageSuccessSync)
}

func (h *syncHandler) GetSyncRuns(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	runs, err := h.syncService.GetRecentRuns(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetSyncRuns, err)
	}

	return presenters.SuccessResponse(c, runs, fiber.StatusOK, domain.MessageSuccessGetSyncRuns)
}
