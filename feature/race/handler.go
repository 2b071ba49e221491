package race

import (
	"errors"

	"race-admin/core/logger"
	"race-admin/core/middleware/auth"
	"race-admin/core/models"
	"race-admin/core/policy"
	"race-admin/core/response"
	"race-admin/core/utils"
	"race-admin/core/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for races.
type Handler struct {
	service *Service
	policy  policy.Checker
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, checker policy.Checker) *Handler {
	return &Handler{service: service, policy: checker}
}

// RegisterRoutes registers the race routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/race")
	group.Get("/list", h.HandleList)
	group.Put("/update", h.HandleUpdate)
	group.Post("/add", h.HandleAdd)
	group.Delete("/delete", h.HandleDelete)
}

func (h *Handler) allowed(c *fiber.Ctx, permission string) bool {
	p, ok := auth.Principal(c)
	return ok && h.policy.Allowed(p, permission)
}

// HandleList returns all races.
// @Summary List Races
// @Tags race
// @Produce json
// @Success 200 {array} models.Race
// @Failure 500 "Internal Server Error"
// @Router /race/list [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	races, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Race list failed", zap.Error(err))
		return response.Status(c, fiber.StatusInternalServerError)
	}
	return c.JSON(races)
}

// HandleUpdate updates a race addressed by `_id`.
// @Summary Update Race
// @Tags race
// @Accept json
// @Param body body object true "Race fields with _id"
// @Success 200 "Updated"
// @Failure 400 "Missing _id"
// @Failure 500 "Internal Server Error"
// @Router /race/update [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return response.Status(c, fiber.StatusBadRequest)
	}
	id := utils.ToID(data["_id"])
	if id == "" {
		return response.Status(c, fiber.StatusBadRequest)
	}
	if !h.allowed(c, policy.RaceUpdate) {
		return response.Unauthorized(c)
	}

	if err := h.service.Update(c.Context(), id, data); err != nil {
		if errors.Is(err, ErrRaceExists) {
			return response.JSON(c, response.CodeExists, "race already exists", nil)
		}
		logger.WithRayID(h.service.logger, c).Error("Race update failed", zap.String("id", id), zap.Error(err))
		return response.Status(c, fiber.StatusInternalServerError)
	}
	return response.Status(c, fiber.StatusOK)
}

// HandleAdd creates a race.
// @Summary Add Race
// @Tags race
// @Accept json
// @Produce json
// @Param body body models.Race true "Race"
// @Success 200 {object} response.Envelope
// @Router /race/add [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	if !h.allowed(c, policy.RaceAdd) {
		return response.Unauthorized(c)
	}
	var race models.Race
	if err := c.BodyParser(&race); err != nil {
		return response.BadRequest(c)
	}
	if err := validation.Struct(race); err != nil {
		return response.BadRequest(c)
	}

	if err := h.service.Add(c.Context(), &race); err != nil {
		if errors.Is(err, ErrRaceExists) {
			return response.JSON(c, response.CodeExists, "race already exists", nil)
		}
		logger.WithRayID(h.service.logger, c).Error("Race add failed", zap.Error(err))
		return response.ServerError(c)
	}
	return response.OK(c, "added", race)
}

type deleteRequest struct {
	IDs []any `json:"ids"`
}

// HandleDelete deletes races by `_id`.
// @Summary Delete Races
// @Tags race
// @Accept json
// @Produce json
// @Param body body object true "{ids: []}"
// @Success 200 {object} response.Envelope
// @Router /race/delete [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if !h.allowed(c, policy.RaceDelete) {
		return response.Unauthorized(c)
	}
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil || req.IDs == nil {
		return response.BadRequest(c)
	}
	ids := utils.ToStrings(req.IDs)

	n, err := h.service.Delete(c.Context(), ids)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Race delete failed", zap.Error(err))
		return response.ServerError(c)
	}
	return response.OK(c, "deleted", fiber.Map{"deleted": n})
}
