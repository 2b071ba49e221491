package record

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

// Handler handles HTTP requests for records.
type Handler struct {
	service *Service
	policy  policy.Checker
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, checker policy.Checker) *Handler {
	return &Handler{service: service, policy: checker}
}

// RegisterRoutes registers the record routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/record")
	group.Get("/list", h.HandleList)
	group.Post("/add", h.HandleAdd)
	group.Put("/update", h.HandleUpdate)
	group.Delete("/delete", h.HandleDelete)
	group.Post("/export", h.HandleExport)
	group.Get("/exports", h.HandleExports)
}

func (h *Handler) allowed(c *fiber.Ctx, permission string) bool {
	p, ok := auth.Principal(c)
	return ok && h.policy.Allowed(p, permission)
}

// HandleList returns all records.
// @Summary List Records
// @Tags record
// @Produce json
// @Success 200 {array} models.Record
// @Failure 500 "Internal Server Error"
// @Router /record/list [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	records, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Record list failed", zap.Error(err))
		return response.Status(c, fiber.StatusInternalServerError)
	}
	return c.JSON(records)
}

// HandleAdd creates a record.
// @Summary Add Record
// @Tags record
// @Accept json
// @Produce json
// @Param body body models.Record true "Record"
// @Success 200 {object} response.Envelope
// @Router /record/add [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	if !h.allowed(c, policy.RecordAdd) {
		return response.Unauthorized(c)
	}
	var record models.Record
	if err := c.BodyParser(&record); err != nil {
		return response.BadRequest(c)
	}
	if err := validation.Struct(record); err != nil {
		return response.BadRequest(c)
	}

	if err := h.service.Add(c.Context(), &record); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Record add failed", zap.Error(err))
		return response.ServerError(c)
	}
	return response.OK(c, "added", record)
}

// HandleUpdate updates a record addressed by `_id`.
// @Summary Update Record
// @Tags record
// @Accept json
// @Produce json
// @Param body body object true "Record fields with _id"
// @Success 200 {object} response.Envelope
// @Router /record/update [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return response.BadRequest(c)
	}
	id := utils.ToID(data["_id"])
	if id == "" {
		return response.BadRequest(c)
	}
	if !h.allowed(c, policy.RecordUpdate) {
		return response.Unauthorized(c)
	}

	n, err := h.service.Update(c.Context(), id, data)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Record update failed", zap.String("id", id), zap.Error(err))
		return response.ServerError(c)
	}
	return response.OK(c, "updated", fiber.Map{"updated": n})
}

type deleteRequest struct {
	IDs []any `json:"ids"`
}

// HandleDelete deletes records by `_id`.
// @Summary Delete Records
// @Tags record
// @Accept json
// @Produce json
// @Param body body object true "{ids: []}"
// @Success 200 {object} response.Envelope
// @Router /record/delete [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if !h.allowed(c, policy.RecordDelete) {
		return response.Unauthorized(c)
	}
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil || req.IDs == nil {
		return response.BadRequest(c)
	}
	ids := utils.ToStrings(req.IDs)

	n, err := h.service.Delete(c.Context(), ids)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Record delete failed", zap.Error(err))
		return response.ServerError(c)
	}
	return response.OK(c, "deleted", fiber.Map{"deleted": n})
}

// HandleExport writes a snapshot of races and records to object storage.
// @Summary Export Records
// @Tags record
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /record/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	if !h.allowed(c, policy.RecordExport) {
		return response.Unauthorized(c)
	}

	key, err := h.service.Export(c.Context())
	if err != nil {
		if errors.Is(err, ErrStorageDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(response.Envelope{
				Code: fiber.StatusServiceUnavailable,
				Msg:  err.Error(),
			})
		}
		logger.WithRayID(h.service.logger, c).Error("Record export failed", zap.Error(err))
		return response.ServerError(c)
	}
	return response.OK(c, "exported", fiber.Map{"key": key})
}

// HandleExports lists stored snapshots.
// @Summary List Record Exports
// @Tags record
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /record/exports [get]
func (h *Handler) HandleExports(c *fiber.Ctx) error {
	if !h.allowed(c, policy.RecordExport) {
		return response.Unauthorized(c)
	}

	keys, err := h.service.Exports(c.Context())
	if err != nil {
		if errors.Is(err, ErrStorageDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(response.Envelope{
				Code: fiber.StatusServiceUnavailable,
				Msg:  err.Error(),
			})
		}
		logger.WithRayID(h.service.logger, c).Error("Record export listing failed", zap.Error(err))
		return response.ServerError(c)
	}
	if keys == nil {
		keys = []string{}
	}
	return response.OK(c, "success", keys)
}
