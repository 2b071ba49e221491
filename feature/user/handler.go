package user

import (
	"errors"

	"race-admin/core/logger"
	"race-admin/core/middleware/auth"
	"race-admin/core/models"
	"race-admin/core/policy"
	"race-admin/core/response"
	"race-admin/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for accounts.
type Handler struct {
	service *Service
	policy  policy.Checker
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, checker policy.Checker) *Handler {
	return &Handler{service: service, policy: checker}
}

// RegisterRoutes registers the account routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/get_user", h.HandleGetUser)

	group := app.Group("/user")
	group.Post("/add", h.HandleAdd)
	group.Post("/import", h.HandleImport)
	group.Delete("/delete", h.HandleDelete)
	group.Get("/list", h.HandleList)
	group.Patch("/password", h.HandlePassword)
	group.Put("/reset", h.HandleReset)
	group.Put("/update", h.HandleUpdate)
}

type accountRequest struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type importRequest struct {
	Type string           `json:"type"`
	Data []map[string]any `json:"data"`
}

type deleteRequest struct {
	Type string `json:"type"`
	Data *struct {
		IDs []any `json:"ids"`
	} `json:"data"`
}

type passwordRequest struct {
	Account  any `json:"account"`
	Identity any `json:"identity"`
	OldVal   any `json:"oldVal"`
	NewVal   any `json:"newVal"`
}

type resetRequest struct {
	Type    string `json:"type"`
	Account any    `json:"account"`
}

// list query keys that are not column filters
var reservedListKeys = map[string]struct{}{
	"type": {}, "offset": {}, "limit": {}, "name": {}, "class": {},
}

func (h *Handler) principal(c *fiber.Ctx) policy.Principal {
	p, _ := auth.Principal(c)
	return p
}

func (h *Handler) allowed(c *fiber.Ctx, permission string) bool {
	p, ok := auth.Principal(c)
	return ok && h.policy.Allowed(p, permission)
}

// fail maps service errors to envelope codes. Anything unexpected is logged and
// answered with HTTP 500.
func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return response.BadRequest(c)
	case errors.Is(err, ErrUserExists):
		return response.JSON(c, response.CodeExists, "user already exists", nil)
	case errors.Is(err, ErrUserNotFound):
		return response.JSON(c, response.CodeNotFound, "user not found", nil)
	case errors.Is(err, ErrBadPassword):
		return response.JSON(c, response.CodeBadPassword, "wrong old password", nil)
	case errors.Is(err, ErrSelfDelete):
		return response.JSON(c, response.CodeBadRequest, "cannot delete yourself", nil)
	case errors.Is(err, ErrForbidden):
		return response.Unauthorized(c)
	}
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return response.ServerError(c)
}

// HandleGetUser returns the caller's profile.
// @Summary Current User
// @Tags user
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /get_user [get]
func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	p, ok := auth.Principal(c)
	if !ok {
		return response.Unauthorized(c)
	}
	profile, err := h.service.GetUser(c.Context(), p)
	if err != nil {
		return h.fail(c, err, "Get user failed")
	}
	return response.OK(c, "success", profile)
}

// HandleAdd adds one student or teacher.
// @Summary Add User
// @Tags user
// @Accept json
// @Produce json
// @Param body body object true "{type, data}"
// @Success 200 {object} response.Envelope
// @Router /user/add [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	var req accountRequest
	if err := c.BodyParser(&req); err != nil || req.Data == nil {
		return response.BadRequest(c)
	}
	kind, ok := models.ParseKind(req.Type)
	if !ok || !kind.Importable() {
		return response.BadRequest(c)
	}
	if !h.allowed(c, policy.UserAdd) {
		return response.Unauthorized(c)
	}

	if err := h.service.Add(c.Context(), kind, req.Data); err != nil {
		return h.fail(c, err, "User add failed")
	}
	return response.OK(c, "added", nil)
}

// HandleImport adds a batch of students or teachers. Existing accounts are
// skipped and returned with code 1.
// @Summary Import Users
// @Tags user
// @Accept json
// @Produce json
// @Param body body object true "{type, data: []}"
// @Success 200 {object} response.Envelope
// @Router /user/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil || len(req.Data) == 0 {
		return response.BadRequest(c)
	}
	kind, ok := models.ParseKind(req.Type)
	if !ok || !kind.Importable() {
		return response.BadRequest(c)
	}
	if !h.allowed(c, policy.UserAdd) {
		return response.Unauthorized(c)
	}

	existing, inserted, err := h.service.Import(c.Context(), kind, req.Data)
	if err != nil {
		return h.fail(c, err, "User import failed")
	}
	if len(existing) > 0 {
		return response.JSON(c, response.CodeExists, "user already exists", existing)
	}
	return response.OK(c, "added", fiber.Map{"inserted": inserted})
}

// HandleDelete deletes accounts by primary key.
// @Summary Delete Users
// @Tags user
// @Accept json
// @Produce json
// @Param body body object true "{type, data: {ids: []}}"
// @Success 200 {object} response.Envelope
// @Router /user/delete [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	var req deleteRequest
	if err := c.BodyParser(&req); err != nil || req.Data == nil || req.Data.IDs == nil {
		return response.BadRequest(c)
	}
	kind, ok := models.ParseKind(req.Type)
	if !ok {
		return response.BadRequest(c)
	}
	ids := utils.ToStrings(req.Data.IDs)
	if deletesSelf(h.principal(c), kind, ids) {
		return h.fail(c, ErrSelfDelete, "User delete failed")
	}
	if !h.allowed(c, policy.UserDelete) {
		return response.Unauthorized(c)
	}

	n, err := h.service.Delete(c.Context(), h.principal(c), kind, ids)
	if err != nil {
		return h.fail(c, err, "User delete failed")
	}
	return response.OK(c, "deleted", fiber.Map{"deleted": n})
}

// HandleList lists accounts of one kind.
// @Summary List Users
// @Tags user
// @Produce json
// @Param type query string true "student, teacher or admin"
// @Param offset query int false "1-based page"
// @Param limit query int false "Page size"
// @Param name query string false "Partial name match"
// @Param class query string false "Partial class match"
// @Success 200 {object} response.Envelope
// @Router /user/list [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	kind, ok := models.ParseKind(c.Query("type"))
	if !ok {
		return response.BadRequest(c)
	}
	if !h.allowed(c, policy.UserList) {
		return response.Unauthorized(c)
	}

	q := ListQuery{
		Offset:  utils.ToInt(c.Query("offset")),
		Limit:   utils.ToInt(c.Query("limit")),
		Name:    c.Query("name"),
		Class:   c.Query("class"),
		Filters: map[string]string{},
	}
	c.Context().QueryArgs().VisitAll(func(key, val []byte) {
		if _, reserved := reservedListKeys[string(key)]; !reserved {
			q.Filters[string(key)] = string(val)
		}
	})

	rows, count, err := h.service.List(c.Context(), kind, q)
	if err != nil {
		return h.fail(c, err, "User list failed")
	}
	return response.Page(c, "success", rows, count)
}

// HandlePassword changes a password after verifying the old one.
// @Summary Change Password
// @Tags user
// @Accept json
// @Produce json
// @Param body body object true "{account, identity, oldVal, newVal}"
// @Success 200 {object} response.Envelope
// @Router /user/password [patch]
func (h *Handler) HandlePassword(c *fiber.Ctx) error {
	var req passwordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c)
	}
	account := utils.ToString(req.Account)
	oldVal := utils.ToString(req.OldVal)
	newVal := utils.ToString(req.NewVal)
	kind, ok := models.ParseKind(utils.ToString(req.Identity))
	if !ok || account == "" || oldVal == "" || newVal == "" {
		return response.BadRequest(c)
	}

	if err := h.service.ChangePassword(c.Context(), kind, account, oldVal, newVal); err != nil {
		return h.fail(c, err, "Password change failed")
	}
	return response.OK(c, "updated", nil)
}

// HandleReset resets a password to the default.
// @Summary Reset Password
// @Tags user
// @Accept json
// @Produce json
// @Param body body object true "{type, account}"
// @Success 200 {object} response.Envelope
// @Router /user/reset [put]
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c)
	}
	account := utils.ToString(req.Account)
	kind, ok := models.ParseKind(req.Type)
	if !ok || account == "" {
		return response.BadRequest(c)
	}
	if !h.allowed(c, policy.UserReset) {
		return response.Unauthorized(c)
	}

	if err := h.service.Reset(c.Context(), kind, account); err != nil {
		return h.fail(c, err, "Password reset failed")
	}
	return response.OK(c, "reset", nil)
}

// HandleUpdate updates an account profile.
// @Summary Update User
// @Tags user
// @Accept json
// @Produce json
// @Param body body object true "{type, data}"
// @Success 200 {object} response.Envelope
// @Router /user/update [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var req accountRequest
	if err := c.BodyParser(&req); err != nil || req.Data == nil {
		return response.BadRequest(c)
	}
	kind, ok := models.ParseKind(req.Type)
	if !ok {
		return response.BadRequest(c)
	}
	account := utils.ToString(req.Data[kind.PrimaryKey()])
	if account == "" {
		return response.BadRequest(c)
	}

	_, err := h.service.Update(c.Context(), h.principal(c), kind, account, req.Data, h.allowed(c, policy.UserUpdate))
	if err != nil {
		return h.fail(c, err, "User update failed")
	}
	return response.OK(c, "updated", nil)
}
