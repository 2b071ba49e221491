package auth

import (
	"errors"

	"race-admin/core/logger"
	authmw "race-admin/core/middleware/auth"
	"race-admin/core/models"
	"race-admin/core/response"
	"race-admin/core/utils"
	"race-admin/feature/user"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sessions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/login", h.HandleLogin)
	app.Post("/logout", h.HandleLogout)
}

type loginRequest struct {
	Account  any    `json:"account"`
	Identity string `json:"identity"`
	Password any    `json:"password"`
}

// HandleLogin opens a session.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object true "{account, identity, password}"
// @Success 200 {object} response.Envelope
// @Router /login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c)
	}
	account := utils.ToString(req.Account)
	secret := utils.ToString(req.Password)
	kind, ok := models.ParseKind(req.Identity)
	if !ok || account == "" || secret == "" {
		return response.BadRequest(c)
	}

	token, p, err := h.service.Login(c.Context(), kind, account, secret)
	if err != nil {
		if errors.Is(err, user.ErrBadPassword) {
			return response.JSON(c, response.CodeBadPassword, "wrong account or password", nil)
		}
		logger.WithRayID(h.service.logger, c).Error("Login failed", zap.String("account", account), zap.Error(err))
		return response.ServerError(c)
	}

	logger.WithRayID(h.service.logger, c).Info("Login", zap.String("account", account), zap.String("identity", string(kind)))
	return response.OK(c, "success", fiber.Map{
		"token":    token,
		"account":  p.Account,
		"identity": p.Identity,
		"role_id":  p.RoleID,
	})
}

// HandleLogout closes the caller's session.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logout [post]
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	token := authmw.Token(c)
	if token == "" {
		return response.BadRequest(c)
	}
	if err := h.service.Logout(c.Context(), token); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Logout failed", zap.Error(err))
		return response.ServerError(c)
	}
	return response.OK(c, "success", nil)
}
