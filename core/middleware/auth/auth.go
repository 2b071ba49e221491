package auth

import (
	"errors"
	"strings"

	"race-admin/core/logger"
	"race-admin/core/policy"
	"race-admin/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PrincipalKey is the Fiber locals key holding the authenticated principal.
const PrincipalKey = "principal"

// Config configures the auth middleware.
type Config struct {
	// Sessions resolves bearer tokens.
	Sessions session.Store
	// Public lists path prefixes served without a session.
	Public []string
	// Logger receives session store failures. Optional.
	Logger *zap.Logger
}

// New rejects requests without a valid session, except on public paths.
func New(cfg Config) fiber.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		for _, prefix := range cfg.Public {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		token := Token(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"code": fiber.StatusUnauthorized, "msg": "login required"})
		}

		p, err := cfg.Sessions.Get(c.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.WithRayID(log, c).Error("Session lookup failed", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"code": fiber.StatusInternalServerError, "msg": "internal server error"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"code": fiber.StatusUnauthorized, "msg": "session expired"})
		}

		c.Locals(PrincipalKey, *p)
		return c.Next()
	}
}

// Token extracts the bearer token of the request.
func Token(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// Principal returns the authenticated caller stored by New.
func Principal(c *fiber.Ctx) (policy.Principal, bool) {
	p, ok := c.Locals(PrincipalKey).(policy.Principal)
	return p, ok
}
