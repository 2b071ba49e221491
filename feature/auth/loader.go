package auth

import (
	"race-admin/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new auth feature.
func NewFeature(logger *zap.Logger, accounts Authenticator, sessions session.Store) *Feature {
	svc := NewService(logger, accounts, sessions)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "auth"
}

// IsEnabled reports whether accounts and sessions are available.
func (f *Feature) IsEnabled() bool {
	return f.service.accounts != nil && f.service.sessions != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
