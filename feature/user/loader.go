package user

import (
	"race-admin/core/password"
	"race-admin/core/policy"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new user feature. sessions may be nil.
func NewFeature(logger *zap.Logger, db *gorm.DB, hasher password.Hasher, defaultPassword string, checker policy.Checker, sessions SessionRevoker) *Feature {
	svc := NewService(logger, db, hasher, defaultPassword)
	if sessions != nil {
		svc.UseSessions(sessions)
	}
	return &Feature{service: svc, handler: NewHandler(svc, checker)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "user"
}

// IsEnabled reports whether the feature has a database to work with.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the account service to features that authenticate against it.
func (f *Feature) Service() *Service {
	return f.service
}
