package race

import (
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

// NewFeature creates a new race feature.
func NewFeature(logger *zap.Logger, db *gorm.DB, checker policy.Checker) *Feature {
	svc := NewService(logger, db)
	return &Feature{service: svc, handler: NewHandler(svc, checker)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "race"
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
