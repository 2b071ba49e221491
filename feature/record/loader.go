package record

import (
	"race-admin/core/policy"
	"race-admin/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new record feature. A nil client leaves export disabled.
func NewFeature(logger *zap.Logger, db *gorm.DB, client storage.Client, bucket string, checker policy.Checker) *Feature {
	svc := NewService(logger, db, client, bucket)
	return &Feature{service: svc, handler: NewHandler(svc, checker)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "record"
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
