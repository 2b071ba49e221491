package race

import (
	"context"
	"errors"

	"race-admin/core/dao"
	"race-admin/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRaceExists is returned when a race id is already taken.
var ErrRaceExists = errors.New("race already exists")

// Service handles race persistence.
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new race service.
func NewService(logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{logger: logger, db: db}
}

// List returns every race.
func (s *Service) List(ctx context.Context) ([]models.Race, error) {
	return dao.Find[models.Race](ctx, s.db)
}

// Update applies patch to the race with the given surrogate id.
func (s *Service) Update(ctx context.Context, id any, patch map[string]any) error {
	_, err := dao.Update[models.Race](ctx, s.db, map[string]any{"id": id}, patch)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRaceExists
	}
	return err
}

// Add inserts a race. The unique index on rid decides duplicates.
func (s *Service) Add(ctx context.Context, race *models.Race) error {
	race.ID = 0
	err := dao.Create(ctx, s.db, race)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRaceExists
	}
	return err
}

// Delete removes races by surrogate id.
func (s *Service) Delete(ctx context.Context, ids []string) (int64, error) {
	return dao.Delete[models.Race](ctx, s.db, "id", ids)
}
