package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"race-admin/core/dao"
	"race-admin/core/models"
	"race-admin/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportPrefix is the object prefix of record snapshots.
const ExportPrefix = "exports/"

// ErrStorageDisabled is returned by export operations when no object storage is configured.
var ErrStorageDisabled = errors.New("object storage not configured")

// Snapshot is the document written by Export.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Races      []models.Race   `json:"races"`
	Records    []models.Record `json:"records"`
}

// Service handles record persistence and export.
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
	client storage.Client
	bucket string
	now    func() time.Time
	suffix func() string
}

// NewService creates a new record service. client may be nil, which disables export.
func NewService(logger *zap.Logger, db *gorm.DB, client storage.Client, bucket string) *Service {
	return &Service{
		logger: logger,
		db:     db,
		client: client,
		bucket: bucket,
		now:    time.Now,
		suffix: func() string { return uuid.NewString()[:8] },
	}
}

// List returns every record.
func (s *Service) List(ctx context.Context) ([]models.Record, error) {
	return dao.Find[models.Record](ctx, s.db)
}

// Add inserts a record.
func (s *Service) Add(ctx context.Context, record *models.Record) error {
	record.ID = 0
	return dao.Create(ctx, s.db, record)
}

// Update applies patch to the record with the given surrogate id and reports
// whether a row was touched.
func (s *Service) Update(ctx context.Context, id any, patch map[string]any) (int64, error) {
	return dao.Update[models.Record](ctx, s.db, map[string]any{"id": id}, patch)
}

// Delete removes records by surrogate id.
func (s *Service) Delete(ctx context.Context, ids []string) (int64, error) {
	return dao.Delete[models.Record](ctx, s.db, "id", ids)
}

// Export writes a snapshot of all races and records and returns its object key.
func (s *Service) Export(ctx context.Context) (string, error) {
	if s.client == nil {
		return "", ErrStorageDisabled
	}

	races, err := dao.Find[models.Race](ctx, s.db)
	if err != nil {
		return "", err
	}
	records, err := dao.Find[models.Record](ctx, s.db)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%srecords-%s-%s.json", ExportPrefix, now.Format("20060102T150405.000Z"), s.suffix())
	snapshot := Snapshot{ExportedAt: now, Races: races, Records: records}
	if _, err := storage.PutJSON(ctx, s.client, s.bucket, key, snapshot); err != nil {
		return "", err
	}

	s.logger.Info("Records exported",
		zap.String("key", key),
		zap.Int("races", len(races)),
		zap.Int("records", len(records)))
	return key, nil
}

// Exports lists the keys of stored snapshots.
func (s *Service) Exports(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return storage.ListKeys(ctx, s.client, s.bucket, ExportPrefix)
}
