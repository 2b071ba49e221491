package health

import (
	"context"

	"race-admin/core/database"
	"race-admin/core/models"
	"race-admin/core/session"
	"race-admin/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Check statuses.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

// Check is the outcome of one dependency check.
type Check struct {
	Status  string   `json:"status"`
	Error   string   `json:"error,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// Report aggregates every check.
type Report struct {
	Status   string `json:"status"`
	Database Check  `json:"database"`
	Sessions Check  `json:"sessions"`
	Storage  Check  `json:"storage"`
}

// Healthy reports whether no check failed.
func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

// Service runs the dependency checks.
type Service struct {
	logger   *zap.Logger
	db       *gorm.DB
	sessions session.Store
	client   storage.Client
	bucket   string
}

// NewService creates a new health service. client may be nil.
func NewService(logger *zap.Logger, db *gorm.DB, sessions session.Store, client storage.Client, bucket string) *Service {
	return &Service{
		logger:   logger,
		db:       db,
		sessions: sessions,
		client:   client,
		bucket:   bucket,
	}
}

// Check runs every check.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Database: s.checkDatabase(ctx),
		Sessions: s.checkSessions(ctx),
		Storage:  s.checkStorage(ctx),
	}
	report.Status = StatusOK
	for _, c := range []Check{report.Database, report.Sessions, report.Storage} {
		if c.Status == StatusError {
			report.Status = StatusError
		}
	}
	return report
}

func (s *Service) checkDatabase(ctx context.Context) Check {
	if err := database.Ping(ctx, s.db); err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	if missing := database.MissingTables(s.db, models.All()...); len(missing) > 0 {
		return Check{Status: StatusError, Error: "missing tables", Missing: missing}
	}
	return Check{Status: StatusOK}
}

func (s *Service) checkSessions(ctx context.Context) Check {
	if s.sessions == nil {
		return Check{Status: StatusError, Error: "session store not configured"}
	}
	if err := s.sessions.Ping(ctx); err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	return Check{Status: StatusOK}
}

func (s *Service) checkStorage(ctx context.Context) Check {
	if s.client == nil {
		return Check{Status: StatusDisabled}
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	if !exists {
		// Export creates the bucket on first use.
		return Check{Status: StatusOK, Missing: []string{s.bucket}}
	}
	return Check{Status: StatusOK}
}
