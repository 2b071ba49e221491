package user

import (
	"context"
	"fmt"
	"time"

	"race-admin/core/dao"
	"race-admin/core/models"
	"race-admin/core/utils"

	"gorm.io/gorm"
)

// profileColumns are the columns returned for an account, password excluded.
func profileColumns(kind models.Kind) []string {
	return append(kind.Columns(), models.ColRoleID, models.ColCreateTime, models.ColUpdateTime)
}

// accountAdapter reconciles submitted accounts of one kind against the stored rows.
type accountAdapter struct {
	kind models.Kind
	db   *gorm.DB
}

func (a accountAdapter) Name() string {
	return string(a.kind)
}

func (a accountAdapter) CandidateKey(c map[string]any) string {
	return utils.ToString(c[a.kind.PrimaryKey()])
}

func (a accountAdapter) ExistingKey(e map[string]any) string {
	return utils.ToString(e[a.kind.PrimaryKey()])
}

func (a accountAdapter) LoadExisting(ctx context.Context, keys []string) ([]map[string]any, error) {
	var rows []map[string]any
	err := a.db.WithContext(ctx).
		Model(a.kind.Model()).
		Select(profileColumns(a.kind)).
		Where(a.kind.PrimaryKey()+" IN ?", keys).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load %s accounts: %w", a.kind, err)
	}
	return rows, nil
}

// Prepare keeps the profile columns and the submitted password, normalizes the
// key and assigns the default role.
func (a accountAdapter) Prepare(c map[string]any) map[string]any {
	row := dao.Whitelist(c, a.kind.Columns())
	row[a.kind.PrimaryKey()] = a.CandidateKey(c)
	if pw, ok := c[models.ColPassword]; ok {
		row[models.ColPassword] = pw
	}
	row[models.ColRoleID] = a.kind.DefaultRoleID()
	return row
}

// insertAccounts writes prepared rows. Map creates bypass GORM's timestamp
// tracking, so both timestamps are stamped here.
func insertAccounts(ctx context.Context, db *gorm.DB, kind models.Kind, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	for _, row := range rows {
		row[models.ColCreateTime] = now
		row[models.ColUpdateTime] = now
	}
	if err := db.WithContext(ctx).Model(kind.Model()).Create(rows).Error; err != nil {
		return fmt.Errorf("insert %s accounts: %w", kind, err)
	}
	return nil
}

func updateAccounts(ctx context.Context, db *gorm.DB, kind models.Kind, filter, patch map[string]any) (int64, error) {
	switch kind {
	case models.KindStudent:
		return dao.Update[models.Student](ctx, db, filter, patch)
	case models.KindTeacher:
		return dao.Update[models.Teacher](ctx, db, filter, patch)
	default:
		return dao.Update[models.Admin](ctx, db, filter, patch)
	}
}

func deleteAccounts(ctx context.Context, db *gorm.DB, kind models.Kind, ids []string) (int64, error) {
	switch kind {
	case models.KindStudent:
		return dao.Delete[models.Student](ctx, db, kind.PrimaryKey(), ids)
	case models.KindTeacher:
		return dao.Delete[models.Teacher](ctx, db, kind.PrimaryKey(), ids)
	default:
		return dao.Delete[models.Admin](ctx, db, kind.PrimaryKey(), ids)
	}
}
