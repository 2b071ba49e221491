// Package dao is the thin data-access layer shared by the feature services.
//
// Functions are generic over the entity model, so the set of tables a caller can
// reach is fixed at compile time. Patches coming from clients are reduced to the
// model's writable columns before they reach the database.
package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Entity is a GORM model that declares its client-writable columns.
type Entity interface {
	TableName() string
	Columns() []string
}

// Find returns every row of T. No filtering, no pagination.
func Find[T Entity](ctx context.Context, db *gorm.DB) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("find %s: %w", zero.TableName(), err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Create inserts a single row.
func Create[T Entity](ctx context.Context, db *gorm.DB, row *T) error {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", (*row).TableName(), err)
	}
	return nil
}

// Update applies patch to every row matching filter and returns the affected count.
// Keys of patch outside T's writable columns are ignored.
func Update[T Entity](ctx context.Context, db *gorm.DB, filter, patch map[string]any) (int64, error) {
	var zero T
	if len(filter) == 0 {
		return 0, fmt.Errorf("update %s: empty filter", zero.TableName())
	}
	values := Whitelist(patch, zero.Columns())
	if len(values) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).Model(new(T)).Where(filter).Updates(values)
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", zero.TableName(), res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the rows whose column value is in ids.
func Delete[T Entity](ctx context.Context, db *gorm.DB, column string, ids []string) (int64, error) {
	var zero T
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).Where(column+" IN ?", ids).Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s: %w", zero.TableName(), res.Error)
	}
	return res.RowsAffected, nil
}

// Whitelist returns the entries of data whose key is one of columns.
func Whitelist(data map[string]any, columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for _, col := range columns {
		if v, ok := data[col]; ok {
			out[col] = v
		}
	}
	return out
}
