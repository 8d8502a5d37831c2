package persistence

import (
	"context"
	"errors"

	"github.com/podplatform/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// updateVersioned saves an aggregate whose version was bumped once since it
// was loaded. A missing row returns notFound; a row saved by someone else in
// between returns shared.ErrConcurrentModification.
func updateVersioned(ctx context.Context, db *gorm.DB, model any, id any, version int, notFound error) error {
	result := db.WithContext(ctx).
		Model(model).
		Where("version = ?", version-1).
		Select("*").
		Omit("created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return shared.ErrConcurrentModification
}
