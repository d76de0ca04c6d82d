package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"droptruck/models"

	"gorm.io/gorm"
)

type gormCatalogRepo struct {
	db *gorm.DB
}

// NewGormCatalogRepo returns a CatalogRepository backed by the catalog MySQL
// database. The gorm soft-delete hook keeps deleted_at rows out of results.
func NewGormCatalogRepo(db *gorm.DB) CatalogRepository {
	return &gormCatalogRepo{db: db}
}

func (r *gormCatalogRepo) ListTruckTypes(ctx context.Context) ([]models.TruckType, error) {
	var trucks []models.TruckType
	if err := r.db.WithContext(ctx).Select("id", "name").Find(&trucks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch truck types: %w", err)
	}
	return trucks, nil
}

func (r *gormCatalogRepo) ListBodyTypes(ctx context.Context) ([]models.BodyTypeEntry, error) {
	var bodies []models.BodyTypeEntry
	if err := r.db.WithContext(ctx).Select("id", "name").Find(&bodies).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch body types: %w", err)
	}
	return bodies, nil
}

func (r *gormCatalogRepo) TruckTypeID(ctx context.Context, name string) (uint, bool, error) {
	var truck models.TruckType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&truck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to fetch truck type ID: %w", err)
	}
	return truck.ID, true, nil
}

func (r *gormCatalogRepo) BodyTypeID(ctx context.Context, name string) (uint, bool, error) {
	var body models.BodyTypeEntry
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&body).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to fetch body type ID: %w", err)
	}
	return body.ID, true, nil
}
