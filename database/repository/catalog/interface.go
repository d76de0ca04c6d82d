package catalogRepo

import (
	"context"

	"droptruck/models"
)

// CatalogRepository exposes the DropTruck catalog of truck and body types.
type CatalogRepository interface {
	ListTruckTypes(ctx context.Context) ([]models.TruckType, error)
	ListBodyTypes(ctx context.Context) ([]models.BodyTypeEntry, error)
	TruckTypeID(ctx context.Context, name string) (uint, bool, error)
	BodyTypeID(ctx context.Context, name string) (uint, bool, error)
}
