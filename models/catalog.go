package models

import "gorm.io/gorm"

// TruckType is a catalog row holding a canonical vehicle label.
type TruckType struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `json:"name"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TruckType) TableName() string { return "truck_types" }

// BodyTypeEntry is a catalog row holding a canonical body-type label.
type BodyTypeEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `json:"name"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BodyTypeEntry) TableName() string { return "body_types" }
