package database

import (
	"context"
	"time"

	"droptruck/config"
	"droptruck/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// CatalogDB is the global connection to the DropTruck catalog (MySQL).
// Nil when the catalog is unreachable; callers fall back to built-in defaults.
var CatalogDB *gorm.DB

// MongoClient is the global MongoDB client used for call-record archiving.
// Nil when MongoDB is unreachable; archiving is then skipped.
var MongoClient *mongo.Client

// InitCatalogDB opens the catalog database. The catalog is an optional
// collaborator: a failed connection is logged and session start continues
// with the default keyword tables.
func InitCatalogDB() {
	logger := utils.GetLogger()
	dsn := config.AppConfig.CatalogDSN
	if dsn == "" {
		logger.Warn("CATALOG_DSN not set, catalog lookups disabled")
		return
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Warn("Failed to connect to catalog database", zap.Error(err))
		return
	}
	CatalogDB = db
	logger.Info("Connected to catalog database")
}

// InitMongo connects to MongoDB for call-record archiving. Failure is
// non-fatal: calls still run, ended calls are just not archived.
func InitMongo() {
	logger := utils.GetLogger()
	url := config.AppConfig.MongoURL
	if url == "" {
		logger.Warn("MONGO_URL not set, call-record archiving disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		logger.Warn("Failed to connect to MongoDB", zap.Error(err))
		return
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Warn("Failed to ping MongoDB", zap.Error(err))
		return
	}
	MongoClient = client
	logger.Info("Connected to MongoDB")
}
