package callRecordRepo

import (
	"context"
	"errors"
	"time"

	"droptruck/database"
	"droptruck/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoCallRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoCallRecordRepo returns a CallRecordRepository backed by MongoDB.
func NewMongoCallRecordRepo() CallRecordRepository {
	db := database.MongoClient.Database("droptruck")
	return &mongoCallRecordRepo{
		coll: db.Collection("call_records"),
	}
}

// Create inserts a new call record and returns its ID.
func (r *mongoCallRecordRepo) Create(ctx context.Context, record models.CallRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *mongoCallRecordRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.CallRecord, error) {
	var record models.CallRecord
	err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("call record not found")
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
