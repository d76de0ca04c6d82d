package callRecordRepo

import (
	"context"

	"droptruck/models"
)

// CallRecordRepository persists finished calls for later review.
type CallRecordRepository interface {
	Create(ctx context.Context, record models.CallRecord) (string, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.CallRecord, error)
}
