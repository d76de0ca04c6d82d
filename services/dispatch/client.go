// File: services/dispatch/client.go
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	catalogRepo "droptruck/database/repository/catalog"
	"droptruck/models"
	"droptruck/utils"

	"go.uber.org/zap"
)

// Outcome classifies a submission attempt. Connection failures, timeouts and
// application errors are distinct so the caller can decide about retries.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeConnectionError Outcome = "connection_error"
	OutcomeTimeout         Outcome = "timeout"
	OutcomeAPIError        Outcome = "api_error"
)

// Result reports how a submission went.
type Result struct {
	Outcome    Outcome
	StatusCode int
}

// payload is the flat field set the DropTruck backend accepts. Truck and
// body type carry the catalog ID when resolvable, the display label otherwise.
type payload struct {
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	PickupLocation string `json:"pickup_location"`
	DropLocation   string `json:"drop_location"`
	TruckType      any    `json:"truck_type"`
	BodyType       any    `json:"body_type"`
	Material       string `json:"material"`
	RequiredDate   string `json:"required_date"`
}

// Client submits finished bookings to the DropTruck backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
	catalog    catalogRepo.CatalogRepository
}

// NewClient builds a submission client. catalog may be nil; labels are then
// sent instead of IDs.
func NewClient(baseURL string, catalog catalogRepo.CatalogRepository) *Client {
	return &Client{
		endpoint:   baseURL + "/agent-newindent",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		catalog:    catalog,
	}
}

// SendBooking posts the record to the backend. Any 2xx response is success.
// The returned Result is valid even when err is non-nil.
func (c *Client) SendBooking(ctx context.Context, rec *models.BookingRecord) (Result, error) {
	logger := utils.GetLogger()

	body := payload{
		Name:           rec.CustomerName,
		Contact:        rec.Contact,
		PickupLocation: rec.PickupLocation,
		DropLocation:   rec.DropLocation,
		TruckType:      c.resolveTruckType(ctx, rec.VehicleType),
		BodyType:       c.resolveBodyType(ctx, rec.BodyType),
		Material:       rec.GoodsType,
		RequiredDate:   rec.TripDate,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return Result{Outcome: OutcomeConnectionError}, fmt.Errorf("failed to marshal booking payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return Result{Outcome: OutcomeConnectionError}, fmt.Errorf("failed to build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if (errors.As(err, &urlErr) && urlErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("Booking submission timed out", zap.String("endpoint", c.endpoint))
			return Result{Outcome: OutcomeTimeout}, fmt.Errorf("booking submission timed out: %w", err)
		}
		logger.Warn("Could not reach booking API", zap.String("endpoint", c.endpoint), zap.Error(err))
		return Result{Outcome: OutcomeConnectionError}, fmt.Errorf("failed to reach booking API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Booking API rejected submission", zap.Int("status", resp.StatusCode))
		return Result{Outcome: OutcomeAPIError, StatusCode: resp.StatusCode},
			fmt.Errorf("booking API returned status %d", resp.StatusCode)
	}

	logger.Info("Booking submitted", zap.Int("status", resp.StatusCode))
	return Result{Outcome: OutcomeSuccess, StatusCode: resp.StatusCode}, nil
}

func (c *Client) resolveTruckType(ctx context.Context, label string) any {
	if c.catalog != nil && label != "" {
		if id, ok, err := c.catalog.TruckTypeID(ctx, label); err == nil && ok {
			return id
		}
	}
	return label
}

func (c *Client) resolveBodyType(ctx context.Context, label string) any {
	if c.catalog != nil && label != "" {
		if id, ok, err := c.catalog.BodyTypeID(ctx, label); err == nil && ok {
			return id
		}
	}
	return label
}
