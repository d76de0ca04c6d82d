package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"droptruck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *models.BookingRecord {
	rec := models.NewBookingRecord()
	rec.CustomerName = "Ravi Kumar"
	rec.Contact = "9066542031"
	rec.PickupLocation = "Chennai"
	rec.DropLocation = "Bangalore"
	rec.VehicleType = "Tata Ace"
	rec.BodyType = "Open"
	rec.GoodsType = "Cement"
	rec.TripDate = "2025-03-12"
	rec.ConfirmationStatus = models.StatusConfirmed
	return rec
}

func TestSendBookingSuccess(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/agent-newindent", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	result, err := client.SendBooking(context.Background(), sampleRecord())

	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, http.StatusCreated, result.StatusCode)

	// Without a catalog the display labels go out as-is.
	assert.Equal(t, "Ravi Kumar", got["name"])
	assert.Equal(t, "9066542031", got["contact"])
	assert.Equal(t, "Tata Ace", got["truck_type"])
	assert.Equal(t, "Open", got["body_type"])
	assert.Equal(t, "Cement", got["material"])
	assert.Equal(t, "2025-03-12", got["required_date"])
}

func TestSendBookingAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	result, err := client.SendBooking(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.Equal(t, OutcomeAPIError, result.Outcome)
	assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
}

func TestSendBookingTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	client.httpClient.Timeout = 50 * time.Millisecond

	result, err := client.SendBooking(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.Equal(t, OutcomeTimeout, result.Outcome)
}

func TestSendBookingConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, nil)
	result, err := client.SendBooking(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.Equal(t, OutcomeConnectionError, result.Outcome)
}
