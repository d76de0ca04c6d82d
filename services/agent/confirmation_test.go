package agent

import (
	"testing"

	"droptruck/models"

	"github.com/stretchr/testify/assert"
)

func TestDetectConfirmation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want models.ConfirmationStatus
	}{
		{"yes", "yes, that works", models.StatusConfirmed},
		{"okay", "okay sure", models.StatusConfirmed},
		{"that's right", "that's right", models.StatusConfirmed},
		{"plain no", "no", models.StatusNotInterested},
		{"not interested", "I am not interested", models.StatusNotInterested},
		{"cancel", "please cancel this", models.StatusNotInterested},
		{"neutral", "I am carrying cement", models.StatusPending},
		{"rejection wins same turn", "yes wait, actually cancel it", models.StatusNotInterested},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.NewBookingRecord()
			detectConfirmation(tt.in, rec)
			assert.Equal(t, tt.want, rec.ConfirmationStatus)
		})
	}
}

func TestDetectConfirmationTerminalStates(t *testing.T) {
	rec := models.NewBookingRecord()
	rec.ConfirmationStatus = models.StatusConfirmed
	detectConfirmation("no, cancel everything", rec)
	assert.Equal(t, models.StatusConfirmed, rec.ConfirmationStatus)

	rec.ConfirmationStatus = models.StatusNotInterested
	detectConfirmation("yes okay", rec)
	assert.Equal(t, models.StatusNotInterested, rec.ConfirmationStatus)
}

func TestHasConfirmedMarker(t *testing.T) {
	assert.True(t, HasConfirmedMarker("Your booking is confirmed. BOOKING_CONFIRMED"))
	assert.False(t, HasConfirmedMarker("your booking is confirmed"))
	assert.False(t, HasConfirmedMarker("booking_confirmed"))
}
