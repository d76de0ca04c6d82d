// File: services/agent/confirmation.go
package agent

import (
	"strings"

	"droptruck/models"
)

var confirmationKeywords = []string{
	"yes", "yeah", "yep", "ok", "okay", "correct", "right", "sure",
	"fine", "perfect", "that's right", "confirmed", "done",
	"absolutely", "exactly",
}

var rejectionKeywords = []string{
	"no", "not interested", "cancel", "don't want", "not now",
}

// detectConfirmation advances the confirmation state machine on one
// utterance. Both keyword sets are checked every turn; rejection is checked
// second and overrides a confirmation triggered by the same utterance. The
// terminal states never regress to pending.
func detectConfirmation(text string, rec *models.BookingRecord) {
	if rec.ConfirmationStatus != models.StatusPending {
		return
	}
	lower := strings.ToLower(text)

	if containsAny(lower, confirmationKeywords) {
		rec.ConfirmationStatus = models.StatusConfirmed
	}
	if containsAny(lower, rejectionKeywords) {
		rec.ConfirmationStatus = models.StatusNotInterested
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// HasConfirmedMarker reports whether generated text carries the literal
// submission marker. Marker detection outranks keyword detection and sets
// confirmed regardless of current state.
func HasConfirmedMarker(text string) bool {
	return strings.Contains(text, BookingConfirmedMarker)
}
