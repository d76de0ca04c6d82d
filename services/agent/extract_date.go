// File: services/agent/extract_date.go
package agent

import (
	"strings"
	"time"

	"droptruck/models"
)

type clockFunc func() time.Time

// tripDateExtractor resolves relative day keywords only. General date parsing
// is deliberately out of scope for the engine.
type tripDateExtractor struct {
	now clockFunc
}

func (e *tripDateExtractor) Field() string { return "trip_date" }

func (e *tripDateExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if rec.TripDate != "" {
		return false
	}

	var offset int
	switch {
	case strings.Contains(u.Lower, "day after tomorrow") || strings.Contains(u.Lower, "overmorrow"):
		offset = 2
	case strings.Contains(u.Lower, "tomorrow"):
		offset = 1
	case strings.Contains(u.Lower, "today") || strings.Contains(u.Lower, "now"):
		offset = 0
	default:
		return false
	}

	rec.TripDate = e.now().AddDate(0, 0, offset).Format("2006-01-02")
	return true
}
