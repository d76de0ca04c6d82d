// File: services/agent/extract_body.go
package agent

import (
	"strings"

	"droptruck/models"
)

// bodyTypeExtractor does a plain substring scan over the body alias table in
// insertion order (defaults first, catalog entries appended).
type bodyTypeExtractor struct {
	keywords *KeywordTable
}

func (e *bodyTypeExtractor) Field() string { return "body_type" }

func (e *bodyTypeExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if rec.BodyType != "" {
		return false
	}

	for _, alias := range e.keywords.Aliases() {
		if strings.Contains(u.Lower, alias) {
			rec.BodyType, _ = e.keywords.Get(alias)
			return true
		}
	}
	return false
}
