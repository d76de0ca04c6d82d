// File: services/agent/extract.go
package agent

import (
	"strings"

	"droptruck/models"
)

// Utterance carries one conversation turn through the extractor chain.
type Utterance struct {
	Raw   string // original-case text, used for numeral matching
	Lower string // lower-cased text, used for keyword anchors
	Echo  bool   // set for assistant turns: confirmation echoes may overwrite
}

// NewUtterance wraps raw text for extraction.
func NewUtterance(text string, echo bool) Utterance {
	return Utterance{Raw: text, Lower: strings.ToLower(text), Echo: echo}
}

// FieldExtractor fills one booking field from an utterance. Extract returns
// true when it updated the record. Every extractor is a no-op on an
// already-filled field, except the documented overwrite rules (the
// confirmation-echo forms and the longer-location heuristic).
type FieldExtractor interface {
	Field() string
	Extract(u Utterance, rec *models.BookingRecord) bool
}

// extractorChain returns the extractors in their declared evaluation order.
func extractorChain(vehicles, bodies *KeywordTable, clock clockFunc) []FieldExtractor {
	return []FieldExtractor{
		&nameExtractor{},
		&phoneExtractor{},
		&locationExtractor{},
		&bodyTypeExtractor{keywords: bodies},
		&vehicleExtractor{keywords: vehicles},
		&goodsExtractor{},
		&tripDateExtractor{now: clock},
		&echoNameExtractor{},
		&echoContactExtractor{},
	}
}
