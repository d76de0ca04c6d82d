// File: services/agent/extract_location.go
package agent

import (
	"regexp"
	"strings"

	"droptruck/models"
)

// fromToPattern matches the conversational form "from X to Y".
var fromToPattern = regexp.MustCompile(`(?:from|pickup|trip from)\s+([a-zA-Z\s]+?)\s+(?:to|drop)\s+([a-zA-Z\s]+?)(?:\s|,|$|\.|\band\b)`)

// echoLocationPattern matches the confirmation echo "pickup [in] X, drop [in] Y".
var echoLocationPattern = regexp.MustCompile(`pickup\s+(?:in\s+)?([a-zA-Z\s]+?),\s*drop\s+(?:in\s+)?([a-zA-Z\s]+?)(?:,|truck|\s+truck|\.|$)`)

// locationPrefixes are stripped from echo captures.
var locationPrefixes = []string{"in ", "from ", "at "}

type locationExtractor struct{}

func (e *locationExtractor) Field() string { return "pickup_location" }

func (e *locationExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	updated := false

	// Conversational form: overwrite only when the new value is strictly
	// longer, treating length as a clearer-value signal.
	if match := fromToPattern.FindStringSubmatch(u.Lower); match != nil {
		pickup := titleCase(strings.TrimSpace(match[1]))
		drop := titleCase(strings.TrimSpace(match[2]))

		if len(pickup) > len(rec.PickupLocation) {
			rec.PickupLocation = pickup
			updated = true
		}
		if len(drop) > len(rec.DropLocation) {
			rec.DropLocation = drop
			updated = true
		}
	}

	// Echo form: the assistant restating the record is higher confidence and
	// always overwrites.
	if match := echoLocationPattern.FindStringSubmatch(u.Lower); match != nil {
		pickup := stripLocationPrefix(titleCase(strings.TrimSpace(match[1])))
		drop := stripLocationPrefix(titleCase(strings.TrimSpace(match[2])))

		if len(pickup) > 2 {
			rec.PickupLocation = pickup
			updated = true
		}
		if len(drop) > 2 {
			rec.DropLocation = drop
			updated = true
		}
	}

	return updated
}

func stripLocationPrefix(loc string) string {
	for _, prefix := range locationPrefixes {
		if strings.HasPrefix(strings.ToLower(loc), prefix) {
			return titleCase(loc[len(prefix):])
		}
	}
	return loc
}
