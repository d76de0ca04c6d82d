// File: services/agent/extract_phone.go
package agent

import (
	"regexp"
	"strings"

	"droptruck/models"
)

// Phone patterns run against the original-case text: numerals are
// case-invariant and the keyword anchor is made case-insensitive inline.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([6-9]\d{9})\b`),
	regexp.MustCompile(`\b([6-9]\d[\s-]?\d{3}[\s-]?\d{5})\b`),
	regexp.MustCompile(`(?i)(?:number|mobile|phone|contact)[\s:]+([6-9]\d{9})`),
}

type phoneExtractor struct{}

func (e *phoneExtractor) Field() string { return "contact" }

func (e *phoneExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if rec.Contact != "" {
		return false
	}

	// Spoken digits first: "nine zero double six ..." is the common voice form.
	if spoken := SpokenDigits(u.Raw); validMobile(spoken) {
		rec.Contact = spoken
		return true
	}

	for _, pattern := range phonePatterns {
		match := pattern.FindStringSubmatch(u.Raw)
		if match == nil {
			continue
		}
		phone := strings.NewReplacer(" ", "", "-", "").Replace(match[1])
		if len(phone) == 10 {
			rec.Contact = phone
			return true
		}
	}
	return false
}
