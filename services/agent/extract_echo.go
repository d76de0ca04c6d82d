// File: services/agent/extract_echo.go
package agent

import (
	"regexp"
	"strings"

	"droptruck/models"
)

// The full confirmation echo reads "Name X, mobile Y, pickup P, ...". Name
// and contact are not covered by the conversational extractors' echo handling,
// so these two extractors pick them out of assistant turns.

var echoNamePattern = regexp.MustCompile(`name\s+([a-zA-Z\s]+?)(?:,|\s+mobile)`)

var echoPhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`mobile\s+([6-9]\d{9})`),
	regexp.MustCompile(`mobile\s+\((\d{3})\)\s*(\d{3})-(\d{4})`),
	regexp.MustCompile(`number\s+([6-9]\d{9})`),
}

// echoCities extends the name deny-list for echo captures.
var echoCities = map[string]bool{
	"chennai": true, "bangalore": true, "mumbai": true, "delhi": true,
	"pune": true, "hyderabad": true, "goa": true, "kolkata": true,
}

type echoNameExtractor struct{}

func (e *echoNameExtractor) Field() string { return "customer_name" }

func (e *echoNameExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if !u.Echo || rec.CustomerName != "" {
		return false
	}
	match := echoNamePattern.FindStringSubmatch(u.Lower)
	if match == nil {
		return false
	}
	name := titleCase(strings.TrimSpace(match[1]))
	if echoCities[strings.ToLower(name)] {
		return false
	}
	rec.CustomerName = name
	return true
}

type echoContactExtractor struct{}

func (e *echoContactExtractor) Field() string { return "contact" }

func (e *echoContactExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if !u.Echo || rec.Contact != "" {
		return false
	}
	for _, pattern := range echoPhonePatterns {
		match := pattern.FindStringSubmatch(u.Lower)
		if match == nil {
			continue
		}
		phone := strings.Join(match[1:], "")
		if len(phone) == 10 {
			rec.Contact = phone
			return true
		}
	}
	return false
}
