// File: services/agent/extract_name.go
package agent

import (
	"regexp"
	"strings"

	"droptruck/models"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:my name is|i am|this is|name is|i'm)\s+([a-zA-Z\s]+?)(?:\s+and|\s+my|\.|,|$)`),
	regexp.MustCompile(`name\s+([a-zA-Z\s]+?)(?:\s+and|\s+my|\.|,|$)`),
}

// nameStopWords are dropped from a captured name.
var nameStopWords = map[string]bool{
	"is": true, "and": true, "my": true, "the": true, "from": true,
	"to": true, "for": true, "i": true, "said": true, "please": true,
	"you": true, "your": true,
}

// knownCities rejects captures like "I am from Chennai" being read as a name.
var knownCities = map[string]bool{
	"chennai": true, "bangalore": true, "mumbai": true,
	"delhi": true, "pune": true, "hyderabad": true,
}

type nameExtractor struct{}

func (e *nameExtractor) Field() string { return "customer_name" }

func (e *nameExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if rec.CustomerName != "" {
		return false
	}

	for _, pattern := range namePatterns {
		match := pattern.FindStringSubmatch(u.Lower)
		if match == nil {
			continue
		}
		name := cleanName(match[1])
		if name == "" {
			continue
		}
		rec.CustomerName = name
		return true
	}
	return false
}

// cleanName title-cases a capture, strips stop words, and rejects captures
// that are too short or match a known city.
func cleanName(capture string) string {
	var parts []string
	for _, word := range strings.Fields(strings.TrimSpace(capture)) {
		if !nameStopWords[strings.ToLower(word)] {
			parts = append(parts, word)
		}
	}
	name := titleCase(strings.Join(parts, " "))
	if len(name) < 2 {
		return ""
	}
	if knownCities[strings.ToLower(name)] {
		return ""
	}
	return name
}
