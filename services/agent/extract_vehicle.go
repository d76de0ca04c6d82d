// File: services/agent/extract_vehicle.go
package agent

import (
	"regexp"
	"strings"

	"droptruck/models"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	// fuzzyPhraseThreshold gates free-form n-gram matches.
	fuzzyPhraseThreshold = 85
	// explicitTypeThreshold gates "truck type X" captures; the anchor phrase
	// already signals an explicit type mention, so the bar is lower.
	explicitTypeThreshold = 65
)

// shortKnownTokens are n-grams under 3 characters that still identify a type.
var shortKnownTokens = map[string]bool{"ac": true, "407": true}

var truckTypePattern = regexp.MustCompile(`truck\s+(?:type\s+)?([a-zA-Z0-9\s]+?)(?:,|body|\s+open|\s+container|\.|$)`)

var feetPattern = regexp.MustCompile(`(\d+)\s*(?:feet|ft|foot)`)

// vehicleStrategy is one stage of the vehicle-type fallback chain.
type vehicleStrategy func(u Utterance, kw *KeywordTable) (string, bool)

type vehicleExtractor struct {
	keywords *KeywordTable
}

// strategies are tried in declared order; the first success wins.
var vehicleStrategies = []vehicleStrategy{
	matchFuzzyPhrase,
	matchExplicitTruckType,
	matchFeetOrGenericTruck,
}

func (e *vehicleExtractor) Field() string { return "vehicle_type" }

func (e *vehicleExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if rec.VehicleType != "" {
		// A confirmation echo carries the assistant's consolidated view of the
		// truck type and may overwrite, but only via the explicit anchored form.
		if !u.Echo {
			return false
		}
		if name, ok := matchExplicitTruckType(u, e.keywords); ok {
			rec.VehicleType = name
			return true
		}
		return false
	}

	for _, strategy := range vehicleStrategies {
		if name, ok := strategy(u, e.keywords); ok {
			rec.VehicleType = name
			return true
		}
	}
	return false
}

// matchFuzzyPhrase scores every 1-4 word n-gram of the utterance against
// every alias with a partial-overlap metric and accepts the best alias
// scoring at or above the threshold.
func matchFuzzyPhrase(u Utterance, kw *KeywordTable) (string, bool) {
	words := strings.Fields(u.Lower)
	bestScore := 0
	bestName := ""

	for i := range words {
		for j := i + 1; j <= len(words) && j <= i+4; j++ {
			phrase := strings.Join(words[i:j], " ")
			if len(phrase) < 3 && !shortKnownTokens[phrase] {
				continue
			}
			for _, alias := range kw.Aliases() {
				score := fuzzy.PartialRatio(phrase, alias)
				if score >= fuzzyPhraseThreshold && score > bestScore {
					bestScore = score
					bestName, _ = kw.Get(alias)
				}
			}
		}
	}

	return bestName, bestName != ""
}

// matchExplicitTruckType resolves an anchored "truck [type] X" capture with a
// whole-string similarity metric.
func matchExplicitTruckType(u Utterance, kw *KeywordTable) (string, bool) {
	match := truckTypePattern.FindStringSubmatch(u.Lower)
	if match == nil {
		return "", false
	}
	mentioned := strings.TrimSpace(match[1])

	bestScore := 0
	bestName := ""
	for _, alias := range kw.Aliases() {
		score := fuzzy.Ratio(mentioned, alias)
		if score >= explicitTypeThreshold && score > bestScore {
			bestScore = score
			bestName, _ = kw.Get(alias)
		}
	}
	return bestName, bestName != ""
}

// matchFeetOrGenericTruck is the numeric fallback: "<n> feet" yields a feet
// label, else a bare "truck" mention yields the generic label.
func matchFeetOrGenericTruck(u Utterance, kw *KeywordTable) (string, bool) {
	if match := feetPattern.FindStringSubmatch(u.Lower); match != nil {
		return match[1] + " Feet", true
	}
	if strings.Contains(u.Lower, "truck") {
		return "Truck", true
	}
	return "", false
}
