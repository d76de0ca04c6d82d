// File: services/agent/extract_goods.go
package agent

import (
	"regexp"
	"strings"

	"droptruck/models"
)

// goodsPatterns capture whatever the customer says they are moving instead of
// limiting to a predefined list.
var goodsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`carrying\s+([a-zA-Z0-9\s]+?)(?:\s+from|\s+to|,|\.|$)`),
	regexp.MustCompile(`transporting\s+([a-zA-Z0-9\s]+?)(?:\s+from|\s+to|,|\.|$)`),
	regexp.MustCompile(`moving\s+([a-zA-Z0-9\s]+?)(?:\s+from|\s+to|,|\.|$)`),
	regexp.MustCompile(`material\s+(?:is\s+)?([a-zA-Z0-9\s]+?)(?:\s+from|\s+to|,|\.|$)`),
	regexp.MustCompile(`goods\s+(?:is\s+)?([a-zA-Z0-9\s]+?)(?:\s+from|\s+to|,|\.|$)`),
	regexp.MustCompile(`load\s+(?:is\s+)?([a-zA-Z0-9\s]+?)(?:\s+from|\s+to|,|\.|$)`),
}

// echoGoodsPattern matches the confirmation echo "material X, date ...".
var echoGoodsPattern = regexp.MustCompile(`material\s+([a-zA-Z0-9\s]+?)(?:,|date|\.|$)`)

type goodsExtractor struct{}

func (e *goodsExtractor) Field() string { return "goods_type" }

func (e *goodsExtractor) Extract(u Utterance, rec *models.BookingRecord) bool {
	if rec.GoodsType != "" {
		return false
	}

	for _, pattern := range goodsPatterns {
		match := pattern.FindStringSubmatch(u.Lower)
		if match == nil {
			continue
		}
		material := titleCase(strings.TrimSpace(match[1]))
		material = strings.ReplaceAll(material, " And ", " and ")
		if len(material) > 2 {
			rec.GoodsType = material
			return true
		}
	}

	// Echo form tried only when the verb-based patterns found nothing.
	if match := echoGoodsPattern.FindStringSubmatch(u.Lower); match != nil {
		material := titleCase(strings.TrimSpace(match[1]))
		if len(material) > 2 {
			rec.GoodsType = material
			return true
		}
	}
	return false
}
