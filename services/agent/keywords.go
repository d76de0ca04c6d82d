// File: services/agent/keywords.go
package agent

import (
	"context"
	"strings"
	"time"

	catalogRepo "droptruck/database/repository/catalog"
	"droptruck/utils"

	"go.uber.org/zap"
)

// KeywordTable maps lowercase aliases to canonical display names while
// preserving insertion order. A re-inserted alias keeps its position but
// takes the new canonical value (last write wins).
type KeywordTable struct {
	aliases []string
	canon   map[string]string
}

func NewKeywordTable() *KeywordTable {
	return &KeywordTable{canon: make(map[string]string)}
}

func (t *KeywordTable) Add(alias, name string) {
	alias = strings.ToLower(alias)
	if _, exists := t.canon[alias]; !exists {
		t.aliases = append(t.aliases, alias)
	}
	t.canon[alias] = name
}

// Get returns the canonical name for an alias.
func (t *KeywordTable) Get(alias string) (string, bool) {
	name, ok := t.canon[strings.ToLower(alias)]
	return name, ok
}

// Aliases returns aliases in insertion order.
func (t *KeywordTable) Aliases() []string {
	return t.aliases
}

func (t *KeywordTable) Len() int {
	return len(t.aliases)
}

// DefaultVehicleKeywords returns the built-in vehicle alias table.
func DefaultVehicleKeywords() *KeywordTable {
	t := NewKeywordTable()
	for _, kv := range [][2]string{
		// Basic trucks
		{"tata ace", "Tata Ace"},
		{"tata ac", "Tata Ace"},
		{"ace", "Tata Ace"},
		{"dost", "Dost"},
		{"bada dost", "Bada Dost"},
		{"bolero", "Bolero"},
		{"bolero pickup", "Bolero"},
		{"407", "407"},
		{"eicher", "Eicher"},
		{"ashok leyland", "Ashok Leyland"},

		// Feet-based trucks
		{"12 feet", "12 Feet"},
		{"14 feet", "14 Feet"},
		{"17 feet", "17 Feet"},
		{"19 feet", "19 Feet"},
		{"20 feet", "20 Feet"},
		{"22 feet", "22 Feet"},
		{"24 feet", "24 Feet"},
		{"32 feet", "32 Feet Multi-Axle"},
		{"32 feet multi-axle", "32 Feet Multi-Axle"},
		{"32 feet multi axle", "32 Feet Multi-Axle"},

		// Trailers
		{"trailer", "Trailer"},
		{"20 feet trailer", "20 Feet Trailer"},
		{"24 feet trailer", "24 Feet Trailer"},
		{"40 feet trailer", "40 Feet Trailer"},
		{"low-bed", "Low-Bed Trailer"},
		{"low bed", "Low-Bed Trailer"},
		{"semi-bed", "Semi-Bed Trailer"},
		{"semi bed", "Semi-Bed Trailer"},
		{"high-bed", "High-Bed Trailer"},
		{"high bed", "High-Bed Trailer"},

		// Wheel configurations
		{"6-wheel", "6-Wheel Truck"},
		{"6 wheel", "6-Wheel Truck"},
		{"10-wheel", "10-Wheel Truck"},
		{"10 wheel", "10-Wheel Truck"},
		{"12-wheel", "12-Wheel Truck"},
		{"12 wheel", "12-Wheel Truck"},
		{"14-wheel", "14-Wheel Truck"},
		{"14 wheel", "14-Wheel Truck"},
		{"16-wheel", "16-Wheel Truck"},
		{"16 wheel", "16-Wheel Truck"},

		// Special types
		{"car-carrier", "Car-Carrier"},
		{"car carrier", "Car-Carrier"},
		{"part-load", "Part-Load"},
		{"part load", "Part-Load"},
	} {
		t.Add(kv[0], kv[1])
	}
	return t
}

// DefaultBodyKeywords returns the built-in body-type alias table.
func DefaultBodyKeywords() *KeywordTable {
	t := NewKeywordTable()
	t.Add("open", "Open")
	t.Add("container", "Container")
	return t
}

// BuildKeywordTables assembles the vehicle and body alias tables for a new
// session: defaults first, then catalog entries appended. Each catalog name
// is inserted lower-cased and again with hyphens converted to spaces.
// Catalog failure is tolerated; the session starts with defaults only.
func BuildKeywordTables(ctx context.Context, repo catalogRepo.CatalogRepository) (vehicles, bodies *KeywordTable) {
	vehicles = DefaultVehicleKeywords()
	bodies = DefaultBodyKeywords()
	if repo == nil {
		return vehicles, bodies
	}

	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	trucks, err := repo.ListTruckTypes(ctx)
	if err != nil {
		logger.Warn("Failed to load truck types from catalog", zap.Error(err))
	} else if len(trucks) > 0 {
		for _, truck := range trucks {
			lower := strings.ToLower(truck.Name)
			vehicles.Add(lower, truck.Name)
			vehicles.Add(strings.ReplaceAll(lower, "-", " "), truck.Name)
		}
		logger.Info("Loaded truck types from catalog", zap.Int("count", len(trucks)))
	}

	bodyTypes, err := repo.ListBodyTypes(ctx)
	if err != nil {
		logger.Warn("Failed to load body types from catalog", zap.Error(err))
	} else {
		for _, body := range bodyTypes {
			bodies.Add(strings.ToLower(body.Name), body.Name)
		}
	}

	return vehicles, bodies
}
