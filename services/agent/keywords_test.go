package agent

import (
	"context"
	"errors"
	"testing"

	"droptruck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	trucks []models.TruckType
	bodies []models.BodyTypeEntry
	err    error
}

func (f *fakeCatalog) ListTruckTypes(context.Context) ([]models.TruckType, error) {
	return f.trucks, f.err
}

func (f *fakeCatalog) ListBodyTypes(context.Context) ([]models.BodyTypeEntry, error) {
	return f.bodies, f.err
}

func (f *fakeCatalog) TruckTypeID(_ context.Context, name string) (uint, bool, error) {
	for _, t := range f.trucks {
		if t.Name == name {
			return t.ID, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeCatalog) BodyTypeID(_ context.Context, name string) (uint, bool, error) {
	for _, b := range f.bodies {
		if b.Name == name {
			return b.ID, true, nil
		}
	}
	return 0, false, nil
}

func TestKeywordTableLastWriteWins(t *testing.T) {
	table := NewKeywordTable()
	table.Add("open", "Open")
	table.Add("container", "Container")
	table.Add("open", "OPEN BODY")

	name, ok := table.Get("open")
	require.True(t, ok)
	assert.Equal(t, "OPEN BODY", name)
	// Re-insertion keeps the original position.
	assert.Equal(t, []string{"open", "container"}, table.Aliases())
}

func TestDefaultVehicleKeywords(t *testing.T) {
	table := DefaultVehicleKeywords()

	name, ok := table.Get("tata ace")
	require.True(t, ok)
	assert.Equal(t, "Tata Ace", name)

	name, ok = table.Get("32 feet")
	require.True(t, ok)
	assert.Equal(t, "32 Feet Multi-Axle", name)

	_, ok = table.Get("hovercraft")
	assert.False(t, ok)
}

func TestBuildKeywordTablesMergesCatalog(t *testing.T) {
	repo := &fakeCatalog{
		trucks: []models.TruckType{{ID: 7, Name: "Mini-Truck"}},
		bodies: []models.BodyTypeEntry{{ID: 2, Name: "Flatbed"}},
	}

	vehicles, bodies := BuildKeywordTables(context.Background(), repo)

	// Catalog names are inserted lower-cased and with hyphens as spaces.
	name, ok := vehicles.Get("mini-truck")
	require.True(t, ok)
	assert.Equal(t, "Mini-Truck", name)
	name, ok = vehicles.Get("mini truck")
	require.True(t, ok)
	assert.Equal(t, "Mini-Truck", name)

	name, ok = bodies.Get("flatbed")
	require.True(t, ok)
	assert.Equal(t, "Flatbed", name)

	// Defaults come first in iteration order.
	assert.Equal(t, "tata ace", vehicles.Aliases()[0])
	assert.Equal(t, []string{"open", "container", "flatbed"}, bodies.Aliases())
}

func TestBuildKeywordTablesCatalogFailure(t *testing.T) {
	repo := &fakeCatalog{err: errors.New("connection refused")}

	vehicles, bodies := BuildKeywordTables(context.Background(), repo)

	// Session start survives on defaults only.
	assert.Equal(t, DefaultVehicleKeywords().Len(), vehicles.Len())
	assert.Equal(t, 2, bodies.Len())
}

func TestBuildKeywordTablesNilRepo(t *testing.T) {
	vehicles, bodies := BuildKeywordTables(context.Background(), nil)
	assert.Equal(t, DefaultVehicleKeywords().Len(), vehicles.Len())
	assert.Equal(t, 2, bodies.Len())
}
