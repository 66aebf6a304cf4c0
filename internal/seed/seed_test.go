package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holocron/internal/database"
	"holocron/internal/models"
	"holocron/internal/repository"
	"holocron/internal/testutil"
)

const catalogYAML = `
planets:
  - name: Tatooine
    rotation_period: 23
    orbital_period: 304
    diameter: 10465
    climate: arid
    gravity: 1 standard
    terrain: desert
characters:
  - name: Luke Skywalker
    height: 172
    mass: 77
    hair_color: blond
    eye_color: blue
    birth_year: 19BBY
    gender: male
  - name: R2-D2
    height: 96
    mass: 32
vehicles:
  - name: Sand Crawler
    model: Digger Crawler
    manufacturer: Corellia Mining Corporation
    cost_in_credits: 150000
    passengers: 30
`

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	require.Len(t, c.Planets, 1)
	require.Len(t, c.Characters, 2)
	require.Len(t, c.Vehicles, 1)
	assert.Equal(t, 10465, c.Planets[0].Diameter)
	require.NotNil(t, c.Characters[0].HairColor)
	assert.Equal(t, "blond", *c.Characters[0].HairColor)
	assert.Nil(t, c.Characters[1].Gender)
	assert.Nil(t, c.Vehicles[0].CargoCapacity)
}

func TestLoadCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown field", "planets:\n  - name: Hoth\n    moons: 3\n", "moons"},
		{"missing name", "vehicles:\n  - model: X\n    manufacturer: Y\n", "name is required"},
		{"duplicate name", "planets:\n  - name: Hoth\n  - name: Hoth\n", "duplicate name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCatalog_Empty(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Planets)
}

func TestSeeder_Seed(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	seeder := NewSeeder(
		database.NewTxManager(db),
		repository.NewPlanetRepository(db),
		repository.NewCharacterRepository(db),
		repository.NewVehicleRepository(db),
	)

	c, err := LoadCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	res, err := seeder.Seed(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Result{Planets: 1, Characters: 2, Vehicles: 1}, res)

	// seeding again updates in place
	c.Planets[0].Climate = "hot"
	_, err = seeder.Seed(ctx, c)
	require.NoError(t, err)

	var planets []models.Planet
	require.NoError(t, db.Find(&planets).Error)
	require.Len(t, planets, 1)
	assert.Equal(t, "hot", planets[0].Climate)

	var characters int64
	require.NoError(t, db.Model(&models.Character{}).Count(&characters).Error)
	assert.EqualValues(t, 2, characters)
}
