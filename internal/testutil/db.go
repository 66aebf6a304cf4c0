// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"holocron/config"
	"holocron/internal/database"
	"holocron/internal/models"
)

// NewDB returns an empty in-memory SQLite database with the schema applied. The
// pool is pinned to one connection so every query sees the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func strPtr(s string) *string { return &s }

// Planet inserts a planet named name.
func Planet(t testing.TB, db *gorm.DB, name string) *models.Planet {
	t.Helper()
	p := &models.Planet{
		Name:           name,
		RotationPeriod: 23,
		OrbitalPeriod:  304,
		Diameter:       10465,
		Climate:        "arid",
		Gravity:        "1 standard",
		Terrain:        "desert",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Character inserts a character named name.
func Character(t testing.TB, db *gorm.DB, name string) *models.Character {
	t.Helper()
	c := &models.Character{
		Name:      name,
		Height:    172,
		Mass:      77,
		HairColor: strPtr("blond"),
		EyeColor:  strPtr("blue"),
		BirthYear: strPtr("19BBY"),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Vehicle inserts a vehicle named name.
func Vehicle(t testing.TB, db *gorm.DB, name string) *models.Vehicle {
	t.Helper()
	cost := 150000.0
	passengers := 30
	v := &models.Vehicle{
		Name:          name,
		Model:         "Digger Crawler",
		Manufacturer:  "Corellia Mining Corporation",
		CostInCredits: &cost,
		Passengers:    &passengers,
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

// User inserts an active user with a placeholder password hash.
func User(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "not-a-real-hash", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}
