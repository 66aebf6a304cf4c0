package models

import (
	"holocron/internal/domain"
)

// Favorite links a user to exactly one planet, character or vehicle. Each target
// column has its own (user_id, <kind>_id) unique index; NULLs never collide.
type Favorite struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	UserID      uint  `gorm:"not null;index;uniqueIndex:idx_favorite_user_planet,priority:1;uniqueIndex:idx_favorite_user_character,priority:1;uniqueIndex:idx_favorite_user_vehicle,priority:1" json:"user_id"`
	PlanetID    *uint `gorm:"uniqueIndex:idx_favorite_user_planet,priority:2;check:chk_favorite_one_target,(CASE WHEN planet_id IS NULL THEN 0 ELSE 1 END + CASE WHEN character_id IS NULL THEN 0 ELSE 1 END + CASE WHEN vehicle_id IS NULL THEN 0 ELSE 1 END) = 1" json:"planet_id"`
	CharacterID *uint `gorm:"uniqueIndex:idx_favorite_user_character,priority:2" json:"character_id"`
	VehicleID   *uint `gorm:"uniqueIndex:idx_favorite_user_vehicle,priority:2" json:"vehicle_id"`

	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Planet    *Planet    `gorm:"foreignKey:PlanetID" json:"-"`
	Character *Character `gorm:"foreignKey:CharacterID" json:"-"`
	Vehicle   *Vehicle   `gorm:"foreignKey:VehicleID" json:"-"`
}

func (Favorite) TableName() string {
	return "favorite"
}

// NewFavorite sets only the column matching target's kind.
func NewFavorite(userID uint, target domain.Target) *Favorite {
	f := &Favorite{UserID: userID}
	id := target.ID
	switch target.Kind {
	case domain.KindPlanet:
		f.PlanetID = &id
	case domain.KindCharacter:
		f.CharacterID = &id
	case domain.KindVehicle:
		f.VehicleID = &id
	}
	return f
}

// Target reports which entity the row points at. ok is false unless exactly one
// target column is set.
func (f *Favorite) Target() (domain.Target, bool) {
	var (
		t domain.Target
		n int
	)
	if f.PlanetID != nil {
		t, n = domain.Target{Kind: domain.KindPlanet, ID: *f.PlanetID}, n+1
	}
	if f.CharacterID != nil {
		t, n = domain.Target{Kind: domain.KindCharacter, ID: *f.CharacterID}, n+1
	}
	if f.VehicleID != nil {
		t, n = domain.Target{Kind: domain.KindVehicle, ID: *f.VehicleID}, n+1
	}
	return t, n == 1
}
