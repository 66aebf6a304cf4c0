package models

type Planet struct {
	ID             uint   `gorm:"primaryKey" json:"id" yaml:"-"`
	Name           string `gorm:"uniqueIndex;size:120;not null" json:"name" yaml:"name"`
	RotationPeriod int    `gorm:"not null" json:"rotation_period" yaml:"rotation_period"`
	OrbitalPeriod  int    `gorm:"not null" json:"orbital_period" yaml:"orbital_period"`
	Diameter       int    `gorm:"not null" json:"diameter" yaml:"diameter"`
	Climate        string `gorm:"size:120;not null" json:"climate" yaml:"climate"`
	Gravity        string `gorm:"size:120;not null" json:"gravity" yaml:"gravity"`
	Terrain        string `gorm:"size:120;not null" json:"terrain" yaml:"terrain"`
}

func (Planet) TableName() string {
	return "planet"
}
