package models

type Character struct {
	ID        uint    `gorm:"primaryKey" json:"id" yaml:"-"`
	Name      string  `gorm:"uniqueIndex;size:120;not null" json:"name" yaml:"name"`
	Height    int     `gorm:"not null" json:"height" yaml:"height"`
	Mass      float64 `gorm:"not null" json:"mass" yaml:"mass"`
	HairColor *string `gorm:"size:50" json:"hair_color" yaml:"hair_color"`
	SkinColor *string `gorm:"size:50" json:"skin_color" yaml:"skin_color"`
	EyeColor  *string `gorm:"size:50" json:"eye_color" yaml:"eye_color"`
	BirthYear *string `gorm:"size:10" json:"birth_year" yaml:"birth_year"`
	Gender    *string `gorm:"size:20" json:"gender" yaml:"gender"`
}

func (Character) TableName() string {
	return "character"
}
