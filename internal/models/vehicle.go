package models

type Vehicle struct {
	ID            uint     `gorm:"primaryKey" json:"id" yaml:"-"`
	Name          string   `gorm:"uniqueIndex;size:120;not null" json:"name" yaml:"name"`
	Model         string   `gorm:"size:120;not null" json:"model" yaml:"model"`
	Manufacturer  string   `gorm:"size:120;not null" json:"manufacturer" yaml:"manufacturer"`
	CostInCredits *float64 `json:"cost_in_credits" yaml:"cost_in_credits"`
	Passengers    *int     `json:"passengers" yaml:"passengers"`
	CargoCapacity *int     `json:"cargo_capacity" yaml:"cargo_capacity"`
}

func (Vehicle) TableName() string {
	return "vehicle"
}
