package models

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password string `gorm:"size:200;not null" json:"-"` // bcrypt hash, never serialized
	IsActive bool   `gorm:"not null" json:"is_active"`
}

func (User) TableName() string {
	return "user"
}
