package models

import "time"

// ClientModel maps the "Clients" table that backs the partner directory
type ClientModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Business  string    `gorm:"column:business;type:varchar(255);not null"`
	Location  *string   `gorm:"column:location;type:varchar(255)"`
	Photo     *string   `gorm:"column:photo;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null"`
}

func (ClientModel) TableName() string {
	return "Clients"
}
