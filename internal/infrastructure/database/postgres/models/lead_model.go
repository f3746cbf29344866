package models

import "time"

// QuotationRequestModel maps the "Requests" table
type QuotationRequestModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null"`
	Country   string    `gorm:"column:country;type:varchar(255);not null"`
	City      string    `gorm:"column:city;type:varchar(255);not null"`
	Service   string    `gorm:"column:service;type:varchar(255);not null"`
	Phone     string    `gorm:"column:phone;type:varchar(255);not null"`
	Message   *string   `gorm:"column:message;type:text"`
	CreatedAt time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null"`
}

func (QuotationRequestModel) TableName() string {
	return "Requests"
}

// ContactMessageModel maps the "ContactMessages" table
type ContactMessageModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null"`
	Phone     string    `gorm:"column:phone;type:varchar(50)"`
	WhatsApp  *string   `gorm:"column:whatsapp;type:varchar(50)"`
	Message   string    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `gorm:"column:createdAt;not null;index"`
}

func (ContactMessageModel) TableName() string {
	return "ContactMessages"
}
