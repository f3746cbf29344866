package models

import "time"

// AdminModel maps the "Admins" table. Column names keep the camelCase used by the
// tables created by earlier deployments of the site.
type AdminModel struct {
	ID                   uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Username             string     `gorm:"column:username;type:varchar(255);not null;uniqueIndex"`
	Email                string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password             string     `gorm:"column:password;type:varchar(255);not null"`
	ContactMail          *string    `gorm:"column:contact_mail;type:varchar(255)"`
	VerificationCode     *string    `gorm:"column:verificationCode;type:varchar(255)"`
	VerificationExpires  *time.Time `gorm:"column:verificationExpires"`
	VerificationAttempts int        `gorm:"column:verificationAttempts;not null;default:0"`
	TokenGeneration      int        `gorm:"column:tokenGeneration;not null;default:0"`
	CreatedAt            time.Time  `gorm:"column:createdAt;not null"`
	UpdatedAt            time.Time  `gorm:"column:updatedAt;not null"`
}

func (AdminModel) TableName() string {
	return "Admins"
}
