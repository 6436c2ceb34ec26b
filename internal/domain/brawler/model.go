package brawler

import "time"

type Brawler struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	DisplayName    string `gorm:"not null"`
	AvatarURL      *string
	AvatarPublicID *string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Passport is returned after registration or login.
type Passport struct {
	Token       string
	DisplayName string
	AvatarURL   *string
}

type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
}

type UploadOptions struct {
	Folder         string
	PublicID       string
	Transformation string
}

type UploadedImage struct {
	URL      string
	PublicID string
}
