package mission

import (
	"time"

	"gorm.io/gorm"
)

type Mission struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	ChiefID     int64          `gorm:"index;not null"`
	Name        string         `gorm:"not null"`
	Status      Status         `gorm:"type:varchar(32);not null;index"`
	Description *string
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// MissionView is a mission together with its crew count at read time.
type MissionView struct {
	Mission
	CrewCount int64
}

// CrewMember is one roster row of a mission's crew.
type CrewMember struct {
	DisplayName         string
	AvatarURL           string
	MissionSuccessCount int64
	MissionJoinedCount  int64
}

type Filter struct {
	Status *Status
	Name   string
}

type AddInput struct {
	Name        string
	Description *string
}

// EditInput carries optional changes; nil fields are left untouched.
type EditInput struct {
	Name        *string
	Description *string
}

type Changes struct {
	Name        *string
	Description *string
}

func (c Changes) Empty() bool {
	return c.Name == nil && c.Description == nil
}

// CrewBounds restricts a transition to missions whose crew count is
// strictly greater than Above and strictly less than Below.
type CrewBounds struct {
	Above int64
	Below int64
}

type TransitionUpdate struct {
	MissionID int64
	ChiefID   int64
	From      []Status
	To        Status
	Crew      *CrewBounds
}

type StatusChange struct {
	MissionID int64
	ChiefID   int64
	From      Status
	To        Status
	At        time.Time
}
