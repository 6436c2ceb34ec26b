package crew

import "time"

// Membership links a brawler to a mission. The pair is unique.
type Membership struct {
	BrawlerID int64     `gorm:"primaryKey;autoIncrement:false"`
	MissionID int64     `gorm:"primaryKey;autoIncrement:false;index"`
	JoinedAt  time.Time `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "crew_memberships"
}

type MembershipEvent struct {
	BrawlerID int64
	MissionID int64
	At        time.Time
}
