package crew

import "context"

type Repository interface {
	MissionExists(ctx context.Context, missionID int64) (bool, error)
	// Insert reports false when the pair is already present.
	Insert(ctx context.Context, membership *Membership) (bool, error)
	Delete(ctx context.Context, brawlerID, missionID int64) error
}

type EventPublisher interface {
	CrewJoined(ctx context.Context, event MembershipEvent)
	CrewLeft(ctx context.Context, event MembershipEvent)
}

type noopPublisher struct{}

func (noopPublisher) CrewJoined(context.Context, MembershipEvent) {}
func (noopPublisher) CrewLeft(context.Context, MembershipEvent)   {}
