package mission

import "context"

type ViewingRepository interface {
	GetByID(ctx context.Context, missionID int64) (*Mission, error)
	List(ctx context.Context, filter Filter) ([]Mission, error)
	CountCrew(ctx context.Context, missionID int64) (int64, error)
	ListCrew(ctx context.Context, missionID int64) ([]CrewMember, error)
}

type ManagementRepository interface {
	Create(ctx context.Context, mission *Mission) error
	UpdateOpen(ctx context.Context, missionID, chiefID int64, changes Changes) (bool, error)
	SoftDeleteOpen(ctx context.Context, missionID, chiefID int64) (bool, error)
}

type OperationRepository interface {
	UpdateStatus(ctx context.Context, update TransitionUpdate) (bool, error)
}

type Repository interface {
	ViewingRepository
	ManagementRepository
	OperationRepository
}

// EventPublisher receives lifecycle notifications after a successful write.
type EventPublisher interface {
	MissionStatusChanged(ctx context.Context, change StatusChange)
}

type noopPublisher struct{}

func (noopPublisher) MissionStatusChanged(context.Context, StatusChange) {}
