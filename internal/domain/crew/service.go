package crew

import (
	"context"
	"time"

	"brawl-missions/internal/domain/mission"
)

type Service struct {
	repo      Repository
	publisher EventPublisher
	now       func() time.Time
}

func NewService(repo Repository, publisher EventPublisher) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// Join adds the brawler to the mission crew. Capacity is checked only when
// the mission is moved into progress.
func (s *Service) Join(ctx context.Context, brawlerID, missionID int64) error {
	exists, err := s.repo.MissionExists(ctx, missionID)
	if err != nil {
		return err
	}
	if !exists {
		return mission.ErrMissionNotFound
	}

	joined, err := s.repo.Insert(ctx, &Membership{
		BrawlerID: brawlerID,
		MissionID: missionID,
		JoinedAt:  s.now().UTC(),
	})
	if err != nil {
		return err
	}
	if !joined {
		return ErrAlreadyJoined
	}

	s.publisher.CrewJoined(ctx, MembershipEvent{BrawlerID: brawlerID, MissionID: missionID, At: s.now().UTC()})
	return nil
}

// Leave removes the membership. Leaving a mission the brawler never joined is a no-op.
func (s *Service) Leave(ctx context.Context, brawlerID, missionID int64) error {
	if err := s.repo.Delete(ctx, brawlerID, missionID); err != nil {
		return err
	}

	s.publisher.CrewLeft(ctx, MembershipEvent{BrawlerID: brawlerID, MissionID: missionID, At: s.now().UTC()})
	return nil
}
