package mission

import (
	"context"
	"errors"
	"time"
)

// OperationService drives the mission lifecycle.
type OperationService struct {
	repo      OperationRepository
	viewing   *ViewingService
	maxCrew   int64
	publisher EventPublisher
	now       func() time.Time
}

func NewOperationService(repo OperationRepository, viewing *ViewingService, maxCrew int64, publisher EventPublisher) *OperationService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &OperationService{
		repo:      repo,
		viewing:   viewing,
		maxCrew:   maxCrew,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *OperationService) ToProgress(ctx context.Context, missionID, chiefID int64) (int64, error) {
	if s.maxCrew <= 0 {
		return 0, ErrCapacityNotConfigured
	}
	return s.apply(ctx, missionID, chiefID, ProgressTransition)
}

func (s *OperationService) ToCompleted(ctx context.Context, missionID, chiefID int64) (int64, error) {
	return s.apply(ctx, missionID, chiefID, CompleteTransition)
}

func (s *OperationService) ToFailed(ctx context.Context, missionID, chiefID int64) (int64, error) {
	return s.apply(ctx, missionID, chiefID, FailTransition)
}

// apply evaluates the guard against a fresh view, then writes with a
// predicate that re-checks the same guard in the store.
func (s *OperationService) apply(ctx context.Context, missionID, chiefID int64, transition Transition) (int64, error) {
	view, err := s.viewing.GetOne(ctx, missionID)
	if err != nil {
		return 0, err
	}

	result := transition.Guard(TransitionContext{
		MissionID: missionID,
		Status:    view.Status,
		ChiefID:   view.ChiefID,
		CallerID:  chiefID,
		CrewCount: view.CrewCount,
		MaxCrew:   s.maxCrew,
	})
	if !result.Allowed {
		return 0, result.Error()
	}

	update := TransitionUpdate{
		MissionID: missionID,
		ChiefID:   chiefID,
		From:      transition.From,
		To:        transition.To,
	}
	if transition.To == StatusInProgress {
		update.Crew = &CrewBounds{Above: 0, Below: s.maxCrew}
	}

	updated, err := s.repo.UpdateStatus(ctx, update)
	if err != nil {
		return 0, err
	}
	if !updated {
		// State moved between the read and the write.
		if _, err := s.viewing.GetOne(ctx, missionID); err != nil {
			if errors.Is(err, ErrMissionNotFound) {
				return 0, ErrMissionNotFound
			}
			return 0, err
		}
		return 0, ErrInvalidTransition
	}

	s.publisher.MissionStatusChanged(ctx, StatusChange{
		MissionID: missionID,
		ChiefID:   chiefID,
		From:      view.Status,
		To:        transition.To,
		At:        s.now().UTC(),
	})
	return missionID, nil
}
