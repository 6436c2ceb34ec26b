package mission

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

const crewCountConcurrency = 8

// ViewingService answers read queries. Crew counts are recomputed on every call.
type ViewingService struct {
	repo ViewingRepository
}

func NewViewingService(repo ViewingRepository) *ViewingService {
	return &ViewingService{repo: repo}
}

func (s *ViewingService) GetOne(ctx context.Context, missionID int64) (*MissionView, error) {
	mission, err := s.repo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountCrew(ctx, missionID)
	if err != nil {
		return nil, err
	}

	return &MissionView{Mission: *mission, CrewCount: count}, nil
}

// GetAll lists missions newest first. A mission whose crew count cannot be
// read is reported with a count of zero.
func (s *ViewingService) GetAll(ctx context.Context, filter Filter) ([]MissionView, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	missions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]MissionView, len(missions))
	var group errgroup.Group
	group.SetLimit(crewCountConcurrency)
	for i := range missions {
		views[i].Mission = missions[i]
		group.Go(func() error {
			count, err := s.repo.CountCrew(ctx, missions[i].ID)
			if err != nil {
				return nil
			}
			views[i].CrewCount = count
			return nil
		})
	}
	_ = group.Wait()

	return views, nil
}

func (s *ViewingService) GetCrew(ctx context.Context, missionID int64) ([]CrewMember, error) {
	if _, err := s.repo.GetByID(ctx, missionID); err != nil {
		return nil, err
	}

	crew, err := s.repo.ListCrew(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if crew == nil {
		crew = []CrewMember{}
	}
	return crew, nil
}

func (s *ViewingService) CrewCount(ctx context.Context, missionID int64) (int64, error) {
	return s.repo.CountCrew(ctx, missionID)
}
