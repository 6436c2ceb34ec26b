package mission

import (
	"context"
	"strings"
	"unicode/utf8"
)

// minNameLength is one below the length quoted by ErrNameTooShort.
const minNameLength = 3

type ManagementService struct {
	repo    ManagementRepository
	viewing *ViewingService
}

func NewManagementService(repo ManagementRepository, viewing *ViewingService) *ManagementService {
	return &ManagementService{repo: repo, viewing: viewing}
}

func (s *ManagementService) Add(ctx context.Context, chiefID int64, input AddInput) (int64, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return 0, err
	}

	mission := Mission{
		ChiefID:     chiefID,
		Name:        name,
		Status:      StatusOpen,
		Description: normalizeDescription(input.Description),
	}
	if err := s.repo.Create(ctx, &mission); err != nil {
		return 0, err
	}
	return mission.ID, nil
}

// Edit applies changes to an Open mission with no crew. A blank name means
// "keep the current name".
func (s *ManagementService) Edit(ctx context.Context, missionID, chiefID int64, input EditInput) (int64, error) {
	var changes Changes
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		name, err := validateName(*input.Name)
		if err != nil {
			return 0, err
		}
		changes.Name = &name
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		changes.Description = &description
	}

	if err := s.ensureNoCrew(ctx, missionID); err != nil {
		return 0, err
	}

	updated, err := s.repo.UpdateOpen(ctx, missionID, chiefID, changes)
	if err != nil {
		return 0, err
	}
	if !updated {
		return 0, s.explainMiss(ctx, missionID)
	}
	return missionID, nil
}

func (s *ManagementService) Remove(ctx context.Context, missionID, chiefID int64) error {
	if err := s.ensureNoCrew(ctx, missionID); err != nil {
		return err
	}

	removed, err := s.repo.SoftDeleteOpen(ctx, missionID, chiefID)
	if err != nil {
		return err
	}
	if !removed {
		return s.explainMiss(ctx, missionID)
	}
	return nil
}

func (s *ManagementService) ensureNoCrew(ctx context.Context, missionID int64) error {
	count, err := s.viewing.CrewCount(ctx, missionID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMissionHasCrew
	}
	return nil
}

// explainMiss runs after a conditional write matched nothing. A crew that
// joined between the gate and the write is still reported as a conflict.
func (s *ManagementService) explainMiss(ctx context.Context, missionID int64) error {
	if err := s.ensureNoCrew(ctx, missionID); err != nil {
		return err
	}
	return ErrMissionNotFound
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", ErrNameTooShort
	}
	return name, nil
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
