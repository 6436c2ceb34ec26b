package crew

import (
	"context"
	"errors"
	"testing"

	"brawl-missions/internal/domain/mission"
)

type pair struct {
	brawlerID int64
	missionID int64
}

type fakeCrewRepo struct {
	missions    map[int64]bool
	memberships map[pair]Membership
}

func newFakeCrewRepo(missionIDs ...int64) *fakeCrewRepo {
	repo := &fakeCrewRepo{
		missions:    make(map[int64]bool),
		memberships: make(map[pair]Membership),
	}
	for _, id := range missionIDs {
		repo.missions[id] = true
	}
	return repo
}

func (r *fakeCrewRepo) MissionExists(ctx context.Context, missionID int64) (bool, error) {
	return r.missions[missionID], nil
}

func (r *fakeCrewRepo) Insert(ctx context.Context, membership *Membership) (bool, error) {
	key := pair{membership.BrawlerID, membership.MissionID}
	if _, ok := r.memberships[key]; ok {
		return false, nil
	}
	r.memberships[key] = *membership
	return true, nil
}

func (r *fakeCrewRepo) Delete(ctx context.Context, brawlerID, missionID int64) error {
	delete(r.memberships, pair{brawlerID, missionID})
	return nil
}

type countingPublisher struct {
	joined int
	left   int
}

func (p *countingPublisher) CrewJoined(context.Context, MembershipEvent) { p.joined++ }
func (p *countingPublisher) CrewLeft(context.Context, MembershipEvent)   { p.left++ }

func TestJoinIsIdempotentInEffect(t *testing.T) {
	repo := newFakeCrewRepo(10)
	publisher := &countingPublisher{}
	service := NewService(repo, publisher)

	if err := service.Join(context.Background(), 2, 10); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := service.Join(context.Background(), 2, 10); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
	if len(repo.memberships) != 1 {
		t.Fatalf("expected one membership, got %d", len(repo.memberships))
	}
	if publisher.joined != 1 {
		t.Fatalf("expected one join event, got %d", publisher.joined)
	}
}

func TestJoinUnknownMission(t *testing.T) {
	service := NewService(newFakeCrewRepo(), nil)
	if err := service.Join(context.Background(), 2, 99); !errors.Is(err, mission.ErrMissionNotFound) {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestJoinDoesNotEnforceCapacity(t *testing.T) {
	repo := newFakeCrewRepo(10)
	service := NewService(repo, nil)
	for brawlerID := int64(1); brawlerID <= 20; brawlerID++ {
		if err := service.Join(context.Background(), brawlerID, 10); err != nil {
			t.Fatalf("join %d: %v", brawlerID, err)
		}
	}
	if len(repo.memberships) != 20 {
		t.Fatalf("expected 20 memberships, got %d", len(repo.memberships))
	}
}

func TestLeaveNonMemberIsNoop(t *testing.T) {
	repo := newFakeCrewRepo(10)
	service := NewService(repo, nil)

	if err := service.Leave(context.Background(), 3, 10); err != nil {
		t.Fatalf("leave: %v", err)
	}

	if err := service.Join(context.Background(), 3, 10); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := service.Leave(context.Background(), 3, 10); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(repo.memberships) != 0 {
		t.Fatalf("expected no memberships, got %d", len(repo.memberships))
	}
}
