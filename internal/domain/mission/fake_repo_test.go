package mission

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

type fakeMissionRepo struct {
	mu        sync.Mutex
	missions  map[int64]*Mission
	crew      map[int64]map[int64]bool
	countErrs map[int64]error
	nextID    int64
	clock     time.Time
	// beforeWrite runs ahead of every conditional write to simulate a racing request.
	beforeWrite func()
}

func newFakeMissionRepo() *fakeMissionRepo {
	return &fakeMissionRepo{
		missions:  make(map[int64]*Mission),
		crew:      make(map[int64]map[int64]bool),
		countErrs: make(map[int64]error),
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeMissionRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *fakeMissionRepo) addCrew(missionID int64, brawlerIDs ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.crew[missionID] == nil {
		r.crew[missionID] = make(map[int64]bool)
	}
	for _, id := range brawlerIDs {
		r.crew[missionID][id] = true
	}
}

func (r *fakeMissionRepo) seed(chiefID int64, name string, status Status) *Mission {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	mission := &Mission{
		ID:        r.nextID,
		ChiefID:   chiefID,
		Name:      name,
		Status:    status,
		CreatedAt: r.tick(),
	}
	r.missions[mission.ID] = mission
	return mission
}

func (r *fakeMissionRepo) live(missionID int64) (*Mission, bool) {
	mission, ok := r.missions[missionID]
	if !ok || mission.DeletedAt.Valid {
		return nil, false
	}
	return mission, true
}

func (r *fakeMissionRepo) GetByID(ctx context.Context, missionID int64) (*Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mission, ok := r.live(missionID)
	if !ok {
		return nil, ErrMissionNotFound
	}
	copied := *mission
	return &copied, nil
}

func (r *fakeMissionRepo) List(ctx context.Context, filter Filter) ([]Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Mission, 0)
	for _, mission := range r.missions {
		if mission.DeletedAt.Valid {
			continue
		}
		if filter.Status != nil && mission.Status != *filter.Status {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(mission.Name), strings.ToLower(filter.Name)) {
			continue
		}
		result = append(result, *mission)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeMissionRepo) CountCrew(ctx context.Context, missionID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.countErrs[missionID]; err != nil {
		return 0, err
	}
	return int64(len(r.crew[missionID])), nil
}

func (r *fakeMissionRepo) ListCrew(ctx context.Context, missionID int64) ([]CrewMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]CrewMember, 0, len(r.crew[missionID]))
	for range r.crew[missionID] {
		result = append(result, CrewMember{DisplayName: "brawler"})
	}
	return result, nil
}

func (r *fakeMissionRepo) Create(ctx context.Context, mission *Mission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	mission.ID = r.nextID
	mission.CreatedAt = r.tick()
	mission.UpdatedAt = mission.CreatedAt
	copied := *mission
	r.missions[mission.ID] = &copied
	return nil
}

func (r *fakeMissionRepo) runBeforeWrite() {
	if r.beforeWrite != nil {
		hook := r.beforeWrite
		r.beforeWrite = nil
		hook()
	}
}

func (r *fakeMissionRepo) UpdateOpen(ctx context.Context, missionID, chiefID int64, changes Changes) (bool, error) {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	mission, ok := r.live(missionID)
	if !ok || mission.ChiefID != chiefID || mission.Status != StatusOpen || len(r.crew[missionID]) > 0 {
		return false, nil
	}
	if changes.Name != nil {
		mission.Name = *changes.Name
	}
	if changes.Description != nil {
		if *changes.Description == "" {
			mission.Description = nil
		} else {
			description := *changes.Description
			mission.Description = &description
		}
	}
	mission.UpdatedAt = r.tick()
	return true, nil
}

func (r *fakeMissionRepo) SoftDeleteOpen(ctx context.Context, missionID, chiefID int64) (bool, error) {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	mission, ok := r.live(missionID)
	if !ok || mission.ChiefID != chiefID || mission.Status != StatusOpen || len(r.crew[missionID]) > 0 {
		return false, nil
	}
	mission.DeletedAt = gorm.DeletedAt{Time: r.tick(), Valid: true}
	mission.ChiefID = chiefID
	return true, nil
}

func (r *fakeMissionRepo) UpdateStatus(ctx context.Context, update TransitionUpdate) (bool, error) {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	mission, ok := r.live(update.MissionID)
	if !ok || mission.ChiefID != update.ChiefID || !slices.Contains(update.From, mission.Status) {
		return false, nil
	}
	if update.Crew != nil {
		count := int64(len(r.crew[update.MissionID]))
		if count <= update.Crew.Above || count >= update.Crew.Below {
			return false, nil
		}
	}
	mission.Status = update.To
	mission.UpdatedAt = r.tick()
	return true, nil
}

type recordingPublisher struct {
	changes []StatusChange
}

func (p *recordingPublisher) MissionStatusChanged(ctx context.Context, change StatusChange) {
	p.changes = append(p.changes, change)
}
