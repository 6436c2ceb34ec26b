package mission

import (
	"context"
	"errors"
	"strings"
	"time"

	missiondomain "brawl-missions/internal/domain/mission"
	"gorm.io/gorm"
)

const crewCountSubquery = "(SELECT COUNT(*) FROM crew_memberships cm WHERE cm.mission_id = missions.id)"

const crewRosterQuery = `
SELECT b.display_name AS display_name,
       COALESCE(b.avatar_url, '') AS avatar_url,
       COALESCE(s.success_count, 0) AS mission_success_count,
       COALESCE(j.joined_count, 0) AS mission_joined_count
FROM crew_memberships cm
INNER JOIN brawlers b ON b.id = cm.brawler_id
LEFT JOIN (
    SELECT cm2.brawler_id, COUNT(*) AS success_count
    FROM crew_memberships cm2
    INNER JOIN missions m2 ON m2.id = cm2.mission_id
    WHERE m2.status = ? AND m2.deleted_at IS NULL
    GROUP BY cm2.brawler_id
) s ON s.brawler_id = b.id
LEFT JOIN (
    SELECT cm3.brawler_id, COUNT(*) AS joined_count
    FROM crew_memberships cm3
    GROUP BY cm3.brawler_id
) j ON j.brawler_id = b.id
WHERE cm.mission_id = ?
ORDER BY b.display_name ASC, b.id ASC`

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, missionID int64) (*missiondomain.Mission, error) {
	var mission missiondomain.Mission
	if err := r.db.WithContext(ctx).Where("id = ?", missionID).First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missiondomain.ErrMissionNotFound
		}
		return nil, err
	}
	return &mission, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter missiondomain.Filter) ([]missiondomain.Mission, error) {
	query := r.db.WithContext(ctx).Model(&missiondomain.Mission{})
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(filter.Name))+"%")
	}

	var missions []missiondomain.Mission
	if err := query.Order("created_at desc").Order("id desc").Find(&missions).Error; err != nil {
		return nil, err
	}
	return missions, nil
}

func (r *PostgresRepository) CountCrew(ctx context.Context, missionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("crew_memberships").
		Where("mission_id = ?", missionID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListCrew(ctx context.Context, missionID int64) ([]missiondomain.CrewMember, error) {
	var crew []missiondomain.CrewMember
	if err := r.db.WithContext(ctx).
		Raw(crewRosterQuery, missiondomain.StatusCompleted.String(), missionID).
		Scan(&crew).Error; err != nil {
		return nil, err
	}
	return crew, nil
}

func (r *PostgresRepository) Create(ctx context.Context, mission *missiondomain.Mission) error {
	return r.db.WithContext(ctx).Create(mission).Error
}

func (r *PostgresRepository) UpdateOpen(ctx context.Context, missionID, chiefID int64, changes missiondomain.Changes) (bool, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.Description != nil {
		if *changes.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *changes.Description
		}
	}

	result := r.openWithoutCrew(ctx, missionID, chiefID).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) SoftDeleteOpen(ctx context.Context, missionID, chiefID int64) (bool, error) {
	now := time.Now().UTC()
	result := r.openWithoutCrew(ctx, missionID, chiefID).Updates(map[string]interface{}{
		"deleted_at": now,
		"updated_at": now,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatus applies a lifecycle transition only when the stored row still
// satisfies the guard that allowed it.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, update missiondomain.TransitionUpdate) (bool, error) {
	from := make([]string, 0, len(update.From))
	for _, status := range update.From {
		from = append(from, status.String())
	}

	query := r.db.WithContext(ctx).
		Model(&missiondomain.Mission{}).
		Where("id = ? AND chief_id = ?", update.MissionID, update.ChiefID).
		Where("status IN ?", from)
	if update.Crew != nil {
		query = query.
			Where(crewCountSubquery+" > ?", update.Crew.Above).
			Where(crewCountSubquery+" < ?", update.Crew.Below)
	}

	result := query.Updates(map[string]interface{}{
		"status":     update.To.String(),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) openWithoutCrew(ctx context.Context, missionID, chiefID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&missiondomain.Mission{}).
		Where("id = ? AND chief_id = ? AND status = ?", missionID, chiefID, missiondomain.StatusOpen.String()).
		Where("NOT EXISTS (SELECT 1 FROM crew_memberships cm WHERE cm.mission_id = missions.id)")
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
