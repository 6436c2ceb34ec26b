package crew

import (
	"context"

	crewdomain "brawl-missions/internal/domain/crew"
	missiondomain "brawl-missions/internal/domain/mission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) MissionExists(ctx context.Context, missionID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&missiondomain.Mission{}).
		Where("id = ?", missionID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) Insert(ctx context.Context, membership *crewdomain.Membership) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "brawler_id"}, {Name: "mission_id"}},
			DoNothing: true,
		}).
		Create(membership)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, brawlerID, missionID int64) error {
	return r.db.WithContext(ctx).
		Where("brawler_id = ? AND mission_id = ?", brawlerID, missionID).
		Delete(&crewdomain.Membership{}).Error
}
