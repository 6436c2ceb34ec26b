package brawler

import (
	"context"
	"errors"
	"time"

	brawlerdomain "brawl-missions/internal/domain/brawler"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, brawler *brawlerdomain.Brawler) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(brawler)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return brawlerdomain.ErrUsernameTaken
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*brawlerdomain.Brawler, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*brawlerdomain.Brawler, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *PostgresRepository) UpdateAvatar(ctx context.Context, id int64, image brawlerdomain.UploadedImage) error {
	result := r.db.WithContext(ctx).
		Model(&brawlerdomain.Brawler{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"avatar_url":       image.URL,
			"avatar_public_id": image.PublicID,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return brawlerdomain.ErrBrawlerNotFound
	}
	return nil
}

func (r *PostgresRepository) first(ctx context.Context, query string, args ...interface{}) (*brawlerdomain.Brawler, error) {
	var brawler brawlerdomain.Brawler
	if err := r.db.WithContext(ctx).Where(query, args...).First(&brawler).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, brawlerdomain.ErrBrawlerNotFound
		}
		return nil, err
	}
	return &brawler, nil
}
