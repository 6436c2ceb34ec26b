package brawler

import "context"

type Repository interface {
	Create(ctx context.Context, brawler *Brawler) error
	GetByID(ctx context.Context, id int64) (*Brawler, error)
	GetByUsername(ctx context.Context, username string) (*Brawler, error)
	UpdateAvatar(ctx context.Context, id int64, image UploadedImage) error
}

type PasswordHasher interface {
	HashPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, password, encodedHash string) (bool, error)
}

type TokenIssuer interface {
	Issue(brawlerID int64) (string, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, dataURI string, options UploadOptions) (*UploadedImage, error)
}
