package brawler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	avatarFolder         = "avatar"
	avatarTransformation = "c_scale,w_256"
)

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	issuer   TokenIssuer
	uploader ImageUploader
}

func NewService(repo Repository, hasher PasswordHasher, issuer TokenIssuer, uploader ImageUploader) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		issuer:   issuer,
		uploader: uploader,
	}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*Passport, error) {
	username := strings.TrimSpace(input.Username)
	displayName := strings.TrimSpace(input.DisplayName)
	if username == "" || displayName == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := s.hasher.HashPassword(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	brawler := Brawler{
		Username:    username,
		Password:    hashed,
		DisplayName: displayName,
	}
	if err := s.repo.Create(ctx, &brawler); err != nil {
		return nil, err
	}

	return s.passport(&brawler)
}

func (s *Service) Login(ctx context.Context, username, password string) (*Passport, error) {
	brawler, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrBrawlerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.VerifyPassword(ctx, password, brawler.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.passport(brawler)
}

// UploadAvatar stores a base64 picture as the brawler's avatar. Raw base64
// and data URIs are both accepted.
func (s *Service) UploadAvatar(ctx context.Context, brawlerID int64, image string) (*UploadedImage, error) {
	if s.uploader == nil {
		return nil, ErrUploaderNotConfigured
	}

	dataURI, err := normalizeImage(image)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, brawlerID); err != nil {
		return nil, err
	}

	uploaded, err := s.uploader.Upload(ctx, dataURI, UploadOptions{
		Folder:         avatarFolder,
		PublicID:       strconv.FormatInt(brawlerID, 10),
		Transformation: avatarTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.repo.UpdateAvatar(ctx, brawlerID, *uploaded); err != nil {
		return nil, err
	}
	return uploaded, nil
}

func (s *Service) passport(brawler *Brawler) (*Passport, error) {
	token, err := s.issuer.Issue(brawler.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Passport{
		Token:       token,
		DisplayName: brawler.DisplayName,
		AvatarURL:   brawler.AvatarURL,
	}, nil
}

func normalizeImage(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrInvalidImage
	}

	payload := value
	if strings.HasPrefix(value, "data:") {
		idx := strings.Index(value, ";base64,")
		if idx == -1 {
			return "", ErrInvalidImage
		}
		payload = value[idx+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImage
	}

	contentType := http.DetectContentType(decoded)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrInvalidImage
	}

	return "data:" + contentType + ";base64," + payload, nil
}
