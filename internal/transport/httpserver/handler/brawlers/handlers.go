package brawlers

import (
	"errors"
	"net/http"

	brawlerdomain "brawl-missions/internal/domain/brawler"
	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
	"brawl-missions/pkg/logger"
)

type Handlers struct {
	Brawlers *brawlerdomain.Service
	log      logger.Logger
}

func New(brawlers *brawlerdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Brawlers: brawlers, log: log}
}

type passportResponse struct {
	Token       string  `json:"token"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type uploadedImageResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

func toPassportResponse(passport *brawlerdomain.Passport) passportResponse {
	return passportResponse{
		Token:       passport.Token,
		DisplayName: passport.DisplayName,
		AvatarURL:   passport.AvatarURL,
	}
}

func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context(), h.log)
	switch {
	case errors.Is(err, brawlerdomain.ErrInvalidInput):
		log.BusinessError(op+": invalid input", err)
		commonhandler.WriteError(w, r, http.StatusBadRequest, "invalid_request", "username, password and display_name are required")
	case errors.Is(err, brawlerdomain.ErrInvalidImage):
		log.BusinessError(op+": invalid image", err)
		commonhandler.WriteError(w, r, http.StatusBadRequest, "invalid_image", brawlerdomain.ErrInvalidImage.Error())
	case errors.Is(err, brawlerdomain.ErrUsernameTaken):
		log.BusinessError(op+": username taken", err)
		commonhandler.WriteError(w, r, http.StatusConflict, "username_taken", brawlerdomain.ErrUsernameTaken.Error())
	case errors.Is(err, brawlerdomain.ErrInvalidCredentials):
		log.BusinessError(op+": invalid credentials", err)
		commonhandler.WriteError(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	case errors.Is(err, brawlerdomain.ErrBrawlerNotFound):
		log.BusinessError(op+": brawler not found", err)
		commonhandler.WriteError(w, r, http.StatusNotFound, "brawler_not_found", "brawler not found")
	case errors.Is(err, brawlerdomain.ErrUploaderNotConfigured):
		log.Warn(op+": uploader not configured")
		commonhandler.WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "image upload is not configured")
	default:
		log.InternalError(op+": failed", err)
		commonhandler.WriteInternalError(w, r)
	}
}
