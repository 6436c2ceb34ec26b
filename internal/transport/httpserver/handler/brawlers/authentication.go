package brawlers

import (
	"net/http"

	brawlerdomain "brawl-missions/internal/domain/brawler"
	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
	"brawl-missions/internal/transport/httpserver/middleware"
	"brawl-missions/pkg/logger"
)

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type avatarRequest struct {
	Image string `json:"image"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	passport, err := h.Brawlers.Register(r.Context(), brawlerdomain.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.writeDomainError(w, r, "brawlers.register", err)
		return
	}

	logger.FromContext(r.Context(), h.log).Info("brawlers.register: registered", "username", req.Username)
	commonhandler.WriteJSON(w, r, http.StatusCreated, toPassportResponse(passport))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	passport, err := h.Brawlers.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeDomainError(w, r, "brawlers.login", err)
		return
	}

	commonhandler.WriteJSON(w, r, http.StatusOK, toPassportResponse(passport))
}

func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	brawlerID, ok := middleware.BrawlerIDFromContext(r.Context())
	if !ok {
		commonhandler.WriteError(w, r, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req avatarRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	uploaded, err := h.Brawlers.UploadAvatar(r.Context(), brawlerID, req.Image)
	if err != nil {
		h.writeDomainError(w, r, "brawlers.avatar", err)
		return
	}

	commonhandler.WriteJSON(w, r, http.StatusOK, uploadedImageResponse{URL: uploaded.URL, PublicID: uploaded.PublicID})
}
