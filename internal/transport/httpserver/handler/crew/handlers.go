package crew

import (
	"errors"
	"net/http"

	crewdomain "brawl-missions/internal/domain/crew"
	missiondomain "brawl-missions/internal/domain/mission"
	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
	"brawl-missions/internal/transport/httpserver/middleware"
	"brawl-missions/pkg/logger"
)

type Handlers struct {
	Crew *crewdomain.Service
	log  logger.Logger
}

func New(crew *crewdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Crew: crew, log: log}
}

func (h *Handlers) Join(w http.ResponseWriter, r *http.Request) {
	brawlerID, missionID, ok := h.params(w, r)
	if !ok {
		return
	}

	if err := h.Crew.Join(r.Context(), brawlerID, missionID); err != nil {
		log := logger.FromContext(r.Context(), h.log)
		switch {
		case errors.Is(err, missiondomain.ErrMissionNotFound):
			log.BusinessError("crew.join: mission not found", err, "mission_id", missionID)
			commonhandler.WriteError(w, r, http.StatusNotFound, "mission_not_found", "mission not found")
		case errors.Is(err, crewdomain.ErrAlreadyJoined):
			log.BusinessError("crew.join: already joined", err, "mission_id", missionID)
			commonhandler.WriteError(w, r, http.StatusConflict, "already_joined", crewdomain.ErrAlreadyJoined.Error())
		default:
			log.InternalError("crew.join: failed", err, "mission_id", missionID)
			commonhandler.WriteInternalError(w, r)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Leave(w http.ResponseWriter, r *http.Request) {
	brawlerID, missionID, ok := h.params(w, r)
	if !ok {
		return
	}

	if err := h.Crew.Leave(r.Context(), brawlerID, missionID); err != nil {
		logger.FromContext(r.Context(), h.log).InternalError("crew.leave: failed", err, "mission_id", missionID)
		commonhandler.WriteInternalError(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) params(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	brawlerID, ok := middleware.BrawlerIDFromContext(r.Context())
	if !ok {
		commonhandler.WriteError(w, r, http.StatusUnauthorized, "invalid_token", "invalid token")
		return 0, 0, false
	}
	missionID, err := commonhandler.PathID(r, "mission_id")
	if err != nil {
		commonhandler.WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid mission id")
		return 0, 0, false
	}
	return brawlerID, missionID, true
}
