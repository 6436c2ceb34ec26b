package missions

import (
	"errors"
	"net/http"
	"time"

	missiondomain "brawl-missions/internal/domain/mission"
	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
	"brawl-missions/internal/transport/httpserver/middleware"
	"brawl-missions/pkg/logger"
)

type missionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	ChiefID     int64     `json:"chief_id"`
	CrewCount   int64     `json:"crew_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type crewMemberResponse struct {
	DisplayName         string `json:"display_name"`
	AvatarURL           string `json:"avatar_url"`
	MissionSuccessCount int64  `json:"mission_success_count"`
	MissionJoinedCount  int64  `json:"mission_joined_count"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type statusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func toMissionResponse(view missiondomain.MissionView) missionResponse {
	return missionResponse{
		ID:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		Status:      view.Status.String(),
		ChiefID:     view.ChiefID,
		CrewCount:   view.CrewCount,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	commonhandler.WriteError(w, r, status, code, message)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	commonhandler.WriteJSON(w, r, status, payload)
}

func (h *Handlers) logger(r *http.Request) logger.Logger {
	return logger.FromContext(r.Context(), h.log)
}

func (h *Handlers) caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	brawlerID, ok := middleware.BrawlerIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "invalid_token", "invalid token")
		return 0, false
	}
	return brawlerID, true
}

func (h *Handlers) missionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	missionID, err := commonhandler.PathID(r, "mission_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "invalid mission id")
		return 0, false
	}
	return missionID, true
}

// writeDomainError maps mission errors to responses. Unknown errors are
// logged as internal failures.
func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := h.logger(r)
	switch {
	case errors.Is(err, missiondomain.ErrNameTooShort):
		log.BusinessError(op+": invalid name", err, args...)
		writeError(w, r, http.StatusBadRequest, "invalid_name", missiondomain.ErrNameTooShort.Error())
	case errors.Is(err, missiondomain.ErrUnknownStatus):
		log.BusinessError(op+": invalid status", err, args...)
		writeError(w, r, http.StatusBadRequest, "invalid_status", "invalid status")
	case errors.Is(err, missiondomain.ErrMissionNotFound):
		log.BusinessError(op+": mission not found", err, args...)
		writeError(w, r, http.StatusNotFound, "mission_not_found", "mission not found")
	case errors.Is(err, missiondomain.ErrMissionHasCrew):
		log.BusinessError(op+": mission has crew", err, args...)
		writeError(w, r, http.StatusConflict, "mission_has_crew", missiondomain.ErrMissionHasCrew.Error())
	case errors.Is(err, missiondomain.ErrInvalidTransition):
		log.BusinessError(op+": invalid transition", err, args...)
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_transition", missiondomain.ErrInvalidTransition.Error())
	case errors.Is(err, missiondomain.ErrCapacityNotConfigured):
		log.Critical(op+": capacity not configured", append([]any{"err", err}, args...)...)
		writeError(w, r, http.StatusServiceUnavailable, "unavailable", "service unavailable")
	default:
		log.InternalError(op+": failed", err, args...)
		commonhandler.WriteInternalError(w, r)
	}
}
