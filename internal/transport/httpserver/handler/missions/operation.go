package missions

import (
	"context"
	"net/http"

	missiondomain "brawl-missions/internal/domain/mission"
)

type transitionFunc func(ctx context.Context, missionID, chiefID int64) (int64, error)

func (h *Handlers) ToProgress(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "missions.to_progress", missiondomain.StatusInProgress, h.Operation.ToProgress)
}

func (h *Handlers) ToCompleted(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "missions.to_completed", missiondomain.StatusCompleted, h.Operation.ToCompleted)
}

func (h *Handlers) ToFailed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "missions.to_failed", missiondomain.StatusFailed, h.Operation.ToFailed)
}

func (h *Handlers) transition(w http.ResponseWriter, r *http.Request, op string, to missiondomain.Status, apply transitionFunc) {
	chiefID, ok := h.caller(w, r)
	if !ok {
		return
	}
	missionID, ok := h.missionID(w, r)
	if !ok {
		return
	}

	id, err := apply(r.Context(), missionID, chiefID)
	if err != nil {
		h.writeDomainError(w, r, op, err, "mission_id", missionID)
		return
	}

	h.logger(r).Info(op+": status changed", "mission_id", id, "status", to.String())
	writeJSON(w, r, http.StatusOK, statusResponse{ID: id, Status: to.String()})
}
