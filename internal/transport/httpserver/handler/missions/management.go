package missions

import (
	"net/http"

	missiondomain "brawl-missions/internal/domain/mission"
	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
)

type addMissionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type editMissionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handlers) AddMission(w http.ResponseWriter, r *http.Request) {
	chiefID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req addMissionRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	missionID, err := h.Management.Add(r.Context(), chiefID, missiondomain.AddInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeDomainError(w, r, "missions.add", err)
		return
	}

	h.logger(r).Info("missions.add: created", "mission_id", missionID)
	writeJSON(w, r, http.StatusCreated, idResponse{ID: missionID})
}

func (h *Handlers) EditMission(w http.ResponseWriter, r *http.Request) {
	chiefID, ok := h.caller(w, r)
	if !ok {
		return
	}
	missionID, ok := h.missionID(w, r)
	if !ok {
		return
	}

	var req editMissionRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	id, err := h.Management.Edit(r.Context(), missionID, chiefID, missiondomain.EditInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeDomainError(w, r, "missions.edit", err, "mission_id", missionID)
		return
	}
	writeJSON(w, r, http.StatusOK, idResponse{ID: id})
}

func (h *Handlers) RemoveMission(w http.ResponseWriter, r *http.Request) {
	chiefID, ok := h.caller(w, r)
	if !ok {
		return
	}
	missionID, ok := h.missionID(w, r)
	if !ok {
		return
	}

	if err := h.Management.Remove(r.Context(), missionID, chiefID); err != nil {
		h.writeDomainError(w, r, "missions.remove", err, "mission_id", missionID)
		return
	}

	h.logger(r).Info("missions.remove: removed", "mission_id", missionID)
	w.WriteHeader(http.StatusNoContent)
}
