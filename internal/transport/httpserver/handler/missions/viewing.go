package missions

import (
	"net/http"
	"strings"

	missiondomain "brawl-missions/internal/domain/mission"
)

func (h *Handlers) ListMissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := missiondomain.Filter{Name: strings.TrimSpace(query.Get("name"))}
	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := missiondomain.ParseStatus(raw)
		if err != nil {
			h.writeDomainError(w, r, "missions.list", err, "status", raw)
			return
		}
		filter.Status = &status
	}

	views, err := h.Viewing.GetAll(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, r, "missions.list", err)
		return
	}

	response := make([]missionResponse, 0, len(views))
	for _, view := range views {
		response = append(response, toMissionResponse(view))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handlers) GetMission(w http.ResponseWriter, r *http.Request) {
	missionID, ok := h.missionID(w, r)
	if !ok {
		return
	}

	view, err := h.Viewing.GetOne(r.Context(), missionID)
	if err != nil {
		h.writeDomainError(w, r, "missions.get", err, "mission_id", missionID)
		return
	}
	writeJSON(w, r, http.StatusOK, toMissionResponse(*view))
}

func (h *Handlers) GetCrew(w http.ResponseWriter, r *http.Request) {
	missionID, ok := h.missionID(w, r)
	if !ok {
		return
	}

	crew, err := h.Viewing.GetCrew(r.Context(), missionID)
	if err != nil {
		h.writeDomainError(w, r, "missions.crew", err, "mission_id", missionID)
		return
	}

	response := make([]crewMemberResponse, 0, len(crew))
	for _, member := range crew {
		response = append(response, crewMemberResponse{
			DisplayName:         member.DisplayName,
			AvatarURL:           member.AvatarURL,
			MissionSuccessCount: member.MissionSuccessCount,
			MissionJoinedCount:  member.MissionJoinedCount,
		})
	}
	writeJSON(w, r, http.StatusOK, response)
}
