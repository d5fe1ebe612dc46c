package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"proctor_admin/internal/api/middleware"
	"proctor_admin/internal/app/service"
	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService  *service.ContestService
	roomService     *service.RoomService
	rosterService   *service.RosterService
	settingsService *service.SettingsService
}

func NewContestHandler(
	cs *service.ContestService,
	rms *service.RoomService,
	rs *service.RosterService,
	ss *service.SettingsService,
) *ContestHandler {
	return &ContestHandler{
		contestService:  cs,
		roomService:     rms,
		rosterService:   rs,
		settingsService: ss,
	}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listContests)
	r.Get("/{contestID}", h.getContest)
	r.Get("/slug/{contestSlug}", h.getContestBySlug)
	r.Get("/{contestID}/rooms", h.listRooms)
	r.Get("/{contestID}/candidates", h.listCandidates)
	r.Get("/{contestID}/candidates/export", h.exportRoster)
	r.Get("/{contestID}/blacklist", h.contestBlacklist)

	r.Group(func(mutating chi.Router) {
		mutating.Use(middleware.RequireOperator)
		mutating.Post("/", h.createContest)
		mutating.Put("/{contestID}", h.updateContest)
		mutating.Delete("/{contestID}", h.deleteContest)
		mutating.Post("/{contestID}/rooms", h.createRoom)
		mutating.Post("/{contestID}/candidates", h.addCandidate)
		mutating.Delete("/{contestID}/candidates/{labelID}", h.removeCandidate)
		mutating.Post("/{contestID}/candidates/import", h.importRoster)
		mutating.Post("/{contestID}/blacklist/{entryID}", h.attachBlacklist)
		mutating.Delete("/{contestID}/blacklist/{entryID}", h.detachBlacklist)
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *ContestHandler) createContest(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Missing operator context")
		return
	}

	var req service.ContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	contest, err := h.contestService.CreateContest(r.Context(), operatorID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, contest)
}

func (h *ContestHandler) updateContest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	var req service.ContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	contest, err := h.contestService.UpdateContest(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) deleteContest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	if err := h.contestService.DeleteContest(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	contest, err := h.contestService.GetContest(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) getContestBySlug(w http.ResponseWriter, r *http.Request) {
	contest, err := h.contestService.GetContestBySlug(r.Context(), chi.URLParam(r, "contestSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) listContests(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	contests, total, err := h.contestService.ListContests(r.Context(), pageSize, (page-1)*pageSize, r.URL.Query().Get("search"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedContestsResponse struct {
		Contests []model.Contest `json:"contests"`
		Total    int             `json:"total"`
		Page     int             `json:"page"`
		PageSize int             `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedContestsResponse{
		Contests: contests,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *ContestHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	rooms, err := h.contestService.ContestRooms(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rooms)
}

func (h *ContestHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	var room model.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	created, err := h.roomService.CreateRoom(r.Context(), id, &room)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *ContestHandler) listCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	labels, err := h.rosterService.ListCandidates(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, labels)
}

func (h *ContestHandler) addCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	var label model.CandidateLabel
	if err := json.NewDecoder(r.Body).Decode(&label); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	created, err := h.rosterService.AddCandidate(r.Context(), id, &label)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *ContestHandler) removeCandidate(w http.ResponseWriter, r *http.Request) {
	labelID, err := pathID(r, "labelID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid candidate id")
		return
	}
	if err := h.rosterService.RemoveCandidate(r.Context(), labelID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *ContestHandler) importRoster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	body := http.MaxBytesReader(w, r.Body, config.AppConfig.RosterMaxBodyBytes)
	result, err := h.rosterService.Import(r.Context(), id, body)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, result)
}

func (h *ContestHandler) exportRoster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.csv"`)
	if err := h.rosterService.Export(r.Context(), id, w); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
}

func (h *ContestHandler) contestBlacklist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contestID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid contest id")
		return
	}
	entries, err := h.settingsService.ContestBlacklist(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *ContestHandler) attachBlacklist(w http.ResponseWriter, r *http.Request) {
	contestID, err1 := pathID(r, "contestID")
	entryID, err2 := pathID(r, "entryID")
	if err1 != nil || err2 != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.settingsService.AttachBlacklistEntry(r.Context(), contestID, entryID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *ContestHandler) detachBlacklist(w http.ResponseWriter, r *http.Request) {
	contestID, err1 := pathID(r, "contestID")
	entryID, err2 := pathID(r, "entryID")
	if err1 != nil || err2 != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.settingsService.DetachBlacklistEntry(r.Context(), contestID, entryID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}
