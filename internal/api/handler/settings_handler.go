package handler

import (
	"encoding/json"
	"net/http"

	"proctor_admin/internal/api/middleware"
	"proctor_admin/internal/app/service"
	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	r.Get("/users/{userID}", h.getUser)
	r.Get("/alerts", h.listAlerts)
	r.Get("/blacklist", h.listBlacklist)

	r.Group(func(mutating chi.Router) {
		mutating.Use(middleware.RequireOperator)
		mutating.Post("/users", h.createUser)
		mutating.Put("/users/{userID}", h.updateUser)
		mutating.Delete("/users/{userID}", h.deleteUser)
		mutating.Post("/blacklist", h.createBlacklistEntry)
		mutating.Delete("/blacklist/{entryID}", h.deleteBlacklistEntry)
	})
}

func (h *SettingsHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.settingsService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *SettingsHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.settingsService.GetUser(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *SettingsHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	user, err := h.settingsService.CreateUser(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *SettingsHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	user, err := h.settingsService.UpdateUser(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *SettingsHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.settingsService.DeleteUser(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *SettingsHandler) listAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.settingsService.ListAlerts(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, alerts)
}

func (h *SettingsHandler) listBlacklist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.settingsService.ListBlacklist(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *SettingsHandler) createBlacklistEntry(w http.ResponseWriter, r *http.Request) {
	var entry model.BlacklistEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	created, err := h.settingsService.CreateBlacklistEntry(r.Context(), &entry)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *SettingsHandler) deleteBlacklistEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "entryID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}
	if err := h.settingsService.DeleteBlacklistEntry(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}
