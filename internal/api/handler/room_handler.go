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

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listRooms)
	r.Get("/{roomID}", h.getRoom)

	r.Group(func(mutating chi.Router) {
		mutating.Use(middleware.RequireOperator)
		mutating.Put("/{roomID}", h.updateRoom)
		mutating.Delete("/{roomID}", h.deleteRoom)
	})
}

func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context(), queryID(r, "contest_id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "roomID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid room id")
		return
	}
	room, err := h.roomService.GetRoom(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "roomID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid room id")
		return
	}
	var room model.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	updated, err := h.roomService.UpdateRoom(r.Context(), id, &room)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *RoomHandler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "roomID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid room id")
		return
	}
	if err := h.roomService.DeleteRoom(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}
