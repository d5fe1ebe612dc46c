package handler

import (
	"encoding/json"
	"net/http"

	"proctor_admin/internal/api/middleware"
	"proctor_admin/internal/app/service"
	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

// MonitorHandler exposes the live-monitoring surfaces: process reports,
// screenshot captures, room messages and the audit trail.
type MonitorHandler struct {
	monitorService *service.MonitorService
}

func NewMonitorHandler(monitorService *service.MonitorService) *MonitorHandler {
	return &MonitorHandler{monitorService: monitorService}
}

func (h *MonitorHandler) RegisterRoutes(r chi.Router) {
	r.Get("/processes", h.listProcesses)
	r.Get("/processes/stats", h.processStats)
	r.Get("/images", h.listImages)
	r.Get("/messages", h.listMessages)
	r.Get("/audit-logs", h.listAuditLogs)

	r.Group(func(mutating chi.Router) {
		mutating.Use(middleware.RequireOperator)
		mutating.Post("/messages", h.createMessage)
		mutating.Delete("/messages/{messageID}", h.deleteMessage)
		mutating.Delete("/images/{imageID}", h.deleteImage)
	})
}

func (h *MonitorHandler) listProcesses(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filter := repository.ProcessFilter{
		AttemptID: queryID(r, "attempt_id"),
		Status:    model.ProcessStatus(r.URL.Query().Get("status")),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}

	processes, total, err := h.monitorService.ListProcesses(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedProcessesResponse struct {
		Processes []model.Process `json:"processes"`
		Total     int             `json:"total"`
		Page      int             `json:"page"`
		PageSize  int             `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedProcessesResponse{
		Processes: processes,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	})
}

func (h *MonitorHandler) processStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.monitorService.ProcessStats(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *MonitorHandler) listImages(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := model.ImageStatus(r.URL.Query().Get("status"))

	images, total, err := h.monitorService.ListImages(r.Context(), status, pageSize, (page-1)*pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedImagesResponse struct {
		Images   []model.Image `json:"images"`
		Total    int           `json:"total"`
		Page     int           `json:"page"`
		PageSize int           `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedImagesResponse{
		Images:   images,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *MonitorHandler) deleteImage(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Missing operator context")
		return
	}
	id, err := pathID(r, "imageID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid image id")
		return
	}
	if err := h.monitorService.DeleteImage(r.Context(), operatorID, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *MonitorHandler) listMessages(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filter := repository.MessageFilter{
		RoomID:    queryID(r, "room_id"),
		ContestID: queryID(r, "contest_id"),
		Type:      model.MessageType(r.URL.Query().Get("type")),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}

	messages, total, err := h.monitorService.ListMessages(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedMessagesResponse struct {
		Messages []model.Message `json:"messages"`
		Total    int             `json:"total"`
		Page     int             `json:"page"`
		PageSize int             `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedMessagesResponse{
		Messages: messages,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *MonitorHandler) createMessage(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Missing operator context")
		return
	}

	var req service.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	message, err := h.monitorService.CreateMessage(r.Context(), operatorID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, message)
}

func (h *MonitorHandler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "messageID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid message id")
		return
	}
	if err := h.monitorService.DeleteMessage(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *MonitorHandler) listAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filter := repository.AuditLogFilter{
		Type:   model.AuditLogType(r.URL.Query().Get("type")),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if id := queryID(r, "attempt_id"); id != 0 {
		filter.AttemptID = &id
	}

	logs, total, err := h.monitorService.ListAuditLogs(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedAuditLogsResponse struct {
		Logs     []model.AuditLog `json:"logs"`
		Total    int              `json:"total"`
		Page     int              `json:"page"`
		PageSize int              `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedAuditLogsResponse{
		Logs:     logs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
