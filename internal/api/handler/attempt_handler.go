package handler

import (
	"context"
	"net/http"

	"proctor_admin/internal/api/middleware"
	"proctor_admin/internal/app/service"
	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type AttemptHandler struct {
	attemptService *service.AttemptService
}

func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

func (h *AttemptHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listAttempts)
	r.Get("/stats", h.approvalStats)
	r.Get("/{attemptID}", h.getAttempt)

	r.Group(func(mutating chi.Router) {
		mutating.Use(middleware.RequireOperator)
		mutating.Post("/{attemptID}/approve", h.approve)
		mutating.Post("/{attemptID}/reject", h.reject)
	})
}

func (h *AttemptHandler) listAttempts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filter := repository.AttemptFilter{
		RoomID:         queryID(r, "room_id"),
		ContestID:      queryID(r, "contest_id"),
		ApprovalStatus: model.ApprovalStatus(r.URL.Query().Get("approval_status")),
		Status:         model.ExamStatus(r.URL.Query().Get("status")),
		Limit:          pageSize,
		Offset:         (page - 1) * pageSize,
	}

	attempts, total, err := h.attemptService.ListAttempts(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedAttemptsResponse struct {
		Attempts []model.Attempt `json:"attempts"`
		Total    int             `json:"total"`
		Page     int             `json:"page"`
		PageSize int             `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedAttemptsResponse{
		Attempts: attempts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *AttemptHandler) approvalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.attemptService.ApprovalStats(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *AttemptHandler) getAttempt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attemptID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid attempt id")
		return
	}
	attempt, err := h.attemptService.GetAttempt(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, attempt)
}

func (h *AttemptHandler) approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.attemptService.Approve)
}

func (h *AttemptHandler) reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.attemptService.Reject)
}

type decideFunc func(ctx context.Context, operatorID, attemptID int64) (*model.Attempt, error)

func (h *AttemptHandler) decide(w http.ResponseWriter, r *http.Request, fn decideFunc) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Missing operator context")
		return
	}
	attemptID, err := pathID(r, "attemptID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid attempt id")
		return
	}
	attempt, err := fn(r.Context(), operatorID, attemptID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, attempt)
}
