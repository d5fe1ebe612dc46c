package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"proctor_admin/internal/api/middleware"
	"proctor_admin/internal/app/service"
	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type ViolationHandler struct {
	violationService *service.ViolationService
}

func NewViolationHandler(violationService *service.ViolationService) *ViolationHandler {
	return &ViolationHandler{violationService: violationService}
}

func (h *ViolationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listViolations)
	r.Get("/stats", h.violationStats)
	r.Get("/{violationID}", h.getViolation)

	r.Group(func(mutating chi.Router) {
		mutating.Use(middleware.RequireOperator)
		mutating.Post("/", h.createViolation)
		mutating.Post("/{violationID}/handle", h.markHandled)
	})
}

func (h *ViolationHandler) listViolations(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filter := repository.ViolationFilter{
		AttemptID: queryID(r, "attempt_id"),
		Severity:  model.Severity(r.URL.Query().Get("severity")),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}
	if raw := r.URL.Query().Get("handled"); raw != "" {
		handled, err := strconv.ParseBool(raw)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid handled filter")
			return
		}
		filter.Handled = &handled
	}

	violations, total, err := h.violationService.ListViolations(r.Context(), filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedViolationsResponse struct {
		Violations []model.Violation `json:"violations"`
		Total      int               `json:"total"`
		Page       int               `json:"page"`
		PageSize   int               `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedViolationsResponse{
		Violations: violations,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (h *ViolationHandler) violationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.violationService.Stats(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *ViolationHandler) getViolation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "violationID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid violation id")
		return
	}
	violation, err := h.violationService.GetViolation(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, violation)
}

func (h *ViolationHandler) createViolation(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Missing operator context")
		return
	}

	var req service.CreateViolationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	violation, err := h.violationService.CreateViolation(r.Context(), operatorID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, violation)
}

func (h *ViolationHandler) markHandled(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Missing operator context")
		return
	}
	id, err := pathID(r, "violationID")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid violation id")
		return
	}

	violation, err := h.violationService.MarkHandled(r.Context(), operatorID, id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, violation)
}
