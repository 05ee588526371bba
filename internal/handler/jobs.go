package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobhub-dev/jobhub/backend/internal/domain"
	"github.com/jobhub-dev/jobhub/backend/internal/metrics"
)

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleEmployer) {
		return
	}

	var req struct {
		Title          string           `json:"title" validate:"required"`
		Description    string           `json:"description" validate:"required"`
		RequiredSkills []string         `json:"requiredSkills"`
		Budget         float64          `json:"budget" validate:"required,gt=0"`
		RateType       string           `json:"rateType" validate:"required,oneof=HOURLY FIXED"`
		Location       *domain.Location `json:"location"`
		Deadline       time.Time        `json:"deadline" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// the owning employer is always the caller, never client-supplied
	job := &domain.Job{
		EmployerID:     caller.UserID,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Budget:         req.Budget,
		RateType:       domain.RateType(req.RateType),
		Location:       req.Location,
		Deadline:       req.Deadline,
	}

	if err := h.store.CreateJob(job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	metrics.ObserveJobCreated()
	h.writeJSON(w, r, http.StatusCreated, map[string]any{"job": job})
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := domain.JobFilter{
		Search:   r.URL.Query().Get("search"),
		Location: r.URL.Query().Get("location"),
		Page:     1,
		Limit:    10,
	}

	if skills := r.URL.Query().Get("skills"); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	jobs, total, err := h.store.ListJobs(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r, "Job not found")
		return
	}

	job, err := h.store.GetJobByID(jobID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"job": job})
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleEmployer) {
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r, "Job not found")
		return
	}

	var req struct {
		Title          *string          `json:"title"`
		Description    *string          `json:"description"`
		RequiredSkills []string         `json:"requiredSkills"`
		Budget         *float64         `json:"budget" validate:"omitempty,gt=0"`
		RateType       *string          `json:"rateType" validate:"omitempty,oneof=HOURLY FIXED"`
		Location       *domain.Location `json:"location"`
		Deadline       *time.Time       `json:"deadline"`
		Status         *string          `json:"status" validate:"omitempty,oneof=ACTIVE CLOSED FILLED"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// ownership-scoped lookup: a job owned by someone else looks absent
	job, err := h.store.GetJobForEmployer(jobID, caller.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = req.RequiredSkills
	}
	if req.Budget != nil {
		job.Budget = *req.Budget
	}
	if req.RateType != nil {
		job.RateType = domain.RateType(*req.RateType)
	}
	if req.Location != nil {
		job.Location = req.Location
	}
	if req.Deadline != nil {
		job.Deadline = *req.Deadline
	}
	if req.Status != nil {
		job.Status = domain.JobStatus(*req.Status)
	}

	if err := h.store.UpdateJob(job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"job": job})
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleEmployer) {
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r, "Job not found")
		return
	}

	job, err := h.store.GetJobForEmployer(jobID, caller.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.store.DeleteJob(job.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.messageResponse(w, r, http.StatusOK, "Job deleted successfully")
}

func (h *Handler) MyJobs(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleEmployer) {
		return
	}

	jobs, err := h.store.GetJobsByEmployer(caller.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"jobs": jobs})
}

func (h *Handler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleEmployer) {
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r, "Job not found")
		return
	}

	job, err := h.store.GetJobByID(jobID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if job.EmployerID != caller.UserID {
		h.forbidden(w, r)
		return
	}

	applications, err := h.store.GetApplicationsByJob(job.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"applications": applications})
}
