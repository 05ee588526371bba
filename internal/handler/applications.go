package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jobhub-dev/jobhub/backend/internal/domain"
	"github.com/jobhub-dev/jobhub/backend/internal/metrics"
)

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleJobSeeker) {
		return
	}

	var req struct {
		JobID       int64  `json:"jobId" validate:"required"`
		CoverLetter string `json:"coverLetter"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// only ACTIVE jobs accept applications; anything else looks absent
	job, err := h.store.GetJobByID(req.JobID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}
	if err != nil || job.Status != domain.JobStatusActive {
		h.notFound(w, r, "Job not found")
		return
	}

	applied, err := h.store.HasApplied(job.ID, caller.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if applied {
		h.messageResponse(w, r, http.StatusBadRequest, "Already applied")
		return
	}

	application := &domain.Application{
		JobID:       job.ID,
		JobSeekerID: caller.UserID,
		CoverLetter: req.CoverLetter,
	}

	if err := h.store.CreateApplication(application); err != nil {
		// two concurrent applies can both pass the check above; the unique
		// constraint on (job_id, job_seeker_id) settles it
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "applications_job_id_job_seeker_id_key" {
			h.messageResponse(w, r, http.StatusBadRequest, "Already applied")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	metrics.ObserveApplicationSubmitted()
	h.writeJSON(w, r, http.StatusCreated, map[string]any{"application": application})
}

func (h *Handler) MyApplications(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleJobSeeker) {
		return
	}

	applications, err := h.store.GetApplicationsByJobSeeker(caller.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"applications": applications})
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if !h.requireRole(w, r, caller, domain.RoleEmployer) {
		return
	}

	applicationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r, "Application not found")
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=PENDING REVIEWED INTERVIEWED ACCEPTED REJECTED"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	application, err := h.store.GetApplicationByID(applicationID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Application not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// ownership runs through the parent job
	job, err := h.store.GetJobByID(application.JobID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}
	if err != nil || job.EmployerID != caller.UserID {
		h.forbidden(w, r)
		return
	}

	// any of the five statuses may follow any other; there is no transition
	// order enforced here
	application.Status = domain.ApplicationStatus(req.Status)
	if err := h.store.UpdateApplicationStatus(application); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"application": application})
}
