package handler

import (
	"errors"

	"jobsync/internal/delivery/http/dto"
	"jobsync/internal/delivery/http/middleware"
	"jobsync/internal/pkg/response"
	"jobsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationsHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationsHandler(uc usecase.ApplicationUsecase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

// RegisterSeekerRoutes wires the applicant-side endpoints.
func (h *ApplicationsHandler) RegisterSeekerRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Apply)
	r.Get("/me", h.ListMine)
	r.Post("/:id/withdraw", h.Withdraw)
}

// RegisterRecruiterRoutes wires the posting-owner endpoints.
func (h *ApplicationsHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/job/:jobID", h.ListForJob)
	r.Patch("/:id/status", h.UpdateStatus)
}

func (h *ApplicationsHandler) Apply(c fiber.Ctx) error {
	applicantID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}

	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}

	a, err := h.uc.Apply(c.Context(), applicantID, usecase.ApplyInput{
		JobID:       req.JobID,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) ListMine(c fiber.Ctx) error {
	applicantID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}

	limit, offset := parsePaging(c)
	apps, err := h.uc.ListMine(c.Context(), applicantID, limit, offset)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(apps))
}

func (h *ApplicationsHandler) ListForJob(c fiber.Ctx) error {
	actorID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(string)

	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", response.CodeBadRequest, err)
	}

	limit, offset := parsePaging(c)
	apps, err := h.uc.ListForJob(c.Context(), actorID, role, jobID, limit, offset)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(apps))
}

func (h *ApplicationsHandler) UpdateStatus(c fiber.Ctx) error {
	actorID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(string)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", response.CodeBadRequest, err)
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), actorID, role, id, req.Status, req.Notes)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Status updated", dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) Withdraw(c fiber.Ctx) error {
	applicantID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", response.CodeBadRequest, err)
	}

	a, err := h.uc.Withdraw(c.Context(), applicantID, id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Application withdrawn", dto.NewApplicationResponse(a))
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", response.CodeNotFound, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", response.CodeNotFound, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied", response.CodeConflict, err)
	case errors.Is(err, usecase.ErrJobInactive):
		return middleware.NewAppError(fiber.StatusConflict, "Job is not accepting applications", response.CodeConflict, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", response.CodeForbidden, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, response.CodeInternal, err)
	}
}
