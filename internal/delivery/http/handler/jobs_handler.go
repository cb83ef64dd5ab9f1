package handler

import (
	"errors"
	"strconv"
	"strings"

	"jobsync/internal/delivery/http/dto"
	"jobsync/internal/delivery/http/middleware"
	"jobsync/internal/domain/job"
	"jobsync/internal/pkg/response"
	"jobsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	jobs usecase.JobUsecase
	list usecase.JobListUsecase
}

func NewJobsHandler(jobs usecase.JobUsecase, list usecase.JobListUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, list: list}
}

// RegisterPublicRoutes wires the read-only endpoints.
func (h *JobsHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/featured", h.Featured)
	r.Get("/trending", h.Trending)
	r.Get("/recent", h.Recent)
	r.Get("/stats", h.Stats)
	r.Get("/:id", h.GetByID)
}

// RegisterProtectedRoutes wires the write endpoints; the caller supplies a
// router already behind auth and role middleware.
func (h *JobsHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Deactivate)
}

func (h *JobsHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/bulk", h.BulkImport)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	limit, offset := parsePaging(c)
	params := usecase.JobListParams{
		Location:       c.Query("location"),
		EmploymentType: strings.ToUpper(strings.TrimSpace(c.Query("employment_type"))),
		SalaryMin:      parseQueryInt(c, "salary_min", 0),
		Search:         c.Query("search"),
		SortBy:         c.Query("sort_by"),
		SortDesc:       c.Query("order", "desc") != "asc",
		Limit:          limit,
		Offset:         offset,
	}
	if v := strings.TrimSpace(c.Query("remote")); v != "" {
		remote := v == "true" || v == "1"
		params.IsRemote = &remote
	}

	res, err := h.list.ListJobs(c.Context(), params)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		Jobs:       dto.NewJobResponses(res.Jobs),
		Pagination: dto.NewPaginationMeta(res.Total, res.Limit, res.Offset),
	})
}

func (h *JobsHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", response.CodeBadRequest, err)
	}

	j, err := h.jobs.GetJob(c.Context(), id, true)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	actorID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}

	created, err := h.jobs.CreateJob(c.Context(), actorID, req.ToEntity())
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(created))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	actorID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(string)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", response.CodeBadRequest, err)
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}

	j := req.ToEntity()
	j.ID = id

	updated, err := h.jobs.UpdateJob(c.Context(), actorID, role, j)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job updated", dto.NewJobResponse(updated))
}

func (h *JobsHandler) Deactivate(c fiber.Ctx) error {
	actorID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(string)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", response.CodeBadRequest, err)
	}

	if err := h.jobs.DeactivateJob(c.Context(), actorID, role, id); err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job deactivated", nil)
}

func (h *JobsHandler) Featured(c fiber.Ctx) error {
	jobs, err := h.jobs.Featured(c.Context(), parseQueryInt(c, "limit", 10))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobsHandler) Trending(c fiber.Ctx) error {
	jobs, err := h.jobs.Trending(c.Context(), parseQueryInt(c, "limit", 10))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobsHandler) Recent(c fiber.Ctx) error {
	jobs, err := h.jobs.Recent(c.Context(), parseQueryInt(c, "days", 7), parseQueryInt(c, "limit", 10))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobsHandler) Stats(c fiber.Ctx) error {
	stats, err := h.jobs.Stats(c.Context())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *JobsHandler) BulkImport(c fiber.Ctx) error {
	var req dto.BulkImportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	}

	jobs := make([]job.Job, 0, len(req.Jobs))
	for i := range req.Jobs {
		jobs = append(jobs, req.Jobs[i].ToEntity())
	}

	res, err := h.jobs.BulkImport(c.Context(), jobs)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Import complete", res)
}

// parsePaging reads page/limit query parameters: page defaults to 1, limit
// defaults to 10 and is capped at 100.
func parsePaging(c fiber.Ctx) (limit, offset int) {
	limit = parseQueryInt(c, "limit", 10)
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	page := parseQueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", response.CodeBadRequest, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", response.CodeNotFound, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", response.CodeForbidden, err)
	case errors.Is(err, usecase.ErrJobInactive):
		return middleware.NewAppError(fiber.StatusConflict, "Job is not accepting applications", response.CodeConflict, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied", response.CodeConflict, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, response.CodeInternal, err)
	}
}
