package handler

import (
	"errors"
	"strings"

	"jobsync/internal/delivery/http/dto"
	"jobsync/internal/delivery/http/middleware"
	"jobsync/internal/pkg/response"
	"jobsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobRecommendationHandler struct {
	uc    usecase.JobRecommendationUsecase
	users usecase.UserUsecase
}

func NewJobRecommendationHandler(uc usecase.JobRecommendationUsecase, users usecase.UserUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc, users: users}
}

func (h *JobRecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.GetRecommendations)
}

func (h *JobRecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}

	keywords := splitKeywords(c.Query("keywords"))

	// Explicit keywords win; otherwise fall back to the seeker's resume
	// skills, then their desired positions.
	if len(keywords) == 0 {
		usr, err := h.users.GetProfile(c.Context(), userID)
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, response.CodeInternal, err)
		}
		keywords = usr.SeekerProfile.ResumeSkills
		if len(keywords) == 0 {
			keywords = usr.SeekerProfile.DesiredPositions
		}
	}

	limit, offset := parsePaging(c)
	params := usecase.RecommendationParams{
		Keywords:       keywords,
		Location:       c.Query("location"),
		EmploymentType: strings.ToUpper(strings.TrimSpace(c.Query("employment_type"))),
		SalaryMin:      parseQueryInt(c, "salary_min", 0),
		MinScore:       parseQueryInt(c, "min_score", 0),
		Limit:          limit,
		Offset:         offset,
	}
	if v := strings.TrimSpace(c.Query("remote")); v != "" {
		remote := v == "true" || v == "1"
		params.IsRemote = &remote
	}

	res, err := h.uc.Recommend(c.Context(), params)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationListResponse(res))
}

func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrNoKeywords):
		return middleware.NewAppError(fiber.StatusBadRequest, "No keywords available for matching", "NO_KEYWORDS", err)
	case errors.Is(err, usecase.ErrDependency):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, response.CodeInternal, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, response.CodeInternal, err)
	}
}
