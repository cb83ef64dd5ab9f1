package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"jobsync/internal/delivery/http/middleware"
	"jobsync/internal/domain/user"
	"jobsync/internal/pkg/jwt"
	"jobsync/internal/usecase"
	ucuser "jobsync/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type fakeRecommendationUC struct {
	lastParams *usecase.RecommendationParams
	result     usecase.RecommendationResult
}

func (f *fakeRecommendationUC) Recommend(_ context.Context, params usecase.RecommendationParams) (usecase.RecommendationResult, error) {
	f.lastParams = &params
	if len(params.Keywords) == 0 {
		return usecase.RecommendationResult{}, usecase.ErrNoKeywords
	}
	return f.result, nil
}

type fakeUserUC struct {
	profile      user.User
	profileCalls int
}

func (f *fakeUserUC) GetProfile(_ context.Context, _ uuid.UUID) (user.User, error) {
	f.profileCalls++
	return f.profile, nil
}

func (f *fakeUserUC) UpdateProfile(_ context.Context, _ uuid.UUID, _ ucuser.UpdateProfileInput) (user.User, error) {
	return f.profile, nil
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newRecommendationApp(rec *fakeRecommendationUC, users *fakeUserUC) (*fiber.App, string) {
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	token, _ := jwtSvc.GenerateAccessToken(uuid.New(), "seeker@example.com", user.RoleJobSeeker)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())

	auth := middleware.NewAuthMiddleware(jwtSvc)
	group := app.Group("/api/v1/jobs", auth.Middleware(), auth.RequireRole(user.RoleJobSeeker, user.RoleAdmin))
	NewJobRecommendationHandler(rec, users).RegisterRoutes(group)

	return app, token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (*http.Response, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return resp, env
}

func TestGetRecommendations_RequiresAuth(t *testing.T) {
	app, _ := newRecommendationApp(&fakeRecommendationUC{}, &fakeUserUC{})

	resp, env := doRequest(t, app, "/api/v1/jobs/recommendations", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if env.Success || env.Error != "UNAUTHORIZED" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestGetRecommendations_RecruiterForbidden(t *testing.T) {
	app, _ := newRecommendationApp(&fakeRecommendationUC{}, &fakeUserUC{})

	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	token, _ := jwtSvc.GenerateAccessToken(uuid.New(), "recruiter@example.com", user.RoleRecruiter)

	resp, env := doRequest(t, app, "/api/v1/jobs/recommendations", token)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if env.Success || env.Error != "FORBIDDEN" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestGetRecommendations_QueryKeywordsWin(t *testing.T) {
	rec := &fakeRecommendationUC{}
	users := &fakeUserUC{profile: user.User{
		SeekerProfile: user.SeekerProfile{ResumeSkills: []string{"python"}},
	}}
	app, token := newRecommendationApp(rec, users)

	resp, env := doRequest(t, app, "/api/v1/jobs/recommendations?keywords=go,%20react", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !env.Success {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if !reflect.DeepEqual(rec.lastParams.Keywords, []string{"go", "react"}) {
		t.Fatalf("expected query keywords, got %+v", rec.lastParams.Keywords)
	}
	if users.profileCalls != 0 {
		t.Fatalf("explicit keywords must not consult the profile")
	}
}

func TestGetRecommendations_FallsBackToProfile(t *testing.T) {
	rec := &fakeRecommendationUC{}
	users := &fakeUserUC{profile: user.User{
		SeekerProfile: user.SeekerProfile{
			ResumeSkills:     []string{"go", "postgres"},
			DesiredPositions: []string{"backend engineer"},
		},
	}}
	app, token := newRecommendationApp(rec, users)

	if _, env := doRequest(t, app, "/api/v1/jobs/recommendations", token); !env.Success {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if !reflect.DeepEqual(rec.lastParams.Keywords, []string{"go", "postgres"}) {
		t.Fatalf("expected resume skills, got %+v", rec.lastParams.Keywords)
	}

	users.profile.SeekerProfile.ResumeSkills = nil
	if _, env := doRequest(t, app, "/api/v1/jobs/recommendations", token); !env.Success {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if !reflect.DeepEqual(rec.lastParams.Keywords, []string{"backend engineer"}) {
		t.Fatalf("expected desired positions, got %+v", rec.lastParams.Keywords)
	}
}

func TestGetRecommendations_NoKeywordsAnywhere(t *testing.T) {
	rec := &fakeRecommendationUC{}
	app, token := newRecommendationApp(rec, &fakeUserUC{})

	resp, env := doRequest(t, app, "/api/v1/jobs/recommendations", token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Success || env.Error != "NO_KEYWORDS" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestGetRecommendations_PagingDefaults(t *testing.T) {
	rec := &fakeRecommendationUC{}
	app, token := newRecommendationApp(rec, &fakeUserUC{})

	if _, env := doRequest(t, app, "/api/v1/jobs/recommendations?keywords=go&page=3&limit=5", token); !env.Success {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if rec.lastParams.Limit != 5 || rec.lastParams.Offset != 10 {
		t.Fatalf("expected limit 5 offset 10, got %d/%d", rec.lastParams.Limit, rec.lastParams.Offset)
	}

	if _, env := doRequest(t, app, "/api/v1/jobs/recommendations?keywords=go", token); !env.Success {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if rec.lastParams.Limit != 10 || rec.lastParams.Offset != 0 {
		t.Fatalf("expected default limit 10 offset 0, got %d/%d", rec.lastParams.Limit, rec.lastParams.Offset)
	}
}
