package v1

import (
	"jobsync/internal/delivery/http/handler"
	"jobsync/internal/delivery/http/middleware"
	"jobsync/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Auth            *middleware.AuthMiddleware
	AuthHandler     *handler.AuthHandler
	JobsHandler     *handler.JobsHandler
	Recommendations *handler.JobRecommendationHandler
	Applications    *handler.ApplicationsHandler
	Users           *handler.UserHandler
	Contact         *handler.ContactHandler
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(r.Group("/auth"))
	}
	if deps.Contact != nil {
		deps.Contact.RegisterRoutes(r)
	}

	registerJobs(r, deps)
	registerApplications(r, deps)
	registerUsers(r, deps)
}

func registerJobs(r fiber.Router, deps Deps) {
	if deps.JobsHandler == nil || deps.Auth == nil {
		return
	}

	jobs := r.Group("/jobs")

	// Recommendations must be registered before the /:id route so the
	// literal path wins.
	if deps.Recommendations != nil {
		authed := jobs.Group("", deps.Auth.Middleware(), deps.Auth.RequireRole(user.RoleJobSeeker, user.RoleAdmin))
		deps.Recommendations.RegisterRoutes(authed)
	}

	deps.JobsHandler.RegisterPublicRoutes(jobs)

	posting := jobs.Group("", deps.Auth.Middleware(), deps.Auth.RequireRole(user.RoleRecruiter, user.RoleAdmin))
	deps.JobsHandler.RegisterProtectedRoutes(posting)

	admin := jobs.Group("", deps.Auth.Middleware(), deps.Auth.RequireRole(user.RoleAdmin))
	deps.JobsHandler.RegisterAdminRoutes(admin)
}

func registerApplications(r fiber.Router, deps Deps) {
	if deps.Applications == nil || deps.Auth == nil {
		return
	}

	apps := r.Group("/applications", deps.Auth.Middleware())

	seeker := apps.Group("", deps.Auth.RequireRole(user.RoleJobSeeker, user.RoleAdmin))
	deps.Applications.RegisterSeekerRoutes(seeker)

	recruiter := apps.Group("", deps.Auth.RequireRole(user.RoleRecruiter, user.RoleAdmin))
	deps.Applications.RegisterRecruiterRoutes(recruiter)
}

func registerUsers(r fiber.Router, deps Deps) {
	if deps.Users == nil || deps.Auth == nil {
		return
	}

	users := r.Group("/users", deps.Auth.Middleware())
	deps.Users.RegisterRoutes(users)
}
