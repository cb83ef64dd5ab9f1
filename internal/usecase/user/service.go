package user

import (
	"context"
	"errors"
	"strings"

	"jobsync/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// UpdateProfileInput carries keyword sources for the recommendation
// fallback chain. Nil slices mean "leave unchanged"; empty slices clear.
type UpdateProfileInput struct {
	ResumeSkills       []string
	DesiredPositions   []string
	PreferredLocations []string
	MinSalary          *int
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}

	p := usr.SeekerProfile
	if in.ResumeSkills != nil {
		p.ResumeSkills = cleanList(in.ResumeSkills)
	}
	if in.DesiredPositions != nil {
		p.DesiredPositions = cleanList(in.DesiredPositions)
	}
	if in.PreferredLocations != nil {
		p.PreferredLocations = cleanList(in.PreferredLocations)
	}
	if in.MinSalary != nil {
		if *in.MinSalary < 0 {
			return user.User{}, ErrInvalidInput
		}
		p.MinSalary = *in.MinSalary
	}

	if err := s.users.UpdateSeekerProfile(ctx, userID, p); err != nil {
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
