package dto

import (
	"time"

	"jobsync/internal/domain/user"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	ResumeSkills       []string `json:"resume_skills,omitempty" validate:"omitempty,max=100,dive,min=1"`
	DesiredPositions   []string `json:"desired_positions,omitempty" validate:"omitempty,max=20,dive,min=1"`
	PreferredLocations []string `json:"preferred_locations,omitempty" validate:"omitempty,max=20,dive,min=1"`
	MinSalary          *int     `json:"min_salary,omitempty" validate:"omitempty,min=0"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validate.Struct(r)
}

type SeekerProfileResponse struct {
	ResumeSkills       []string `json:"resume_skills"`
	DesiredPositions   []string `json:"desired_positions"`
	PreferredLocations []string `json:"preferred_locations"`
	MinSalary          int      `json:"min_salary"`
}

type UserResponse struct {
	ID            uuid.UUID             `json:"id"`
	Email         string                `json:"email"`
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name,omitempty"`
	Role          string                `json:"role"`
	SeekerProfile SeekerProfileResponse `json:"seeker_profile"`
	LastLogin     *time.Time            `json:"last_login,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		SeekerProfile: SeekerProfileResponse{
			ResumeSkills:       u.SeekerProfile.ResumeSkills,
			DesiredPositions:   u.SeekerProfile.DesiredPositions,
			PreferredLocations: u.SeekerProfile.PreferredLocations,
			MinSalary:          u.SeekerProfile.MinSalary,
		},
		LastLogin: u.Activity.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
