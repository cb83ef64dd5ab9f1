package seeder

import (
	"context"
	"fmt"

	"jobsync/internal/database"
	"jobsync/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Email            string
		Password         string
		FirstName        string
		LastName         string
		Role             string
		ResumeSkills     []string
		DesiredPositions []string
	}{
		{
			Email:            "seeker@jobsync.dev",
			Password:         "seeker-dev-pass",
			FirstName:        "Sam",
			LastName:         "Seeker",
			Role:             user.RoleJobSeeker,
			ResumeSkills:     []string{"go", "postgresql", "docker"},
			DesiredPositions: []string{"backend engineer"},
		},
		{
			Email:     "recruiter@jobsync.dev",
			Password:  "recruiter-dev-pass",
			FirstName: "Rae",
			LastName:  "Recruiter",
			Role:      user.RoleRecruiter,
		},
		{
			Email:     "admin@jobsync.dev",
			Password:  "admin-dev-pass",
			FirstName: "Ada",
			Role:      user.RoleAdmin,
		},
	}

	for _, it := range items {
		hash, err := bcrypt.GenerateFromPassword([]byte(it.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, first_name, last_name, role, resume_skills, desired_positions)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (email) DO NOTHING`,
			it.Email, string(hash), it.FirstName, it.LastName, it.Role, it.ResumeSkills, it.DesiredPositions,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
