package migration

// All returns the full migration set in version order.
func All() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_users",
			SQL: `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'job_seeker',
	resume_skills TEXT[] NOT NULL DEFAULT '{}',
	desired_positions TEXT[] NOT NULL DEFAULT '{}',
	preferred_locations TEXT[] NOT NULL DEFAULT '{}',
	min_salary_expectation INT NOT NULL DEFAULT 0,
	total_jobs_posted INT NOT NULL DEFAULT 0,
	total_applications INT NOT NULL DEFAULT 0,
	last_login TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);`,
		},
		{
			Version: 2,
			Name:    "create_jobs",
			SQL: `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	job_title TEXT NOT NULL,
	job_description TEXT NOT NULL DEFAULT '',
	employer_name TEXT NOT NULL DEFAULT '',
	employer_website TEXT NOT NULL DEFAULT '',
	job_city TEXT NOT NULL DEFAULT '',
	job_state TEXT NOT NULL DEFAULT '',
	job_country TEXT NOT NULL DEFAULT 'US',
	job_employment_type TEXT NOT NULL DEFAULT 'FULLTIME',
	job_is_remote BOOLEAN NOT NULL DEFAULT false,
	salary_min INT NOT NULL DEFAULT 0,
	salary_max INT NOT NULL DEFAULT 0,
	salary_currency TEXT NOT NULL DEFAULT 'USD',
	salary_period TEXT NOT NULL DEFAULT 'YEAR',
	job_apply_link TEXT NOT NULL DEFAULT '',
	posted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ,
	external_job_id TEXT,
	required_skills TEXT[] NOT NULL DEFAULT '{}',
	ai_keywords JSONB NOT NULL DEFAULT '[]',
	rec_score INT NOT NULL DEFAULT 0,
	rec_last_calculated TIMESTAMPTZ,
	rec_factors JSONB NOT NULL DEFAULT '{}',
	view_count INT NOT NULL DEFAULT 0,
	application_count INT NOT NULL DEFAULT 0,
	save_count INT NOT NULL DEFAULT 0,
	share_count INT NOT NULL DEFAULT 0,
	is_featured BOOLEAN NOT NULL DEFAULT false,
	is_active BOOLEAN NOT NULL DEFAULT true,
	is_verified BOOLEAN NOT NULL DEFAULT false,
	quality_score INT NOT NULL DEFAULT 50,
	source TEXT NOT NULL DEFAULT 'internal',
	posted_by UUID REFERENCES users (id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_external_job_id
	ON jobs (external_job_id) WHERE external_job_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_jobs_active_posted ON jobs (is_active, posted_at DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_active_featured ON jobs (is_active, is_featured);
CREATE INDEX IF NOT EXISTS idx_jobs_employment ON jobs (job_employment_type, job_is_remote);
CREATE INDEX IF NOT EXISTS idx_jobs_rec_score ON jobs (rec_score DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_view_count ON jobs (view_count DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_required_skills ON jobs USING GIN (required_skills);
CREATE INDEX IF NOT EXISTS idx_jobs_ai_keywords ON jobs USING GIN (ai_keywords);`,
		},
		{
			Version: 3,
			Name:    "create_applications",
			SQL: `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs (id),
	applicant_id UUID NOT NULL REFERENCES users (id),
	status TEXT NOT NULL DEFAULT 'pending',
	resume_url TEXT NOT NULL DEFAULT '',
	cover_letter TEXT NOT NULL DEFAULT '',
	timeline JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (job_id, applicant_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications (applicant_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications (job_id, status);`,
		},
		{
			Version: 4,
			Name:    "create_contact_messages",
			SQL: `
CREATE TABLE IF NOT EXISTS contact_messages (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	body TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		},
	}
}
