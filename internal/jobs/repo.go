package jobs

import "context"

// Repo defines persistence operations for postings and applications.
type Repo interface {
	CreateCategory(ctx context.Context, cat Category) error
	ListCategories(ctx context.Context) ([]Category, error)
	CreateJob(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	GetBySlug(ctx context.Context, slug string) (Job, error)
	// ListByCompany orders by application count desc, then newest first.
	ListByCompany(ctx context.Context, companyID string) ([]JobStats, error)
	CountApplications(ctx context.Context, jobID string) (int, error)
	GetApplication(ctx context.Context, jobID, userID string) (Application, error)
	CreateApplication(ctx context.Context, app Application) error
	// Delete removes the job and its applications.
	Delete(ctx context.Context, jobID string) error
}
