package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps postings in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu         sync.RWMutex
	categories map[string]Category
	jobs       map[string]Job
	apps       map[string]map[string]Application // jobID -> userID -> application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		categories: make(map[string]Category),
		jobs:       make(map[string]Job),
		apps:       make(map[string]map[string]Application),
	}
}

func (r *MemoryRepo) CreateCategory(ctx context.Context, cat Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[cat.ID] = cat
	return nil
}

func (r *MemoryRepo) ListCategories(ctx context.Context) ([]Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) CreateJob(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.jobs {
		if existing.Slug == job.Slug {
			return ErrInvalidInput
		}
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return r.withCategory(job), nil
}

func (r *MemoryRepo) GetBySlug(ctx context.Context, slug string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.jobs {
		if job.Slug == slug {
			return r.withCategory(job), nil
		}
	}
	return Job{}, ErrNotFound
}

func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]JobStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []JobStats{}
	for _, job := range r.jobs {
		if job.CompanyID == companyID {
			out = append(out, JobStats{Job: r.withCategory(job), Applicants: len(r.apps[job.ID])})
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Applicants != out[j].Applicants {
			return out[i].Applicants > out[j].Applicants
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) CountApplications(ctx context.Context, jobID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps[jobID]), nil
}

func (r *MemoryRepo) GetApplication(ctx context.Context, jobID, userID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[jobID][userID]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) CreateApplication(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[app.JobID]; !ok {
		return ErrNotFound
	}
	byUser := r.apps[app.JobID]
	if byUser == nil {
		byUser = make(map[string]Application)
		r.apps[app.JobID] = byUser
	}
	if _, ok := byUser[app.UserID]; ok {
		return ErrAlreadyApplied
	}
	byUser[app.UserID] = app
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[jobID]; !ok {
		return ErrNotFound
	}
	delete(r.apps, jobID)
	delete(r.jobs, jobID)
	return nil
}

func (r *MemoryRepo) withCategory(job Job) Job {
	if cat, ok := r.categories[job.CategoryID]; ok {
		job.Category = cat.Name
	}
	return job
}

var _ Repo = (*MemoryRepo)(nil)
