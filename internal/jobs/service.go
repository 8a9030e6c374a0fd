package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"edujobs-backend/internal/shared/telemetry"
	"edujobs-backend/internal/users"
)

// ApplyState tells the client which apply control to show. It is derived
// on the server from the stored role, profile and application.
type ApplyState string

const (
	ApplyLogin           ApplyState = "login"
	ApplyHidden          ApplyState = "hidden"
	ApplyCompleteProfile ApplyState = "complete_profile"
	ApplyApplied         ApplyState = "applied"
	ApplyReviewed        ApplyState = "reviewed"
	ApplyAccepted        ApplyState = "accepted"
	ApplyRejected        ApplyState = "rejected"
	ApplyOpen            ApplyState = "apply"
)

// UserReader loads a user with an optional profile.
type UserReader interface {
	GetWithProfile(ctx context.Context, userID string) (users.User, *users.Profile, error)
}

// Invalidator drops cached views derived from a company's postings.
type Invalidator interface {
	Invalidate(ctx context.Context, companyID string)
}

type CompanyView struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Website    string  `json:"website,omitempty"`
	Bio        string  `json:"bio"`
	PictureURL string  `json:"pictureUrl"`
	TotalJobs  int     `json:"totalJobs"`
	HireRate   float64 `json:"hireRate"`
}

// DetailView is the job page with every display fallback resolved.
type DetailView struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	Level       string      `json:"level"`
	Type        string      `json:"type"`
	WorkMode    string      `json:"workMode"`
	Paycheck    string      `json:"paycheck"`
	LastUpdated string      `json:"lastUpdated"`
	Applicants  int         `json:"applicants"`
	Hired       int         `json:"hired"`
	Draft       bool        `json:"draft,omitempty"`
	Company     CompanyView `json:"company"`
	ApplyState  ApplyState  `json:"applyState"`
}

// CreateInput is a new posting. Publish false stores it as a draft.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	Location    string `json:"location"`
	Level       string `json:"level"`
	Type        string `json:"type"`
	WorkMode    string `json:"workMode"`
	PaycheckMin int64  `json:"paycheckMin"`
	PaycheckMax int64  `json:"paycheckMax"`
	Publish     bool   `json:"publish"`
}

type Service struct {
	Repo  Repo
	Users UserReader
	Cache Invalidator
	Now   func() time.Time
}

// Detail builds the job page for viewerID, which is empty for anonymous
// visitors. Drafts are only visible to the owning company.
func (s *Service) Detail(ctx context.Context, slug, viewerID string) (DetailView, error) {
	job, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return DetailView{}, err
	}
	if job.Status != StatusPublished && job.CompanyID != viewerID {
		return DetailView{}, ErrNotFound
	}

	_, company, err := s.Users.GetWithProfile(ctx, job.CompanyID)
	if err != nil && !errors.Is(err, users.ErrNotFound) {
		return DetailView{}, fmt.Errorf("load company: %w", err)
	}
	if company == nil {
		company = &users.Profile{}
	}
	applicants, err := s.Repo.CountApplications(ctx, job.ID)
	if err != nil {
		return DetailView{}, fmt.Errorf("count applications: %w", err)
	}
	state, err := s.applyState(ctx, job, viewerID)
	if err != nil {
		return DetailView{}, err
	}

	return DetailView{
		ID:          job.ID,
		Slug:        job.Slug,
		Title:       job.Title,
		Description: job.Description,
		Category:    job.Category,
		Location:    displayLocation(job, company.CompanyAddress),
		Level:       displayLevel(job.Level),
		Type:        displayType(job.Type),
		WorkMode:    job.WorkMode,
		Paycheck:    FormatPaycheck(job.PaycheckMin, job.PaycheckMax),
		LastUpdated: FormatDateID(job.UpdatedAt),
		Applicants:  applicants,
		Hired:       job.Hired,
		Draft:       job.Status == StatusDraft,
		Company: CompanyView{
			Name:       fallback(company.Name, "Company Name"),
			Address:    fallback(company.CompanyAddress, "Company Address"),
			Website:    WebsiteURL(company.CompanyWebsite),
			Bio:        fallback(company.Bio, "Bio"),
			PictureURL: fallback(company.PictureURL, "/avatars/male.svg"),
			TotalJobs:  company.TotalJobs,
			HireRate:   HireRate(company.TotalHired, company.TotalApplicants),
		},
		ApplyState: state,
	}, nil
}

func (s *Service) applyState(ctx context.Context, job Job, viewerID string) (ApplyState, error) {
	if viewerID == "" {
		return ApplyLogin, nil
	}
	user, profile, err := s.Users.GetWithProfile(ctx, viewerID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ApplyLogin, nil
		}
		return "", fmt.Errorf("load viewer: %w", err)
	}
	if user.Role != users.RoleEducatee {
		return ApplyHidden, nil
	}
	if !profile.Complete() {
		return ApplyCompleteProfile, nil
	}
	app, err := s.Repo.GetApplication(ctx, job.ID, viewerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ApplyOpen, nil
		}
		return "", fmt.Errorf("load application: %w", err)
	}
	switch app.Status {
	case ApplicationApplied:
		return ApplyApplied, nil
	case ApplicationReviewed:
		return ApplyReviewed, nil
	case ApplicationAccepted:
		return ApplyAccepted, nil
	case ApplicationRejected:
		return ApplyRejected, nil
	default:
		return ApplyOpen, nil
	}
}

// Apply records an application after re-checking every condition the job
// page gates on.
func (s *Service) Apply(ctx context.Context, userID, jobID string) (Application, error) {
	user, profile, err := s.Users.GetWithProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Application{}, fmt.Errorf("unknown applicant: %w", ErrForbidden)
		}
		return Application{}, err
	}
	if user.Role != users.RoleEducatee {
		return Application{}, fmt.Errorf("role %s cannot apply: %w", user.Role, ErrForbidden)
	}
	if !profile.Complete() {
		return Application{}, ErrProfileIncomplete
	}
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	if job.Status != StatusPublished {
		return Application{}, ErrNotFound
	}

	app := Application{
		ID:        uuid.NewString(),
		JobID:     job.ID,
		UserID:    userID,
		Status:    ApplicationApplied,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateApplication(ctx, app); err != nil {
		return Application{}, err
	}
	s.invalidate(ctx, job.CompanyID)
	telemetry.Info("jobs.applied", map[string]any{
		"job_id":  job.ID,
		"user_id": userID,
	})
	return app, nil
}

// Delete removes a posting and its applications. Only the owning company may.
func (s *Service) Delete(ctx context.Context, userID, jobID string) error {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.CompanyID != userID {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, job.ID); err != nil {
		return err
	}
	s.invalidate(ctx, job.CompanyID)
	telemetry.Info("jobs.deleted", map[string]any{
		"job_id":     job.ID,
		"company_id": job.CompanyID,
	})
	return nil
}

// Create stores a posting for a verified company.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Job, error) {
	user, profile, err := s.Users.GetWithProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Job{}, ErrForbidden
		}
		return Job{}, err
	}
	if user.Role != users.RoleCompany {
		return Job{}, fmt.Errorf("role %s cannot post jobs: %w", user.Role, ErrForbidden)
	}
	if !profile.Verified() {
		return Job{}, fmt.Errorf("company not verified: %w", ErrForbidden)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Job{}, fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if in.PaycheckMin < 0 || in.PaycheckMax < 0 {
		return Job{}, fmt.Errorf("paycheck must not be negative: %w", ErrInvalidInput)
	}
	if in.PaycheckMin != 0 && in.PaycheckMax != 0 && in.PaycheckMin > in.PaycheckMax {
		return Job{}, fmt.Errorf("paycheck range is inverted: %w", ErrInvalidInput)
	}

	id := uuid.New()
	now := s.now()
	job := Job{
		ID:          id.String(),
		CompanyID:   userID,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Slug:        newSlug(title, id),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Level:       strings.ToUpper(strings.TrimSpace(in.Level)),
		Type:        upperOr(in.Type, "FULL_TIME"),
		WorkMode:    upperOr(in.WorkMode, "ONSITE"),
		Status:      StatusDraft,
		PaycheckMin: in.PaycheckMin,
		PaycheckMax: in.PaycheckMax,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Publish {
		job.Status = StatusPublished
	}
	if err := s.Repo.CreateJob(ctx, job); err != nil {
		return Job{}, err
	}
	s.invalidate(ctx, userID)
	return job, nil
}

func (s *Service) invalidate(ctx context.Context, companyID string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, companyID)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func upperOr(s, def string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s
}
