package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureFromIdentity persists the verified token identity so exports and
// applications have an owner row.
func (s *Service) EnsureFromIdentity(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("user id and email are required: %w", ErrInvalidInput)
	}
	if user.Role != RoleCompany {
		user.Role = RoleEducatee
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) Me(ctx context.Context, userID string) (User, *Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, nil, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	return s.Repo.GetWithProfile(ctx, userID)
}

func (s *Service) GetAggregate(ctx context.Context, userID string) (Aggregate, error) {
	return s.Repo.GetAggregate(ctx, userID)
}

// UpdateProfile replaces the editable profile fields. Counters and
// verification are owned elsewhere and kept.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in Profile) (Profile, error) {
	_, current, err := s.Repo.GetWithProfile(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	next := Profile{
		Name:           strings.TrimSpace(in.Name),
		Bio:            strings.TrimSpace(in.Bio),
		Gender:         strings.ToUpper(strings.TrimSpace(in.Gender)),
		DOB:            in.DOB,
		CompanyAddress: strings.TrimSpace(in.CompanyAddress),
		CompanyWebsite: strings.TrimSpace(in.CompanyWebsite),
		PictureURL:     strings.TrimSpace(in.PictureURL),
	}
	if current != nil {
		next.TotalJobs = current.TotalJobs
		next.TotalHired = current.TotalHired
		next.TotalApplicants = current.TotalApplicants
		next.Verification = current.Verification
	}
	if err := s.Repo.SaveProfile(ctx, userID, next); err != nil {
		return Profile{}, err
	}
	return next, nil
}

func (s *Service) AddSkill(ctx context.Context, userID, name string) (Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Skill{}, fmt.Errorf("skill name is required: %w", ErrInvalidInput)
	}
	skill := Skill{ID: uuid.NewString(), Name: name}
	if err := s.Repo.AddSkill(ctx, userID, skill); err != nil {
		return Skill{}, err
	}
	return skill, nil
}

func (s *Service) AddExperience(ctx context.Context, userID string, exp Experience) (Experience, error) {
	exp.Title = strings.TrimSpace(exp.Title)
	exp.Company = strings.TrimSpace(exp.Company)
	if exp.Title == "" {
		return Experience{}, fmt.Errorf("experience title is required: %w", ErrInvalidInput)
	}
	if exp.StartDate != nil && exp.EndDate != nil && exp.EndDate.Before(*exp.StartDate) {
		return Experience{}, fmt.Errorf("end date before start date: %w", ErrInvalidInput)
	}
	exp.ID = uuid.NewString()
	if err := s.Repo.AddExperience(ctx, userID, exp); err != nil {
		return Experience{}, err
	}
	return exp, nil
}
