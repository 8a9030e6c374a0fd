package cvs

import (
	"context"
	"errors"
	"fmt"

	"edujobs-backend/internal/export"
	"edujobs-backend/internal/render"
	"edujobs-backend/internal/users"
)

// SourceReader loads everything a CV is rendered from. A missing user
// yields export.ErrNotFound.
type SourceReader interface {
	GetCVSource(ctx context.Context, userID string) (render.CVSource, error)
}

// AggregateReader is the users capability the CV source needs.
type AggregateReader interface {
	GetAggregate(ctx context.Context, userID string) (users.Aggregate, error)
}

// UserSource reads CV sources from the users aggregate.
type UserSource struct {
	Users AggregateReader
}

func (s UserSource) GetCVSource(ctx context.Context, userID string) (render.CVSource, error) {
	agg, err := s.Users.GetAggregate(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return render.CVSource{}, fmt.Errorf("user %s: %w", userID, export.ErrNotFound)
		}
		return render.CVSource{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	src := render.CVSource{Email: agg.User.Email}
	if agg.Profile != nil {
		src.Name = agg.Profile.Name
		src.Bio = agg.Profile.Bio
	}
	for _, skill := range agg.Skills {
		src.Skills = append(src.Skills, skill.Name)
	}
	for _, exp := range agg.Experiences {
		src.Experiences = append(src.Experiences, render.Experience{
			Title:     exp.Title,
			Company:   exp.Company,
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
		})
	}
	return src, nil
}
