package users

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu          sync.RWMutex
	users       map[string]User
	profiles    map[string]Profile
	skills      map[string][]Skill
	experiences map[string][]Experience
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:       make(map[string]User),
		profiles:    make(map[string]Profile),
		skills:      make(map[string][]Skill),
		experiences: make(map[string][]Experience),
	}
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) SaveProfile(ctx context.Context, userID string, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	r.profiles[userID] = profile
	return nil
}

func (r *MemoryRepo) AddSkill(ctx context.Context, userID string, skill Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	r.skills[userID] = append(r.skills[userID], skill)
	return nil
}

func (r *MemoryRepo) AddExperience(ctx context.Context, userID string, exp Experience) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	r.experiences[userID] = append(r.experiences[userID], exp)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetWithProfile(ctx context.Context, userID string) (User, *Profile, error) {
	if err := ctx.Err(); err != nil {
		return User{}, nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, nil, ErrNotFound
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return user, nil, nil
	}
	return user, &profile, nil
}

func (r *MemoryRepo) GetAggregate(ctx context.Context, userID string) (Aggregate, error) {
	if err := ctx.Err(); err != nil {
		return Aggregate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return Aggregate{}, ErrNotFound
	}
	agg := Aggregate{
		User:        user,
		Skills:      append([]Skill(nil), r.skills[userID]...),
		Experiences: append([]Experience(nil), r.experiences[userID]...),
	}
	if profile, ok := r.profiles[userID]; ok {
		agg.Profile = &profile
	}
	sort.SliceStable(agg.Experiences, func(i, j int) bool {
		return startOf(agg.Experiences[i]).After(startOf(agg.Experiences[j]))
	})
	return agg, nil
}

func startOf(exp Experience) time.Time {
	if exp.StartDate == nil {
		return time.Time{}
	}
	return *exp.StartDate
}

var _ Repo = (*MemoryRepo)(nil)
