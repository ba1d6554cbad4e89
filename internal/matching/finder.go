package matching

import (
	"context"
	"errors"
	"sort"

	"match-service/internal/models"
	"match-service/internal/repositories"
)

// ErrProfileNotConfigured is returned when the requester has no active match
// profile. Callers must not attempt scoring in that case.
var ErrProfileNotConfigured = errors.New("match profile not configured")

const (
	// DefaultLimit caps the candidates returned to a caller.
	DefaultLimit = 50
	// poolSize caps the randomly sampled pool before mode filtering.
	poolSize = 100
)

// Finder discovers and ranks match candidates for a user.
type Finder struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
}

// NewFinder constructs a Finder.
func NewFinder(users repositories.UserRepository, profiles repositories.ProfileRepository) *Finder {
	return &Finder{users: users, profiles: profiles}
}

// Candidate is a pool member with its compatibility score.
type Candidate struct {
	User  models.User `json:"user"`
	Score float64     `json:"score"`
}

// FindCandidates returns up to limit candidates for the user, best score
// first. The repository applies scope, range and active-match exclusion and
// random-samples the pool; mode filtering and ranking happen here.
func (f *Finder) FindCandidates(ctx context.Context, user models.User, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	profile, err := f.profiles.GetProfile(ctx, user.ID)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, ErrProfileNotConfigured
	}
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, ErrProfileNotConfigured
	}

	pool, err := f.users.FindCandidatePool(ctx, user, profile, poolSize)
	if err != nil {
		return nil, err
	}

	pool = filterByMode(pool, user, profile.PreferredMode)

	candidates := make([]Candidate, 0, len(pool))
	for _, candidate := range pool {
		candidates = append(candidates, Candidate{User: candidate, Score: Score(user, candidate)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// filterByMode applies the gender constraint of hookup mode. A requester whose
// own gender is outside {M,F} gets no hookup candidates; friend mode passes
// everyone through.
func filterByMode(pool []models.User, user models.User, mode string) []models.User {
	if mode != models.ModeHookup {
		return pool
	}

	var wanted string
	switch user.Gender {
	case models.GenderMale:
		wanted = models.GenderFemale
	case models.GenderFemale:
		wanted = models.GenderMale
	default:
		return nil
	}

	filtered := pool[:0]
	for _, candidate := range pool {
		if candidate.Gender == wanted {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}
