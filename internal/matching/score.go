package matching

import (
	"strings"

	"match-service/internal/models"
)

// Sub-score weights. They sum to 1, so the weighted total stays in [0,100].
const (
	weightInterests = 0.35
	weightLocation  = 0.25
	weightAge       = 0.20
	weightHeight    = 0.15
	weightEducation = 0.05
)

// neutralScore is used when a sub-score has nothing to compare.
const neutralScore = 50

// Score computes the 0-100 compatibility score between two users. Pure and
// symmetric: Score(a, b) == Score(b, a).
func Score(a, b models.User) float64 {
	total := scoreInterests(a, b)*weightInterests +
		scoreLocation(a, b)*weightLocation +
		scoreAge(a, b)*weightAge +
		scoreHeight(a, b)*weightHeight +
		scoreEducation(a, b)*weightEducation

	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// ValidateMode reports whether the mode is permitted for the pair. Friend mode
// always is; hookup requires both genders in {M,F} and different.
func ValidateMode(a, b models.User, mode string) bool {
	switch mode {
	case models.ModeFriend:
		return true
	case models.ModeHookup:
		if !binaryGender(a.Gender) || !binaryGender(b.Gender) {
			return false
		}
		return a.Gender != b.Gender
	}
	return false
}

func binaryGender(g string) bool {
	return g == models.GenderMale || g == models.GenderFemale
}

// scoreInterests is Jaccard similarity scaled to 100. An empty set on either
// side is neutral, not zero: disjoint non-empty sets score 0.
func scoreInterests(a, b models.User) float64 {
	if len(a.Interests) == 0 || len(b.Interests) == 0 {
		return neutralScore
	}

	setA := make(map[string]struct{}, len(a.Interests))
	for _, interest := range a.Interests {
		setA[interest] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b.Interests))
	for _, interest := range b.Interests {
		setB[interest] = struct{}{}
	}

	intersection := 0
	union := len(setB)
	for interest := range setA {
		if _, ok := setB[interest]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union) * 100
}

func scoreLocation(a, b models.User) float64 {
	switch {
	case a.City != "" && b.City != "" && a.City == b.City:
		return 100
	case a.State != "" && b.State != "" && a.State == b.State:
		return 75
	case a.Country != "" && b.Country != "" && a.Country == b.Country:
		return 50
	default:
		return 25
	}
}

func scoreAge(a, b models.User) float64 {
	if a.Age == nil || b.Age == nil {
		return neutralScore
	}
	return bandedScore(abs(*a.Age-*b.Age), 2, 5, 10, 15)
}

func scoreHeight(a, b models.User) float64 {
	if a.HeightCm == nil || b.HeightCm == nil {
		return neutralScore
	}
	return bandedScore(abs(*a.HeightCm-*b.HeightCm), 5, 10, 20, 30)
}

func scoreEducation(a, b models.User) float64 {
	if a.Degree != "" && b.Degree != "" && strings.EqualFold(a.Degree, b.Degree) {
		return 100
	}
	if a.Profession != "" && b.Profession != "" && strings.EqualFold(a.Profession, b.Profession) {
		return 80
	}
	return neutralScore
}

// bandedScore maps a difference onto the 100/80/60/40/20 ladder using four
// ascending thresholds.
func bandedScore(diff, t1, t2, t3, t4 int) float64 {
	switch {
	case diff <= t1:
		return 100
	case diff <= t2:
		return 80
	case diff <= t3:
		return 60
	case diff <= t4:
		return 40
	default:
		return 20
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
