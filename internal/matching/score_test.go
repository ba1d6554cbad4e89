package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/models"
)

func intPtr(n int) *int { return &n }

func TestScoreFullAgreement(t *testing.T) {
	a := models.User{
		Interests: []string{"music", "sports"},
		City:      "Pune", State: "MH", Country: "IN",
		Age: intPtr(24), HeightCm: intPtr(172), Degree: "B.Tech",
	}
	b := models.User{
		Interests: []string{"music", "sports"},
		City:      "Pune", State: "MH", Country: "IN",
		Age: intPtr(25), HeightCm: intPtr(175), Degree: "b.tech",
	}

	// 100*.35 + 100*.25 + 100*.20 + 100*.15 + 100*.05
	require.InDelta(t, 100, Score(a, b), 0.001)
}

func TestScoreWeightedMix(t *testing.T) {
	a := models.User{
		Interests: []string{"chess"},
		City:      "Pune", State: "MH", Country: "IN",
		Age: intPtr(21), HeightCm: intPtr(160),
	}
	b := models.User{
		Interests: []string{"cricket"},
		City:      "Mumbai", State: "MH", Country: "IN",
		Age: intPtr(33), HeightCm: intPtr(168),
	}

	// interests disjoint 0*.35 + state 75*.25 + age diff 12 → 40*.20
	// + height diff 8 → 80*.15 + education neutral 50*.05
	require.InDelta(t, 41.25, Score(a, b), 0.001)
}

func TestScoreSymmetric(t *testing.T) {
	a := models.User{Interests: []string{"food", "films"}, City: "Delhi", Age: intPtr(20)}
	b := models.User{Interests: []string{"films"}, State: "DL", Age: intPtr(29), HeightCm: intPtr(180)}

	require.InDelta(t, Score(a, b), Score(b, a), 0.0001)
}

func TestScoreInterestsEmptySetNeutral(t *testing.T) {
	a := models.User{Interests: nil}
	b := models.User{Interests: []string{"music"}}

	assert.InDelta(t, 50, scoreInterests(a, b), 0.001)
	assert.InDelta(t, 50, scoreInterests(b, a), 0.001)
}

func TestScoreInterestsDisjointZero(t *testing.T) {
	a := models.User{Interests: []string{"music", "chess"}}
	b := models.User{Interests: []string{"cricket"}}

	assert.InDelta(t, 0, scoreInterests(a, b), 0.001)
}

func TestScoreInterestsJaccard(t *testing.T) {
	a := models.User{Interests: []string{"music", "chess", "food"}}
	b := models.User{Interests: []string{"music", "food", "travel"}}

	// |∩|=2, |∪|=4
	assert.InDelta(t, 50, scoreInterests(a, b), 0.001)
}

func TestScoreLocationLadder(t *testing.T) {
	base := models.User{City: "Pune", State: "MH", Country: "IN"}

	assert.InDelta(t, 100, scoreLocation(base, models.User{City: "Pune", State: "MH", Country: "IN"}), 0.001)
	assert.InDelta(t, 75, scoreLocation(base, models.User{City: "Mumbai", State: "MH", Country: "IN"}), 0.001)
	assert.InDelta(t, 50, scoreLocation(base, models.User{City: "Delhi", State: "DL", Country: "IN"}), 0.001)
	assert.InDelta(t, 25, scoreLocation(base, models.User{City: "Berlin", State: "BE", Country: "DE"}), 0.001)
	// Empty fields never count as equal.
	assert.InDelta(t, 25, scoreLocation(models.User{}, models.User{}), 0.001)
}

func TestScoreAgeBands(t *testing.T) {
	cases := []struct {
		diff int
		want float64
	}{
		{0, 100}, {2, 100}, {3, 80}, {5, 80}, {6, 60}, {10, 60}, {11, 40}, {15, 40}, {16, 20},
	}
	for _, tc := range cases {
		a := models.User{Age: intPtr(30)}
		b := models.User{Age: intPtr(30 + tc.diff)}
		assert.InDelta(t, tc.want, scoreAge(a, b), 0.001, "diff=%d", tc.diff)
	}
}

func TestScoreAgeMissingNeutral(t *testing.T) {
	assert.InDelta(t, 50, scoreAge(models.User{}, models.User{Age: intPtr(22)}), 0.001)
}

func TestScoreHeightBands(t *testing.T) {
	cases := []struct {
		diff int
		want float64
	}{
		{4, 100}, {5, 100}, {9, 80}, {15, 60}, {25, 40}, {31, 20},
	}
	for _, tc := range cases {
		a := models.User{HeightCm: intPtr(170)}
		b := models.User{HeightCm: intPtr(170 + tc.diff)}
		assert.InDelta(t, tc.want, scoreHeight(a, b), 0.001, "diff=%d", tc.diff)
	}
}

func TestScoreEducation(t *testing.T) {
	assert.InDelta(t, 100, scoreEducation(
		models.User{Degree: "MBA", Profession: "analyst"},
		models.User{Degree: "mba", Profession: "engineer"}), 0.001)
	assert.InDelta(t, 80, scoreEducation(
		models.User{Degree: "MBA", Profession: "Engineer"},
		models.User{Degree: "B.Sc", Profession: "engineer"}), 0.001)
	assert.InDelta(t, 50, scoreEducation(
		models.User{Degree: "MBA"},
		models.User{Degree: "B.Sc"}), 0.001)
	// Empty degree on one side falls through to profession, then neutral.
	assert.InDelta(t, 50, scoreEducation(models.User{}, models.User{Degree: "MBA"}), 0.001)
}

func TestValidateMode(t *testing.T) {
	male := models.User{Gender: models.GenderMale}
	female := models.User{Gender: models.GenderFemale}
	undisclosed := models.User{Gender: "X"}

	assert.True(t, ValidateMode(male, female, models.ModeFriend))
	assert.True(t, ValidateMode(undisclosed, undisclosed, models.ModeFriend))

	assert.True(t, ValidateMode(male, female, models.ModeHookup))
	assert.True(t, ValidateMode(female, male, models.ModeHookup))
	assert.False(t, ValidateMode(male, male, models.ModeHookup))
	assert.False(t, ValidateMode(female, female, models.ModeHookup))
	assert.False(t, ValidateMode(undisclosed, female, models.ModeHookup))
	assert.False(t, ValidateMode(male, undisclosed, models.ModeHookup))

	assert.False(t, ValidateMode(male, female, "romance"))
}
