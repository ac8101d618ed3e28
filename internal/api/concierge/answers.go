package concierge

import (
	"strings"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

var corporateMarkers = []string{"corporate", "team", "incentive", "retreat"}

// NormalizeTripType maps free text onto the two supported segments.
// Anything that doesn't read as corporate travel is FIT.
func NormalizeTripType(input string) types.TripType {
	lowered := strings.ToLower(input)
	for _, marker := range corporateMarkers {
		if strings.Contains(lowered, marker) {
			return types.TripTypeCorporate
		}
	}
	return types.TripTypeFIT
}

// RecordAnswer normalizes a raw response for the given step and stores it in
// the answer set. Wishes append across refinement passes instead of
// overwriting. No validation happens here; any non-empty trimmed string is
// accepted for every field.
func RecordAnswer(answers *types.AnswerSet, step types.StepID, raw string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return
	}

	switch step {
	case types.StepTripType:
		answers.TripType = NormalizeTripType(value)
	case types.StepThemes:
		answers.Themes = ExtractThemes(value)
	case types.StepDuration:
		answers.Duration = value
	case types.StepGroupSize:
		answers.GroupSize = value
	case types.StepSeason:
		answers.Season = value
	case types.StepWishes:
		if answers.Wishes != "" {
			answers.Wishes = answers.Wishes + "; " + value
		} else {
			answers.Wishes = value
		}
	}
}
