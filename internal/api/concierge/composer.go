package concierge

import (
	"fmt"
	"strings"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

const notSpecified = "Not specified"

const (
	defaultWishes   = "discreet concierge support throughout"
	defaultDuration = "seven-night"
	groupFIT        = "your inner circle"
	groupCorporate  = "your leadership collective"
)

// Draft is a composed itinerary: three narrative paragraphs plus the
// structured summary handed to the contact form.
type Draft struct {
	Paragraphs [3]string
	Summary    string
}

// Text returns the paragraphs joined for the details field.
func (d Draft) Text() string {
	return strings.Join(d.Paragraphs[:], "\n\n")
}

// ComposeItinerary turns a recorded answer set into a draft. Every absent
// field degrades to a documented default; the output is fully deterministic.
func ComposeItinerary(answers types.AnswerSet) Draft {
	tripType := answers.TripType
	if tripType == "" {
		tripType = types.TripTypeFIT
	}

	themes := answers.Themes
	if len(themes) == 0 {
		themes = []string{ThemeDesign, ThemeNature}
	}
	if len(themes) > 3 {
		themes = themes[:3]
	}

	highlights := make([]string, len(themes))
	for i, label := range themes {
		highlights[i] = highlightFor(label)
	}

	var d Draft
	d.Paragraphs[0] = fmt.Sprintf("I'm envisioning a %s composition for %s, set %s.",
		durationText(answers.Duration),
		groupText(answers.GroupSize, tripType),
		seasonPhrase(answers.Season),
	)
	d.Paragraphs[1] = openingSentence(tripType) + " " + interludeSentence(highlights)
	d.Paragraphs[2] = finaleSentence(highlights) + " " + closingSentence(answers.Wishes)
	d.Summary = composeSummary(tripType, answers)
	return d
}

func durationText(duration string) string {
	if duration == "" {
		return defaultDuration
	}
	lowered := strings.ToLower(duration)
	if strings.Contains(lowered, "night") || strings.Contains(lowered, "day") {
		return duration
	}
	return duration + " nights"
}

func groupText(groupSize string, tripType types.TripType) string {
	if groupSize != "" {
		return groupSize
	}
	if tripType == types.TripTypeCorporate {
		return groupCorporate
	}
	return groupFIT
}

// seasonPhrase qualifies the first paragraph by when the journey happens.
// Values that name a season get "during", week or month spans get "across",
// anything else reads naturally as "in <value>".
func seasonPhrase(season string) string {
	if season == "" {
		return "during your preferred season"
	}
	lowered := strings.ToLower(season)
	if strings.Contains(lowered, "season") {
		return "during " + season
	}
	if strings.Contains(lowered, "week") || strings.Contains(lowered, "month") {
		return "across " + season
	}
	return "in " + season
}

func openingSentence(tripType types.TripType) string {
	if tripType == types.TripTypeCorporate {
		return "Days are built around innovation salons, private ateliers, and strategy sessions staged in rooms few ever enter."
	}
	return "Days move between design penthouses, private ateliers, and insider access reserved for our closest friends."
}

func interludeSentence(highlights []string) string {
	if len(highlights) > 0 && highlights[0] != "" {
		return "Between them, expect " + highlights[0] + "."
	}
	return "Between them, expect deep northern seclusion, from a private lake sauna to a midnight-sun lookout."
}

// finaleSentence uses the second theme's highlight only when it differs from
// the first; otherwise the archipelago fallback keeps the paragraph fresh.
func finaleSentence(highlights []string) string {
	if len(highlights) > 1 && highlights[1] != "" && highlights[1] != highlights[0] {
		return "The finale builds toward " + highlights[1] + "."
	}
	return "The finale unfolds across the Stockholm archipelago, with a private skipper and a long table set on the rocks."
}

func closingSentence(wishes string) string {
	if wishes == "" {
		wishes = defaultWishes
	}
	return "Throughout, we will weave in " + wishes + "."
}

// composeSummary renders the six fixed-order lines from the recorded answers.
// Unlike the paragraphs, the summary reports what the visitor actually said,
// so absent fields read "Not specified" rather than a composed default.
func composeSummary(tripType types.TripType, answers types.AnswerSet) string {
	lines := []string{
		"Trip Type: " + tripTypeLabel(tripType),
		"Themes: " + orNotSpecified(strings.Join(answers.Themes, ", ")),
		"Duration: " + orNotSpecified(answers.Duration),
		"Group Size: " + orNotSpecified(answers.GroupSize),
		"Preferred Season: " + orNotSpecified(answers.Season),
		"Special Wishes: " + orNotSpecified(answers.Wishes),
	}
	return strings.Join(lines, "\n")
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSpecified
	}
	return value
}
