package concierge

import "strings"

// ConfirmIntent is the classified meaning of a reply to the yes/refine prompt.
type ConfirmIntent int

const (
	IntentUnclear ConfirmIntent = iota
	IntentAffirm
	IntentDecline
)

func (i ConfirmIntent) String() string {
	switch i {
	case IntentAffirm:
		return "affirm"
	case IntentDecline:
		return "decline"
	default:
		return "unclear"
	}
}

var affirmKeywords = []string{"yes", "sure", "please", "connect", "confirm", "definitely", "absolutely"}

var declineKeywords = []string{"no", "not yet", "later", "refine", "adjust", "tweak"}

// ClassifyConfirmation matches case-insensitive substrings against the fixed
// keyword lists, affirmatives first. "Yes please!" affirms via "yes";
// "no thanks" declines via "no"; everything else is unclear. A bare "y" also
// affirms, but only as the whole reply: as a substring it would swallow
// declines like "not yet" or "maybe later".
func ClassifyConfirmation(input string) ConfirmIntent {
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return IntentUnclear
	}
	if lowered == "y" {
		return IntentAffirm
	}
	for _, kw := range affirmKeywords {
		if strings.Contains(lowered, kw) {
			return IntentAffirm
		}
	}
	for _, kw := range declineKeywords {
		if strings.Contains(lowered, kw) {
			return IntentDecline
		}
	}
	return IntentUnclear
}
