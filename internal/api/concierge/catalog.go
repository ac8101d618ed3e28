package concierge

import (
	"github.com/paulgosnell/liv-concierge/internal/types"
)

// Theme labels. Catalog order is also selection order for the extractor and
// the composer's highlight resolution.
const (
	ThemeDesign    = "Design & Innovation"
	ThemeNature    = "Hidden Nature & Wellness"
	ThemeCulinary  = "Culinary & Storytelling"
	ThemeRoyal     = "Royal & Heritage"
	ThemeArt       = "Art & Culture"
	ThemeNightlife = "Nightlife & Celebrations"
	ThemeLegacy    = "Legacy & Meaningful Travel"
)

// themeEntry pairs a catalog label with its match keywords and the
// pre-authored highlight the composer stitches into paragraphs two and three.
type themeEntry struct {
	Label     string
	Keywords  []string
	Highlight string
}

var themeCatalog = []themeEntry{
	{
		Label:     ThemeDesign,
		Keywords:  []string{"design", "innovation", "architecture", "tech", "creative", "studio"},
		Highlight: "private after-hours viewings with Stockholm's most celebrated designers and quiet access to the studios shaping tomorrow",
	},
	{
		Label:     ThemeNature,
		Keywords:  []string{"nature", "wellness", "spa", "sauna", "forest", "lake", "outdoors", "hiking"},
		Highlight: "forest bathing at a private lakeside estate, wood-fired saunas, and treatments drawn from the Nordic wild",
	},
	{
		Label:     ThemeCulinary,
		Keywords:  []string{"culinary", "food", "dining", "chef", "restaurant", "gastronomy", "wine", "storytelling"},
		Highlight: "a chef's table set deep in the archipelago, where each course arrives with its own story",
	},
	{
		Label:     ThemeRoyal,
		Keywords:  []string{"royal", "heritage", "castle", "palace", "history", "historic"},
		Highlight: "palace rooms opened beyond public hours and evenings hosted in Sweden's storied private estates",
	},
	{
		Label:     ThemeArt,
		Keywords:  []string{"art", "culture", "museum", "gallery", "music"},
		Highlight: "curator-led hours inside collections the public never sees",
	},
	{
		Label:     ThemeNightlife,
		Keywords:  []string{"nightlife", "party", "celebration", "club", "dancing", "festival"},
		Highlight: "a celebration choreographed after dark, from rooftop aperitifs to a hall reserved until sunrise",
	},
	{
		Label:     ThemeLegacy,
		Keywords:  []string{"legacy", "meaningful", "impact", "philanthropy", "sustainability", "giving"},
		Highlight: "encounters that give back, designed with the families and foundations who quietly shape Sweden",
	},
}

// highlightFor looks up the pre-authored highlight for a theme label.
// Unknown labels synthesize a generic highlight rather than failing.
func highlightFor(label string) string {
	for _, entry := range themeCatalog {
		if entry.Label == label {
			return entry.Highlight
		}
	}
	return label + " moments woven through Sweden"
}

// Trip-type display labels used in the summary and quick replies.
const (
	tripTypeLabelFIT       = "FIT & Bespoke"
	tripTypeLabelCorporate = "Corporate & Incentives"
)

func tripTypeLabel(t types.TripType) string {
	if t == types.TripTypeCorporate {
		return tripTypeLabelCorporate
	}
	return tripTypeLabelFIT
}

// stepQuestion holds the scripted copy for one interview step.
type stepQuestion struct {
	Prompt       string
	QuickReplies []types.QuickReply
}

var stepQuestions = map[types.StepID]stepQuestion{
	types.StepTripType: {
		Prompt: "Wonderful. Is this a private journey, or are you composing something for your company?",
		QuickReplies: []types.QuickReply{
			{Label: tripTypeLabelFIT, Value: "FIT"},
			{Label: tripTypeLabelCorporate, Value: "Corporate"},
		},
	},
	types.StepThemes: {
		Prompt:       "Which worlds shall we draw from? Choose any that resonate, or describe your own.",
		QuickReplies: themeQuickReplies(),
	},
	types.StepDuration: {
		Prompt: "How many nights shall we compose for you?",
	},
	types.StepGroupSize: {
		Prompt: "And who is travelling? A couple, a family, a larger circle?",
	},
	types.StepSeason: {
		Prompt: "When would you like Sweden to reveal itself? A season, a month, or specific dates all work.",
	},
	types.StepWishes: {
		Prompt: "Lastly, any special wishes? A private chef, a hidden sauna, something celebratory.",
	},
}

func themeQuickReplies() []types.QuickReply {
	replies := make([]types.QuickReply, 0, len(themeCatalog))
	for _, entry := range themeCatalog {
		replies = append(replies, types.QuickReply{Label: entry.Label, Value: entry.Label})
	}
	return replies
}

// Greeting variants for sessions opened without an entry context. One is
// picked by the engine's injectable chooser.
var genericGreetings = []string{
	"Welcome. I draft journeys through Sweden that never appear on a menu.",
	"Good to see you. Tell me a little, and I'll sketch something extraordinary.",
	"Welcome in. Let's compose a journey worthy of your time.",
}

// contextGreeting builds the opening line for a contextual trigger when the
// trigger carries no pre-authored greeting of its own.
func contextGreeting(ctx types.EntryContext) string {
	switch ctx.Type {
	case "destination":
		return ctx.Name + " is a fine instinct. Allow me to sketch how we would compose it."
	case "experience":
		return ctx.Name + " is one of our favourite worlds to build around."
	case "corporate":
		return "Bringing your company to Sweden is our specialty. Let me draft the shape of it."
	case "storyteller":
		return ctx.Name + " hosts some of our most memorable evenings. Let me build a journey around that."
	default:
		return ""
	}
}

// Scripted copy outside the question steps.
const (
	confirmPrompt    = "Shall I connect you with Henrik to bring this draft to life?"
	refinePrompt     = "Of course. Tell me what you'd like tuned and I'll redraw the composition."
	clarifyPrompt    = "Shall I hand this draft to Henrik, or would you like to refine it first? A simple yes or refine will do."
	handoffMessage   = "Wonderful. I've carried the draft into the enquiry form below. Add your details and Henrik will take it from here."
	handedOffNote    = "Henrik has everything he needs. The enquiry form below is ready whenever you are."
	draftIntroLine   = "Here is the journey I would draft for you."
	redraftIntroLine = "Here is the refined composition."
)

var confirmQuickReplies = []types.QuickReply{
	{Label: "Yes, connect me", Value: "yes"},
	{Label: "Refine the draft", Value: "refine"},
}
