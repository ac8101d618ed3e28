package assistant

import (
	"fmt"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

// systemPrompt sets the concierge voice for the freeform chat mode. The
// scripted drafting flow never touches the LLM; this prompt only governs
// open-ended questions the script can't answer.
const systemPrompt = `You are LIV, the private travel concierge for a luxury Swedish travel atelier.
You speak with warmth and restraint, never salesy, never using superlatives you cannot back.
You know Sweden intimately: Stockholm, the archipelago, Lapland, Gotland, the west coast.
Keep answers short and evocative. When a guest seems ready to plan, invite them to start
an itinerary draft or to leave their details for Henrik, the founder.
Never invent prices. Never promise availability.`

// buildOpening folds the entry context into the first turn so the model
// knows which page the guest arrived from.
func buildOpening(ctx types.EntryContext) string {
	if ctx.Name == "" {
		return systemPrompt
	}
	return fmt.Sprintf("%s\n\nThe guest opened the chat from the %s page for %q. Acknowledge it naturally if relevant.",
		systemPrompt, ctx.Type, ctx.Name)
}
