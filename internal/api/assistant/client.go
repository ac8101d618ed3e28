package assistant

import (
	"context"
	"fmt"
	"iter"
	"os"

	"google.golang.org/genai"
)

// AIClient wraps the Gemini client with the configured model.
type AIClient struct {
	client *genai.Client
	model  string
}

func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// StreamMessage starts a chat with prior history and streams the reply to
// the latest message.
func (ai *AIClient) StreamMessage(ctx context.Context, config *genai.GenerateContentConfig, history []*genai.Content, message string) (iter.Seq2[*genai.GenerateContentResponse, error], error) {
	chat, err := ai.client.Chats.Create(ctx, ai.model, config, history)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat.SendMessageStream(ctx, genai.Part{Text: message}), nil
}
