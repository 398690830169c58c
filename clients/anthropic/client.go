package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"fbbackend/clients"
	"fbbackend/models"
)

const classifyPrompt = `You are validating website feedback.

Return ONLY JSON:
- valid: boolean
- category: bug | feature | ux | performance | content | other

Feedback:
"""%s"""`

const analyzePrompt = `Analyze this user feedback for a software project and suggest a code fix:

Feedback: %s
Feedback Type: %s

Please provide:
1. Analysis of the issue
2. Suggested code changes
3. Files that might need modification`

// Client implements the clients.AnthropicClient interface
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClient creates a new Anthropic client for feedback classification and analysis
func NewClient(apiKey string) clients.AnthropicClient {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.ModelClaude3_5HaikuLatest,
	}
}

// ClassifyFeedback asks the model for a strict JSON verdict on the feedback
// text. Missing fields and malformed JSON are errors; the fail-open policy
// lives with the caller, not here.
func (c *Client) ClassifyFeedback(ctx context.Context, text string) (*models.FeedbackVerdict, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(classifyPrompt, text))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call classification endpoint: %w", err)
	}

	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("empty response from classification endpoint")
	}

	raw := stripJSONFences(msg.Content[0].Text)

	// Pointer fields so a missing required field is detectable
	var parsed struct {
		Valid    *bool   `json:"valid"`
		Category *string `json:"category"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse classification verdict: %w", err)
	}
	if parsed.Valid == nil || parsed.Category == nil {
		return nil, fmt.Errorf("classification verdict missing required fields")
	}

	return &models.FeedbackVerdict{
		Valid:    *parsed.Valid,
		Category: strings.ToLower(strings.TrimSpace(*parsed.Category)),
	}, nil
}

// AnalyzeFeedback asks the model for a free-form analysis of a persisted
// feedback item
func (c *Client) AnalyzeFeedback(ctx context.Context, feedback *models.Feedback) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(
				fmt.Sprintf(analyzePrompt, feedback.Message, feedback.FeedbackType),
			)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call analysis endpoint: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response from analysis endpoint")
	}

	return msg.Content[0].Text, nil
}

// stripJSONFences removes a surrounding markdown code fence when the model
// wraps its JSON despite the prompt
func stripJSONFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
