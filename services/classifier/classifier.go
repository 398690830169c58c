package classifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"fbbackend/clients"
	"fbbackend/models"
)

// classifyTimeout bounds the generative call so a stuck classification
// endpoint cannot hold a feedback request open
const classifyTimeout = 10 * time.Second

// ClassifierService sends feedback text to the generative endpoint and
// returns a constrained verdict. It surfaces every failure as an error;
// choosing to fail open is the caller's decision, visible in the caller.
type ClassifierService struct {
	anthropicClient clients.AnthropicClient
}

func NewClassifierService(anthropicClient clients.AnthropicClient) *ClassifierService {
	return &ClassifierService{anthropicClient: anthropicClient}
}

func (s *ClassifierService) Classify(ctx context.Context, text string) (*models.FeedbackVerdict, error) {
	log.Printf("📋 Starting to classify feedback (%d chars)", len(text))

	if text == "" {
		return nil, fmt.Errorf("feedback text cannot be empty")
	}
	if s.anthropicClient == nil {
		return nil, fmt.Errorf("classifier is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	verdict, err := s.anthropicClient.ClassifyFeedback(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to classify feedback: %w", err)
	}

	// Constrain the category to the known set
	if !models.IsKnownFeedbackCategory(verdict.Category) {
		log.Printf("⚠️ Classifier returned unknown category %q, normalizing to \"other\"", verdict.Category)
		verdict.Category = "other"
	}

	log.Printf("📋 Completed successfully - verdict: valid=%t category=%s", verdict.Valid, verdict.Category)
	return verdict, nil
}
