package anthropic

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fbbackend/models"
)

// MockAnthropicClient is a mock implementation of the AnthropicClient interface
type MockAnthropicClient struct {
	mock.Mock
}

// ClassifyFeedback mocks the classification call
func (m *MockAnthropicClient) ClassifyFeedback(
	ctx context.Context,
	text string,
) (*models.FeedbackVerdict, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedbackVerdict), args.Error(1)
}

// AnalyzeFeedback mocks the analysis call
func (m *MockAnthropicClient) AnalyzeFeedback(
	ctx context.Context,
	feedback *models.Feedback,
) (string, error) {
	args := m.Called(ctx, feedback)
	return args.String(0), args.Error(1)
}
