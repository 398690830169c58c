package classifier

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fbbackend/models"
)

// MockClassifierService is a mock implementation of the FeedbackClassifierService interface
type MockClassifierService struct {
	mock.Mock
}

func (m *MockClassifierService) Classify(
	ctx context.Context,
	text string,
) (*models.FeedbackVerdict, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedbackVerdict), args.Error(1)
}
