package feedback

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fbbackend/models"
)

// MockFeedbackRepository is a mock implementation of the FeedbackRepository interface
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) InsertFeedback(ctx context.Context, feedback *models.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) GetFeedbackByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Feedback], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return mo.None[*models.Feedback](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Feedback]), args.Error(1)
}

// MockFeedbackService is a mock implementation of the FeedbackService interface
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) SubmitFeedback(
	ctx context.Context,
	req models.FeedbackSubmission,
) (*models.Feedback, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) GetFeedback(
	ctx context.Context,
	id string,
) (mo.Option[*models.Feedback], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return mo.None[*models.Feedback](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Feedback]), args.Error(1)
}
