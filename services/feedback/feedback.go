package feedback

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"

	"fbbackend/clients"
	"fbbackend/core"
	"fbbackend/models"
	"fbbackend/services"
	"fbbackend/utils"
)

// analyzeTimeout bounds the background analysis call
const analyzeTimeout = 30 * time.Second

// FeedbackRepository is the slice of the document store this service needs
type FeedbackRepository interface {
	InsertFeedback(ctx context.Context, feedback *models.Feedback) error
	GetFeedbackByID(ctx context.Context, id string) (mo.Option[*models.Feedback], error)
}

// TaskWrapper guards a background task. The composition root installs the
// alerting wrapper; the default recovers panics and logs them so a failing
// analysis can never take the process down.
type TaskWrapper func(taskName string, task func() error) func() error

func defaultTaskWrapper(taskName string, task func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("❌ Background task %s panicked: %v", taskName, r)
			}
		}()
		return task()
	}
}

// FeedbackService handles feedback intake: sanitize, classify, persist,
// then kick off a background analysis of the stored feedback.
type FeedbackService struct {
	feedbackRepo      FeedbackRepository
	classifierService services.FeedbackClassifierService
	anthropicClient   clients.AnthropicClient
	wrapTask          TaskWrapper
}

func NewFeedbackService(
	repo FeedbackRepository,
	classifierService services.FeedbackClassifierService,
	anthropicClient clients.AnthropicClient,
	wrapTask TaskWrapper,
) *FeedbackService {
	if wrapTask == nil {
		wrapTask = defaultTaskWrapper
	}
	return &FeedbackService{
		feedbackRepo:      repo,
		classifierService: classifierService,
		anthropicClient:   anthropicClient,
		wrapTask:          wrapTask,
	}
}

// SubmitFeedback validates and persists a feedback submission. A classifier
// failure is replaced with the fail-open verdict {valid, "other"} right
// here, so a classifier outage never blocks intake - availability over
// precision, on purpose.
func (s *FeedbackService) SubmitFeedback(
	ctx context.Context,
	req models.FeedbackSubmission,
) (*models.Feedback, error) {
	log.Printf("📋 Starting to submit feedback for repo: %s", req.RepoURL)

	if req.Message == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}

	cleanText, err := utils.SanitizeText(req.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFeedbackRejected, err)
	}

	verdict, err := s.classifierService.Classify(ctx, cleanText)
	if err != nil {
		log.Printf("⚠️ Classifier failed, failing open: %v", err)
		verdict = &models.FeedbackVerdict{Valid: true, Category: "other"}
	}

	if !verdict.Valid {
		log.Printf("📋 Feedback rejected as non-actionable")
		return nil, core.ErrNonActionableFeedback
	}

	fb := &models.Feedback{
		ID:           core.NewID("fb"),
		UserID:       req.UserID,
		RepoURL:      req.RepoURL,
		Name:         req.Name,
		Email:        req.Email,
		Message:      cleanText,
		FeedbackType: req.FeedbackType,
		Category:     verdict.Category,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.feedbackRepo.InsertFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to persist feedback: %w", err)
	}

	// Analysis runs after the response; its outcome never affects intake
	go s.runAnalysis(fb)

	log.Printf("📋 Completed successfully - stored feedback with ID: %s", fb.ID)
	return fb, nil
}

// GetFeedback returns a stored feedback document by its ID. Absent is not
// an error.
func (s *FeedbackService) GetFeedback(
	ctx context.Context,
	id string,
) (mo.Option[*models.Feedback], error) {
	log.Printf("📋 Starting to get feedback with ID: %s", id)

	if !core.IsValidULID(id) {
		return mo.None[*models.Feedback](), fmt.Errorf("feedback ID must be a valid ULID")
	}

	feedback, err := s.feedbackRepo.GetFeedbackByID(ctx, id)
	if err != nil {
		return mo.None[*models.Feedback](), fmt.Errorf("failed to get feedback: %w", err)
	}

	log.Printf("📋 Completed successfully - feedback lookup for ID: %s", id)
	return feedback, nil
}

// runAnalysis executes the analysis under the task wrapper so a panic or
// error in the analysis path stays contained to this task
func (s *FeedbackService) runAnalysis(fb *models.Feedback) {
	_ = s.wrapTask("AnalyzeFeedback", func() error {
		return s.analyzeFeedback(fb)
	})()
}

// analyzeFeedback asks the model for an analysis of the stored feedback and
// logs it. Branch and pull-request creation is not implemented.
func (s *FeedbackService) analyzeFeedback(fb *models.Feedback) error {
	if s.anthropicClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	log.Printf("📋 Analyzing feedback %s for repo %s", fb.ID, fb.RepoURL)

	analysis, err := s.anthropicClient.AnalyzeFeedback(ctx, fb)
	if err != nil {
		return fmt.Errorf("feedback analysis failed for %s: %w", fb.ID, err)
	}

	log.Printf("📋 Analysis for feedback %s:\n%s", fb.ID, analysis)
	// TODO: create a fix branch and open a pull request from the analysis
	return nil
}
