package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
)

var (
	ErrFeedbackNotFound = errors.New("no feedback found for the user")
	ErrFeedbackEnqueue  = errors.New("feedback could not be enqueued")
	ErrMailDelivery     = errors.New("feedback email could not be delivered")
)

// AsyncFeedbackPublisher hands a product feedback entry to the message broker
// for persistence off the request path.
type AsyncFeedbackPublisher interface {
	Publish(ctx context.Context, feedback model.Feedback) error
}

// Mailer delivers one HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// FeedbackService accepts product feedback and assembles the analysis
// feedback digest email.
type FeedbackService struct {
	publisher     AsyncFeedbackPublisher
	analysisStore AnalysisFeedbackStore
	mailer        Mailer
	mailSubject   string
}

func NewFeedbackService(
	publisher AsyncFeedbackPublisher,
	analysisStore AnalysisFeedbackStore,
	mailer Mailer,
	mailSubject string,
) *FeedbackService {
	return &FeedbackService{
		publisher:     publisher,
		analysisStore: analysisStore,
		mailer:        mailer,
		mailSubject:   mailSubject,
	}
}

// Submit enqueues one product feedback entry. The write is asynchronous: a
// successful return means the broker accepted the message, not that the row
// exists yet.
func (s *FeedbackService) Submit(ctx context.Context, userID uint, text string) error {
	text = strings.TrimSpace(text)
	if userID == 0 || text == "" {
		return ErrInvalidInput
	}

	feedback := model.Feedback{
		UserID:   userID,
		Feedback: text,
	}
	if err := s.publisher.Publish(ctx, feedback); err != nil {
		return fmt.Errorf("%w: %v", ErrFeedbackEnqueue, err)
	}
	return nil
}

// ListAnalysis returns every stored answer evaluation for the user in
// insertion order.
func (s *FeedbackService) ListAnalysis(userID uint) ([]model.AnalysisFeedback, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.analysisStore.ListByUserID(userID)
}

// SendDigest emails every stored answer evaluation for the user to the
// caller-chosen address as a single HTML digest. With nothing to send it
// fails before any mail call.
func (s *FeedbackService) SendDigest(ctx context.Context, userID uint, destination string) error {
	destination = strings.TrimSpace(destination)
	if userID == 0 || destination == "" {
		return ErrInvalidInput
	}

	items, err := s.analysisStore.ListByUserID(userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrFeedbackNotFound
	}

	if err := s.mailer.Send(ctx, destination, s.mailSubject, buildDigestHTML(items)); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

func buildDigestHTML(items []model.AnalysisFeedback) string {
	var b strings.Builder
	b.WriteString("<h1>Interview Feedback</h1>")
	for _, item := range items {
		fmt.Fprintf(&b, "<h3>Question: %s</h3>", item.Question)
		fmt.Fprintf(&b, "<h4>Answer: %s</h4>", item.Answer)
		fmt.Fprintf(&b, "<div>%s</div>", item.Feedback)
	}
	return b.String()
}
