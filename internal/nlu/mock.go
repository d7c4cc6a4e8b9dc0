package nlu

import (
	"context"

	"github.com/tavolahq/tavola/internal/domain"
)

// MockPort is a test double for Port.
type MockPort struct {
	ClassifyIntentFunc       func(ctx context.Context, utterance string, cc ConvContext) (IntentResult, error)
	ExtractBookingSlotsFunc  func(ctx context.Context, utterance string, cc ConvContext, current domain.BookingSlots) (domain.BookingSlots, error)
	ExtractOrderCountFunc    func(ctx context.Context, utterance string, cc ConvContext) (CountResult, error)
	ClassifyConfirmationFunc func(ctx context.Context, utterance string, cc ConvContext) (ConfirmationResult, error)
	AnswerGeneralInfoFunc    func(ctx context.Context, question string, info domain.Restaurant) (string, error)
	AnalyzeAmbiguityFunc     func(ctx context.Context, utterance string) (AmbiguityAnalysis, error)
}

func (m *MockPort) ClassifyIntent(ctx context.Context, utterance string, cc ConvContext) (IntentResult, error) {
	if m.ClassifyIntentFunc != nil {
		return m.ClassifyIntentFunc(ctx, utterance, cc)
	}
	return IntentResult{Intent: domain.IntentUnclear}, nil
}

func (m *MockPort) ExtractBookingSlots(ctx context.Context, utterance string, cc ConvContext, current domain.BookingSlots) (domain.BookingSlots, error) {
	if m.ExtractBookingSlotsFunc != nil {
		return m.ExtractBookingSlotsFunc(ctx, utterance, cc, current)
	}
	return domain.BookingSlots{}, nil
}

func (m *MockPort) ExtractOrderCount(ctx context.Context, utterance string, cc ConvContext) (CountResult, error) {
	if m.ExtractOrderCountFunc != nil {
		return m.ExtractOrderCountFunc(ctx, utterance, cc)
	}
	return CountResult{}, nil
}

func (m *MockPort) ClassifyConfirmation(ctx context.Context, utterance string, cc ConvContext) (ConfirmationResult, error) {
	if m.ClassifyConfirmationFunc != nil {
		return m.ClassifyConfirmationFunc(ctx, utterance, cc)
	}
	return ConfirmationResult{}, nil
}

func (m *MockPort) AnswerGeneralInfo(ctx context.Context, question string, info domain.Restaurant) (string, error) {
	if m.AnswerGeneralInfoFunc != nil {
		return m.AnswerGeneralInfoFunc(ctx, question, info)
	}
	return "", &TransferSignal{Reason: "no info configured"}
}

func (m *MockPort) AnalyzeAmbiguity(ctx context.Context, utterance string) (AmbiguityAnalysis, error) {
	if m.AnalyzeAmbiguityFunc != nil {
		return m.AnalyzeAmbiguityFunc(ctx, utterance)
	}
	return AmbiguityAnalysis{
		Kind:     AmbiguityGeneral,
		Question: "How can I help you? Would you like to order for delivery or pickup, or book a table?",
	}, nil
}
