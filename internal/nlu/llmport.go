package nlu

import (
	"context"
	"fmt"
	"strings"

	"github.com/tavolahq/tavola/internal/domain"
	"github.com/tavolahq/tavola/internal/llm"
	"github.com/tavolahq/tavola/internal/logging"
)

// LLMPort implements Port on top of an llm.Client. Provider faults never
// escape as errors: each operation degrades to the result that routes the
// dialogue toward clarification or escalation instead.
type LLMPort struct {
	client llm.Client
	model  string
	log    *logging.Logger
}

// NewLLMPort creates an NLU port backed by the given completion client.
func NewLLMPort(client llm.Client, model string, log *logging.Logger) *LLMPort {
	return &LLMPort{
		client: client,
		model:  model,
		log:    log.Sub("nlu"),
	}
}

// complete runs one completion with the shared envelope: system prompt,
// optional context block, then the caller's utterance. jsonOnly is off
// only for the info answer, which is spoken text.
func (p *LLMPort) complete(ctx context.Context, system, contextText, utterance string, jsonOnly bool) (string, error) {
	messages := make([]llm.Message, 0, 2)
	if contextText != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: contextText})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: utterance})

	resp, err := p.client.Complete(ctx, llm.CompletionRequest{
		Model:    p.model,
		System:   system,
		Messages: messages,
		JSONOnly: jsonOnly,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// ClassifyIntent classifies the caller's goal. A provider fault or a
// response without any JSON degrades to unclear with zero confidence.
func (p *LLMPort) ClassifyIntent(ctx context.Context, utterance string, cc ConvContext) (IntentResult, error) {
	unclear := IntentResult{Intent: domain.IntentUnclear, Confidence: 0}

	content, err := p.complete(ctx, intentSystemPrompt, contextBlock(cc), utterance, true)
	if err != nil {
		p.log.Warn().Err(err).Msg("intent classification failed, degrading to unclear")
		return unclear, nil
	}

	var res IntentResult
	found, err := decodeResponse(content, &res)
	if err != nil {
		return IntentResult{}, err
	}
	if !found {
		p.log.Warn().Str("content", snippet(content)).Msg("no JSON in classification response")
		return unclear, nil
	}
	if !res.Intent.Valid() {
		p.log.Error().Str("intent", string(res.Intent)).Msg("classifier selected no known intent")
		return IntentResult{}, ErrNoAction
	}
	return res, nil
}

// ExtractBookingSlots extracts reservation fields. The prompt demands the
// complete field set with known values repeated, which makes the same
// operation serve both initial slot filling and the modification path.
func (p *LLMPort) ExtractBookingSlots(ctx context.Context, utterance string, cc ConvContext, current domain.BookingSlots) (domain.BookingSlots, error) {
	system := fmt.Sprintf(bookingSystemPrompt, timeAnchor(cc), describeKnown(current))

	content, err := p.complete(ctx, system, contextBlock(cc), utterance, true)
	if err != nil {
		p.log.Warn().Err(err).Msg("slot extraction failed, returning empty slots")
		return domain.BookingSlots{}, nil
	}

	var slots domain.BookingSlots
	found, err := decodeResponse(content, &slots)
	if err != nil {
		return domain.BookingSlots{}, err
	}
	if !found {
		p.log.Warn().Str("content", snippet(content)).Msg("no JSON in extraction response")
		return domain.BookingSlots{}, nil
	}
	return sanitizeBooking(slots), nil
}

// ExtractOrderCount extracts the number of items ordered.
func (p *LLMPort) ExtractOrderCount(ctx context.Context, utterance string, cc ConvContext) (CountResult, error) {
	content, err := p.complete(ctx, countSystemPrompt, contextBlock(cc), utterance, true)
	if err != nil {
		p.log.Warn().Err(err).Msg("count extraction failed, reporting not found")
		return CountResult{}, nil
	}

	var res CountResult
	found, err := decodeResponse(content, &res)
	if err != nil {
		return CountResult{}, err
	}
	if !found {
		return CountResult{}, nil
	}
	return res, nil
}

// ClassifyConfirmation classifies the caller's reply to a reservation
// summary. An unusable response is a hard NoAction: guessing at a yes/no
// here would loop the caller forever.
func (p *LLMPort) ClassifyConfirmation(ctx context.Context, utterance string, cc ConvContext) (ConfirmationResult, error) {
	content, err := p.complete(ctx, confirmationSystemPrompt, contextBlock(cc), utterance, true)
	if err != nil {
		p.log.Warn().Err(err).Msg("confirmation classification failed, treating as bare denial")
		return ConfirmationResult{}, nil
	}

	var res ConfirmationResult
	found, err := decodeResponse(content, &res)
	if err != nil {
		return ConfirmationResult{}, err
	}
	if !found {
		p.log.Error().Str("content", snippet(content)).Msg("no usable signal in confirmation response")
		return ConfirmationResult{}, ErrNoAction
	}
	return res, nil
}

// AnswerGeneralInfo answers a question grounded only in the restaurant
// snapshot; the prompt instructs the model to transfer when the snapshot
// does not contain the answer.
func (p *LLMPort) AnswerGeneralInfo(ctx context.Context, question string, info domain.Restaurant) (string, error) {
	system := fmt.Sprintf(generalInfoSystemPrompt, info.Describe())

	content, err := p.complete(ctx, system, "", question, false)
	if err != nil {
		p.log.Warn().Err(err).Msg("general info answer failed")
		return "", &TransferSignal{Reason: "info answer unavailable"}
	}

	var none struct{}
	if found, err := decodeResponse(content, &none); found {
		if err != nil {
			return "", err
		}
		// A structured reply that is not a signal is never a spoken
		// answer. Hand over rather than read JSON to the caller.
		p.log.Warn().Str("content", snippet(content)).Msg("structured info answer without signal")
		return "", &TransferSignal{Reason: "info answer not speakable"}
	}
	answer := strings.TrimSpace(content)
	if answer == "" {
		return "", &TransferSignal{Reason: "empty info answer"}
	}
	return answer, nil
}

// AnalyzeAmbiguity asks for a tailored clarifying question. On any fault
// it falls back to the generic question, which always works.
func (p *LLMPort) AnalyzeAmbiguity(ctx context.Context, utterance string) (AmbiguityAnalysis, error) {
	fallback := AmbiguityAnalysis{
		Kind:     AmbiguityGeneral,
		Question: "How can I help you? Would you like to order for delivery or pickup, or book a table?",
	}

	content, err := p.complete(ctx, ambiguitySystemPrompt, "", utterance, true)
	if err != nil {
		p.log.Warn().Err(err).Msg("ambiguity analysis failed, using generic question")
		return fallback, nil
	}

	var res AmbiguityAnalysis
	found, err := decodeResponse(content, &res)
	if err != nil {
		return AmbiguityAnalysis{}, err
	}
	if !found || res.Question == "" {
		return fallback, nil
	}
	if res.Kind != AmbiguityOrderChannel && res.Kind != AmbiguityGeneral {
		res.Kind = AmbiguityGeneral
	}
	return res, nil
}

func snippet(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
