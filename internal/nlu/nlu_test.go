package nlu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolahq/tavola/internal/domain"
	"github.com/tavolahq/tavola/internal/llm"
	"github.com/tavolahq/tavola/internal/logging"
)

func silentLog() *logging.Logger {
	return logging.New(nil, "silent")
}

func scripted(content string, err error) llm.Client {
	return &llm.MockClient{
		ProviderName: "mock",
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			if err != nil {
				return nil, err
			}
			return &llm.CompletionResponse{Content: content}, nil
		},
	}
}

func testCtx() ConvContext {
	return ConvContext{
		Now: time.Date(2024, 12, 20, 18, 30, 0, 0, time.UTC),
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(extractJSON(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, string(extractJSON("Sure! Here you go: {\"a\":1} hope that helps")))
	assert.Equal(t, `{"a":{"b":2}}`, string(extractJSON(`{"a":{"b":2}}`)))
	assert.Equal(t, `{"q":"ends with }"}`, string(extractJSON(`{"q":"ends with }"}`)))
	assert.Nil(t, extractJSON("no json here"))
	assert.Nil(t, extractJSON("{unbalanced"))
}

func TestClassifyIntent(t *testing.T) {
	p := NewLLMPort(scripted(`{"intent":"reservation","confidence":0.95,"reasoning":"wants a table"}`, nil), "m", silentLog())

	res, err := p.ClassifyIntent(context.Background(), "I'd like to book a table", testCtx())
	require.NoError(t, err)
	assert.Equal(t, domain.IntentReservation, res.Intent)
	assert.InDelta(t, 0.95, res.Confidence, 1e-9)
}

func TestClassifyIntentTransferSignal(t *testing.T) {
	p := NewLLMPort(scripted(`{"transfer":true,"reason":"asked for a person"}`, nil), "m", silentLog())

	_, err := p.ClassifyIntent(context.Background(), "let me talk to someone", testCtx())
	require.Error(t, err)
	assert.True(t, IsTransfer(err))
}

func TestClassifyIntentProviderFaultDegradesToUnclear(t *testing.T) {
	p := NewLLMPort(scripted("", errors.New("connection refused")), "m", silentLog())

	res, err := p.ClassifyIntent(context.Background(), "hello", testCtx())
	require.NoError(t, err)
	assert.Equal(t, domain.IntentUnclear, res.Intent)
	assert.Zero(t, res.Confidence)
}

func TestClassifyIntentNoJSONDegradesToUnclear(t *testing.T) {
	p := NewLLMPort(scripted("I think the caller wants pizza.", nil), "m", silentLog())

	res, err := p.ClassifyIntent(context.Background(), "uh", testCtx())
	require.NoError(t, err)
	assert.Equal(t, domain.IntentUnclear, res.Intent)
}

func TestClassifyIntentUnknownIntentIsNoAction(t *testing.T) {
	p := NewLLMPort(scripted(`{"intent":"karaoke","confidence":0.9}`, nil), "m", silentLog())

	_, err := p.ClassifyIntent(context.Background(), "hello", testCtx())
	assert.ErrorIs(t, err, ErrNoAction)
}

func TestExtractBookingSlots(t *testing.T) {
	p := NewLLMPort(scripted(`{"people":4,"date":"21/12/2024","time":"20:00","name":null}`, nil), "m", silentLog())

	slots, err := p.ExtractBookingSlots(context.Background(), "we are 4, tomorrow at 8pm", testCtx(), domain.BookingSlots{})
	require.NoError(t, err)
	require.NotNil(t, slots.People)
	assert.Equal(t, 4, *slots.People)
	assert.Equal(t, "21/12/2024", *slots.Date)
	assert.Equal(t, "20:00", *slots.Time)
	assert.Nil(t, slots.Name)
}

func TestExtractBookingSlotsSanitizes(t *testing.T) {
	p := NewLLMPort(scripted(`{"people":0,"date":"December 25th","time":"8 pm","name":""}`, nil), "m", silentLog())

	slots, err := p.ExtractBookingSlots(context.Background(), "nonsense", testCtx(), domain.BookingSlots{})
	require.NoError(t, err)
	assert.Nil(t, slots.People)
	assert.Nil(t, slots.Date)
	assert.Nil(t, slots.Time)
	assert.Nil(t, slots.Name)
}

func TestExtractBookingSlotsRedirect(t *testing.T) {
	p := NewLLMPort(scripted(`{"redirect":"delivery"}`, nil), "m", silentLog())

	_, err := p.ExtractBookingSlots(context.Background(), "actually bring it to my place", testCtx(), domain.BookingSlots{})
	require.Error(t, err)
	redir, ok := AsRedirect(err)
	require.True(t, ok)
	assert.Equal(t, domain.IntentDelivery, redir.Target)
}

func TestExtractBookingSlotsKnownFieldsInPrompt(t *testing.T) {
	var seenSystem string
	client := &llm.MockClient{
		ProviderName: "mock",
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			seenSystem = req.System
			return &llm.CompletionResponse{Content: `{"people":null,"date":null,"time":null,"name":null}`}, nil
		},
	}
	p := NewLLMPort(client, "m", silentLog())

	two := 2
	date := "25/12/2024"
	_, err := p.ExtractBookingSlots(context.Background(), "at nine", testCtx(),
		domain.BookingSlots{People: &two, Date: &date})
	require.NoError(t, err)

	assert.Contains(t, seenSystem, "people=2")
	assert.Contains(t, seenSystem, "date=25/12/2024")
	assert.Contains(t, seenSystem, "Today is Friday, 20/12/2024")
}

func TestExtractOrderCount(t *testing.T) {
	p := NewLLMPort(scripted(`{"number":3,"found":true}`, nil), "m", silentLog())

	res, err := p.ExtractOrderCount(context.Background(), "three pizzas please", testCtx())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Number)
	assert.True(t, res.Found)
}

func TestExtractOrderCountFaultReportsNotFound(t *testing.T) {
	p := NewLLMPort(scripted("", errors.New("boom")), "m", silentLog())

	res, err := p.ExtractOrderCount(context.Background(), "three", testCtx())
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestClassifyConfirmation(t *testing.T) {
	p := NewLLMPort(scripted(`{"confirmed":false,"hasModificationData":true}`, nil), "m", silentLog())

	res, err := p.ClassifyConfirmation(context.Background(), "no, make it three people", testCtx())
	require.NoError(t, err)
	assert.False(t, res.Confirmed)
	assert.True(t, res.HasNewData)
}

func TestClassifyConfirmationGarbageIsNoAction(t *testing.T) {
	p := NewLLMPort(scripted("well, maybe?", nil), "m", silentLog())

	_, err := p.ClassifyConfirmation(context.Background(), "yes", testCtx())
	assert.ErrorIs(t, err, ErrNoAction)
}

func TestTimeAnchorUsesClockZone(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	// Late evening UTC is already past midnight in Rome, so "tomorrow"
	// must resolve against the shifted date.
	cc := ConvContext{Now: time.Date(2026, 2, 28, 23, 30, 0, 0, time.UTC).In(rome)}
	anchor := timeAnchor(cc)
	assert.Contains(t, anchor, "Sunday")
	assert.Contains(t, anchor, "01/03/2026")
	assert.Contains(t, anchor, "00:30")
}

func TestAnswerGeneralInfo(t *testing.T) {
	p := NewLLMPort(scripted("We are open Friday from 7pm to 11:30pm.", nil), "m", silentLog())

	answer, err := p.AnswerGeneralInfo(context.Background(), "when are you open on Friday?", domain.Restaurant{Name: "Al Fornareto"})
	require.NoError(t, err)
	assert.Contains(t, answer, "Friday")
}

func TestAnswerGeneralInfoUngroundedTransfers(t *testing.T) {
	p := NewLLMPort(scripted(`{"transfer":true,"reason":"not in business info"}`, nil), "m", silentLog())

	_, err := p.AnswerGeneralInfo(context.Background(), "do you do weddings?", domain.Restaurant{})
	assert.True(t, IsTransfer(err))
}

func TestAnswerGeneralInfoStructuredReplyTransfers(t *testing.T) {
	p := NewLLMPort(scripted(`{"answer":"We open Friday at 7pm."}`, nil), "m", silentLog())

	_, err := p.AnswerGeneralInfo(context.Background(), "when are you open?", domain.Restaurant{Name: "Al Fornareto"})
	assert.True(t, IsTransfer(err))
}

func TestAnalyzeAmbiguity(t *testing.T) {
	p := NewLLMPort(scripted(`{"ambiguityType":"orderChannel","question":"Would you prefer delivery or picking it up yourself?"}`, nil), "m", silentLog())

	res, err := p.AnalyzeAmbiguity(context.Background(), "I'd like to order some pizzas")
	require.NoError(t, err)
	assert.Equal(t, AmbiguityOrderChannel, res.Kind)
	assert.Contains(t, res.Question, "delivery")
}

func TestAnalyzeAmbiguityFaultFallsBack(t *testing.T) {
	p := NewLLMPort(scripted("", errors.New("timeout")), "m", silentLog())

	res, err := p.AnalyzeAmbiguity(context.Background(), "good evening")
	require.NoError(t, err)
	assert.Equal(t, AmbiguityGeneral, res.Kind)
	assert.NotEmpty(t, res.Question)
}
