package retrospect

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luminal-ai/companion/pkg/growth"
	"github.com/luminal-ai/companion/pkg/lexicon"
)

type mockCompletion struct {
	mock.Mock
}

func (m *mockCompletion) Completions(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam, model string) (openai.ChatCompletionMessage, error) {
	args := m.Called(ctx, messages, tools, model)
	return args.Get(0).(openai.ChatCompletionMessage), args.Error(1)
}

func newTestGenerator(completions *mockCompletion) *Generator {
	return NewGenerator(completions, "test-model", 5*time.Second, lexicon.Default(), log.New(io.Discard))
}

func TestGenerateParsesCollaboratorJSON(t *testing.T) {
	completions := &mockCompletion{}
	payload := `{"keyThemes":["music","family"],"emotionalJourney":"steadily brighter","personalGrowth":"more curious","importantFacts":["plays guitar"],"conversationPatterns":["detailed messages"],"recommendations":["ask about the recital"]}`
	completions.On("Completions", mock.Anything, mock.Anything, mock.Anything, "test-model").
		Return(openai.ChatCompletionMessage{Content: payload}, nil)

	summary := newTestGenerator(completions).Generate(context.Background(), Context{
		UserMessages: []string{"I practiced guitar with my sister"},
		Timeframe:    "the past week",
		Stage:        growth.StageChild,
	})

	assert.Equal(t, []string{"music", "family"}, summary.KeyThemes)
	assert.Equal(t, "steadily brighter", summary.EmotionalJourney)
	assert.Equal(t, []string{"plays guitar"}, summary.ImportantFacts)
	completions.AssertExpectations(t)
}

func TestGenerateStripsCodeFences(t *testing.T) {
	completions := &mockCompletion{}
	payload := "```json\n{\"keyThemes\":[\"travel\"],\"emotionalJourney\":\"excited\"}\n```"
	completions.On("Completions", mock.Anything, mock.Anything, mock.Anything, "test-model").
		Return(openai.ChatCompletionMessage{Content: payload}, nil)

	summary := newTestGenerator(completions).Generate(context.Background(), Context{Stage: growth.StageAdult})

	assert.Equal(t, []string{"travel"}, summary.KeyThemes)
	// Missing list fields default to empty slices, never nil.
	assert.NotNil(t, summary.ImportantFacts)
	assert.NotNil(t, summary.Recommendations)
}

func TestGenerateFallsBackOnCollaboratorError(t *testing.T) {
	completions := &mockCompletion{}
	completions.On("Completions", mock.Anything, mock.Anything, mock.Anything, "test-model").
		Return(openai.ChatCompletionMessage{}, errors.New("upstream unavailable"))

	summary := newTestGenerator(completions).Generate(context.Background(), Context{
		UserMessages:  []string{"guitar practice went well", "guitar strings snapped today"},
		Timeframe:     "the past day",
		EmotionalTone: "balanced",
		Stage:         growth.StageToddler,
	})

	assert.Contains(t, summary.KeyThemes, "guitar")
	assert.Contains(t, summary.EmotionalJourney, "the past day")
	assert.Contains(t, summary.EmotionalJourney, "balanced")
	assert.Contains(t, summary.PersonalGrowth, "toddler")
	assert.Equal(t, fallbackRecommendations, summary.Recommendations)
}

func TestGenerateFallsBackOnGarbagePayload(t *testing.T) {
	completions := &mockCompletion{}
	completions.On("Completions", mock.Anything, mock.Anything, mock.Anything, "test-model").
		Return(openai.ChatCompletionMessage{Content: "I cannot produce JSON right now."}, nil)

	summary := newTestGenerator(completions).Generate(context.Background(), Context{Stage: growth.StageInfant})

	assert.Equal(t, fallbackThemes, summary.KeyThemes)
	assert.NotEmpty(t, summary.ConversationPatterns)
}

func TestFallbackEmptyWindowPopulatesEveryField(t *testing.T) {
	generator := newTestGenerator(&mockCompletion{})

	summary := generator.fallback(Context{Stage: growth.StageInfant})

	assert.Equal(t, fallbackThemes, summary.KeyThemes)
	assert.NotEmpty(t, summary.EmotionalJourney)
	assert.NotEmpty(t, summary.PersonalGrowth)
	assert.NotNil(t, summary.ImportantFacts)
	assert.Equal(t, []string{"conversational engagement"}, summary.ConversationPatterns)
	assert.Equal(t, fallbackRecommendations, summary.Recommendations)
}

func TestFallbackPatternHeuristics(t *testing.T) {
	generator := newTestGenerator(&mockCompletion{})

	summary := generator.fallback(Context{
		UserMessages: []string{
			"how was your day?",
			"what should I cook tonight?",
			"I am so happy and excited",
		},
		Stage: growth.StageChild,
	})

	assert.Contains(t, summary.ConversationPatterns, "concise messages")
	assert.Contains(t, summary.ConversationPatterns, "frequently asks questions")
	assert.Contains(t, summary.ConversationPatterns, "open emotional expression")
}

func TestFallbackLimitsFactsAndThemes(t *testing.T) {
	generator := newTestGenerator(&mockCompletion{})

	messages := []string{
		"guitar guitar guitar hiking hiking cooking cooking painting painting reading reading chess chess",
	}
	facts := []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7"}

	summary := generator.fallback(Context{UserMessages: messages, UserFacts: facts, Stage: growth.StageAdult})

	assert.Len(t, summary.ImportantFacts, factLimit)
	assert.LessOrEqual(t, len(summary.KeyThemes), themeLimit)
	assert.Equal(t, "guitar", summary.KeyThemes[0])
}

func TestParseSummaryRejectsNonJSON(t *testing.T) {
	_, err := parseSummary("not json at all")
	require.Error(t, err)
}
