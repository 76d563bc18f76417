// Package retrospect aggregates a window of conversation into a structured
// summary. The narrative is delegated to the text-generation collaborator;
// when that call fails or returns garbage the generator falls back to a
// deterministic in-process summary with the same shape.
package retrospect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"

	"github.com/luminal-ai/companion/pkg/ai"
	"github.com/luminal-ai/companion/pkg/growth"
	"github.com/luminal-ai/companion/pkg/lexicon"
)

// Context is the window of material a summary is built from.
type Context struct {
	UserMessages  []string
	BotResponses  []string
	Timeframe     string
	UserFacts     []string
	EmotionalTone string
	Stage         growth.Stage
}

// Summary is the uniform output shape of both the collaborator path and the
// fallback path.
type Summary struct {
	KeyThemes            []string `json:"keyThemes"`
	EmotionalJourney     string   `json:"emotionalJourney"`
	PersonalGrowth       string   `json:"personalGrowth"`
	ImportantFacts       []string `json:"importantFacts"`
	ConversationPatterns []string `json:"conversationPatterns"`
	Recommendations      []string `json:"recommendations"`
}

// Generator produces retrospective summaries.
type Generator struct {
	completions ai.Completion
	model       string
	timeout     time.Duration
	lex         *lexicon.Set
	logger      *log.Logger
}

func NewGenerator(completions ai.Completion, model string, timeout time.Duration, lex *lexicon.Set, logger *log.Logger) *Generator {
	return &Generator{
		completions: completions,
		model:       model,
		timeout:     timeout,
		lex:         lex,
		logger:      logger,
	}
}

// Generate makes exactly one bounded collaborator call. Any failure —
// transport error, timeout, unparseable payload — is recovered locally via
// the deterministic fallback; Generate never returns an error.
func (g *Generator) Generate(ctx context.Context, c Context) Summary {
	summary, err := g.generateWithCollaborator(ctx, c)
	if err != nil {
		g.logger.Warn("Summary collaborator failed, using fallback", "error", err)
		return g.fallback(c)
	}
	return summary
}

func (g *Generator) generateWithCollaborator(ctx context.Context, c Context) (Summary, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(summarySystemPrompt),
		openai.UserMessage(buildUserPrompt(c)),
	}

	response, err := g.completions.Completions(callCtx, messages, nil, g.model)
	if err != nil {
		return Summary{}, err
	}

	return parseSummary(response.Content)
}

// parseSummary decodes the collaborator's JSON payload, tolerating code
// fences and defaulting every missing field to an empty value.
func parseSummary(content string) (Summary, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var summary Summary
	if err := json.Unmarshal([]byte(trimmed), &summary); err != nil {
		return Summary{}, fmt.Errorf("parsing summary payload: %w", err)
	}

	if summary.KeyThemes == nil {
		summary.KeyThemes = []string{}
	}
	if summary.ImportantFacts == nil {
		summary.ImportantFacts = []string{}
	}
	if summary.ConversationPatterns == nil {
		summary.ConversationPatterns = []string{}
	}
	if summary.Recommendations == nil {
		summary.Recommendations = []string{}
	}
	return summary, nil
}

const summarySystemPrompt = `You are a reflective companion reviewing a window of conversation with your user.
Respond with a single JSON object and nothing else, using exactly these keys:
{"keyThemes": [], "emotionalJourney": "", "personalGrowth": "", "importantFacts": [], "conversationPatterns": [], "recommendations": []}`

func buildUserPrompt(c Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Timeframe: %s\n", orDefault(c.Timeframe, "recently"))
	fmt.Fprintf(&b, "Overall emotional tone: %s\n", orDefault(c.EmotionalTone, "neutral"))
	fmt.Fprintf(&b, "Companion stage: %s\n\n", c.Stage)

	b.WriteString("Known facts about the user:\n")
	if len(c.UserFacts) == 0 {
		b.WriteString("(none)\n")
	}
	for _, fact := range c.UserFacts {
		fmt.Fprintf(&b, "- %s\n", fact)
	}

	b.WriteString("\nUser messages:\n")
	for _, msg := range c.UserMessages {
		fmt.Fprintf(&b, "- %s\n", msg)
	}

	b.WriteString("\nCompanion responses:\n")
	for _, msg := range c.BotResponses {
		fmt.Fprintf(&b, "- %s\n", msg)
	}
	return b.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
