// Package intent classifies the purpose of a user utterance so the response
// layer can pick a strategy before generating anything.
package intent

import (
	"regexp"
	"strings"

	"github.com/luminal-ai/companion/pkg/extract"
	"github.com/luminal-ai/companion/pkg/growth"
	"github.com/luminal-ai/companion/pkg/lexicon"
)

// Type is the classified purpose of an utterance.
type Type string

const (
	EmotionalSupport   Type = "emotional_support"
	InformationSharing Type = "information_sharing"
	Question           Type = "question"
	ReflectionRequest  Type = "reflection_request"
	CasualConversation Type = "casual_conversation"
)

// Intent pairs a classification with a confidence and response strategy.
// It is transient; nothing persists it.
type Intent struct {
	Type             Type
	Confidence       float64
	Entities         []extract.Entity
	ResponseStrategy string
}

// Context is the read-only conversation state consulted during
// classification. Detect never mutates it.
type Context struct {
	RecentMessages []string
	KnownFacts     []string
	Mood           string
	Stage          growth.Stage
}

// Classifier evaluates intent categories in fixed precedence order.
// Emotional content outranks everything; a reflection phrase outranks the
// literal question mark it usually ends with.
type Classifier struct {
	lex        *lexicon.Set
	extractor  *extract.Extractor
	disclosure *regexp.Regexp
}

func NewClassifier(lex *lexicon.Set, extractor *extract.Extractor) *Classifier {
	return &Classifier{
		lex:        lex,
		extractor:  extractor,
		disclosure: regexp.MustCompile(`(?i)^\s*(i am |i'm |i work|i live|i love|i like|i enjoy|i have |my )`),
	}
}

// Detect classifies a message. First matching category wins; there is no
// cross-category scoring. Empty input falls through to the lowest-confidence
// default rather than erroring.
func (c *Classifier) Detect(message string, _ Context) Intent {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Intent{Type: CasualConversation, Confidence: 0.6, ResponseStrategy: "conversational"}
	}

	if lexicon.ContainsAny(trimmed, c.lex.Distress) {
		return Intent{Type: EmotionalSupport, Confidence: 0.9, ResponseStrategy: "empathetic"}
	}

	if c.disclosure.MatchString(trimmed) {
		return Intent{
			Type:             InformationSharing,
			Confidence:       0.85,
			Entities:         c.extractor.PersonalInfo(trimmed),
			ResponseStrategy: "acknowledgment_and_followup",
		}
	}

	// Reflection requests are checked ahead of the generic question rule:
	// "what do you remember about X?" is a recall request, not a question
	// about X.
	if lexicon.ContainsAny(trimmed, c.lex.ReflectionPhrases) {
		return Intent{Type: ReflectionRequest, Confidence: 0.9, ResponseStrategy: "reflective_summary"}
	}

	if c.isQuestion(trimmed) {
		return Intent{Type: Question, Confidence: 0.8, ResponseStrategy: "informative"}
	}

	return Intent{Type: CasualConversation, Confidence: 0.6, ResponseStrategy: "conversational"}
}

func (c *Classifier) isQuestion(message string) bool {
	if strings.Contains(message, "?") {
		return true
	}
	fields := strings.Fields(strings.ToLower(message))
	if len(fields) == 0 {
		return false
	}
	for _, interrogative := range c.lex.Interrogatives {
		if fields[0] == interrogative {
			return true
		}
	}
	return false
}
