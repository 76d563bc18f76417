// Package importance scores raw message content for long-term retention.
// The scorer is a sequential rule pipeline: every rule runs on every call,
// categorizing rules overwrite importance/category in source order (last
// match wins), and priority/weight adjustments only ever raise the running
// value until the final clamp.
package importance

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/luminal-ai/companion/pkg/lexicon"
)

// Level ranks a memory's long-term retention value.
type Level string

const (
	Low      Level = "low"
	Medium   Level = "medium"
	High     Level = "high"
	Critical Level = "critical"
)

// Flags carries the contextual hints supplied by the calling layer.
type Flags struct {
	IsFirstMention       bool
	ContainsPersonalInfo bool
	EmotionalContext     string
	UserInitiated        bool
}

// Analysis is the scored wrapper around a message destined for the memory
// store. EmotionalWeight and RecallPriority are always within [0,1].
type Analysis struct {
	Importance      Level
	Category        string
	Tags            []string
	EmotionalWeight float64
	RecallPriority  float64
}

// Scorer applies the importance rule pipeline.
type Scorer struct {
	lex            *lexicon.Set
	personalDetail *regexp.Regexp
}

func NewScorer(lex *lexicon.Set) *Scorer {
	return &Scorer{
		lex:            lex,
		personalDetail: regexp.MustCompile(`(?i)(my name|my age|years old|my address|my birthday|my phone|my email|my family|i was born)`),
	}
}

// Analyze runs every rule against the content. Rules are not short-circuited:
// a later rule can still add tags or priority after an earlier rule set the
// category, and the last categorizing rule to match wins the category.
func (s *Scorer) Analyze(content string, flags Flags) Analysis {
	a := Analysis{
		Importance:      Medium,
		Category:        "general",
		EmotionalWeight: 0.5,
		RecallPriority:  0.5,
	}

	if s.personalDetail.MatchString(content) || flags.ContainsPersonalInfo {
		a.Importance = High
		a.Category = "personal_info"
		a.RecallPriority = raiseTo(a.RecallPriority, 0.9)
		a.Tags = append(a.Tags, "personal")
	}

	s.applyEmotionalRule(content, &a)

	if flags.IsFirstMention {
		a.RecallPriority += 0.2
		a.Tags = append(a.Tags, "first_mention")
	}

	if lexicon.ContainsAny(content, s.lex.GoalPhrases) {
		a.Importance = High
		a.Category = "goals"
		a.RecallPriority = raiseTo(a.RecallPriority, 0.8)
		a.Tags = append(a.Tags, "goals", "aspirations")
	}

	if s.mentionsRelationship(content) {
		a.Importance = High
		a.Category = "relationships"
		a.RecallPriority = raiseTo(a.RecallPriority, 0.8)
		a.Tags = append(a.Tags, "relationships")
	}

	// Professional context only categorizes when nothing stronger claimed
	// the message earlier in the pass.
	if lexicon.ContainsAnyWord(content, s.lex.ProfessionalTerms) && a.Category == "general" {
		a.Importance = Medium
		a.Category = "professional"
		a.RecallPriority = raiseTo(a.RecallPriority, 0.6)
		a.Tags = append(a.Tags, "work", "professional")
	}

	if lexicon.ContainsAny(content, s.lex.UrgencyTerms) {
		a.RecallPriority += 0.1
		a.Tags = append(a.Tags, "time_sensitive")
	}

	a.Tags = lo.Uniq(a.Tags)
	a.EmotionalWeight = clamp01(a.EmotionalWeight)
	a.RecallPriority = clamp01(a.RecallPriority)
	return a
}

// applyEmotionalRule measures emotional intensity from the emotion lexicons
// plus exclamation marks. Highly emotional content is promoted to high
// importance when net-positive and critical otherwise.
func (s *Scorer) applyEmotionalRule(content string, a *Analysis) {
	positive := lexicon.MatchingWords(content, s.lex.PositiveEmotion)
	negative := lexicon.MatchingWords(content, s.lex.NegativeEmotion)
	strong := lexicon.MatchingWords(content, s.lex.StrongEmotion)

	hits := len(positive) + len(negative) + len(strong)
	if hits == 0 {
		return
	}

	intensity := 0.2*float64(len(positive)+len(negative)) + 0.3*float64(len(strong))
	intensity += 0.1 * float64(strings.Count(content, "!"))
	intensity = clamp01(intensity)

	if intensity > 0.6 || hits >= 2 {
		if len(positive) >= len(negative) {
			a.Importance = High
		} else {
			a.Importance = Critical
		}
	}

	a.EmotionalWeight = raiseTo(a.EmotionalWeight, intensity)
	a.Tags = append(a.Tags, positive...)
	a.Tags = append(a.Tags, negative...)
	a.Tags = append(a.Tags, strong...)
}

func (s *Scorer) mentionsRelationship(content string) bool {
	return lexicon.ContainsAnyWord(content, s.lex.RelationshipTerms) &&
		lexicon.ContainsAnyWord(content, s.lex.RelationalVerbs)
}

// raiseTo overwrites a running score without ever decrementing it.
func raiseTo(current, target float64) float64 {
	if target > current {
		return target
	}
	return current
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
