package retrospect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/luminal-ai/companion/pkg/lexicon"
)

const (
	themeMinLength = 4
	themeMinCount  = 2
	themeLimit     = 5
	factLimit      = 5
	detailedAvgLen = 100
	questionRatio  = 0.30
	emotionalRatio = 0.20
)

var fallbackThemes = []string{"daily life", "getting to know each other"}

var fallbackRecommendations = []string{
	"Ask a follow-up question about something the user mentioned recently",
	"Revisit a high-priority memory in the next conversation",
	"Celebrate progress the user has shared",
}

var themeTokenPattern = regexp.MustCompile(`[a-z']+`)

// fallback builds the deterministic summary. Every field is populated even
// for an empty window.
func (g *Generator) fallback(c Context) Summary {
	facts := c.UserFacts
	if len(facts) > factLimit {
		facts = facts[:factLimit]
	}
	if facts == nil {
		facts = []string{}
	}

	timeframe := orDefault(c.Timeframe, "recently")
	tone := orDefault(c.EmotionalTone, "neutral")

	return Summary{
		KeyThemes: g.themeWords(c.UserMessages),
		EmotionalJourney: fmt.Sprintf(
			"Over %s the conversation carried a mostly %s tone across %d messages.",
			timeframe, tone, len(c.UserMessages)),
		PersonalGrowth: fmt.Sprintf(
			"The companion is at the %s stage and keeps learning from every exchange during %s.",
			c.Stage, timeframe),
		ImportantFacts:       facts,
		ConversationPatterns: g.patterns(c.UserMessages),
		Recommendations:      fallbackRecommendations,
	}
}

// themeWords ranks tokens longer than 3 characters that repeat across the
// window and returns the top 5, falling back to fixed placeholders.
func (g *Generator) themeWords(messages []string) []string {
	counts := map[string]int{}
	var order []string

	for _, message := range messages {
		for _, token := range themeTokenPattern.FindAllString(strings.ToLower(message), -1) {
			if len(token) < themeMinLength || g.lex.IsStopWord(token) {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	var themes []string
	for _, token := range order {
		if counts[token] >= themeMinCount {
			themes = append(themes, token)
		}
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return counts[themes[i]] > counts[themes[j]]
	})
	if len(themes) > themeLimit {
		themes = themes[:themeLimit]
	}
	if len(themes) == 0 {
		return append([]string{}, fallbackThemes...)
	}
	return themes
}

// patterns applies three independent heuristics over the user messages and
// defaults to a single generic pattern when none of them says anything.
func (g *Generator) patterns(messages []string) []string {
	if len(messages) == 0 {
		return []string{"conversational engagement"}
	}

	var patterns []string

	totalLen := 0
	questions := 0
	emotional := 0
	for _, message := range messages {
		totalLen += len(message)
		if strings.Contains(message, "?") {
			questions++
		}
		if lexicon.ContainsAnyWord(message, g.lex.PositiveEmotion) ||
			lexicon.ContainsAnyWord(message, g.lex.NegativeEmotion) ||
			lexicon.ContainsAnyWord(message, g.lex.StrongEmotion) {
			emotional++
		}
	}

	if totalLen/len(messages) > detailedAvgLen {
		patterns = append(patterns, "detailed messages")
	} else {
		patterns = append(patterns, "concise messages")
	}
	if float64(questions)/float64(len(messages)) > questionRatio {
		patterns = append(patterns, "frequently asks questions")
	}
	if float64(emotional)/float64(len(messages)) > emotionalRatio {
		patterns = append(patterns, "open emotional expression")
	}
	return patterns
}
