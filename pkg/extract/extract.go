// Package extract tokenizes free text into candidate vocabulary and pulls
// personal entities out of self-disclosure messages.
package extract

import (
	"regexp"
	"strings"

	"github.com/luminal-ai/companion/pkg/lexicon"
)

const maxKeywords = 10

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s']`)

// Extractor produces keywords and personal entities from raw message text.
type Extractor struct {
	lex *lexicon.Set

	namePattern       *regexp.Regexp
	occupationPattern *regexp.Regexp
	locationPattern   *regexp.Regexp
	interestPattern   *regexp.Regexp
}

func New(lex *lexicon.Set) *Extractor {
	return &Extractor{
		lex:               lex,
		namePattern:       regexp.MustCompile(`(?i)my name is (\w+)|i'?m called (\w+)|call me (\w+)`),
		occupationPattern: regexp.MustCompile(`(?i)i work as an? ([\w\s]+?)(?:\.|,|$)|i'?m an? (\w+) by (?:trade|profession)|my job is ([\w\s]+?)(?:\.|,|$)`),
		locationPattern:   regexp.MustCompile(`(?i)i live in ([\w\s]+?)(?:\.|,|$)|i'?m from ([\w\s]+?)(?:\.|,|$)|i moved to ([\w\s]+?)(?:\.|,|$)`),
		interestPattern:   regexp.MustCompile(`(?i)i (?:love|enjoy|like) ([\w\s]+?)(?:\.|,|$)|my hobby is ([\w\s]+?)(?:\.|,|$)|i'?m interested in ([\w\s]+?)(?:\.|,|$)`),
	}
}

// Keywords returns at most 10 lowercase tokens in original order, dropping
// tokens of length <= 2 and stop words.
func (e *Extractor) Keywords(text string) []string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(text), " ")

	var keywords []string
	for _, token := range strings.Fields(cleaned) {
		token = strings.Trim(token, "'")
		if len(token) <= 2 {
			continue
		}
		if e.lex.IsStopWord(token) {
			continue
		}
		keywords = append(keywords, token)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// EntityKind labels the kind of personal information an entity carries.
type EntityKind string

const (
	EntityName       EntityKind = "name"
	EntityOccupation EntityKind = "occupation"
	EntityLocation   EntityKind = "location"
	EntityInterest   EntityKind = "interest"
)

// Entity is a single piece of personal information found in a message.
type Entity struct {
	Kind  EntityKind
	Value string
}

// PersonalInfo applies each entity pattern independently. Patterns are
// additive; any subset of them may match, so the result can be empty.
func (e *Extractor) PersonalInfo(text string) []Entity {
	var entities []Entity

	if v := firstGroup(e.namePattern, text); v != "" {
		entities = append(entities, Entity{Kind: EntityName, Value: v})
	}
	if v := firstGroup(e.occupationPattern, text); v != "" {
		entities = append(entities, Entity{Kind: EntityOccupation, Value: v})
	}
	if v := firstGroup(e.locationPattern, text); v != "" {
		entities = append(entities, Entity{Kind: EntityLocation, Value: v})
	}
	if v := firstGroup(e.interestPattern, text); v != "" {
		entities = append(entities, Entity{Kind: EntityInterest, Value: v})
	}
	return entities
}

// firstGroup returns the first non-empty capture group of the first match.
func firstGroup(re *regexp.Regexp, text string) string {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	for _, group := range match[1:] {
		if group != "" {
			return strings.TrimSpace(group)
		}
	}
	return ""
}
