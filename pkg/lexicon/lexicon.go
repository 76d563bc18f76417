// Package lexicon holds the word lists and trigger phrases that drive the
// rule-based classifiers. Classifiers receive a *Set instead of inlining
// keyword lists so the tables can be swapped wholesale in tests or tuned
// from a YAML file without touching classifier code.
package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is the full collection of rule tables consumed by the engine.
type Set struct {
	StopWords         []string            `yaml:"stop_words"`
	Distress          []string            `yaml:"distress"`
	PositiveEmotion   []string            `yaml:"positive_emotion"`
	NegativeEmotion   []string            `yaml:"negative_emotion"`
	StrongEmotion     []string            `yaml:"strong_emotion"`
	Disclosure        []string            `yaml:"disclosure"`
	Interrogatives    []string            `yaml:"interrogatives"`
	ReflectionPhrases []string            `yaml:"reflection_phrases"`
	GoalPhrases       []string            `yaml:"goal_phrases"`
	RelationshipTerms []string            `yaml:"relationship_terms"`
	RelationalVerbs   []string            `yaml:"relational_verbs"`
	ProfessionalTerms []string            `yaml:"professional_terms"`
	UrgencyTerms      []string            `yaml:"urgency_terms"`
	Enthusiasm        []string            `yaml:"enthusiasm"`
	Humor             []string            `yaml:"humor"`
	Curiosity         []string            `yaml:"curiosity"`
	ToneTriggers      map[string][]string `yaml:"tone_triggers"`
	SlangFamilies     map[string][]string `yaml:"slang_families"`

	stopWords map[string]struct{}
}

// Default returns the built-in rule tables.
func Default() *Set {
	s := &Set{
		StopWords: []string{
			"the", "and", "for", "are", "but", "not", "you", "all", "can",
			"her", "was", "one", "our", "out", "his", "has", "had", "how",
			"what", "when", "where", "who", "why", "this", "that", "with",
			"have", "from", "they", "been", "will", "would", "could",
			"should", "about", "just", "really", "very", "your", "them",
		},
		Distress: []string{
			"stressed", "anxious", "worried", "sad", "depressed", "upset",
			"overwhelmed", "frustrated", "angry", "scared", "lonely",
			"exhausted", "hopeless", "struggling", "crying", "hurt",
		},
		PositiveEmotion: []string{
			"happy", "excited", "thrilled", "grateful", "proud", "love",
			"wonderful", "amazing", "fantastic", "delighted", "joy", "great",
			"ecstatic", "overjoyed",
		},
		NegativeEmotion: []string{
			"sad", "angry", "frustrated", "disappointed", "worried",
			"anxious", "scared", "upset", "hate", "terrible", "awful",
			"miserable", "stressed", "devastated", "heartbroken",
			"furious", "terrified", "desperate",
		},
		StrongEmotion: []string{
			"devastated", "ecstatic", "furious", "heartbroken", "overjoyed",
			"terrified", "thrilled", "desperate", "overwhelmed",
		},
		Disclosure: []string{
			"i am ", "i'm ", "i work", "i live", "i love", "i like",
			"i enjoy", "i have ", "my ",
		},
		Interrogatives: []string{
			"what", "when", "where", "who", "why", "how", "can", "could",
			"would", "should", "do", "does", "did", "is", "are", "will",
		},
		ReflectionPhrases: []string{
			"tell me about", "what do you remember", "do you recall",
			"what did i say", "what do you know about me", "remind me",
		},
		GoalPhrases: []string{
			"i want to", "my goal is", "i plan to", "i hope to",
			"i'm going to", "i aim to", "my dream is", "i wish to",
		},
		RelationshipTerms: []string{
			"wife", "husband", "partner", "girlfriend", "boyfriend",
			"mother", "father", "mom", "dad", "sister", "brother", "son",
			"daughter", "friend", "colleague", "coworker", "family",
		},
		RelationalVerbs: []string{
			"is", "was", "met", "told", "said", "called", "visited", "saw",
			"loves", "misses", "helped", "argued", "talked", "lives",
		},
		ProfessionalTerms: []string{
			"work", "job", "career", "office", "meeting", "project",
			"deadline", "boss", "promotion", "interview", "client",
		},
		UrgencyTerms: []string{
			"today", "tomorrow", "tonight", "urgent", "deadline", "asap",
			"appointment", "right now", "this week", "immediately",
		},
		Enthusiasm: []string{
			"awesome", "amazing", "love", "great", "excited", "wonderful",
			"fantastic", "cool", "wow", "best",
		},
		Humor: []string{
			"haha", "lol", "funny", "joke", "hilarious", "lmao", "silly",
		},
		Curiosity: []string{
			"wonder", "curious", "interesting", "how does", "why does",
			"what if", "learn",
		},
		ToneTriggers: map[string][]string{
			"surfer":       {"dude", "gnarly", "rad", "stoked", "totally", "bro"},
			"formal":       {"regards", "sincerely", "furthermore", "therefore", "kindly"},
			"enthusiastic": {"awesome", "amazing", "can't wait", "so excited"},
			"playful":      {"hehe", "teehee", "wheee", "yay"},
		},
		SlangFamilies: map[string][]string{
			"internet": {"lol", "omg", "btw", "idk", "tbh", "imo", "brb"},
			"surfer":   {"dude", "gnarly", "stoked", "rad"},
		},
	}
	s.index()
	return s
}

// Load reads a YAML rule-table file and overlays any populated tables on
// top of the defaults. Empty tables in the file keep their default values.
func Load(path string) (*Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var override Set
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, err
	}
	s := Default()
	s.merge(&override)
	s.index()
	return s, nil
}

func (s *Set) merge(o *Set) {
	if len(o.StopWords) > 0 {
		s.StopWords = o.StopWords
	}
	if len(o.Distress) > 0 {
		s.Distress = o.Distress
	}
	if len(o.PositiveEmotion) > 0 {
		s.PositiveEmotion = o.PositiveEmotion
	}
	if len(o.NegativeEmotion) > 0 {
		s.NegativeEmotion = o.NegativeEmotion
	}
	if len(o.StrongEmotion) > 0 {
		s.StrongEmotion = o.StrongEmotion
	}
	if len(o.Disclosure) > 0 {
		s.Disclosure = o.Disclosure
	}
	if len(o.Interrogatives) > 0 {
		s.Interrogatives = o.Interrogatives
	}
	if len(o.ReflectionPhrases) > 0 {
		s.ReflectionPhrases = o.ReflectionPhrases
	}
	if len(o.GoalPhrases) > 0 {
		s.GoalPhrases = o.GoalPhrases
	}
	if len(o.RelationshipTerms) > 0 {
		s.RelationshipTerms = o.RelationshipTerms
	}
	if len(o.RelationalVerbs) > 0 {
		s.RelationalVerbs = o.RelationalVerbs
	}
	if len(o.ProfessionalTerms) > 0 {
		s.ProfessionalTerms = o.ProfessionalTerms
	}
	if len(o.UrgencyTerms) > 0 {
		s.UrgencyTerms = o.UrgencyTerms
	}
	if len(o.Enthusiasm) > 0 {
		s.Enthusiasm = o.Enthusiasm
	}
	if len(o.Humor) > 0 {
		s.Humor = o.Humor
	}
	if len(o.Curiosity) > 0 {
		s.Curiosity = o.Curiosity
	}
	if len(o.ToneTriggers) > 0 {
		s.ToneTriggers = o.ToneTriggers
	}
	if len(o.SlangFamilies) > 0 {
		s.SlangFamilies = o.SlangFamilies
	}
}

func (s *Set) index() {
	s.stopWords = make(map[string]struct{}, len(s.StopWords))
	for _, w := range s.StopWords {
		s.stopWords[strings.ToLower(w)] = struct{}{}
	}
}

// IsStopWord reports whether the token is in the stop-word table.
func (s *Set) IsStopWord(token string) bool {
	if s.stopWords == nil {
		s.index()
	}
	_, ok := s.stopWords[strings.ToLower(token)]
	return ok
}

// ContainsAny reports whether text contains any of the given terms,
// case-insensitively.
func ContainsAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// MatchingTerms returns the subset of terms present in text, in table order.
func MatchingTerms(text string, terms []string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			matched = append(matched, term)
		}
	}
	return matched
}

// ContainsAnyWord matches single-word tables on token boundaries so that
// "joy" does not fire on "enjoyed".
func ContainsAnyWord(text string, words []string) bool {
	return len(MatchingWords(text, words)) > 0
}

// MatchingWords returns the subset of words appearing as whole tokens in
// text, in table order.
func MatchingWords(text string, words []string) []string {
	tokens := tokenSet(text)
	var matched []string
	for _, word := range words {
		if _, ok := tokens[strings.ToLower(word)]; ok {
			matched = append(matched, word)
		}
	}
	return matched
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, "'")] = struct{}{}
	}
	return set
}
