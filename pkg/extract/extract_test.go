package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luminal-ai/companion/pkg/lexicon"
)

func TestKeywordsBasicProperties(t *testing.T) {
	lex := lexicon.Default()
	extractor := New(lex)

	messages := []string{
		"I started a new painting project yesterday and loved every minute",
		"the quick brown fox jumps over the lazy dog again and again and again",
		"Hello!!! Do you want to talk about music, hiking, photography, cooking, gardening, chess, coding, sailing, pottery, archery, and fencing?",
		"",
		"a b c of it",
	}

	for _, message := range messages {
		keywords := extractor.Keywords(message)

		assert.LessOrEqual(t, len(keywords), 10)
		for _, keyword := range keywords {
			assert.Greater(t, len(keyword), 2, "keyword %q too short", keyword)
			assert.Equal(t, strings.ToLower(keyword), keyword)
			assert.False(t, lex.IsStopWord(keyword), "stop word %q leaked through", keyword)
		}
	}
}

func TestKeywordsPreserveOrder(t *testing.T) {
	extractor := New(lexicon.Default())

	keywords := extractor.Keywords("painting music hiking")
	assert.Equal(t, []string{"painting", "music", "hiking"}, keywords)
}

func TestKeywordsIdempotent(t *testing.T) {
	extractor := New(lexicon.Default())

	first := extractor.Keywords("I started learning woodworking last month, it feels wonderful")
	second := extractor.Keywords(strings.Join(first, " "))
	assert.Equal(t, first, second)
}

func TestPersonalInfoPatterns(t *testing.T) {
	extractor := New(lexicon.Default())

	tests := []struct {
		name    string
		message string
		kind    EntityKind
		value   string
	}{
		{"name", "My name is Sam", EntityName, "Sam"},
		{"occupation", "I work as a nurse.", EntityOccupation, "nurse"},
		{"location", "I live in Lisbon.", EntityLocation, "Lisbon"},
		{"interest", "I love hiking.", EntityInterest, "hiking"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entities := extractor.PersonalInfo(tc.message)
			found := false
			for _, entity := range entities {
				if entity.Kind == tc.kind {
					assert.Equal(t, tc.value, entity.Value)
					found = true
				}
			}
			assert.True(t, found, "expected %s entity in %v", tc.kind, entities)
		})
	}
}

func TestPersonalInfoAdditive(t *testing.T) {
	extractor := New(lexicon.Default())

	entities := extractor.PersonalInfo("My name is Ana, I live in Porto. I love surfing.")
	kinds := make(map[EntityKind]bool)
	for _, entity := range entities {
		kinds[entity.Kind] = true
	}
	assert.True(t, kinds[EntityName])
	assert.True(t, kinds[EntityLocation])
	assert.True(t, kinds[EntityInterest])
}

func TestPersonalInfoEmptyOnPlainText(t *testing.T) {
	extractor := New(lexicon.Default())
	assert.Empty(t, extractor.PersonalInfo("the weather is nice"))
}
