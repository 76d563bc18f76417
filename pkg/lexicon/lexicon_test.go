package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesPopulated(t *testing.T) {
	s := Default()

	assert.NotEmpty(t, s.StopWords)
	assert.NotEmpty(t, s.Distress)
	assert.NotEmpty(t, s.PositiveEmotion)
	assert.NotEmpty(t, s.ReflectionPhrases)
	assert.NotEmpty(t, s.ToneTriggers)
	assert.NotEmpty(t, s.SlangFamilies)
}

func TestIsStopWord(t *testing.T) {
	s := Default()

	assert.True(t, s.IsStopWord("the"))
	assert.True(t, s.IsStopWord("The"))
	assert.False(t, s.IsStopWord("guitar"))
}

func TestLoadOverlaysOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := "distress:\n  - gutted\n  - shattered\ntone_triggers:\n  pirate:\n    - arr\n    - matey\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	// Overridden tables are replaced wholesale.
	assert.Equal(t, []string{"gutted", "shattered"}, s.Distress)
	assert.Contains(t, s.ToneTriggers, "pirate")
	assert.NotContains(t, s.ToneTriggers, "surfer")

	// Untouched tables keep their defaults.
	assert.NotEmpty(t, s.StopWords)
	assert.True(t, s.IsStopWord("the"))
	assert.NotEmpty(t, s.GoalPhrases)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("distress: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestContainsAnyIsSubstringBased(t *testing.T) {
	assert.True(t, ContainsAny("I keep wondering about it", []string{"wonder"}))
	assert.False(t, ContainsAny("all quiet here", []string{"storm"}))
}

func TestMatchingWordsRespectsTokenBoundaries(t *testing.T) {
	words := []string{"joy", "sad"}

	assert.Equal(t, []string{"joy"}, MatchingWords("pure joy today", words))
	assert.Empty(t, MatchingWords("I enjoyed the show", words))
	assert.Equal(t, []string{"sad"}, MatchingWords("feeling sad.", words))
}

func TestMatchingTermsPreservesTableOrder(t *testing.T) {
	terms := []string{"alpha", "beta", "gamma"}

	assert.Equal(t, []string{"alpha", "gamma"}, MatchingTerms("gamma then alpha", terms))
}
