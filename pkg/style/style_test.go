package style

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminal-ai/companion/pkg/db"
	"github.com/luminal-ai/companion/pkg/lexicon"
)

type fakeProfileStore struct {
	profiles map[string]*db.StyleProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*db.StyleProfile{}}
}

func (f *fakeProfileStore) GetStyleProfile(_ context.Context, userID string) (*db.StyleProfile, error) {
	if profile, ok := f.profiles[userID]; ok {
		return profile, nil
	}
	return &db.StyleProfile{UserID: userID, ToneCounts: map[string]int{}}, nil
}

func (f *fakeProfileStore) SaveStyleProfile(_ context.Context, profile *db.StyleProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func newTestAdapter(store Store) *Adapter {
	return NewAdapter(store, lexicon.Default(), log.New(io.Discard))
}

func TestUpdateCountsTones(t *testing.T) {
	store := newFakeProfileStore()
	adapter := newTestAdapter(store)
	ctx := context.Background()

	err := adapter.Update(ctx, "user-1", []string{
		"dude that wave was totally gnarly",
		"so stoked right now dude",
		"kindly find attached my regards",
	})
	require.NoError(t, err)

	profile := store.profiles["user-1"]
	require.NotNil(t, profile)
	assert.Equal(t, 2, profile.ToneCounts["surfer"])
	assert.Equal(t, 1, profile.ToneCounts["formal"])
}

func TestUpdateExtractsTraits(t *testing.T) {
	store := newFakeProfileStore()
	adapter := newTestAdapter(store)
	ctx := context.Background()

	err := adapter.Update(ctx, "user-1", []string{
		"ok",                      // brief
		"well... maybe later",     // casual
		"I KNOW RIGHT!!!",         // enthusiastic
		"lol idk tbh",             // internet slang (and brief)
		"fun day \U0001F600\U0001F389\U0001F31F", // expressive
	})
	require.NoError(t, err)

	traits := store.profiles["user-1"].StyleTraits
	assert.Contains(t, traits, "brief")
	assert.Contains(t, traits, "casual")
	assert.Contains(t, traits, "enthusiastic")
	assert.Contains(t, traits, "internet_slang")
	assert.Contains(t, traits, "expressive")
}

func TestUpdateDetectsCatchphrases(t *testing.T) {
	store := newFakeProfileStore()
	adapter := newTestAdapter(store)
	ctx := context.Background()

	err := adapter.Update(ctx, "user-1", []string{
		"honestly the day was fine",
		"honestly I did try",
		"honestly it works",
	})
	require.NoError(t, err)

	assert.Contains(t, store.profiles["user-1"].Catchphrases, "honestly")
	// Words appearing only once or twice do not qualify.
	assert.NotContains(t, store.profiles["user-1"].Catchphrases, "works")
}

func TestPromptRendersTopTonesAndTraits(t *testing.T) {
	store := newFakeProfileStore()
	store.profiles["user-1"] = &db.StyleProfile{
		UserID:      "user-1",
		ToneCounts:  map[string]int{"surfer": 5, "formal": 2, "playful": 3},
		StyleTraits: []string{"brief", "casual", "expressive", "enthusiastic"},
	}
	adapter := newTestAdapter(store)

	prompt, err := adapter.Prompt(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Contains(t, prompt, "surfer and playful")
	assert.Contains(t, prompt, "brief, casual, expressive")
	assert.NotContains(t, prompt, "enthusiastic")
	assert.NotContains(t, prompt, "formal")
}

func TestPromptFallsBackWhenEmpty(t *testing.T) {
	adapter := newTestAdapter(newFakeProfileStore())

	prompt, err := adapter.Prompt(context.Background(), "user-unknown")
	require.NoError(t, err)

	assert.Contains(t, prompt, "neutral")
	assert.Contains(t, prompt, "a standard style")
}

func TestCountEmoji(t *testing.T) {
	assert.Equal(t, 0, countEmoji("plain text"))
	assert.Equal(t, 2, countEmoji("hi \U0001F600\U0001F680"))
	assert.Equal(t, 1, countEmoji("sun ☀"))
}
