// Package style maintains a rolling per-user tone/trait/catchphrase profile
// and renders it into a short directive used to steer generated responses.
package style

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/luminal-ai/companion/pkg/db"
	"github.com/luminal-ai/companion/pkg/helpers"
	"github.com/luminal-ai/companion/pkg/lexicon"
)

const (
	emojiExpressiveMin  = 3
	briefTokenMax       = 3
	catchphraseMinCount = 3
	catchphraseMinLen   = 3
)

// Store is the persistence surface the adapter needs.
type Store interface {
	GetStyleProfile(ctx context.Context, userID string) (*db.StyleProfile, error)
	SaveStyleProfile(ctx context.Context, profile *db.StyleProfile) error
}

// Adapter folds message batches into per-user style profiles. Updates for
// one user are serialized; different users are independent.
type Adapter struct {
	store  Store
	lex    *lexicon.Set
	logger *log.Logger
	locks  *helpers.KeyedMutex

	wordPattern *regexp.Regexp
}

func NewAdapter(store Store, lex *lexicon.Set, logger *log.Logger) *Adapter {
	return &Adapter{
		store:       store,
		lex:         lex,
		logger:      logger,
		locks:       helpers.NewKeyedMutex(),
		wordPattern: regexp.MustCompile(`[a-z']+`),
	}
}

// Update folds a batch of user messages into the profile under the user's
// lock so concurrent batches cannot lose tone counts.
func (a *Adapter) Update(ctx context.Context, userID string, messages []string) error {
	if len(messages) == 0 {
		return nil
	}

	a.locks.Lock(userID)
	defer a.locks.Unlock(userID)

	profile, err := a.store.GetStyleProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile.ToneCounts == nil {
		profile.ToneCounts = map[string]int{}
	}

	for _, message := range messages {
		if tone := a.classifyTone(message); tone != "" {
			profile.ToneCounts[tone]++
		}
		for _, trait := range a.extractTraits(message) {
			profile.StyleTraits = appendMissing(profile.StyleTraits, trait)
		}
	}

	for _, phrase := range a.detectCatchphrases(messages) {
		profile.Catchphrases = appendMissing(profile.Catchphrases, phrase)
	}

	profile.LastUpdated = time.Now()
	return a.store.SaveStyleProfile(ctx, profile)
}

// Prompt renders the profile into a one-sentence style directive: top-2
// tones by count, top-3 traits in insertion order, with neutral fallbacks.
func (a *Adapter) Prompt(ctx context.Context, userID string) (string, error) {
	profile, err := a.store.GetStyleProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	tones := topTones(profile.ToneCounts, 2)
	tonePhrase := "neutral"
	if len(tones) > 0 {
		tonePhrase = strings.Join(tones, " and ")
	}

	traitPhrase := "a standard style"
	if len(profile.StyleTraits) > 0 {
		traits := profile.StyleTraits
		if len(traits) > 3 {
			traits = traits[:3]
		}
		traitPhrase = strings.Join(traits, ", ")
	}

	return fmt.Sprintf("Respond in a %s tone, keeping %s.", tonePhrase, traitPhrase), nil
}

// classifyTone picks the tone whose trigger list matches the message most.
// Tone names are visited in sorted order so ties resolve deterministically.
func (a *Adapter) classifyTone(message string) string {
	names := make([]string, 0, len(a.lex.ToneTriggers))
	for name := range a.lex.ToneTriggers {
		names = append(names, name)
	}
	sort.Strings(names)

	bestTone := ""
	bestHits := 0
	for _, name := range names {
		hits := len(lexicon.MatchingTerms(message, a.lex.ToneTriggers[name]))
		if hits > bestHits {
			bestTone = name
			bestHits = hits
		}
	}
	return bestTone
}

func (a *Adapter) extractTraits(message string) []string {
	var traits []string

	slangNames := make([]string, 0, len(a.lex.SlangFamilies))
	for name := range a.lex.SlangFamilies {
		slangNames = append(slangNames, name)
	}
	sort.Strings(slangNames)
	for _, name := range slangNames {
		if lexicon.ContainsAnyWord(message, a.lex.SlangFamilies[name]) {
			traits = append(traits, name+"_slang")
		}
	}

	if countEmoji(message) >= emojiExpressiveMin {
		traits = append(traits, "expressive")
	}
	if len(strings.Fields(message)) <= briefTokenMax {
		traits = append(traits, "brief")
	}
	if strings.Contains(message, "...") {
		traits = append(traits, "casual")
	}
	if strings.Contains(message, "!!!") {
		traits = append(traits, "enthusiastic")
	}
	return traits
}

// detectCatchphrases finds 3+-letter tokens repeated more than twice across
// the batch, in first-appearance order.
func (a *Adapter) detectCatchphrases(messages []string) []string {
	counts := map[string]int{}
	var order []string

	for _, message := range messages {
		for _, token := range a.wordPattern.FindAllString(strings.ToLower(message), -1) {
			token = strings.Trim(token, "'")
			if len(token) < catchphraseMinLen || a.lex.IsStopWord(token) {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	var phrases []string
	for _, token := range order {
		if counts[token] >= catchphraseMinCount {
			phrases = append(phrases, token)
		}
	}
	return phrases
}

func topTones(counts map[string]int, n int) []string {
	tones := make([]string, 0, len(counts))
	for tone, count := range counts {
		if count > 0 {
			tones = append(tones, tone)
		}
	}
	sort.Slice(tones, func(i, j int) bool {
		if counts[tones[i]] != counts[tones[j]] {
			return counts[tones[i]] > counts[tones[j]]
		}
		return tones[i] < tones[j]
	})
	if len(tones) > n {
		tones = tones[:n]
	}
	return tones
}

func appendMissing(slice []string, value string) []string {
	for _, existing := range slice {
		if existing == value {
			return slice
		}
	}
	return append(slice, value)
}
