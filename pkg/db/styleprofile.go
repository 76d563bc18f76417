package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// StyleProfile is the rolling per-user tone/trait/catchphrase profile.
// Traits and catchphrases keep insertion order.
type StyleProfile struct {
	UserID       string
	ToneCounts   map[string]int
	StyleTraits  []string
	Catchphrases []string
	LastUpdated  time.Time
}

type styleProfileRow struct {
	UserID       string    `db:"user_id"`
	ToneCounts   string    `db:"tone_counts"`
	StyleTraits  string    `db:"style_traits"`
	Catchphrases string    `db:"catchphrases"`
	LastUpdated  time.Time `db:"last_updated"`
}

// GetStyleProfile returns the stored profile, or an empty profile when the
// user has none yet.
func (s *Store) GetStyleProfile(ctx context.Context, userID string) (*StyleProfile, error) {
	var row styleProfileRow
	err := s.db.GetContext(ctx, &row, `
		SELECT user_id, tone_counts, style_traits, catchphrases, last_updated
		FROM style_profiles WHERE user_id = ?
	`, userID)
	if err != nil {
		if isNoRows(err) {
			return &StyleProfile{
				UserID:     userID,
				ToneCounts: map[string]int{},
			}, nil
		}
		return nil, errors.Wrap(err, "getting style profile")
	}

	profile := &StyleProfile{UserID: row.UserID, LastUpdated: row.LastUpdated}
	if err := json.Unmarshal([]byte(row.ToneCounts), &profile.ToneCounts); err != nil {
		profile.ToneCounts = map[string]int{}
	}
	if err := json.Unmarshal([]byte(row.StyleTraits), &profile.StyleTraits); err != nil {
		profile.StyleTraits = nil
	}
	if err := json.Unmarshal([]byte(row.Catchphrases), &profile.Catchphrases); err != nil {
		profile.Catchphrases = nil
	}
	return profile, nil
}

// SaveStyleProfile upserts the profile.
func (s *Store) SaveStyleProfile(ctx context.Context, profile *StyleProfile) error {
	toneJSON, err := json.Marshal(profile.ToneCounts)
	if err != nil {
		return errors.Wrap(err, "encoding tone counts")
	}
	traits := profile.StyleTraits
	if traits == nil {
		traits = []string{}
	}
	traitsJSON, err := json.Marshal(traits)
	if err != nil {
		return errors.Wrap(err, "encoding style traits")
	}
	phrases := profile.Catchphrases
	if phrases == nil {
		phrases = []string{}
	}
	phrasesJSON, err := json.Marshal(phrases)
	if err != nil {
		return errors.Wrap(err, "encoding catchphrases")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO style_profiles (user_id, tone_counts, style_traits, catchphrases, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			tone_counts = excluded.tone_counts,
			style_traits = excluded.style_traits,
			catchphrases = excluded.catchphrases,
			last_updated = excluded.last_updated
	`, profile.UserID, string(toneJSON), string(traitsJSON), string(phrasesJSON), profile.LastUpdated)
	return errors.Wrap(err, "saving style profile")
}
